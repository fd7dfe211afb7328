package sink

import (
	"encoding/json"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
)

// RenderJSON exports the layout as a pretty-printed JSON document. The
// output is deterministic for a given layout and can be read back with
// [ParseJSON] to render other formats without laying out again.
func RenderJSON(l *layout.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return append(data, '\n'), nil
}

// ParseJSON reads a layout written by [RenderJSON].
func ParseJSON(data []byte) (*layout.Layout, error) {
	var l layout.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	if err := l.Config.Validate(); err != nil {
		return nil, err
	}
	n := 0
	for _, r := range l.Rows {
		n += len(r.Tags)
	}
	if n != l.Count {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "layout lists %d tags but rows hold %d", l.Count, n)
	}
	return &l, nil
}
