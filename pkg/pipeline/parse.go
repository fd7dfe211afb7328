package pipeline

import (
	"strings"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	tcio "github.com/matzehuels/tagcloud/pkg/io"
)

// Input is a tag source carried in an API request. Either Tags is set, or
// Data holds a document in Format. When Format is html, Base supplies
// styling records that the list entries are merged into.
type Input struct {
	Tags   []cloud.Record `json:"tags,omitempty"`
	Data   string         `json:"data,omitempty"`
	Format string         `json:"format,omitempty"`
	Base   []cloud.Record `json:"base,omitempty"`
}

// Records resolves the input to a record list.
func (in Input) Records() ([]cloud.Record, error) {
	if in.Data == "" {
		if in.Format != "" || len(in.Base) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "format and base require data")
		}
		return in.Tags, nil
	}
	if len(in.Tags) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "tags and data are mutually exclusive")
	}

	name := in.Format
	if name == "" {
		name = string(tcio.FormatJSON)
	}
	format, err := tcio.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	recs, err := tcio.Read(strings.NewReader(in.Data), format)
	if err != nil {
		return nil, err
	}
	if format == tcio.FormatHTML && len(in.Base) > 0 {
		recs = tcio.MergeRecords(in.Base, recs)
	} else if len(in.Base) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "base is only used with html data")
	}
	return recs, nil
}
