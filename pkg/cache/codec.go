package cache

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
)

// layoutSchema is bumped whenever the encoded Layout changes shape.
const layoutSchema uint16 = 1

type layoutEnvelope struct {
	Schema uint16         `msgpack:"schema"`
	Layout *layout.Layout `msgpack:"layout"`
}

// EncodeLayout serializes l for storage.
func EncodeLayout(l *layout.Layout) ([]byte, error) {
	return msgpack.Marshal(&layoutEnvelope{Schema: layoutSchema, Layout: l})
}

// DecodeLayout reads a layout written by EncodeLayout. Entries from another
// schema version return ErrStale.
func DecodeLayout(data []byte) (*layout.Layout, error) {
	var env layoutEnvelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStale, err)
	}
	if env.Schema != layoutSchema || env.Layout == nil {
		return nil, fmt.Errorf("%w: schema %d", ErrStale, env.Schema)
	}
	return env.Layout, nil
}
