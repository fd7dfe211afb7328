package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/vmihailenco/msgpack/v5"
)

// hashKey returns prefix:sha256(parts). Parts are msgpack-encoded, which is
// deterministic for structs and slices.
func hashKey(prefix string, parts ...any) string {
	data, err := msgpack.Marshal(parts)
	if err != nil {
		// Keys are built from plain structs and strings only.
		panic("cache: unhashable key parts: " + err.Error())
	}
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashValue msgpack-encodes v and hashes the result. Map keys are sorted so
// equal values hash equally.
func HashValue(v any) (string, error) {
	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)

	var buf bytes.Buffer
	enc.Reset(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return Hash(buf.Bytes()), nil
}
