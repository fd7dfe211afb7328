// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a plain byte store with TTLs. Three backends are provided:
// [NullCache] disables caching, [FileCache] keeps entries on local disk for
// the CLI, and [RedisCache] shares entries between server instances.
//
// Keys come from a [Keyer]. The default keyer hashes the inputs that affect
// a result, so a change to the records, the layout options or the render
// options produces a different key:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(recordsHash, cache.LayoutKeyOpts{Width: 500})
//
// Layouts are stored with [EncodeLayout] and read back with [DecodeLayout].
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the stored bytes and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(recordsHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds everything besides the records that changes a layout.
type LayoutKeyOpts struct {
	Width            float64 `msgpack:"width"`
	MinFontSize      float64 `msgpack:"min_font_size"`
	MaxFontSize      float64 `msgpack:"max_font_size"`
	FallbackFontSize float64 `msgpack:"fallback_font_size"`
	Padding          float64 `msgpack:"padding"`
	Margin           float64 `msgpack:"margin"`
	Growth           float64 `msgpack:"growth"`
	Measurer         string  `msgpack:"measurer"`
	Font             string  `msgpack:"font"`
	Theme            string  `msgpack:"theme"`
	SkipInvalid      bool    `msgpack:"skip_invalid"`
}

// ArtifactKeyOpts holds everything besides the layout that changes a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format      string `msgpack:"format"`
	Theme       string `msgpack:"theme"`
	Title       string `msgpack:"title"`
	Standalone  bool   `msgpack:"standalone"`
	Transparent bool   `msgpack:"transparent"`
	TermWidth   int    `msgpack:"term_width"`
}

// DefaultKeyer builds keys of the form "layout:<sha256>" and
// "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(recordsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", recordsHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// NullCache never stores anything.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var (
	_ Cache = NullCache{}
	_ Keyer = DefaultKeyer{}
)
