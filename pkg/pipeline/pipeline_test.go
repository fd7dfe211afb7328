package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/styles"
)

func testRecords() []cloud.Record {
	return []cloud.Record{
		{Tag: "go", Weight: 50, Link: "https://go.dev"},
		{Tag: "rust", Weight: 40},
		{Tag: "zig", Weight: "30"},
		{Tag: "c", Weight: 20},
		{Tag: "odin", Weight: 10},
	}
}

// memCache is an in-memory cache that counts hits.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	if ok {
		c.hits++
	}
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func quietLogger() *log.Logger { return log.New(&strings.Builder{}) }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"html", false},
		{"svg", false},
		{"json", false},
		{"dot", false},
		{"png", false},
		{"pdf", false},
		{"txt", false},
		{"invalid", true},
		{"SVG", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("ValidateFormat(%q) error code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "html"}); err != nil {
		t.Errorf("valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "gif"}); err == nil {
		t.Error("invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("zero options should validate: %v", err)
	}
	if got := opts.CloudConfig(); got != cloud.DefaultConfig() {
		t.Errorf("CloudConfig() = %+v", got)
	}
	if opts.Measurer != DefaultMeasurer {
		t.Errorf("Measurer = %q", opts.Measurer)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatHTML {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Theme == nil || opts.Logger == nil {
		t.Error("theme and logger should be defaulted")
	}

	// A second call is a no-op even if fields changed.
	opts.Formats = []string{"bogus"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("ValidateAndSetDefaults should be idempotent: %v", err)
	}
}

func TestOptionsMaxFontDefaultFollowsMin(t *testing.T) {
	opts := Options{MinFontSize: 60}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("ValidateForLayout() error: %v", err)
	}
	if opts.MaxFontSize != 60 {
		t.Errorf("MaxFontSize = %v, want 60", opts.MaxFontSize)
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	badTheme := styles.DefaultTheme()
	badTheme.Tag.Background = "url(evil)"

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative width", Options{Width: -1}, errors.ErrCodeInvalidConfig},
		{"inverted fonts", Options{MinFontSize: 30, MaxFontSize: 20}, errors.ErrCodeInvalidConfig},
		{"negative margin", Options{Margin: -5}, errors.ErrCodeInvalidConfig},
		{"unknown measurer", Options{Measurer: "browser"}, errors.ErrCodeInvalidConfig},
		{"bad theme", Options{Theme: &badTheme}, errors.ErrCodeInvalidConfig},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeUnsupported},
		{"negative term width", Options{TermWidth: -1}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForRender() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	f := config.Default()
	f.Container.Width = 320
	f.Layout.Measurer = config.MeasurerCells
	f.Tag.TextShadow = true

	opts := FromConfig(f)
	if opts.Width != 320 || opts.Measurer != config.MeasurerCells {
		t.Errorf("FromConfig() = %+v", opts)
	}
	if opts.Theme == nil || !opts.Theme.Tag.TextShadow {
		t.Error("theme not carried over")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("options from the default config should validate: %v", err)
	}
}

func TestKeyOptsTrackOptions(t *testing.T) {
	a := Options{}
	b := Options{Width: 600}
	a.SetLayoutDefaults()
	b.SetLayoutDefaults()
	if a.LayoutKeyOpts() == b.LayoutKeyOpts() {
		t.Error("width change did not change the layout key")
	}

	th := styles.DefaultTheme()
	th.Container.Background = "#000000"
	c := Options{Theme: &th}
	c.SetLayoutDefaults()
	if a.LayoutKeyOpts().Theme == c.LayoutKeyOpts().Theme {
		t.Error("theme change did not change the layout key")
	}

	if a.ArtifactKeyOpts("svg") == a.ArtifactKeyOpts("html") {
		t.Error("format did not change the artifact key")
	}
	d := a
	d.Standalone = true
	if a.ArtifactKeyOpts("html") == d.ArtifactKeyOpts("html") {
		t.Error("standalone did not change the artifact key")
	}
}

func TestContentType(t *testing.T) {
	for _, f := range Formats {
		if ContentType(f) == "application/octet-stream" {
			t.Errorf("format %s has no content type", f)
		}
	}
	if ContentType("zip") != "application/octet-stream" {
		t.Error("unknown format should fall back to octet-stream")
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	res, err := r.Execute(context.Background(), testRecords(), Options{
		Formats: []string{FormatHTML, FormatSVG, FormatJSON, FormatDOT, FormatText},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Stats.Records != 5 || res.Stats.Tags != 5 || res.Stats.Rows != len(res.Layout.Rows) {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.Layout.ID == "" {
		t.Error("layout has no ID")
	}
	if res.RecordsHash == "" {
		t.Error("records hash is empty")
	}
	for _, f := range []string{FormatHTML, FormatSVG, FormatJSON, FormatDOT, FormatText} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}
	if !strings.Contains(string(res.Artifacts[FormatHTML]), `class="jqTcContainer"`) {
		t.Error("html artifact is not a cloud")
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("null cache reported a hit")
	}
}

func TestExecuteCaching(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, testRecords(), opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, testRecords(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want both hits", second.CacheInfo)
	}
	if first.Layout.ID != second.Layout.ID {
		t.Error("cached layout lost its ID")
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs")
	}

	// Different records miss.
	recs := testRecords()
	recs[0].Weight = 60
	third, err := r.Execute(ctx, recs, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("changed records hit the layout cache")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	fourth, err := r.Execute(ctx, testRecords(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.LayoutHit || fourth.CacheInfo.RenderHit {
		t.Error("refresh still hit the cache")
	}
	if fourth.Layout.ID == first.Layout.ID {
		t.Error("refreshed layout kept the old ID")
	}
}

func TestExecuteStrictAndSkip(t *testing.T) {
	recs := append(testRecords(), cloud.Record{Tag: "bad", Weight: "heavy"})
	r := NewRunner(nil, nil, quietLogger())

	_, err := r.Execute(context.Background(), recs, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidWeight) {
		t.Errorf("strict Execute() error = %v, want INVALID_WEIGHT", err)
	}

	res, err := r.Execute(context.Background(), recs, Options{SkipInvalid: true})
	if err != nil {
		t.Fatalf("Execute() with SkipInvalid error: %v", err)
	}
	if res.Stats.Tags != 5 || res.Stats.Rejected != 1 {
		t.Errorf("Stats = %+v, want 5 tags and 1 rejection", res.Stats)
	}
}

func TestGenerateLayoutMeasurers(t *testing.T) {
	for _, m := range config.Measurers {
		t.Run(m, func(t *testing.T) {
			opts := Options{Measurer: m}
			if err := opts.ValidateForLayout(); err != nil {
				t.Fatal(err)
			}
			lay, err := GenerateLayout(testRecords(), opts)
			if err != nil {
				t.Fatalf("GenerateLayout() error: %v", err)
			}
			if lay.Count != 5 {
				t.Errorf("Count = %d, want 5", lay.Count)
			}
			for _, tag := range lay.Tags() {
				if tag.Width <= 0 || tag.Height <= 0 {
					t.Errorf("tag %s has size %vx%v", tag.Label, tag.Width, tag.Height)
				}
			}
		})
	}
}

func TestGenerateLayoutBadFont(t *testing.T) {
	opts := Options{Measurer: config.MeasurerOpenType, FontData: []byte("not a font")}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	if _, err := GenerateLayout(testRecords(), opts); !errors.Is(err, errors.ErrCodeMeasure) {
		t.Errorf("GenerateLayout() error = %v, want MEASURE_FAILED", err)
	}
}

func TestInputRecords(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		want    []string
		wantErr errors.Code
	}{
		{"tags", Input{Tags: []cloud.Record{{Tag: "go", Weight: 1}}}, []string{"go"}, ""},
		{"json data", Input{Data: `[{"tag":"a","weight":1},{"tag":"b","weight":2}]`}, []string{"a", "b"}, ""},
		{"yaml data", Input{Data: "- tag: a\n  weight: 1\n", Format: "yaml"}, []string{"a"}, ""},
		{"html data", Input{Data: `<ul><li data-weight="3">x</li></ul>`, Format: "html"}, []string{"x"}, ""},
		{"both", Input{Tags: []cloud.Record{{Tag: "go"}}, Data: "[]"}, nil, errors.ErrCodeInvalidInput},
		{"format without data", Input{Format: "yaml"}, nil, errors.ErrCodeInvalidInput},
		{"base without html", Input{Data: "[]", Base: []cloud.Record{{Tag: "a"}}}, nil, errors.ErrCodeInvalidInput},
		{"unknown format", Input{Data: "x", Format: "csv"}, nil, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := tt.in.Records()
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Records() error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Records() error: %v", err)
			}
			if len(recs) != len(tt.want) {
				t.Fatalf("got %d records, want %d", len(recs), len(tt.want))
			}
			for i, w := range tt.want {
				if recs[i].Tag != w {
					t.Errorf("record %d = %q, want %q", i, recs[i].Tag, w)
				}
			}
		})
	}
}

func TestInputRecordsMergesBase(t *testing.T) {
	in := Input{
		Data:   `<ul><li data-weight="3"><a href="/go">go</a></li></ul>`,
		Format: "html",
		Base:   []cloud.Record{{Tag: "ignored", BgColor: "#123456"}},
	}
	recs, err := in.Records()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Tag != "go" || recs[0].Link != "/go" || recs[0].BgColor != "#123456" {
		t.Errorf("Records() = %+v", recs)
	}
}
