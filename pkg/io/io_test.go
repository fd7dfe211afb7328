package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
)

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"array", `[{"tag":"go","weight":50},{"tag":"rust","weight":"40"}]`, 2},
		{"object", `{"tags":[{"tag":"go","weight":1.5,"bgColor":"#fff"}]}`, 1},
		{"empty array", `[]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := ReadJSON(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadJSON() error: %v", err)
			}
			if len(recs) != tt.want {
				t.Fatalf("got %d records, want %d", len(recs), tt.want)
			}
		})
	}
}

func TestReadJSONKeepsNumbers(t *testing.T) {
	recs, err := ReadJSON(strings.NewReader(`{"tags":[{"tag":"go","weight":12345678901234567890,"bgColor":"#fff"}]}`))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	n, ok := recs[0].Weight.(json.Number)
	if !ok {
		t.Fatalf("weight type = %T, want json.Number", recs[0].Weight)
	}
	if n.String() != "12345678901234567890" {
		t.Errorf("weight = %s", n)
	}
	if recs[0].BgColor != "#fff" {
		t.Errorf("BgColor = %q, want #fff", recs[0].BgColor)
	}
}

func TestReadJSONErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "[{", `{"tags": 3}`} {
		_, err := ReadJSON(strings.NewReader(input))
		if !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ReadJSON(%q) error = %v, want INVALID_FORMAT", input, err)
		}
	}
}

func TestReadYAML(t *testing.T) {
	seq := `
- tag: go
  weight: 50
  link: https://go.dev
- tag: rust
  weight: 40.5
  tooltip: fearless
`
	recs, err := ReadYAML(strings.NewReader(seq))
	if err != nil {
		t.Fatalf("ReadYAML() error: %v", err)
	}
	if len(recs) != 2 || recs[0].Link != "https://go.dev" || recs[1].Tooltip != "fearless" {
		t.Fatalf("records = %+v", recs)
	}
	for i, want := range []float64{50, 40.5} {
		got, err := cloud.ParseWeight(recs[i].Weight)
		if err != nil || got != want {
			t.Errorf("weight %d = %v (%v), want %v", i, got, err, want)
		}
	}

	mapping := "tags:\n  - tag: zig\n    weight: 3\n    bgColor: '#222'\n"
	recs, err = ReadYAML(strings.NewReader(mapping))
	if err != nil {
		t.Fatalf("ReadYAML() error: %v", err)
	}
	if len(recs) != 1 || recs[0].BgColor != "#222" {
		t.Errorf("records = %+v", recs)
	}

	for _, bad := range []string{"", "just a string", "- [1, 2"} {
		if _, err := ReadYAML(strings.NewReader(bad)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ReadYAML(%q) error = %v, want INVALID_FORMAT", bad, err)
		}
	}
}

func TestReadHTML(t *testing.T) {
	doc := `<p>intro</p>
<ul id="tags">
  <li data-weight="50"><a href="https://go.dev">go</a></li>
  <li><span data-weight="40">rust</span></li>
  <li data-weight="x">  zig  </li>
  <li></li>
  <li><b>c</b></li>
</ul>
<ul><li data-weight="1">ignored</li></ul>`

	recs, err := ReadHTML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadHTML() error: %v", err)
	}
	want := []cloud.Record{
		{Tag: "go", Weight: "50", Link: "https://go.dev"},
		{Tag: "rust", Weight: "40"},
		{Tag: "zig", Weight: "x"},
		{Tag: "?"},
		{Tag: "c"},
	}
	if len(recs) != len(want) {
		t.Fatalf("got %d records, want %d: %+v", len(recs), len(want), recs)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, recs[i], want[i])
		}
	}
}

func TestReadHTMLNoList(t *testing.T) {
	_, err := ReadHTML(strings.NewReader("<p>no list here</p>"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadHTML() error = %v, want INVALID_FORMAT", err)
	}
}

func TestMergeRecords(t *testing.T) {
	base := []cloud.Record{
		{Tag: "old", Weight: 1, Link: "/keep", BgColor: "#123"},
		{Tag: "two", Weight: 2, Tooltip: "tip"},
	}
	list := []cloud.Record{
		{Tag: "new"},
		{Tag: "zwei", Weight: "20", Link: "/two"},
		{Tag: "drei", Weight: "3"},
	}
	got := MergeRecords(base, list)
	want := []cloud.Record{
		{Tag: "new", Weight: 1, Link: "/keep", BgColor: "#123"},
		{Tag: "zwei", Weight: "20", Link: "/two", Tooltip: "tip"},
		{Tag: "drei", Weight: "3"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if base[0].Tag != "old" {
		t.Error("MergeRecords modified its input")
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"tags.json":  FormatJSON,
		"TAGS.YML":   FormatYAML,
		"a/b.yaml":   FormatYAML,
		"index.html": FormatHTML,
		"page.htm":   FormatHTML,
	}
	for path, want := range tests {
		got, err := DetectFormat(path)
		if err != nil || got != want {
			t.Errorf("DetectFormat(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := DetectFormat("tags.csv"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("DetectFormat(csv) error = %v, want INVALID_FORMAT", err)
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tags.html")
	html := `<ul><li data-weight="7"><a href="/go">go</a></li><li data-weight="2.5">zig</li></ul>`
	if err := os.WriteFile(src, []byte(html), 0o644); err != nil {
		t.Fatal(err)
	}

	recs, err := Import(src)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	out := filepath.Join(dir, "tags.json")
	if err := ExportJSON(recs, out); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	data, _ := os.ReadFile(out)
	if !bytes.Contains(data, []byte(`"weight": 7`)) || !bytes.Contains(data, []byte(`"weight": 2.5`)) {
		t.Errorf("weights not exported as numbers:\n%s", data)
	}

	back, err := Import(out)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if len(back) != 2 || back[0].Tag != "go" || back[0].Link != "/go" {
		t.Errorf("round trip records = %+v", back)
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import() error = %v, want FILE_NOT_FOUND", err)
	}
}
