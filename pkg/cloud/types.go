package cloud

import (
	"fmt"
)

// Record is a raw tag record as supplied by an input collaborator.
type Record struct {
	Tag     string `json:"tag" yaml:"tag"`
	Link    string `json:"link,omitempty" yaml:"link,omitempty"`
	Weight  any    `json:"weight" yaml:"weight"`
	Tooltip string `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	BgColor string `json:"bgColor,omitempty" yaml:"bgColor,omitempty"`
	Color   string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Tag is a laid-out tag. Index is the position of the source record in the
// input, Rank the position after the stable descending-weight sort. ID is
// derived from Index and is unique within one layout.
type Tag struct {
	ID       string  `json:"id" msgpack:"id"`
	Label    string  `json:"label" msgpack:"label"`
	Index    int     `json:"index" msgpack:"index"`
	Rank     int     `json:"rank" msgpack:"rank"`
	Link     string  `json:"link,omitempty" msgpack:"link,omitempty"`
	Tooltip  string  `json:"tooltip,omitempty" msgpack:"tooltip,omitempty"`
	Weight   float64 `json:"weight" msgpack:"weight"`
	FontSize float64 `json:"font_size" msgpack:"font_size"`
	Width    float64 `json:"width" msgpack:"width"`
	Height   float64 `json:"height" msgpack:"height"`
	BgColor  string  `json:"bg_color,omitempty" msgpack:"bg_color,omitempty"`
	Color    string  `json:"color,omitempty" msgpack:"color,omitempty"`
}

// VAlign is the vertical alignment of a row's tags inside the rendered cell.
type VAlign int

const (
	AlignMiddle VAlign = iota
	AlignBottom
	AlignTop
)

var valignNames = map[VAlign]string{
	AlignMiddle: "middle",
	AlignBottom: "bottom",
	AlignTop:    "top",
}

// String returns the CSS vertical-align keyword.
func (v VAlign) String() string {
	if s, ok := valignNames[v]; ok {
		return s
	}
	return fmt.Sprintf("VAlign(%d)", int(v))
}

// MarshalText implements encoding.TextMarshaler.
func (v VAlign) MarshalText() ([]byte, error) {
	s, ok := valignNames[v]
	if !ok {
		return nil, fmt.Errorf("unknown vertical alignment %d", int(v))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *VAlign) UnmarshalText(b []byte) error {
	for k, s := range valignNames {
		if s == string(b) {
			*v = k
			return nil
		}
	}
	return fmt.Errorf("unknown vertical alignment %q", b)
}

// Row is one horizontal line of the cloud.
type Row struct {
	Seq    int    `json:"seq" msgpack:"seq"`
	VAlign VAlign `json:"valign" msgpack:"valign"`
	Tags   []Tag  `json:"tags" msgpack:"tags"`
}

// Width returns the summed measured width of the row's tags, excluding
// margins.
func (r Row) Width() float64 {
	var w float64
	for _, t := range r.Tags {
		w += t.Width
	}
	return w
}

// Height returns the tallest measured tag height in the row.
func (r Row) Height() float64 {
	var h float64
	for _, t := range r.Tags {
		h = max(h, t.Height)
	}
	return h
}
