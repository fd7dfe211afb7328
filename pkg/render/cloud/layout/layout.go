package layout

import (
	"cmp"
	stderrors "errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/measure"
)

// Layout is the result of one layout pass.
type Layout struct {
	// ID identifies a generated layout. Build leaves it empty; the pipeline
	// assigns one.
	ID string `json:"id,omitempty" msgpack:"id,omitempty"`

	Config cloud.Config `json:"config" msgpack:"config"`
	Pack   PackOptions  `json:"pack" msgpack:"pack"`

	// Rows in top-to-bottom render order.
	Rows  []cloud.Row `json:"rows" msgpack:"rows"`
	Count int         `json:"count" msgpack:"count"`

	MinWeight  float64 `json:"min_weight" msgpack:"min_weight"`
	MaxWeight  float64 `json:"max_weight" msgpack:"max_weight"`
	Degenerate bool    `json:"degenerate,omitempty" msgpack:"degenerate,omitempty"`

	// Rejected lists records excluded by WithSkipInvalid.
	Rejected []Rejection `json:"rejected,omitempty" msgpack:"rejected,omitempty"`
}

// Rejection describes a record that was left out of the layout.
type Rejection struct {
	Index  int    `json:"index" msgpack:"index"`
	Tag    string `json:"tag" msgpack:"tag"`
	Code   string `json:"code" msgpack:"code"`
	Reason string `json:"reason" msgpack:"reason"`
}

// Tags returns every tag in render order: rows top to bottom, cells left
// to right.
func (l *Layout) Tags() []cloud.Tag {
	out := make([]cloud.Tag, 0, l.Count)
	for _, r := range l.Rows {
		out = append(out, r.Tags...)
	}
	return out
}

// Styler finalizes a tag's presentation before measurement. It may set the
// tag's resolved colors and returns the label to measure.
type Styler interface {
	Style(t *cloud.Tag) measure.Label
}

// StylerFunc adapts a function to the Styler interface.
type StylerFunc func(t *cloud.Tag) measure.Label

// Style calls f.
func (f StylerFunc) Style(t *cloud.Tag) measure.Label { return f(t) }

// PlainStyler measures the bare label text in the default box.
var PlainStyler Styler = StylerFunc(func(t *cloud.Tag) measure.Label {
	return measure.Label{Text: t.Label, FontSize: t.FontSize, Box: measure.DefaultBox}
})

// Option configures a layout pass.
type Option func(*options)

type options struct {
	logger      *log.Logger
	skipInvalid bool
	styler      Styler
	pack        PackOptions
}

// WithLogger sets the logger for the pass. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSkipInvalid drops invalid records instead of failing the pass.
// Dropped records are listed in Layout.Rejected.
func WithSkipInvalid() Option {
	return func(o *options) { o.skipInvalid = true }
}

// WithStyler sets the styler applied before measurement.
func WithStyler(s Styler) Option {
	return func(o *options) {
		if s != nil {
			o.styler = s
		}
	}
}

// WithPackOptions overrides the packing constants.
func WithPackOptions(p PackOptions) Option {
	return func(o *options) { o.pack = p }
}

// Build runs a full layout pass over records.
//
// Weights are validated in a single scan before anything is scaled. By
// default any invalid record fails the pass with an error that joins one
// coded error per bad record: INVALID_WEIGHT for weights, INVALID_LINK for
// unsafe links and INVALID_INPUT for empty or oversized text. Empty input
// yields an empty layout.
func Build(records []cloud.Record, cfg cloud.Config, m measure.Measurer, opts ...Option) (*Layout, error) {
	o := options{
		logger: log.New(io.Discard),
		styler: PlainStyler,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.pack = o.pack.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "measurer is required")
	}

	scan, err := ScanWeights(records)
	if recErr := checkRecords(records, &scan); recErr != nil {
		err = stderrors.Join(err, recErr)
	}
	if err != nil && !o.skipInvalid {
		return nil, err
	}
	for _, r := range scan.Rejected {
		o.logger.Warn("skipping record", "index", r.Index, "tag", r.Tag, "reason", r.Reason)
	}

	lay := &Layout{
		Config:    cfg,
		Pack:      o.pack,
		MinWeight: scan.Min,
		MaxWeight: scan.Max,
		Rejected:  scan.Rejected,
	}

	tags := make([]cloud.Tag, 0, len(records))
	for i, rec := range records {
		if !scan.Valid[i] {
			continue
		}
		tags = append(tags, cloud.Tag{
			ID:      fmt.Sprintf("tag-%d", i),
			Label:   rec.Tag,
			Index:   i,
			Link:    rec.Link,
			Tooltip: rec.Tooltip,
			Weight:  scan.Weights[i],
			BgColor: rec.BgColor,
			Color:   rec.Color,
		})
	}
	if len(tags) == 0 {
		o.logger.Debug("no tags to lay out")
		return lay, nil
	}

	slices.SortStableFunc(tags, func(a, b cloud.Tag) int {
		return cmp.Compare(b.Weight, a.Weight)
	})

	scaler := NewScaler(scan.Min, scan.Max, cfg)
	lay.Degenerate = scaler.Degenerate()
	if lay.Degenerate {
		o.logger.Debug("all weights equal, using fallback font size", "weight", scan.Min, "size", cfg.Fallback())
	}

	for i := range tags {
		t := &tags[i]
		t.Rank = i
		t.FontSize = scaler.Size(t.Weight)
		label := o.styler.Style(t)
		size, err := m.Measure(label)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMeasure, err, "measure tag %q", t.Label)
		}
		t.Width, t.Height = size.Width, size.Height
	}

	lay.Rows = Pack(tags, cfg.ContainerWidth, o.pack)
	lay.Count = len(tags)
	o.logger.Debug("layout complete", "tags", lay.Count, "rows", len(lay.Rows), "min_weight", scan.Min, "max_weight", scan.Max)
	return lay, nil
}

// WeightScan is the result of [ScanWeights].
type WeightScan struct {
	// Weights holds the parsed weight of every record, zero where invalid.
	Weights []float64
	// Valid reports, per record, whether its weight parsed.
	Valid []bool
	// Min and Max span the valid weights. Both are zero when none are valid.
	Min, Max float64
	Rejected []Rejection
}

// ScanWeights parses every record's weight in one pass and computes the
// weight range over the valid ones. Every invalid weight is reported: the
// returned error joins one INVALID_WEIGHT error per bad record, and the same
// records are listed in WeightScan.Rejected.
func ScanWeights(records []cloud.Record) (WeightScan, error) {
	scan := WeightScan{
		Weights: make([]float64, len(records)),
		Valid:   make([]bool, len(records)),
	}
	var errs []error
	seen := false
	for i, rec := range records {
		w, err := cloud.ParseWeight(rec.Weight)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d (%q): %w", i, rec.Tag, err))
			scan.Rejected = append(scan.Rejected, rejection(i, rec.Tag, errors.ErrCodeInvalidWeight, err))
			continue
		}
		scan.Weights[i] = w
		scan.Valid[i] = true
		if !seen {
			scan.Min, scan.Max = w, w
			seen = true
			continue
		}
		scan.Min = min(scan.Min, w)
		scan.Max = max(scan.Max, w)
	}
	return scan, stderrors.Join(errs...)
}

// checkRecords rejects records whose text or link is unusable. Records
// already rejected for their weight are not reported twice.
func checkRecords(records []cloud.Record, scan *WeightScan) error {
	var errs []error
	for i, rec := range records {
		if !scan.Valid[i] {
			continue
		}
		err := errors.ValidateTagText(rec.Tag)
		if err == nil {
			err = errors.ValidateLink(rec.Link)
		}
		if err != nil {
			scan.Valid[i] = false
			errs = append(errs, fmt.Errorf("record %d (%q): %w", i, rec.Tag, err))
			scan.Rejected = append(scan.Rejected, rejection(i, rec.Tag, errors.GetCode(err), err))
		}
	}
	if len(errs) > 0 {
		rescan(records, scan)
	}
	return stderrors.Join(errs...)
}

// rescan recomputes the weight range after records were invalidated.
func rescan(records []cloud.Record, scan *WeightScan) {
	scan.Min, scan.Max = 0, 0
	seen := false
	for i := range records {
		if !scan.Valid[i] {
			continue
		}
		w := scan.Weights[i]
		if !seen {
			scan.Min, scan.Max = w, w
			seen = true
			continue
		}
		scan.Min = min(scan.Min, w)
		scan.Max = max(scan.Max, w)
	}
}

func rejection(i int, tag string, code errors.Code, err error) Rejection {
	return Rejection{Index: i, Tag: tag, Code: string(code), Reason: errors.UserMessage(err)}
}
