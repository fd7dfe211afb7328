package pipeline

import (
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/measure"
)

// GenerateLayout runs one layout pass without caching. Options must have
// been validated.
func GenerateLayout(records []cloud.Record, opts Options) (*layout.Layout, error) {
	m, closeFn, err := newMeasurer(opts)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	layoutOpts := []layout.Option{
		layout.WithLogger(opts.Logger),
		layout.WithStyler(opts.theme()),
		layout.WithPackOptions(opts.PackOptions()),
	}
	if opts.SkipInvalid {
		layoutOpts = append(layoutOpts, layout.WithSkipInvalid())
	}
	return layout.Build(records, opts.CloudConfig(), m, layoutOpts...)
}

// newMeasurer returns a fresh measurer for one pass and a function that
// releases it.
func newMeasurer(opts Options) (measure.Measurer, func() error, error) {
	noop := func() error { return nil }
	switch opts.Measurer {
	case config.MeasurerEstimate, "":
		return measure.Estimate{}, noop, nil
	case config.MeasurerCells:
		return measure.Cells{}, noop, nil
	case config.MeasurerOpenType:
		var m *measure.OpenType
		var err error
		if len(opts.FontData) > 0 {
			f, perr := measure.ParseFont(opts.FontData)
			if perr != nil {
				return nil, nil, perr
			}
			m, err = measure.NewOpenType(f)
		} else {
			m, err = measure.NewOpenType(nil)
		}
		if err != nil {
			return nil, nil, err
		}
		return m, m.Close, nil
	}
	return nil, nil, errors.New(errors.ErrCodeInvalidConfig, "unknown measurer %q", opts.Measurer)
}
