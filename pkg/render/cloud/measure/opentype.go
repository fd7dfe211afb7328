package measure

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// DPI at which faces are created. At 72 DPI one point is one pixel, so a
// 24px font size maps to a 24pt face.
const DPI = 72

// Parsed Go Regular, shared read-only by every OpenType measurer.
var (
	goRegular     *opentype.Font
	goRegularErr  error
	goRegularOnce sync.Once
)

// DefaultFont returns the embedded Go Regular font.
func DefaultFont() (*opentype.Font, error) {
	goRegularOnce.Do(func() {
		goRegular, goRegularErr = opentype.Parse(goregular.TTF)
	})
	return goRegular, goRegularErr
}

// ParseFont parses TTF or OTF font data for use with [NewOpenType].
func ParseFont(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMeasure, err, "parse font")
	}
	return f, nil
}

// OpenType measures labels with real glyph advances. Faces are created
// lazily per font size and kept for the life of the measurer.
//
// An OpenType measurer is not safe for concurrent use. The parsed font it
// wraps is, so concurrent passes should each call [NewOpenType] on the same
// font.
type OpenType struct {
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewOpenType creates a measurer for f. A nil font selects Go Regular.
func NewOpenType(f *opentype.Font) (*OpenType, error) {
	if f == nil {
		var err error
		if f, err = DefaultFont(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMeasure, err, "load default font")
		}
	}
	return &OpenType{font: f, faces: make(map[float64]font.Face)}, nil
}

// Measure implements Measurer. The height is the face's ascent plus
// descent, which is what a browser uses for an inline box.
func (m *OpenType) Measure(l Label) (Size, error) {
	if l.FontSize <= 0 {
		return Size{}, errors.New(errors.ErrCodeMeasure, "font size must be positive, got %v", l.FontSize)
	}
	face, err := m.face(l.FontSize)
	if err != nil {
		return Size{}, err
	}
	adv := font.MeasureString(face, l.Text)
	metrics := face.Metrics()
	return l.Box.Outer(toFloat(adv), toFloat(metrics.Ascent+metrics.Descent)), nil
}

func (m *OpenType) face(size float64) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     DPI,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMeasure, err, "create face at %vpx", size)
	}
	m.faces[size] = f
	return f, nil
}

// Close releases all cached faces.
func (m *OpenType) Close() error {
	var firstErr error
	for size, f := range m.faces {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close face %vpx: %w", size, err)
		}
		delete(m.faces, size)
	}
	return firstErr
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
