package cloud

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// ParseWeight converts a raw record weight into a finite float64.
//
// Accepted: every Go integer and float kind, json.Number, and strings that
// parse as a decimal number after trimming whitespace (markup attributes
// arrive as strings). Everything else, including nil, booleans, NaN and
// ±Inf, is an INVALID_WEIGHT error. Nothing is ever coerced to zero.
func ParseWeight(v any) (float64, error) {
	var f float64
	switch w := v.(type) {
	case nil:
		return 0, errors.New(errors.ErrCodeInvalidWeight, "weight is missing")
	case float64:
		f = w
	case float32:
		f = float64(w)
	case int:
		f = float64(w)
	case int8:
		f = float64(w)
	case int16:
		f = float64(w)
	case int32:
		f = float64(w)
	case int64:
		f = float64(w)
	case uint:
		f = float64(w)
	case uint8:
		f = float64(w)
	case uint16:
		f = float64(w)
	case uint32:
		f = float64(w)
	case uint64:
		f = float64(w)
	case json.Number:
		parsed, err := w.Float64()
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeInvalidWeight, err, "weight %q is not a number", string(w))
		}
		f = parsed
	case string:
		s := strings.TrimSpace(w)
		if s == "" {
			return 0, errors.New(errors.ErrCodeInvalidWeight, "weight is empty")
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.New(errors.ErrCodeInvalidWeight, "weight %q is not a number", w)
		}
		f = parsed
	default:
		return 0, errors.New(errors.ErrCodeInvalidWeight, "weight of type %T is not a number", v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New(errors.ErrCodeInvalidWeight, "weight %v is not finite", f)
	}
	return f, nil
}
