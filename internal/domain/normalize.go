package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errUnsupportedType = errors.New("unsupported type")

// NormalizePothole converts a raw document into a PotholeRecord.
//
// It returns an error wrapping ErrIncomplete when latitude or longitude is
// missing or falsy; callers drop such documents. Any other error is a
// *FieldError from coercing a present value.
func NormalizePothole(doc Document) (PotholeRecord, error) {
	lat := doc.Fields[FieldLatitude]
	lon := doc.Fields[FieldLongitude]

	if !truthy(lat) {
		return PotholeRecord{}, fmt.Errorf("%w: %s missing or empty", ErrIncomplete, FieldLatitude)
	}
	if !truthy(lon) {
		return PotholeRecord{}, fmt.Errorf("%w: %s missing or empty", ErrIncomplete, FieldLongitude)
	}

	latitude, err := toFloat(FieldLatitude, lat)
	if err != nil {
		return PotholeRecord{}, err
	}
	longitude, err := toFloat(FieldLongitude, lon)
	if err != nil {
		return PotholeRecord{}, err
	}

	size := ""
	if v, ok := doc.Fields[FieldSize]; ok {
		size = formatValue(v)
	}

	return PotholeRecord{
		Latitude:  latitude,
		Longitude: longitude,
		Size:      NormalizeSize(size),
	}, nil
}

// NormalizeSize trims surrounding whitespace and lower-cases a size label.
func NormalizeSize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// truthy reports whether a Firestore value counts as present.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case float32:
		return x != 0
	case float64:
		return x != 0 // NaN != 0, so NaN is truthy
	case string:
		return x != ""
	case []byte:
		return len(x) > 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}

func toFloat(field string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, &FieldError{Field: field, Value: v, Err: err}
		}
		// Out-of-range strings saturate to ±Inf, which ParseFloat already returns.
		return f, nil
	default:
		return 0, &FieldError{Field: field, Value: v, Err: errUnsupportedType}
	}
}

// formatValue renders a field value as text before size normalization.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "none"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	default:
		return fmt.Sprint(x)
	}
}

// formatFloat writes the shortest decimal that round-trips, keeping a ".0"
// on integral values and switching to exponent form outside [1e-4, 1e16).
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
