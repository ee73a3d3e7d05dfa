package domain

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDocID = "pothole-1"

func doc(fields map[string]any) Document {
	return Document{ID: testDocID, Fields: fields}
}

func TestNormalizePothole(t *testing.T) {
	t.Run("reported document", func(t *testing.T) {
		rec, err := NormalizePothole(doc(map[string]any{
			"latitude":  12.34,
			"longitude": 56.78,
			"size":      " Large ",
		}))

		require.NoError(t, err)
		assert.Equal(t, PotholeRecord{Latitude: 12.34, Longitude: 56.78, Size: "large"}, rec)
	})

	t.Run("missing size defaults to empty", func(t *testing.T) {
		rec, err := NormalizePothole(doc(map[string]any{
			"latitude":  12.34,
			"longitude": 56.78,
		}))

		require.NoError(t, err)
		assert.Equal(t, "", rec.Size)
	})

	t.Run("null size", func(t *testing.T) {
		rec, err := NormalizePothole(doc(map[string]any{
			"latitude":  12.34,
			"longitude": 56.78,
			"size":      nil,
		}))

		require.NoError(t, err)
		assert.Equal(t, "none", rec.Size)
	})

	t.Run("integer coordinates are widened", func(t *testing.T) {
		rec, err := NormalizePothole(doc(map[string]any{
			"latitude":  int64(12),
			"longitude": int64(-56),
		}))

		require.NoError(t, err)
		assert.Equal(t, 12.0, rec.Latitude)
		assert.Equal(t, -56.0, rec.Longitude)
	})

	t.Run("string coordinates are parsed", func(t *testing.T) {
		rec, err := NormalizePothole(doc(map[string]any{
			"latitude":  " 12.5 ",
			"longitude": "-98.44",
		}))

		require.NoError(t, err)
		assert.Equal(t, 12.5, rec.Latitude)
		assert.Equal(t, -98.44, rec.Longitude)
	})

	t.Run("string zero is present", func(t *testing.T) {
		rec, err := NormalizePothole(doc(map[string]any{
			"latitude":  "0",
			"longitude": 1.0,
		}))

		require.NoError(t, err)
		assert.Equal(t, 0.0, rec.Latitude)
	})

	t.Run("true coordinate becomes one", func(t *testing.T) {
		rec, err := NormalizePothole(doc(map[string]any{
			"latitude":  true,
			"longitude": 1.0,
		}))

		require.NoError(t, err)
		assert.Equal(t, 1.0, rec.Latitude)
	})

	t.Run("out of range string saturates", func(t *testing.T) {
		rec, err := NormalizePothole(doc(map[string]any{
			"latitude":  "1e400",
			"longitude": 1.0,
		}))

		require.NoError(t, err)
		assert.True(t, math.IsInf(rec.Latitude, 1))
	})

	t.Run("unparsable string", func(t *testing.T) {
		_, err := NormalizePothole(doc(map[string]any{
			"latitude":  "north",
			"longitude": 56.78,
		}))

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrIncomplete)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, FieldLatitude, fe.Field)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := NormalizePothole(doc(map[string]any{
			"latitude":  12.34,
			"longitude": time.Date(2024, 4, 26, 0, 0, 0, 0, time.UTC),
		}))

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, FieldLongitude, fe.Field)
		assert.Contains(t, err.Error(), "unsupported type")
	})
}

func TestNormalizePothole_Incomplete(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]any
		field  string
	}{
		{"missing latitude", map[string]any{"longitude": 56.78}, FieldLatitude},
		{"missing longitude", map[string]any{"latitude": 12.34}, FieldLongitude},
		{"zero latitude", map[string]any{"latitude": 0.0, "longitude": 56.78}, FieldLatitude},
		{"negative zero longitude", map[string]any{"latitude": 1.0, "longitude": math.Copysign(0, -1)}, FieldLongitude},
		{"integer zero", map[string]any{"latitude": int64(0), "longitude": 56.78}, FieldLatitude},
		{"null latitude", map[string]any{"latitude": nil, "longitude": 56.78}, FieldLatitude},
		{"empty string", map[string]any{"latitude": "", "longitude": 56.78}, FieldLatitude},
		{"false", map[string]any{"latitude": false, "longitude": 56.78}, FieldLatitude},
		{"empty array", map[string]any{"latitude": 1.0, "longitude": []any{}}, FieldLongitude},
		{"empty map", map[string]any{"latitude": map[string]any{}, "longitude": 1.0}, FieldLatitude},
		{"empty document", map[string]any{}, FieldLatitude},
		{"nil fields", nil, FieldLatitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizePothole(doc(tt.fields))
			require.ErrorIs(t, err, ErrIncomplete)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestNormalizePothole_NaNIsTruthy(t *testing.T) {
	rec, err := NormalizePothole(doc(map[string]any{
		"latitude":  math.NaN(),
		"longitude": 1.0,
	}))

	require.NoError(t, err)
	assert.True(t, math.IsNaN(rec.Latitude))
}

func TestNormalizeSize(t *testing.T) {
	tests := []struct {
		in       any
		expected string
	}{
		{" Large ", "large"},
		{"MEDIUM", "medium"},
		{"\tsmall\n", "small"},
		{"", ""},
		{true, "true"},
		{int64(3), "3"},
		{2.0, "2.0"},
		{0.5, "0.5"},
		{-0.0, "0.0"},
		{1e16, "1e+16"},
		{0.00001, "1e-05"},
		{math.Inf(1), "inf"},
		{[]any{"a", "b"}, "[a b]"},
	}

	for _, tt := range tests {
		rec, err := NormalizePothole(doc(map[string]any{
			"latitude":  1.0,
			"longitude": 1.0,
			"size":      tt.in,
		}))
		require.NoError(t, err)
		assert.Equal(t, tt.expected, rec.Size, "size %#v", tt.in)
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "-0.0", formatFloat(math.Copysign(0, -1)))
	assert.Equal(t, "1000000000000000.0", formatFloat(1e15))
	assert.Equal(t, "0.0001", formatFloat(0.0001))
	assert.Equal(t, "-inf", formatFloat(math.Inf(-1)))
	assert.Equal(t, "nan", formatFloat(math.NaN()))
}
