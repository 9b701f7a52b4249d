package solartime

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazi/internal/astro"
)

func TestCorrect(t *testing.T) {
	// 1986-04-06 00:20 at 115.449444°E corrects to the previous civil day.
	civil := time.Date(1986, 4, 6, 0, 20, 0, 0, astro.Beijing)
	got, err := Correct(civil, 115.449444)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1986, 4, 5, 23, 59, 0, 0, astro.Beijing), got)
}

func TestCorrectAtReferenceMeridian(t *testing.T) {
	// On the reference meridian only the equation of time remains,
	// so the correction stays within ±17 minutes.
	civil := time.Date(2025, 11, 3, 12, 0, 0, 0, astro.Beijing)
	got, err := Correct(civil, ReferenceMeridian)
	require.NoError(t, err)
	if d := got.Sub(civil); d < -17*time.Minute || d > 17*time.Minute {
		t.Fatalf("correction %v exceeds equation-of-time bounds", d)
	}
	assert.Zero(t, got.Second(), "result must be rounded to the minute")
}

func TestCorrectRejectsBadLongitude(t *testing.T) {
	_, err := Correct(time.Now(), 181)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseDegrees(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
		want float64
	}{
		{"115.449444", Longitude, 115.449444},
		{`E115°26'58"`, Longitude, 115.449444},
		{`W73°30'`, Longitude, -73.5},
		{"-73.5", Longitude, -73.5},
		{`N36°29'25"`, Latitude, 36.490278},
		{`S12°`, Latitude, -12},
	}
	for _, tt := range tests {
		got, err := ParseDegrees(tt.in, tt.kind)
		require.NoError(t, err, "input %q", tt.in)
		if math.Abs(got-tt.want) > 1e-4 {
			t.Errorf("ParseDegrees(%q) = %.6f, want %.6f", tt.in, got, tt.want)
		}
	}
}

func TestParseDegreesErrors(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{"", Longitude},
		{"east-ish", Longitude},
		{"190", Longitude},
		{"N95", Latitude},
	}
	for _, tt := range tests {
		_, err := ParseDegrees(tt.in, tt.kind)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", tt.in)
	}
}
