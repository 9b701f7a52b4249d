package astro

import (
	"math"
	"testing"
	"time"
)

func TestJDN(t *testing.T) {
	tests := []struct {
		y, m, d int
		want    int
	}{
		{2000, 1, 1, 2451545},
		{1986, 4, 6, 2446527},
		{2025, 12, 14, 2461024},
		{1900, 1, 1, 2415021},
	}
	for _, tt := range tests {
		if got := JDN(tt.y, tt.m, tt.d); got != tt.want {
			t.Errorf("JDN(%d-%d-%d) = %d, want %d", tt.y, tt.m, tt.d, got, tt.want)
		}
	}
}

func TestJulianDayRoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(1986, 4, 5, 23, 59, 0, 0, Beijing),
		time.Date(2025, 12, 14, 12, 0, 0, 0, Beijing),
		time.Date(1900, 3, 1, 6, 30, 0, 0, time.UTC),
	}
	for _, in := range times {
		out := JDToTime(JulianDay(in), in.Location())
		if d := out.Sub(in); d < -time.Second || d > time.Second {
			t.Errorf("round trip of %v drifted by %v (got %v)", in, d, out)
		}
	}
}

func TestJulianDayNoon(t *testing.T) {
	// JD 2451545.0 is 2000-01-01 12:00 UT by definition.
	jd := JulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(jd-2451545.0) > 1e-8 {
		t.Fatalf("JD(J2000) = %f, want 2451545.0", jd)
	}
}

func TestDeltaT(t *testing.T) {
	tests := []struct {
		year      float64
		want, tol float64
	}{
		{1900, -2.8, 2},
		{1950, 29.1, 2},
		{1986, 54.9, 2},
		{2000, 63.8, 1},
		{2020, 70.0, 3},
	}
	for _, tt := range tests {
		if got := DeltaT(tt.year); math.Abs(got-tt.want) > tt.tol {
			t.Errorf("DeltaT(%.0f) = %.1fs, want %.1f±%.0fs", tt.year, got, tt.want, tt.tol)
		}
	}
}

func TestApparentLongitudeAtCardinalPoints(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		// Published equinox/solstice instants (UT).
		{"vernal equinox 2000", time.Date(2000, 3, 20, 7, 35, 0, 0, time.UTC), 0},
		{"summer solstice 2000", time.Date(2000, 6, 21, 1, 48, 0, 0, time.UTC), 90},
		{"autumn equinox 1986", time.Date(1986, 9, 23, 7, 59, 0, 0, time.UTC), 180},
		{"winter solstice 2025", time.Date(2025, 12, 21, 15, 3, 0, 0, time.UTC), 270},
	}
	// Instants are published to the minute; 0.001° of longitude is about
	// 90 seconds of the sun's motion.
	for _, tt := range tests {
		got := ApparentLongitude(tt.at)
		if math.Abs(LongitudeDelta(got, tt.want)) > 0.001 {
			t.Errorf("%s: longitude %.4f°, want %.0f°±0.001°", tt.name, got, tt.want)
		}
	}
}

func TestApparentLongitudeMonotonic(t *testing.T) {
	// Unwrapped longitude must increase strictly across a full year.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := ApparentLongitude(start)
	for i := 1; i <= 365; i++ {
		cur := ApparentLongitude(start.AddDate(0, 0, i))
		if LongitudeDelta(cur, prev) <= 0 {
			t.Fatalf("longitude not increasing at day %d: %.4f after %.4f", i, cur, prev)
		}
		prev = cur
	}
}

func TestLongitudeDelta(t *testing.T) {
	tests := []struct {
		lon, target, want float64
	}{
		{10, 350, 20},
		{350, 10, -20},
		{180, 0, 180},
		{0, 0, 0},
		{314.9, 315, -0.1},
	}
	for _, tt := range tests {
		if got := LongitudeDelta(tt.lon, tt.target); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("LongitudeDelta(%v, %v) = %v, want %v", tt.lon, tt.target, got, tt.want)
		}
	}
}

func TestEquationOfTime(t *testing.T) {
	tests := []struct {
		name   string
		at     time.Time
		lo, hi float64
	}{
		{"early November peak", time.Date(2000, 11, 3, 12, 0, 0, 0, time.UTC), 15, 17},
		{"mid-February trough", time.Date(2000, 2, 12, 12, 0, 0, 0, time.UTC), -15, -13},
		{"early April", time.Date(1986, 4, 6, 0, 20, 0, 0, Beijing), -4, -1},
	}
	for _, tt := range tests {
		if got := EquationOfTime(tt.at); got < tt.lo || got > tt.hi {
			t.Errorf("%s: eot = %.2f min, want within [%.0f, %.0f]", tt.name, got, tt.lo, tt.hi)
		}
	}
}
