// Package solartime corrects civil clock time to true (apparent) solar
// time: four minutes per degree of longitude away from the reference
// meridian, plus the equation of time for that day.
package solartime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bazi/internal/astro"
)

// ReferenceMeridian is the standard meridian of the UTC+8 civil reference,
// 120°E.
const ReferenceMeridian = 120.0

// ErrInvalidInput marks rejected coordinates.
var ErrInvalidInput = errors.New("invalid input")

// Correct shifts a civil instant to true solar time for the given longitude
// (signed degrees, east positive), rounding the result to the whole minute.
func Correct(civil time.Time, lonDeg float64) (time.Time, error) {
	if lonDeg < -180 || lonDeg > 180 {
		return time.Time{}, fmt.Errorf("%w: longitude %.6f out of [-180, 180]", ErrInvalidInput, lonDeg)
	}
	minutes := 4*(lonDeg-ReferenceMeridian) + astro.EquationOfTime(civil)
	corrected := civil.Add(time.Duration(minutes * float64(time.Minute)))
	return roundToMinute(corrected), nil
}

func roundToMinute(t time.Time) time.Time {
	if t.Second() >= 30 {
		t = t.Add(time.Minute)
	}
	return t.Truncate(time.Minute)
}

// Coordinate kinds for ParseDegrees.
type Kind int

const (
	Longitude Kind = iota
	Latitude
)

var degreeNumbers = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ParseDegrees reads a coordinate given either as a signed decimal
// ("115.45", "-73.5") or in hemisphere DMS form (`E115°26'58"`,
// `S36°29'25"`). West and south are negative.
func ParseDegrees(value string, kind Kind) (float64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return 0, fmt.Errorf("%w: empty coordinate", ErrInvalidInput)
	}

	sign := 1.0
	if strings.ContainsAny(s, "WS") {
		sign = -1.0
	}

	nums := degreeNumbers.FindAllString(s, -1)
	if len(nums) == 0 {
		return 0, fmt.Errorf("%w: unparseable coordinate %q", ErrInvalidInput, value)
	}

	parts := make([]float64, 0, 3)
	for _, n := range nums[:min(len(nums), 3)] {
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: unparseable coordinate %q", ErrInvalidInput, value)
		}
		parts = append(parts, f)
	}
	if parts[0] < 0 {
		sign = -1.0
		parts[0] = -parts[0]
	}
	deg := parts[0]
	if len(parts) > 1 {
		deg += parts[1] / 60
	}
	if len(parts) > 2 {
		deg += parts[2] / 3600
	}
	deg *= sign

	switch kind {
	case Longitude:
		if deg < -180 || deg > 180 {
			return 0, fmt.Errorf("%w: longitude %.6f out of [-180, 180]", ErrInvalidInput, deg)
		}
	case Latitude:
		if deg < -90 || deg > 90 {
			return 0, fmt.Errorf("%w: latitude %.6f out of [-90, 90]", ErrInvalidInput, deg)
		}
	}
	return deg, nil
}
