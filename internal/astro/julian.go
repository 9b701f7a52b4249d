// Package astro provides the minimal solar astronomy the pillar engine
// needs: Julian day conversion, a UT->TT clock correction, the sun's
// apparent ecliptic longitude, and the equation of time. Accuracy targets
// boundary resolution to well under a minute over 1900-2100; this is not
// an ephemeris library.
package astro

import (
	"errors"
	"time"
)

// Beijing is the fixed UTC+8 civil reference every input and output
// instant is expressed in.
var Beijing = time.FixedZone("UTC+8", 8*3600)

// ErrOutOfRange marks instants outside the model's validity window.
var ErrOutOfRange = errors.New("outside supported year range")

// MinYear and MaxYear bound the supported input range. Outside it the
// ΔT polynomial and the solar series drift beyond the accuracy budget.
const (
	MinYear = 1900
	MaxYear = 2100
)

// JDN returns the Julian Day Number of a Gregorian calendar date
// (the day starting at the preceding midnight, numbered at noon).
func JDN(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// JulianDay returns the Julian Day in Universal Time for an instant.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	jdn := JDN(u.Year(), int(u.Month()), u.Day())
	frac := (float64(u.Hour())-12)/24 +
		float64(u.Minute())/1440 +
		(float64(u.Second())+float64(u.Nanosecond())/1e9)/86400
	return float64(jdn) + frac
}

// JDToTime converts a Julian Day back to an instant in the given location,
// truncated to whole seconds.
func JDToTime(jd float64, loc *time.Location) time.Time {
	z := int(jd + 0.5)
	f := jd + 0.5 - float64(z)
	year, month, day := jdnToGregorian(z)
	secs := int(f*86400 + 0.5)
	return time.Date(year, month, day, 0, 0, secs, 0, time.UTC).In(loc)
}

func jdnToGregorian(jdn int) (year int, month time.Month, day int) {
	a := jdn + 32044
	b := (4*a + 3) / 146097
	c := a - (146097*b)/4
	d := (4*c + 3) / 1461
	e := c - (1461*d)/4
	m := (5*e + 2) / 153

	day = e - (153*m+2)/5 + 1
	month = time.Month(m + 3 - 12*(m/10))
	year = 100*b + d - 4800 + m/10
	return
}
