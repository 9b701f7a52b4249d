// Package chart resolves a civil instant to the four sexagenary pillars.
// Day and hour pillars are continuous cyclic counts from a fixed epoch;
// month and year pillars cut over at solar-term boundaries.
package chart

import (
	"errors"
	"fmt"
	"time"

	"bazi/internal/astro"
	"bazi/internal/ganzhi"
	"bazi/internal/terms"
)

// ErrInvalidInput marks rejected date/time components.
var ErrInvalidInput = errors.New("invalid input")

// dayEpochOffset aligns the Julian Day Number with the sexagenary day
// cycle: (JDN + 49) mod 60 indexes the day pillar. Anchored on known
// charts (e.g. 1986-04-06 = 庚辰, index 16).
const dayEpochOffset = 49

// FourPillars is a complete chart: one pillar each for year, month, day
// and hour. Immutable once resolved.
type FourPillars struct {
	Year  ganzhi.Pillar
	Month ganzhi.Pillar
	Day   ganzhi.Pillar
	Hour  ganzhi.Pillar
}

// All returns the pillars in year/month/day/hour order.
func (f FourPillars) All() [4]ganzhi.Pillar {
	return [4]ganzhi.Pillar{f.Year, f.Month, f.Day, f.Hour}
}

// DayMaster is the day stem every derived classification measures against.
func (f FourPillars) DayMaster() ganzhi.Stem { return f.Day.Stem() }

func (f FourPillars) String() string {
	return fmt.Sprintf("%v %v %v %v", f.Year, f.Month, f.Day, f.Hour)
}

// CivilTime validates calendar components and builds an instant in the
// fixed UTC+8 civil reference.
func CivilTime(year, month, day, hour, minute, second int) (time.Time, error) {
	if year < astro.MinYear || year > astro.MaxYear {
		return time.Time{}, fmt.Errorf("%w: year %d outside [%d, %d]", astro.ErrOutOfRange, year, astro.MinYear, astro.MaxYear)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month %d", ErrInvalidInput, month)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return time.Time{}, fmt.Errorf("%w: time %02d:%02d:%02d", ErrInvalidInput, hour, minute, second)
	}
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, astro.Beijing)
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("%w: day %d does not exist in %d-%02d", ErrInvalidInput, day, year, month)
	}
	return t, nil
}

// Resolve maps an instant to its four pillars. The caller decides whether
// the instant is raw civil time or has already been corrected to true
// solar time; resolution itself applies no correction.
func Resolve(t time.Time) (FourPillars, error) {
	t = t.In(astro.Beijing)
	if y := t.Year(); y < astro.MinYear || y > astro.MaxYear {
		return FourPillars{}, fmt.Errorf("%w: year %d outside [%d, %d]", astro.ErrOutOfRange, y, astro.MinYear, astro.MaxYear)
	}

	day := dayPillar(t)
	hour := hourPillar(t)

	prevJie, _, err := terms.BoundingSectional(t)
	if err != nil {
		return FourPillars{}, err
	}
	year := YearPillar(prevJie.Year)
	month, err := monthPillar(prevJie)
	if err != nil {
		return FourPillars{}, err
	}

	return FourPillars{Year: year, Month: month, Day: day, Hour: hour}, nil
}

// YearPillar returns the pillar of a sexagenary year, where the year is
// taken to begin at its 立春 instant.
func YearPillar(year int) ganzhi.Pillar {
	return ganzhi.PillarFromIndex(year - 4)
}

func dayPillar(t time.Time) ganzhi.Pillar {
	// Day boundary is civil midnight; the late 子 hour does not shift it.
	jdn := astro.JDN(t.Year(), int(t.Month()), t.Day())
	return ganzhi.PillarFromIndex(jdn + dayEpochOffset)
}

func hourPillar(t time.Time) ganzhi.Pillar {
	branch := ganzhi.Branch((t.Hour() + 1) / 2 % 12)
	// From 23:00 the 子 hour has begun and takes the next day's stem,
	// while the day pillar itself still belongs to the current date.
	anchor := t
	if t.Hour() == 23 {
		anchor = t.AddDate(0, 0, 1)
	}
	stem := ganzhi.HourStem(dayPillar(anchor).Stem(), branch)
	p, err := ganzhi.PillarOf(stem, branch)
	if err != nil {
		// The five-rats table preserves parity; unreachable.
		panic(err)
	}
	return p
}

func monthPillar(jie terms.Occurrence) (ganzhi.Pillar, error) {
	ordinal := jie.Term.MonthOrdinal()
	branch := ganzhi.Branch((2 + ordinal) % 12)
	stem := ganzhi.MonthStem(YearPillar(jie.Year).Stem(), ordinal)
	p, err := ganzhi.PillarOf(stem, branch)
	if err != nil {
		return ganzhi.Pillar{}, fmt.Errorf("month pillar for %v of %d: %w", jie.Term, jie.Year, err)
	}
	return p, nil
}
