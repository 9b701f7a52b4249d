// Package luck schedules the decade luck pillars (大运) and annual
// pillars (流年) of a chart. The luck sequence walks the sexagenary
// cycle from the month pillar, forward or backward by gender and year
// polarity; its onset converts the birth-to-term span at the
// traditional three-days-per-year rate.
package luck

import (
	"errors"
	"fmt"
	"time"

	"bazi/internal/astro"
	"bazi/internal/chart"
	"bazi/internal/ganzhi"
	"bazi/internal/terms"
)

// ErrInvalidInput marks rejected scheduling parameters.
var ErrInvalidInput = errors.New("invalid input")

// Gender of the chart's subject, which fixes the walking direction
// together with the year stem's polarity.
type Gender int

const (
	Male Gender = iota
	Female
)

var genderNames = [2]string{"男", "女"}

func (g Gender) String() string { return genderNames[g] }

// ParseGender accepts the common spellings of both genders.
func ParseGender(s string) (Gender, error) {
	switch s {
	case "male", "m", "1", "男":
		return Male, nil
	case "female", "f", "0", "女":
		return Female, nil
	}
	return 0, fmt.Errorf("%w: gender %q", ErrInvalidInput, s)
}

// Sect selects the onset computation.
type Sect int

const (
	// SectTimeBranch counts whole hour branches and civil days between
	// birth and the bounding term.
	SectTimeBranch Sect = 1
	// SectExact converts the exact minute span, three days per year.
	SectExact Sect = 2
)

// Direction of the walk around the sexagenary cycle.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

var directionNames = [2]string{"顺行", "逆行"}

func (d Direction) String() string { return directionNames[d] }

// DirectionOf applies the classical rule: yang year stems send males
// forward, yin year stems send females forward; the other pairings
// walk in reverse.
func DirectionOf(yearStem ganzhi.Stem, g Gender) Direction {
	if yearStem.Yang() == (g == Male) {
		return Forward
	}
	return Reverse
}

// Offset is the span from birth to the luck onset in calendar units.
type Offset struct {
	Years  int
	Months int
	Days   int
	Hours  int
}

func (o Offset) String() string {
	return fmt.Sprintf("%d年%d个月%d天%d小时", o.Years, o.Months, o.Days, o.Hours)
}

// Pillar is one decade of the luck cycle.
type Pillar struct {
	Pillar    ganzhi.Pillar
	Ordinal   int // 0-based position in the walk
	StartYear int
	EndYear   int
	StartAge  int // nominal age (虚岁) when the decade opens
	EndAge    int
}

// Cycle is a fully scheduled luck sequence.
type Cycle struct {
	Direction Direction
	Offset    Offset
	Onset     time.Time
	Pillars   []Pillar
}

// Schedule computes the luck cycle of a chart. birth is the instant the
// chart was resolved from, corrected to true solar time if the caller
// applies that correction; count is the number of decades wanted.
func Schedule(birth time.Time, fp chart.FourPillars, g Gender, sect Sect, count int) (Cycle, error) {
	if count <= 0 {
		return Cycle{}, fmt.Errorf("%w: pillar count %d", ErrInvalidInput, count)
	}
	if sect != SectTimeBranch && sect != SectExact {
		return Cycle{}, fmt.Errorf("%w: sect %d", ErrInvalidInput, sect)
	}

	birth = birth.In(astro.Beijing)
	dir := DirectionOf(fp.Year.Stem(), g)

	prev, next, err := terms.BoundingSectional(birth)
	if err != nil {
		return Cycle{}, err
	}

	var off Offset
	switch sect {
	case SectExact:
		off = exactOffset(birth, prev, next, dir)
	case SectTimeBranch:
		off = timeBranchOffset(birth, prev, next, dir)
	}

	onset := birth.AddDate(off.Years, off.Months, off.Days).
		Add(time.Duration(off.Hours) * time.Hour)

	step := 1
	if dir == Reverse {
		step = -1
	}
	startYear := onset.Year()
	pillars := make([]Pillar, count)
	for i := range pillars {
		sy := startYear + 10*i
		pillars[i] = Pillar{
			Pillar:    fp.Month.Step(step * (i + 1)),
			Ordinal:   i,
			StartYear: sy,
			EndYear:   sy + 9,
			StartAge:  sy - birth.Year() + 1,
			EndAge:    sy - birth.Year() + 10,
		}
	}

	return Cycle{Direction: dir, Offset: off, Onset: onset, Pillars: pillars}, nil
}

// exactOffset converts the minute span between birth and the bounding
// sectional term at three days per luck year: 4320 minutes to the year,
// 360 to the month, 12 to the day, half a minute to the hour.
func exactOffset(birth time.Time, prev, next terms.Occurrence, dir Direction) Offset {
	var span time.Duration
	if dir == Forward {
		span = next.At.Sub(birth)
	} else {
		span = birth.Sub(prev.At)
	}
	rem := span.Minutes()

	var off Offset
	off.Years = int(rem / 4320)
	rem -= float64(off.Years) * 4320
	off.Months = int(rem / 360)
	rem -= float64(off.Months) * 360
	off.Days = int(rem / 12)
	rem -= float64(off.Days) * 12
	off.Hours = int(rem * 2)
	return off
}

// timeBranchOffset counts whole hour branches and civil days between
// birth and the bounding term, ten luck days per branch and four luck
// months per civil day.
func timeBranchOffset(birth time.Time, prev, next terms.Occurrence, dir Direction) Offset {
	from, to := birth, next.At
	if dir == Reverse {
		from, to = prev.At, birth
	}

	hourDiff := hourBranchIndex(to) - hourBranchIndex(from)
	dayDiff := civilDayNumber(to) - civilDayNumber(from)
	if hourDiff < 0 {
		hourDiff += 12
		dayDiff--
	}

	monthDiff := hourDiff * 10 / 30
	months := dayDiff*4 + monthDiff

	var off Offset
	off.Days = hourDiff*10 - monthDiff*30
	off.Years = months / 12
	off.Months = months % 12
	return off
}

// hourBranchIndex maps a clock hour to its branch index, keeping the
// late 子 hour (23:00 onward) at index 11 rather than wrapping to 0.
func hourBranchIndex(t time.Time) int {
	if t.Hour() == 23 {
		return 11
	}
	return (t.Hour() + 1) / 2
}

func civilDayNumber(t time.Time) int {
	return astro.JDN(t.Year(), int(t.Month()), t.Day())
}

// Annual is one calendar year's pillar (流年).
type Annual struct {
	Year   int
	Pillar ganzhi.Pillar
	Age    int // nominal age (虚岁) in that year
}

// AnnualPillars lists the year pillars from fromYear on. Annual pillars
// always run forward regardless of the luck direction; ages are nominal,
// counting the birth year as one.
func AnnualPillars(birthYear, fromYear, count int) []Annual {
	out := make([]Annual, count)
	for i := range out {
		y := fromYear + i
		out[i] = Annual{
			Year:   y,
			Pillar: chart.YearPillar(y),
			Age:    y - birthYear + 1,
		}
	}
	return out
}
