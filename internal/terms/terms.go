// Package terms locates the 24 solar terms: the instants at which the
// sun's apparent longitude crosses each 15° boundary. Month- and
// year-pillar cutover and luck-onset distances all hang off these
// instants.
package terms

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"bazi/internal/astro"
)

// Term indexes the 24 solar terms from 立春 (0, longitude 315°).
// Even indices are the 12 sectional terms (节) that open sexagenary
// months; odd indices are the mid-month terms (中气).
type Term int

var termNames = [24]string{
	"立春", "雨水", "惊蛰", "春分", "清明", "谷雨",
	"立夏", "小满", "芒种", "夏至", "小暑", "大暑",
	"立秋", "处暑", "白露", "秋分", "寒露", "霜降",
	"立冬", "小雪", "大雪", "冬至", "小寒", "大寒",
}

func (t Term) String() string { return termNames[((t%24)+24)%24] }

// TargetLongitude is the apparent solar longitude the term marks.
func (t Term) TargetLongitude() float64 {
	return float64((315 + 15*int(((t%24)+24)%24)) % 360)
}

// Sectional reports whether the term opens a sexagenary month.
func (t Term) Sectional() bool { return int(((t%24)+24)%24)%2 == 0 }

// MonthOrdinal counts sectional months from 立春: 0 for the 寅 month
// through 11 for the 丑 month. Only meaningful for sectional terms.
func (t Term) MonthOrdinal() int { return int(((t%24)+24)%24) / 2 }

// TermStartOfSpring is the year-pillar cutover term.
const TermStartOfSpring Term = 0

var (
	// ErrNoConvergence means the boundary refinement exhausted its
	// iteration budget; an internal defect, never silently approximated.
	ErrNoConvergence = errors.New("solar term refinement did not converge")
)

const (
	maxNewtonIters = 30
	// Converge to 1e-6 degrees of longitude, under a tenth of a second
	// of time. Quantization to whole seconds happens only on return.
	convergenceDeg = 1e-6
	// Mean interval between consecutive terms in days.
	meanTermSpacing = 365.2422 / 24
)

// Occurrence is one computed term instant.
type Occurrence struct {
	Term Term
	Year int // the solar cycle (beginning at 立春 of this civil year)
	At   time.Time
}

// Instant computes the instant of the i-th term of the solar cycle that
// begins at 立春 of the given civil year. Terms 22 and 23 (小寒, 大寒)
// land in January of the following civil year.
func Instant(term Term, year int) (time.Time, error) {
	if year < astro.MinYear-1 || year > astro.MaxYear+1 {
		return time.Time{}, fmt.Errorf("%w: year %d", astro.ErrOutOfRange, year)
	}
	i := int(((term % 24) + 24) % 24)
	target := Term(i).TargetLongitude()

	// Coarse seed: 立春 falls near February 4, successive terms a mean
	// spacing apart. Newton steps on the longitude model refine it. The
	// iteration stays on the continuous Julian day; converting to a
	// whole-second time.Time inside the loop would plateau the residual
	// above the tolerance.
	jd := float64(astro.JDN(year, 2, 4)) - 0.5 + meanTermSpacing*float64(i)

	for iter := 0; iter < maxNewtonIters; iter++ {
		delta := astro.LongitudeDelta(astro.ApparentLongitudeJD(jd), target)
		if delta < convergenceDeg && delta > -convergenceDeg {
			return astro.JDToTime(jd, astro.Beijing), nil
		}
		jd -= delta / astro.MeanMotion
	}
	return time.Time{}, fmt.Errorf("%w: term %v of %d", ErrNoConvergence, Term(i), year)
}

// Bounding returns the latest term occurrence at or before t and the
// earliest strictly after it. An instant exactly on a boundary belongs to
// the interval the boundary opens.
func Bounding(t time.Time) (prev, next Occurrence, err error) {
	return bound(t, func(Term) bool { return true })
}

// BoundingSectional is Bounding restricted to the 12 sectional terms.
func BoundingSectional(t time.Time) (prev, next Occurrence, err error) {
	return bound(t, Term.Sectional)
}

func bound(t time.Time, keep func(Term) bool) (prev, next Occurrence, err error) {
	occs, err := occurrencesAround(t, keep)
	if err != nil {
		return Occurrence{}, Occurrence{}, err
	}
	// First occurrence strictly after t; the one before it governs t.
	i := sort.Search(len(occs), func(i int) bool { return occs[i].At.After(t) })
	if i == 0 || i == len(occs) {
		return Occurrence{}, Occurrence{}, fmt.Errorf("%w: %v outside computable window", astro.ErrOutOfRange, t)
	}
	return occs[i-1], occs[i], nil
}

func occurrencesAround(t time.Time, keep func(Term) bool) ([]Occurrence, error) {
	year := t.Year()
	occs := make([]Occurrence, 0, 72)
	for y := year - 1; y <= year+1; y++ {
		if y < astro.MinYear-1 || y > astro.MaxYear+1 {
			continue
		}
		for i := Term(0); i < 24; i++ {
			if !keep(i) {
				continue
			}
			at, err := Instant(i, y)
			if err != nil {
				return nil, err
			}
			occs = append(occs, Occurrence{Term: i, Year: y, At: at})
		}
	}
	sort.Slice(occs, func(a, b int) bool { return occs[a].At.Before(occs[b].At) })
	return occs, nil
}

// StartOfSpring returns the 立春 instant opening the given year's cycle.
func StartOfSpring(year int) (time.Time, error) {
	return Instant(TermStartOfSpring, year)
}

// OfYear lists all 24 occurrences of the cycle beginning at 立春 of year.
func OfYear(year int) ([]Occurrence, error) {
	occs := make([]Occurrence, 0, 24)
	for i := Term(0); i < 24; i++ {
		at, err := Instant(i, year)
		if err != nil {
			return nil, err
		}
		occs = append(occs, Occurrence{Term: i, Year: year, At: at})
	}
	return occs, nil
}
