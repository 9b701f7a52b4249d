package terms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazi/internal/astro"
)

func cst(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, astro.Beijing)
}

func TestTermProperties(t *testing.T) {
	assert.Equal(t, "立春", Term(0).String())
	assert.Equal(t, "冬至", Term(21).String())
	assert.Equal(t, 315.0, Term(0).TargetLongitude())
	assert.Equal(t, 15.0, Term(4).TargetLongitude())
	assert.Equal(t, 270.0, Term(21).TargetLongitude())

	assert.True(t, Term(0).Sectional())
	assert.False(t, Term(21).Sectional(), "冬至 is a mid-month term")
	assert.Equal(t, 0, Term(0).MonthOrdinal())
	assert.Equal(t, 10, Term(20).MonthOrdinal(), "大雪 opens the 子 month")
}

func TestInstantMatchesPublishedTimes(t *testing.T) {
	tests := []struct {
		term Term
		year int
		want time.Time
	}{
		{TermStartOfSpring, 2025, cst(2025, time.February, 3, 22, 10)},
		{Term(6), 1986, cst(1986, time.May, 6, 3, 30)},       // 立夏
		{Term(21), 2025, cst(2025, time.December, 21, 23, 3)}, // 冬至
	}
	for _, tt := range tests {
		got, err := Instant(tt.term, tt.year)
		require.NoError(t, err)
		// Almanac values above are truncated to the minute.
		if d := got.Sub(tt.want); d < -time.Minute || d > time.Minute {
			t.Errorf("%v %d: got %v, want %v ± 1m", tt.term, tt.year, got, tt.want)
		}
	}
}

func TestInstantConvergesAcrossSupportedRange(t *testing.T) {
	for year := astro.MinYear; year <= astro.MaxYear; year += 25 {
		for i := Term(0); i < 24; i++ {
			if _, err := Instant(i, year); err != nil {
				t.Fatalf("term %v of %d: %v", i, year, err)
			}
		}
	}
}

func TestInstantDeterministic(t *testing.T) {
	a, err := Instant(Term(4), 1986)
	require.NoError(t, err)
	b, err := Instant(Term(4), 1986)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestInstantRejectsOutOfRange(t *testing.T) {
	_, err := Instant(Term(0), 1800)
	assert.ErrorIs(t, err, astro.ErrOutOfRange)
	_, err = Instant(Term(0), 2150)
	assert.ErrorIs(t, err, astro.ErrOutOfRange)
}

func TestOfYearOrderingAndSpacing(t *testing.T) {
	for _, year := range []int{1900, 1950, 1986, 2025, 2099} {
		occs, err := OfYear(year)
		require.NoError(t, err)
		require.Len(t, occs, 24)
		for i := 1; i < len(occs); i++ {
			gap := occs[i].At.Sub(occs[i-1].At)
			if gap < 13*24*time.Hour || gap > 17*24*time.Hour {
				t.Errorf("year %d: gap %v between %v and %v out of bounds",
					year, gap, occs[i-1].Term, occs[i].Term)
			}
		}
	}
}

func TestTermZeroSpansCivilYearBoundary(t *testing.T) {
	// The last two terms of a cycle fall in the following civil January.
	occs, err := OfYear(2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, occs[0].At.Year())
	assert.Equal(t, 2025, occs[22].At.Year(), "小寒 lands in the next civil year")
	assert.Equal(t, 2025, occs[23].At.Year(), "大寒 lands in the next civil year")
}

func TestBoundingConvention(t *testing.T) {
	qingming, err := Instant(Term(4), 1986)
	require.NoError(t, err)

	// Exactly on the boundary: the boundary term governs.
	prev, next, err := Bounding(qingming)
	require.NoError(t, err)
	assert.Equal(t, Term(4), prev.Term)
	assert.Equal(t, Term(5), next.Term)
	assert.True(t, prev.At.Equal(qingming))

	// One second earlier: still inside the previous interval.
	prev, next, err = Bounding(qingming.Add(-time.Second))
	require.NoError(t, err)
	assert.Equal(t, Term(3), prev.Term, "春分 governs just before 清明")
	assert.Equal(t, Term(4), next.Term)
}

func TestBoundingSectional(t *testing.T) {
	birth := cst(1986, time.April, 6, 0, 20)
	prev, next, err := BoundingSectional(birth)
	require.NoError(t, err)
	assert.Equal(t, Term(4), prev.Term, "清明 governs early April")
	assert.Equal(t, Term(6), next.Term, "立夏 is the next sectional term")
	assert.Equal(t, 1986, prev.Year)

	// A mid-December instant is governed by 大雪 of the same cycle.
	prev, next, err = BoundingSectional(cst(2025, time.December, 14, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, Term(20), prev.Term)
	assert.Equal(t, Term(22), next.Term, "小寒 of the 2025 cycle follows")
	assert.Equal(t, 2025, prev.Year)
}

func TestBoundingJanuaryUsesPreviousCycle(t *testing.T) {
	prev, _, err := BoundingSectional(cst(2025, time.January, 10, 12, 0))
	require.NoError(t, err)
	assert.Equal(t, Term(22), prev.Term, "小寒 governs early January")
	assert.Equal(t, 2024, prev.Year, "it belongs to the previous cycle")
}
