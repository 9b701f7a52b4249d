package luck

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazi/internal/astro"
	"bazi/internal/chart"
	"bazi/internal/ganzhi"
)

// The reference birth is 1986-04-05 23:59 Beijing, the true-solar
// corrected instant of the 1986 fixture chart 丙寅 壬辰 己卯 丙子.
func referenceBirth(t *testing.T) (time.Time, chart.FourPillars) {
	t.Helper()
	birth := time.Date(1986, time.April, 5, 23, 59, 0, 0, astro.Beijing)
	fp, err := chart.Resolve(birth)
	require.NoError(t, err)
	require.Equal(t, "丙寅 壬辰 己卯 丙子", fp.String())
	return birth, fp
}

func TestDirectionOf(t *testing.T) {
	assert.Equal(t, Forward, DirectionOf(ganzhi.StemBing, Male), "阳年男命顺行")
	assert.Equal(t, Reverse, DirectionOf(ganzhi.StemBing, Female))
	assert.Equal(t, Reverse, DirectionOf(ganzhi.StemYi, Male))
	assert.Equal(t, Forward, DirectionOf(ganzhi.StemYi, Female), "阴年女命顺行")

	for s := ganzhi.StemJia; s <= ganzhi.StemGui; s++ {
		assert.NotEqual(t, DirectionOf(s, Male), DirectionOf(s, Female), "stem %v", s)
	}
}

func TestParseGender(t *testing.T) {
	for _, s := range []string{"male", "m", "男"} {
		g, err := ParseGender(s)
		require.NoError(t, err)
		assert.Equal(t, Male, g)
	}
	g, err := ParseGender("female")
	require.NoError(t, err)
	assert.Equal(t, Female, g)

	_, err = ParseGender("x")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScheduleForwardExact(t *testing.T) {
	birth, fp := referenceBirth(t)
	cycle, err := Schedule(birth, fp, Male, SectExact, 9)
	require.NoError(t, err)

	assert.Equal(t, Forward, cycle.Direction)
	assert.Equal(t, Offset{Years: 10, Months: 0, Days: 17, Hours: 15}, cycle.Offset,
		"ten years and seventeen-odd days to 立夏 1986-05-06 03:30")
	wantOnset := time.Date(1996, time.April, 23, 14, 59, 0, 0, astro.Beijing)
	assert.True(t, cycle.Onset.Equal(wantOnset), "onset %v, want %v", cycle.Onset, wantOnset)

	require.Len(t, cycle.Pillars, 9)
	first := cycle.Pillars[0]
	assert.Equal(t, "癸巳", first.Pillar.String(), "one step past the 壬辰 month")
	assert.Equal(t, 1996, first.StartYear)
	assert.Equal(t, 2005, first.EndYear)
	assert.Equal(t, 11, first.StartAge)
	assert.Equal(t, 20, first.EndAge)

	assert.Equal(t, "甲午", cycle.Pillars[1].Pillar.String())
	assert.Equal(t, 2006, cycle.Pillars[1].StartYear)
	for i := 1; i < len(cycle.Pillars); i++ {
		assert.Equal(t, cycle.Pillars[i-1].Pillar.Step(1), cycle.Pillars[i].Pillar)
	}
}

func TestScheduleReverse(t *testing.T) {
	birth, fp := referenceBirth(t)
	cycle, err := Schedule(birth, fp, Female, SectExact, 3)
	require.NoError(t, err)

	assert.Equal(t, Reverse, cycle.Direction)
	assert.Equal(t, 0, cycle.Offset.Years, "born hours after 清明")
	assert.Equal(t, "辛卯", cycle.Pillars[0].Pillar.String(), "one step before the 壬辰 month")
	assert.Equal(t, "庚寅", cycle.Pillars[1].Pillar.String())
}

func TestScheduleTimeBranchSect(t *testing.T) {
	birth, fp := referenceBirth(t)
	cycle, err := Schedule(birth, fp, Male, SectTimeBranch, 1)
	require.NoError(t, err)

	// Late 子 birth to the 寅-hour 立夏: three whole branches and thirty
	// civil days, so ten years, one month, no days or hours.
	assert.Equal(t, Offset{Years: 10, Months: 1, Days: 0, Hours: 0}, cycle.Offset)
}

func TestScheduleRejectsBadInput(t *testing.T) {
	birth, fp := referenceBirth(t)
	_, err := Schedule(birth, fp, Male, SectExact, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Schedule(birth, fp, Male, Sect(3), 9)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnnualPillars(t *testing.T) {
	got := AnnualPillars(1986, 1996, 3)
	want := []Annual{
		{Year: 1996, Pillar: ganzhi.PillarFromIndex(12), Age: 11}, // 丙子
		{Year: 1997, Pillar: ganzhi.PillarFromIndex(13), Age: 12}, // 丁丑
		{Year: 1998, Pillar: ganzhi.PillarFromIndex(14), Age: 13}, // 戊寅
	}
	samePillar := cmp.Comparer(func(a, b ganzhi.Pillar) bool { return a.Index() == b.Index() })
	if diff := cmp.Diff(want, got, samePillar); diff != "" {
		t.Errorf("annual pillars mismatch (-want +got):\n%s", diff)
	}
}

func TestAnnualPillarsRunForwardEvenWhenLuckReverses(t *testing.T) {
	birth, fp := referenceBirth(t)
	cycle, err := Schedule(birth, fp, Female, SectExact, 1)
	require.NoError(t, err)
	require.Equal(t, Reverse, cycle.Direction)

	years := AnnualPillars(1986, 1990, 2)
	assert.Equal(t, years[0].Pillar.Step(1), years[1].Pillar)
}
