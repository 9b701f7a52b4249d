package batch

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"bazi/internal/chart"
	"bazi/internal/luck"
)

func TestLoadQueries(t *testing.T) {
	dir := t.TempDir()

	wrapped := filepath.Join(dir, "wrapped.yaml")
	require.NoError(t, os.WriteFile(wrapped, []byte(`
queries:
  - name: winter
    year: 2025
    month: 12
    day: 14
    hour: 12
  - name: spring
    year: 1986
    month: 4
    day: 6
    hour: 0
    minute: 20
`), 0644))

	qs, err := LoadQueries(wrapped)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "winter", qs[0].Name)
	assert.Equal(t, 20, qs[1].Minute)

	bare := filepath.Join(dir, "bare.yaml")
	require.NoError(t, os.WriteFile(bare, []byte(`
- year: 2025
  month: 12
  day: 14
  hour: 12
`), 0644))

	qs, err = LoadQueries(bare)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, 2025, qs[0].Year)

	_, err = LoadQueries(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestRunPreservesOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	queries := []Query{
		{Name: "winter", Year: 2025, Month: 12, Day: 14, Hour: 12},
		{Name: "spring", Year: 1986, Month: 4, Day: 6, Minute: 20},
	}

	results, err := Run(context.Background(), queries, Options{Concurrency: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "乙巳 戊子 丁巳 丙午", results[0].Chart.String())
	assert.Equal(t, "丙寅 壬辰 庚辰 丙子", results[1].Chart.String())
}

func TestRunFailsFast(t *testing.T) {
	defer goleak.VerifyNone(t)

	queries := []Query{
		{Name: "ok", Year: 2025, Month: 12, Day: 14, Hour: 12},
		{Name: "bad", Year: 2025, Month: 13, Day: 1},
	}

	_, err := Run(context.Background(), queries, Options{Concurrency: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, chart.ErrInvalidInput)
	assert.Contains(t, err.Error(), "bad")
}

func TestEvaluateWithCorrectionAndLuck(t *testing.T) {
	q := Query{
		Name:      "reference",
		Year:      1986,
		Month:     4,
		Day:       6,
		Minute:    20,
		TrueSolar: true,
		Longitude: "115.449444",
		Scope:     "all",
		Gender:    "male",
	}

	res, err := Evaluate(q, 9)
	require.NoError(t, err)
	assert.Equal(t, "丙寅 壬辰 己卯 丙子", res.Chart.String(), "corrected to the late 子 hour of the previous day")
	require.NotNil(t, res.Luck)
	assert.Equal(t, luck.Forward, res.Luck.Direction)
	assert.Equal(t, "癸巳", res.Luck.Pillars[0].Pillar.String())
	require.Len(t, res.Luck.Pillars, 9)
}

func TestEvaluateScopeDefaultsToLuckOnly(t *testing.T) {
	q := Query{
		Year:      1986,
		Month:     4,
		Day:       6,
		Minute:    20,
		TrueSolar: true,
		Longitude: "115.449444",
		Gender:    "male",
	}

	res, err := Evaluate(q, 9)
	require.NoError(t, err)
	assert.Equal(t, "丙寅 壬辰 庚辰 丙子", res.Chart.String(), "pillars stay on civil time")
	require.NotNil(t, res.Luck)
	// The onset runs from the corrected 23:59 instant, not 00:20.
	assert.Equal(t, 59, res.Luck.Onset.Minute())
	assert.Equal(t, "癸巳", res.Luck.Pillars[0].Pillar.String())
}

func TestEvaluateCorrectionWithoutLongitude(t *testing.T) {
	q := Query{Year: 1986, Month: 4, Day: 6, Minute: 20, TrueSolar: true}
	_, err := Evaluate(q, 9)
	assert.ErrorIs(t, err, chart.ErrInvalidInput)
}

func TestEvaluateLongitudeAloneDoesNotCorrect(t *testing.T) {
	q := Query{Year: 1986, Month: 4, Day: 6, Minute: 20, Longitude: "115.449444"}
	res, err := Evaluate(q, 9)
	require.NoError(t, err)
	assert.Equal(t, "丙寅 壬辰 庚辰 丙子", res.Chart.String())
}

func TestEvaluateRejectsBadGender(t *testing.T) {
	q := Query{Year: 2025, Month: 12, Day: 14, Hour: 12, Gender: "unknown"}
	_, err := Evaluate(q, 9)
	assert.ErrorIs(t, err, luck.ErrInvalidInput)
}
