package astro

import (
	"math"
	"time"
)

// EquationOfTime returns apparent-minus-mean solar time in minutes for an
// instant, using the NOAA Fourier fit over the day of year. Magnitude stays
// within roughly ±16.5 minutes; smooth everywhere.
func EquationOfTime(t time.Time) float64 {
	fracHour := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	gamma := 2 * math.Pi / 365 * (float64(t.YearDay()) - 1 + (fracHour-12)/24)
	return 229.18 * (0.000075 +
		0.001868*math.Cos(gamma) -
		0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) -
		0.040849*math.Sin(2*gamma))
}
