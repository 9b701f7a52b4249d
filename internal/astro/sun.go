package astro

import (
	"math"
	"time"
)

const (
	degToRad = math.Pi / 180
	arcsec   = 1.0 / 3600
)

// MeanMotion is the sun's mean apparent angular speed in degrees per day,
// used as the Newton-step slope when locating longitude crossings.
const MeanMotion = 360.0 / 365.2422

type seriesTerm struct{ a, b, c float64 }

// Earth's heliocentric longitude, VSOP87 truncated to the Meeus term set
// (Astronomical Algorithms, appendix III). Amplitudes in 1e-8 radian,
// arguments in radians per Julian millennium. The truncation is good to
// about one arcsecond, a few seconds of time at the sun's mean motion.
var earthL = [6][]seriesTerm{
	{
		{175347046, 0, 0},
		{3341656, 4.6692568, 6283.0758500},
		{34894, 4.62610, 12566.15170},
		{3497, 2.7441, 5753.3849},
		{3418, 2.8289, 3.5231},
		{3136, 3.6277, 77713.7715},
		{2676, 4.4181, 7860.4194},
		{2343, 6.1352, 3930.2097},
		{1324, 0.7425, 11506.7698},
		{1273, 2.0371, 529.6910},
		{1199, 1.1096, 1577.3435},
		{990, 5.233, 5884.927},
		{902, 2.045, 26.298},
		{857, 3.508, 398.149},
		{780, 1.179, 5223.694},
		{753, 2.533, 5507.553},
		{505, 4.583, 18849.228},
		{492, 4.205, 775.523},
		{357, 2.920, 0.067},
		{317, 5.849, 11790.629},
		{284, 1.899, 796.298},
		{271, 0.315, 10977.079},
		{243, 0.345, 5486.778},
		{206, 4.806, 2544.314},
		{205, 1.869, 5573.143},
		{202, 2.458, 6069.777},
		{156, 0.833, 213.299},
		{132, 3.411, 2942.463},
		{126, 1.083, 20.775},
		{115, 0.645, 0.980},
		{103, 0.636, 4694.003},
		{102, 0.976, 15720.839},
		{102, 4.267, 7.114},
		{99, 6.21, 2146.17},
		{98, 0.68, 155.42},
		{86, 5.98, 161000.69},
		{85, 1.30, 6275.96},
		{85, 3.67, 71430.70},
		{80, 1.81, 17260.15},
		{79, 3.04, 12036.46},
		{75, 1.76, 5088.63},
		{74, 3.50, 3154.69},
		{74, 4.68, 801.82},
		{70, 0.83, 9437.76},
		{62, 3.98, 8827.39},
		{61, 1.82, 7084.90},
		{57, 2.78, 6286.60},
		{56, 4.39, 14143.50},
		{56, 3.47, 6279.55},
		{52, 0.19, 12139.55},
		{52, 1.33, 1748.02},
		{51, 0.28, 5856.48},
		{49, 0.49, 1194.45},
		{41, 5.37, 8429.24},
		{41, 2.40, 19651.05},
		{39, 6.17, 10447.39},
		{37, 6.04, 10213.29},
		{37, 2.57, 1059.38},
		{36, 1.71, 2352.87},
		{36, 1.78, 6812.77},
		{33, 0.59, 17789.85},
		{30, 0.44, 83996.85},
		{30, 2.74, 1349.87},
		{25, 3.16, 4690.48},
	},
	{
		{628331966747, 0, 0},
		{206059, 2.678235, 6283.075850},
		{4303, 2.6351, 12566.1517},
		{425, 1.590, 3.523},
		{119, 5.796, 26.298},
		{109, 2.966, 1577.344},
		{93, 2.59, 18849.23},
		{72, 1.14, 529.69},
		{68, 1.87, 398.15},
		{67, 4.41, 5507.55},
		{59, 2.89, 5223.69},
		{56, 2.17, 155.42},
		{45, 0.40, 796.30},
		{36, 0.47, 775.52},
		{29, 2.65, 7.11},
		{21, 5.34, 0.98},
		{19, 1.85, 5486.78},
		{19, 4.97, 213.30},
		{17, 2.99, 6275.96},
		{16, 0.03, 2544.31},
		{16, 1.43, 2146.17},
		{15, 1.21, 10977.08},
		{12, 2.83, 1748.02},
		{12, 3.26, 5088.63},
		{12, 5.27, 1194.45},
		{12, 2.08, 4694.00},
		{11, 0.77, 553.57},
		{10, 1.30, 6286.60},
		{10, 4.24, 1349.87},
		{9, 2.70, 242.73},
		{9, 5.64, 951.72},
		{8, 5.30, 2352.87},
		{6, 2.65, 9437.76},
		{6, 4.67, 4690.48},
	},
	{
		{52919, 0, 0},
		{8720, 1.0721, 6283.0758},
		{309, 0.867, 12566.152},
		{27, 0.05, 3.52},
		{16, 5.19, 26.30},
		{16, 3.68, 155.42},
		{10, 0.76, 18849.23},
		{9, 2.06, 77713.77},
		{7, 0.83, 775.52},
		{5, 4.66, 1577.34},
		{4, 1.03, 7.11},
		{4, 3.44, 5573.14},
		{3, 5.14, 796.30},
		{3, 6.05, 5507.55},
		{3, 1.19, 242.73},
		{3, 6.12, 529.69},
		{3, 0.31, 398.15},
		{3, 2.28, 553.57},
		{2, 4.38, 5223.69},
		{2, 3.75, 0.98},
	},
	{
		{289, 5.844, 6283.076},
		{35, 0, 0},
		{17, 5.49, 12566.15},
		{3, 5.20, 155.42},
		{1, 4.72, 3.52},
		{1, 5.30, 18849.23},
		{1, 5.97, 242.73},
	},
	{
		{114, 3.142, 0},
		{8, 4.13, 6283.08},
		{1, 3.84, 12566.15},
	},
	{
		{1, 3.14, 0},
	},
}

// earthLongitude evaluates the VSOP87 series at tau Julian millennia from
// J2000, returning radians.
func earthLongitude(tau float64) float64 {
	sum, pow := 0.0, 1.0
	for _, series := range earthL {
		s := 0.0
		for _, t := range series {
			s += t.a * math.Cos(t.b+t.c*tau)
		}
		sum += s * pow
		pow *= tau
	}
	return sum * 1e-8
}

// IAU 1980 nutation in longitude, truncated past 0.01" of residual.
// Coefficients in 1e-4 arcsecond; argument multipliers over D, M, M', F, Ω.
var nutationTerms = []struct {
	d, m, mp, f, om float64
	s0, s1          float64
}{
	{0, 0, 0, 0, 1, -171996, -174.2},
	{-2, 0, 0, 2, 2, -13187, -1.6},
	{0, 0, 0, 2, 2, -2274, -0.2},
	{0, 0, 0, 0, 2, 2062, 0.2},
	{0, 1, 0, 0, 0, 1426, -3.4},
	{0, 0, 1, 0, 0, 712, 0.1},
	{-2, 1, 0, 2, 2, -517, 1.2},
	{0, 0, 0, 2, 1, -386, -0.4},
	{0, 0, 1, 2, 2, -301, 0},
	{-2, -1, 0, 2, 2, 217, -0.5},
	{-2, 0, 1, 0, 0, -158, 0},
	{-2, 0, 0, 2, 1, 129, 0.1},
	{0, 0, -1, 2, 2, 123, 0},
}

// nutationLongitude returns Δψ in degrees for T Julian centuries from J2000.
func nutationLongitude(T float64) float64 {
	T2 := T * T
	T3 := T2 * T
	d := 297.85036 + 445267.111480*T - 0.0019142*T2 + T3/189474
	m := 357.52772 + 35999.050340*T - 0.0001603*T2 - T3/300000
	mp := 134.96298 + 477198.867398*T + 0.0086972*T2 + T3/56250
	f := 93.27191 + 483202.017538*T - 0.0036825*T2 + T3/327270
	om := 125.04452 - 1934.136261*T + 0.0020708*T2 + T3/450000

	var dpsi float64
	for _, t := range nutationTerms {
		arg := (t.d*d + t.m*m + t.mp*mp + t.f*f + t.om*om) * degToRad
		dpsi += (t.s0 + t.s1*T) * math.Sin(arg)
	}
	return dpsi * 1e-4 * arcsec
}

// sunDistance returns the earth-sun distance in AU for T Julian centuries
// from J2000, from the elliptic solution. Only feeds the aberration term,
// which tolerates far more error than this carries.
func sunDistance(T float64) float64 {
	m := (357.52911 + 35999.05029*T - 0.0001537*T*T) * degToRad
	e := 0.016708634 - 0.000042037*T - 0.0000001267*T*T
	c := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(m) +
		(0.019993-0.000101*T)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)
	nu := m + c*degToRad
	return 1.000001018 * (1 - e*e) / (1 + e*math.Cos(nu))
}

// ApparentLongitudeJD returns the sun's apparent ecliptic longitude in
// degrees, normalized to [0, 360), for a Julian Day in Universal Time.
// The geocentric longitude is the VSOP87 Earth longitude plus 180°,
// rotated to FK5, with nutation in longitude and aberration applied;
// the series is evaluated on dynamical time via DeltaT. Root-finders
// iterate on this continuous form directly.
func ApparentLongitudeJD(jd float64) float64 {
	year := 2000 + (jd-2451545.0)/365.25
	jde := jd + DeltaT(year)/86400
	tau := (jde - 2451545.0) / 365250
	T := tau * 10

	lon := earthLongitude(tau)/degToRad + 180 - 0.09033*arcsec
	lon += nutationLongitude(T)
	lon -= 20.4898 * arcsec / sunDistance(T)

	return normalizeDeg(lon)
}

// ApparentLongitude is ApparentLongitudeJD for a time.Time instant.
func ApparentLongitude(t time.Time) float64 {
	return ApparentLongitudeJD(JulianDay(t))
}

func normalizeDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// LongitudeDelta returns the signed angular distance from longitude lon to
// target, mapped into (-180, 180]. The sign tells which side of a term
// boundary an instant falls on.
func LongitudeDelta(lon, target float64) float64 {
	d := math.Mod(lon-target, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}
