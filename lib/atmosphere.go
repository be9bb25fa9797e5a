package lib

import "math"

// RadioParams is the subset of spec.md 6's configuration surface that
// feeds the radio model (spec.md 4.3): carrier frequency, noise
// figure, thermal noise power and rain rate are user inputs; the rest
// of a link's budget comes from the Site/Device/Sector it resolves.
type RadioParams struct {
	FrequencyGHz    float64
	NoiseFigureDB   float64
	ThermalNoiseDBm float64
	RainRateMmPerHr float64
}

// rainCoeff is one ITU-R P.838-style (k, alpha) pair for the specific
// rain attenuation power law gamma_R = k * R^alpha (dB/km), tabulated
// at a handful of frequencies the way material.go tabulates matProp
// by material label -- a small lookup rather than the full regression
// model, sufficient at the precision the optimizer consumes (spec.md
// 1 Non-goals: "detailed numerical derivation is external").
type rainCoeff struct {
	k, alpha float64
}

var rainTable = map[float64]rainCoeff{
	6:  {0.00175, 1.308},
	15: {0.0335, 1.154},
	23: {0.1825, 1.088},
	38: {0.4350, 1.000},
	60: {1.2100, 0.8400},
	80: {2.1600, 0.7500},
}

var rainFreqs = []float64{6, 15, 23, 38, 60, 80}

func rainCoeffAt(freqGHz float64) rainCoeff {
	if len(rainFreqs) == 0 {
		return rainCoeff{}
	}
	if freqGHz <= rainFreqs[0] {
		return rainTable[rainFreqs[0]]
	}
	n := len(rainFreqs)
	if freqGHz >= rainFreqs[n-1] {
		return rainTable[rainFreqs[n-1]]
	}
	for i := 1; i < n; i++ {
		if freqGHz <= rainFreqs[i] {
			lo, hi := rainFreqs[i-1], rainFreqs[i]
			cLo, cHi := rainTable[lo], rainTable[hi]
			frac := (freqGHz - lo) / (hi - lo)
			return rainCoeff{
				k:     cLo.k + frac*(cHi.k-cLo.k),
				alpha: cLo.alpha + frac*(cHi.alpha-cLo.alpha),
			}
		}
	}
	return rainTable[rainFreqs[n-1]]
}

// RainLossDB returns the rain attenuation (dB) over a path of the
// given length, at the configured rain rate and frequency (spec.md
// 4.3 "rain" term of the RSL budget).
func RainLossDB(distanceM float64, p RadioParams) float64 {
	if p.RainRateMmPerHr <= 0 {
		return 0
	}
	c := rainCoeffAt(p.FrequencyGHz)
	gammaR := c.k * math.Pow(p.RainRateMmPerHr, c.alpha) // dB/km
	return gammaR * (distanceM / 1000)
}

// gasAbsorptionDBPerKm is a coarse two-line (oxygen + water vapor)
// approximation of specific atmospheric attenuation around the 60 GHz
// oxygen absorption band, peaking near 60 GHz as ITU-R P.676 does.
func gasAbsorptionDBPerKm(freqGHz float64) float64 {
	oxygenPeak := 15.0 // dB/km at the 60 GHz band center
	width := 7.0
	d := (freqGHz - 60) / width
	oxygen := oxygenPeak / (1 + d*d)
	waterVapor := 0.02 * math.Sqrt(freqGHz) // mild background term
	return oxygen + waterVapor
}

// GaseousLossDB returns the gaseous absorption loss (GAL, dB) over a
// path (spec.md 4.3 "GAL" term of the RSL budget).
func GaseousLossDB(distanceM float64, p RadioParams) float64 {
	return gasAbsorptionDBPerKm(p.FrequencyGHz) * (distanceM / 1000)
}

// FreeSpacePathLossDB is the standard Friis free-space loss (dB),
// d in meters, f in GHz (spec.md 4.3 "FSPL" term of the RSL budget).
func FreeSpacePathLossDB(distanceM float64, freqGHz float64) float64 {
	if distanceM <= 0 || freqGHz <= 0 {
		return 0
	}
	distanceKm := distanceM / 1000
	return 20*math.Log10(distanceKm) + 20*math.Log10(freqGHz) + 92.45
}
