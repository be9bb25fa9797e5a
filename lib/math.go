package lib

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// eps is the lower bound for treating a float64 as zero.
const eps = 1e-9

// IsNull returns true if v is zero within tolerance.
func IsNull(v float64) bool {
	return math.Abs(v) < eps
}

// InRange returns true if v lies in [from,to] within tolerance.
func InRange(v, from, to float64) bool {
	return v-from > -eps && to-v > -eps
}

// Sqr returns the square of a value.
func Sqr(v float64) float64 {
	return v * v
}

// Clamp01 clamps v to the closed interval [0,1], used throughout the LOS
// validator to clamp confidence levels and projection parameters.
func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

//----------------------------------------------------------------------

// BestFitCentroid returns the center and radius of the circle (in the
// XY plane) that best fits a set of building-outline vertices in the
// algebraic least-squares sense, or the vertices' mean and radius 0
// when that fit is degenerate. Automatic site detection (spec.md 4.4
// step 2) places a candidate site at every building's center from it.
func BestFitCentroid(pnts []Vec2) (ctr Vec2, r float64) {
	num := len(pnts)
	if num == 0 {
		return Vec2{}, 0
	}
	aVal := make([]float64, 3*num)
	fVal := make([]float64, num)
	for i, pt := range pnts {
		aVal[3*i+0] = pt[0] * 2
		aVal[3*i+1] = pt[1] * 2
		aVal[3*i+2] = 1
		fVal[i] = Sqr(pt[0]) + Sqr(pt[1])
	}
	A := mat.NewDense(num, 3, aVal)
	f := mat.NewVecDense(num, fVal)

	var x mat.VecDense
	if err := x.SolveVec(A, f); err != nil {
		// degenerate (collinear) outline: fall back to arithmetic mean
		var sx, sy float64
		for _, pt := range pnts {
			sx += pt[0]
			sy += pt[1]
		}
		return Vec2{sx / float64(num), sy / float64(num)}, 0
	}
	ctr = Vec2{x.At(0, 0), x.At(1, 0)}
	r = math.Sqrt(math.Max(0, x.At(2, 0)+Sqr(ctr.Length())))
	return
}

// CornerAngle returns the interior angle (radians) at vertex b of the
// polyline a-b-c, used to find "qualifying corners" for automatic site
// detection (spec.md 4.4 step 2: corner angle <= threshold).
func CornerAngle(a, b, c Vec2) float64 {
	u, v := a.Sub(b), c.Sub(b)
	lu, lv := u.Length(), v.Length()
	if IsNull(lu) || IsNull(lv) {
		return math.Pi
	}
	cosA := Clamp01WithSign(u.Dot(v) / (lu * lv))
	return math.Acos(cosA)
}

// Clamp01WithSign clamps v to [-1,1] (guards acos/asin against roundoff
// pushing a cosine value just outside its domain).
func Clamp01WithSign(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
