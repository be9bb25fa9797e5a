package lib

import "math"

// Physical and geometric constants shared by the LOS and radio models.
const (
	SpeedOfLight = 299792458.0 // c, m/s

	RectAng = math.Pi / 2 // right angle
	CircAng = 2 * math.Pi // full circle

	// FresnelConst is the constant in F1 = FresnelConst * sqrt(D_km/f_GHz),
	// the radius (meters) of the first Fresnel zone.
	FresnelConst = 8.656

	// DefaultElevationAngleLimitDeg is the default easy-reject elevation
	// angle limit (spec.md 4.2 precondition 2); 90 disables the check.
	DefaultElevationAngleLimitDeg = 25.0
)
