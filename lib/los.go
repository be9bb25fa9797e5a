package lib

import "math"

// RejectReason names the precondition or obstruction test that failed
// a line-of-sight check (spec.md 4.2).
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectZeroDistance
	RejectElevationAngle
	RejectSameBuilding
	RejectDistanceRange
	RejectExclusionZone
	RejectObstructed
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectZeroDistance:
		return "zero horizontal distance"
	case RejectElevationAngle:
		return "elevation angle exceeds limit"
	case RejectSameBuilding:
		return "endpoints share a building"
	case RejectDistanceRange:
		return "outside configured distance range"
	case RejectExclusionZone:
		return "2D projection intersects an exclusion polygon"
	case RejectObstructed:
		return "terrain obstructs the Fresnel clearance volume"
	default:
		return "unknown"
	}
}

// FresnelModel selects the obstruction-volume shape (spec.md 4.2).
type FresnelModel int

const (
	ModelCylindrical FresnelModel = iota
	ModelEllipsoidal
)

// LOSConfig parameterizes a Validate call (spec.md 6).
type LOSConfig struct {
	Model                  FresnelModel
	ElevationAngleLimitDeg float64 // 90 disables the check
	MinDistanceM           float64
	MaxDistanceM           float64
	FresnelRadiusM         float64 // cylindrical model only
	FrequencyGHz           float64 // ellipsoidal model only, for F1
	ExclusionZones         []Polygon
}

// Decision is the outcome of one Validate call.
type Decision struct {
	Accepted   bool
	Confidence float64 // 0 (fully blocked) .. 1 (fully clear)
	Reason     RejectReason
}

// Validate runs the easy-reject preconditions in the exact order of
// spec.md 4.2, then the configured obstruction model, and returns a
// single Decision. raster supplies terrain heights; a and b are the
// candidate link endpoints.
func Validate(a, b *Site, raster *Raster, cfg LOSConfig) Decision {
	a3 := Vec3{a.Lon, a.Lat, a.Alt}
	b3 := Vec3{b.Lon, b.Lat, b.Alt}
	a2, b2 := a3.XY(), b3.XY()

	horiz := a2.Sub(b2).Length()
	if IsNull(horiz) {
		return Decision{Reason: RejectZeroDistance}
	}

	limit := cfg.ElevationAngleLimitDeg
	if limit <= 0 {
		limit = DefaultElevationAngleLimitDeg
	}
	if limit < 90 {
		elevDeg := math.Abs(math.Atan2(b3[2]-a3[2], horiz) * 180 / math.Pi)
		if elevDeg > limit {
			return Decision{Reason: RejectElevationAngle}
		}
	}

	if a.BuildingID != "" && a.BuildingID == b.BuildingID {
		return Decision{Reason: RejectSameBuilding}
	}

	dist3 := NewSegment3(a3, b3).Length()
	if cfg.MaxDistanceM > 0 && dist3 > cfg.MaxDistanceM {
		return Decision{Reason: RejectDistanceRange}
	}
	if cfg.MinDistanceM > 0 && dist3 < cfg.MinDistanceM {
		return Decision{Reason: RejectDistanceRange}
	}

	for _, zone := range cfg.ExclusionZones {
		if zone.IntersectsSegment(a2, b2) {
			return Decision{Reason: RejectExclusionZone}
		}
	}

	var conf float64
	switch cfg.Model {
	case ModelEllipsoidal:
		conf = confidenceEllipsoidal(a3, b3, raster, cfg.FrequencyGHz)
	default:
		conf = confidenceCylindrical(a3, b3, raster, cfg.FresnelRadiusM)
	}
	if conf <= 0 {
		return Decision{Reason: RejectObstructed, Confidence: 0}
	}
	return Decision{Accepted: true, Confidence: conf}
}

// confidenceCylindrical implements the cylindrical clearance-tube
// model of spec.md 4.2: for every raster cell within FresnelRadiusM of
// the link's 2D projection, solve the two-line system for the closest
// approach between the link axis L and the downward vertical half-line
// M starting at the cell surface, then compare the resulting distance to the tube
// radius. Confidence is the smallest surviving clearance ratio.
func confidenceCylindrical(a, b Vec3, raster *Raster, radius float64) float64 {
	if radius <= 0 {
		return 1
	}
	u := b.Sub(a)
	uHoriz2 := u[0]*u[0] + u[1]*u[1]
	conf := 1.0
	for cell := range raster.CellsNear(a, b, radius) {
		c := Vec3{cell.Center[0], cell.Center[1], cell.Height}
		var d float64
		var obstructs bool

		if uHoriz2 > eps {
			w0 := a.Sub(c)
			p := (u[2]*(a[2]-c[2]) - u.Dot(w0)) / uHoriz2
			q := (c[2] - a[2]) - u[2]*p // surface height above the line at its foot
			if q >= 0 && p >= 0 && p <= 1 {
				d, _ = DistancePointToSegment2D(cell.Center, a.XY(), b.XY())
				// point-to-line (not point-to-segment); p already
				// confirms the foot lies within the segment, so the
				// perpendicular distance to the infinite line equals
				// the distance to the segment here.
				obstructs = true
			}
		}
		if !obstructs {
			// q < 0, or the link has no horizontal extent: fall back
			// to the 3D point-to-line distance from the obstruction
			// apex to the link axis (spec.md 4.2 step 2).
			pp, dd := pointToLine3D(c, a, b)
			if pp >= 0 && pp <= 1 {
				d = dd
				obstructs = true
			}
		}
		if !obstructs {
			continue
		}
		ratio := Clamp01(d / radius)
		if ratio < conf {
			conf = ratio
		}
		if conf <= 0 {
			return 0
		}
	}
	return conf
}

// pointToLine3D returns the line parameter p of the foot of the
// perpendicular from point c onto the infinite line through a,b, and
// the 3D distance from c to that line.
func pointToLine3D(c, a, b Vec3) (p, dist float64) {
	u := b.Sub(a)
	uu := u.Dot(u)
	if uu < eps {
		return 0, c.Sub(a).Length()
	}
	w := c.Sub(a)
	p = w.Dot(u) / uu
	foot := a.Add(u.Mult(p))
	dist = c.Sub(foot).Length()
	return p, dist
}

// confidenceEllipsoidal implements the prolate-spheroid Fresnel-zone
// model of spec.md 4.2: semi-major axis a = D/2, semi-minor b=c=F1,
// foci at the two endpoints. Cells are pre-filtered by the 2D
// ellipse, then tested in 3D by solving a quadratic for the height at
// which the spheroid boundary crosses the cell's vertical. Confidence
// is the ratio, for the tightest obstruction found, of the largest
// concentric spheroid (scaled semi-minor axis) that the terrain still
// clears to F1.
func confidenceEllipsoidal(a, b Vec3, raster *Raster, freqGHz float64) float64 {
	distM := a.Sub(b).Length()
	if distM < eps || freqGHz <= 0 {
		return 1
	}
	distKm := distM / 1000
	f1 := FresnelConst * math.Sqrt(distKm/freqGHz)
	if f1 <= 0 {
		return 1
	}
	semiMajor := distM / 2

	a2, b2 := a.XY(), b.XY()
	center2 := a2.Add(b2).Mult(0.5)
	centerZ := (a[2] + b[2]) / 2
	azimuth := math.Atan2(b2[1]-a2[1], b2[0]-a2[0])
	horiz := a2.Sub(b2).Length()
	pitch := math.Atan2(b[2]-a[2], horiz)

	cosA, sinA := math.Cos(azimuth), math.Sin(azimuth)
	cosB, sinB := math.Cos(pitch), math.Sin(pitch)

	conf := 1.0
	for cell := range raster.CellsNear(a, b, semiMajor) {
		dx := cell.Center[0] - center2[0]
		dy := cell.Center[1] - center2[1]

		// rotate into the link's ground-track frame
		x1 := dx*cosA + dy*sinA
		y1 := -dx*sinA + dy*cosA

		// 2D ellipse pre-filter (z=0 cross-section)
		if Sqr(x1/semiMajor)+Sqr(y1/f1) > 1 {
			continue
		}

		k := semiMajor * semiMajor // a^2, reused below
		b2sq := f1 * f1
		yTerm := Sqr(y1) / b2sq

		// quadratic in dz = h - centerZ, from expanding
		// (x1 cosB + dz sinB)^2/a^2 + (-x1 sinB + dz cosB)^2/c^2
		//   + y1^2/b^2 = 1, with b=c=f1.
		aCoef := Sqr(sinB)/k + Sqr(cosB)/b2sq
		bCoef := 2 * x1 * cosB * sinB * (1/k - 1/b2sq)
		cCoef := Sqr(x1)*(Sqr(cosB)/k+Sqr(sinB)/b2sq) - (1 - yTerm)

		disc := bCoef*bCoef - 4*aCoef*cCoef
		if disc < 0 || aCoef < eps {
			continue
		}
		sq := math.Sqrt(disc)
		dz1 := (-bCoef + sq) / (2 * aCoef)
		dz2 := (-bCoef - sq) / (2 * aCoef)
		dzUpper := math.Max(dz1, dz2)
		hUpper := centerZ + dzUpper
		if cell.Height < hUpper {
			continue // terrain clears the tube at this (x,y)
		}

		dzObs := cell.Height - centerZ
		x2 := x1*cosB + dzObs*sinB
		z2 := -x1*sinB + dzObs*cosB
		if Sqr(x2) >= k {
			return 0 // obstruction beyond the spheroid's axial extent: fully blocked
		}
		bk2 := (Sqr(y1) + Sqr(z2)) / (1 - Sqr(x2)/k)
		if bk2 < 0 {
			return 0
		}
		ratio := Clamp01(math.Sqrt(bk2) / f1)
		if ratio < conf {
			conf = ratio
		}
		if conf <= 0 {
			return 0
		}
	}
	return conf
}
