package lib

// Polygon is an ordered closed ring of 2D vertices in the ground
// plane, used for exclusion zones and the boundary polygon (spec.md
// 6). lib never parses a shapefile/KML source itself (out of scope);
// callers populate a Polygon directly.
type Polygon []Vec2

// Contains returns true if p lies inside the polygon (ray casting,
// even-odd rule). Vertices exactly on an edge are treated as inside.
func (poly Polygon) Contains(p Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := poly[i], poly[j]
		if segmentsOnPoint(vi, vj, p) {
			return true
		}
		if (vi[1] > p[1]) != (vj[1] > p[1]) {
			xCross := vi[0] + (p[1]-vi[1])/(vj[1]-vi[1])*(vj[0]-vi[0])
			if p[0] < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func segmentsOnPoint(a, b, p Vec2) bool {
	d, _ := DistancePointToSegment2D(p, a, b)
	return IsNull(d)
}

// segmentsIntersect returns true if segments p1-p2 and p3-p4 cross.
func segmentsIntersect(p1, p2, p3, p4 Vec2) bool {
	d1 := cross2(p4.Sub(p3), p1.Sub(p3))
	d2 := cross2(p4.Sub(p3), p2.Sub(p3))
	d3 := cross2(p2.Sub(p1), p3.Sub(p1))
	d4 := cross2(p2.Sub(p1), p4.Sub(p1))
	if ((d1 > 0) != (d2 > 0)) && ((d3 > 0) != (d4 > 0)) {
		return true
	}
	return false
}

func cross2(u, v Vec2) float64 { return u[0]*v[1] - u[1]*v[0] }

// IntersectsSegment returns true if the segment a-b crosses any edge of
// the polygon, or either endpoint lies inside it (spec.md 4.2
// precondition 5: "the segment's 2D projection intersects any
// exclusion polygon").
func (poly Polygon) IntersectsSegment(a, b Vec2) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	if poly.Contains(a) || poly.Contains(b) {
		return true
	}
	j := n - 1
	for i := 0; i < n; i++ {
		if segmentsIntersect(a, b, poly[j], poly[i]) {
			return true
		}
		j = i
	}
	return false
}
