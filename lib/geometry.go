package lib

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector (ground-plane coordinates, meters).
type Vec2 [2]float64

// NewVec2 creates a new 2D vector.
func NewVec2(x, y float64) Vec2 { return Vec2{x, y} }

// Sub returns v-u.
func (v Vec2) Sub(u Vec2) Vec2 { return Vec2{v[0] - u[0], v[1] - u[1]} }

// Length of the vector.
func (v Vec2) Length() float64 { return math.Hypot(v[0], v[1]) }

// Dot product.
func (v Vec2) Dot(u Vec2) float64 { return v[0]*u[0] + v[1]*u[1] }

// Vec3 is a 3D vector (ground-plane x, y in meters, z = elevation in meters).
type Vec3 [3]float64

// NewVec3 creates a new 3D vector.
func NewVec3(x, y, z float64) (v Vec3) {
	v[0], v[1], v[2] = x, y, z
	return
}

// String returns a human-readable vector.
func (v Vec3) String() string {
	return fmt.Sprintf("[%f,%f,%f]", v[0], v[1], v[2])
}

// XY projects the vector onto the ground plane.
func (v Vec3) XY() Vec2 { return Vec2{v[0], v[1]} }

// Length of the vector.
func (v Vec3) Length() float64 {
	x, y, z := v[0], v[1], v[2]
	return math.Sqrt(x*x + y*y + z*z)
}

// Norm returns a normalized vector.
func (v Vec3) Norm() Vec3 {
	l := v.Length()
	if IsNull(l) {
		return v
	}
	return v.Mult(1 / l)
}

// Add two vectors.
func (v Vec3) Add(u Vec3) (d Vec3) {
	d[0] = v[0] + u[0]
	d[1] = v[1] + u[1]
	d[2] = v[2] + u[2]
	return
}

// Sub (subtract) two vectors.
func (v Vec3) Sub(u Vec3) (d Vec3) {
	d[0] = v[0] - u[0]
	d[1] = v[1] - u[1]
	d[2] = v[2] - u[2]
	return
}

// Mult returns the multiplication of a vector with a scalar k.
func (v Vec3) Mult(k float64) (d Vec3) {
	d[0] = k * v[0]
	d[1] = k * v[1]
	d[2] = k * v[2]
	return
}

// Neg returns the negative vector.
func (v Vec3) Neg() Vec3 { return v.Mult(-1) }

// Prod returns the cross product between two vectors.
func (v Vec3) Prod(u Vec3) (d Vec3) {
	d[0] = v[1]*u[2] - v[2]*u[1]
	d[1] = v[2]*u[0] - v[0]*u[2]
	d[2] = v[0]*u[1] - v[1]*u[0]
	return
}

// Dot returns the dot product between two vectors.
func (v Vec3) Dot(u Vec3) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Equals returns true if two vectors are equal (within tolerance).
func (v Vec3) Equals(u Vec3) bool {
	return IsNull(v.Sub(u).Length())
}

//----------------------------------------------------------------------

// Segment3 is a 3D line segment: the axis joining two link endpoints,
// or the vertical obstruction ray rising from a DSM cell.
type Segment3 struct {
	start, end Vec3
}

// NewSegment3 creates a new 3D segment.
func NewSegment3(s, e Vec3) *Segment3 { return &Segment3{start: s, end: e} }

// Start point of the segment.
func (l *Segment3) Start() Vec3 { return l.start }

// End point of the segment.
func (l *Segment3) End() Vec3 { return l.end }

// Dir is the direction (end-start) of the segment.
func (l *Segment3) Dir() Vec3 { return l.end.Sub(l.start) }

// Length of the segment.
func (l *Segment3) Length() float64 { return l.Dir().Length() }

// String returns the human-readable segment.
func (l *Segment3) String() string {
	return fmt.Sprintf("(%f,%f,%f)-(%f,%f,%f)",
		l.start[0], l.start[1], l.start[2],
		l.end[0], l.end[1], l.end[2],
	)
}

// At returns the point on the segment at parameter p (0=start, 1=end).
func (l *Segment3) At(p float64) Vec3 {
	return l.start.Add(l.Dir().Mult(p))
}

//----------------------------------------------------------------------

// BoundingBox is an axis-aligned 2D bounding box (ground plane).
type BoundingBox struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// NewBoundingBox returns an empty (inverted) bounding box ready for Include.
func NewBoundingBox() *BoundingBox {
	limit := math.MaxFloat64
	return &BoundingBox{
		Xmin: limit,
		Xmax: -limit,
		Ymin: limit,
		Ymax: -limit,
	}
}

// Include extends the box to cover point v.
func (b *BoundingBox) Include(v Vec2) {
	b.Xmin = min(v[0], b.Xmin)
	b.Xmax = max(v[0], b.Xmax)
	b.Ymin = min(v[1], b.Ymin)
	b.Ymax = max(v[1], b.Ymax)
}

// Grow expands the box by a margin r in all directions (e.g. the LOS
// search radius), so a rectangular cell scan is guaranteed to cover
// every cell within r of the enclosed segment.
func (b *BoundingBox) Grow(r float64) *BoundingBox {
	return &BoundingBox{
		Xmin: b.Xmin - r,
		Xmax: b.Xmax + r,
		Ymin: b.Ymin - r,
		Ymax: b.Ymax + r,
	}
}

// FootprintBox returns the (margin-grown) 2D bounding box of a link's
// horizontal projection, the oblique/tilted bounds of spec.md 4.1(b)
// reduced to an axis-aligned rectangle for window iteration.
func FootprintBox(a, b Vec3, margin float64) *BoundingBox {
	box := NewBoundingBox()
	box.Include(a.XY())
	box.Include(b.XY())
	return box.Grow(margin)
}

// DistancePointToSegment2D returns the 2D distance from point p to the
// segment ab, and the projection parameter t clamped to [0,1].
func DistancePointToSegment2D(p, a, b Vec2) (dist, t float64) {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if IsNull(l2) {
		return p.Sub(a).Length(), 0
	}
	t = p.Sub(a).Dot(ab) / l2
	t = math.Max(0, math.Min(1, t))
	proj := Vec2{a[0] + t*ab[0], a[1] + t*ab[1]}
	return p.Sub(proj).Length(), t
}
