package lib

import "math"

// DelaunayEdge is one edge of a 2D Delaunay triangulation, referencing
// points by index into the input slice.
type DelaunayEdge struct {
	A, B int
}

// Triangulate computes the Delaunay triangulation of a point set in
// the ground plane via the straightforward O(n^4) circumcircle test
// (bowyer-watson is the standard alternative; this repo's planning
// instances are small enough -- tens of DN sites -- that the simple
// form is preferable to the bookkeeping a faster incremental algorithm
// needs). Used by the redundancy phase to restrict which DN pairs
// undergo max-flow pruning (spec.md 9 "Delaunay triangulation on DN
// geographic coordinates limits which pairs undergo max-flow").
func Triangulate(points []Vec2) []DelaunayEdge {
	n := len(points)
	if n < 3 {
		return nil
	}
	edgeSet := make(map[[2]int]bool)
	var edges []DelaunayEdge
	addEdge := func(i, j int) {
		if i > j {
			i, j = j, i
		}
		key := [2]int{i, j}
		if !edgeSet[key] {
			edgeSet[key] = true
			edges = append(edges, DelaunayEdge{A: i, B: j})
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if !isTriangle(points[i], points[j], points[k]) {
					continue
				}
				cx, cy, r2 := circumcircle(points[i], points[j], points[k])
				empty := true
				for m := 0; m < n; m++ {
					if m == i || m == j || m == k {
						continue
					}
					dx, dy := points[m][0]-cx, points[m][1]-cy
					if dx*dx+dy*dy < r2-eps {
						empty = false
						break
					}
				}
				if empty {
					addEdge(i, j)
					addEdge(j, k)
					addEdge(i, k)
				}
			}
		}
	}
	return edges
}

func isTriangle(a, b, c Vec2) bool {
	area2 := (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
	return !IsNull(area2)
}

// circumcircle returns the center and squared radius of the circle
// through a, b, c.
func circumcircle(a, b, c Vec2) (cx, cy, r2 float64) {
	d := 2 * (a[0]*(b[1]-c[1]) + b[0]*(c[1]-a[1]) + c[0]*(a[1]-b[1]))
	if IsNull(d) {
		return 0, 0, math.Inf(1)
	}
	a2 := a[0]*a[0] + a[1]*a[1]
	b2 := b[0]*b[0] + b[1]*b[1]
	c2 := c[0]*c[0] + c[1]*c[1]
	cx = (a2*(b[1]-c[1]) + b2*(c[1]-a[1]) + c2*(a[1]-b[1])) / d
	cy = (a2*(c[0]-b[0]) + b2*(a[0]-c[0]) + c2*(b[0]-a[0])) / d
	dx, dy := a[0]-cx, a[1]-cy
	r2 = dx*dx + dy*dy
	return
}
