package lib

import "math"

// Raster is a regular-grid digital surface model h(x,y), cell size
// Delta, owned read-only by the LOS engine (spec.md 3). DSM = DTM+DHM
// when the two are supplied separately; that addition happens before a
// Raster reaches this package -- lib never parses or merges raster
// files itself (spec.md 1 Non-goals).
type Raster struct {
	OriginX, OriginY float64 // world coordinates of cell (0,0)
	Delta            float64 // cell size, meters
	Cols, Rows       int
	Heights          []float64 // row-major, length Cols*Rows
}

// NewRaster allocates a raster of the given size, all heights zero.
func NewRaster(originX, originY, delta float64, cols, rows int) *Raster {
	return &Raster{
		OriginX: originX, OriginY: originY, Delta: delta,
		Cols: cols, Rows: rows,
		Heights: make([]float64, cols*rows),
	}
}

// Set stores the height of cell (col,row).
func (r *Raster) Set(col, row int, h float64) {
	if col < 0 || col >= r.Cols || row < 0 || row >= r.Rows {
		return
	}
	r.Heights[row*r.Cols+col] = h
}

// At returns the height of cell (col,row); out-of-bounds cells read 0.
func (r *Raster) At(col, row int) float64 {
	if col < 0 || col >= r.Cols || row < 0 || row >= r.Rows {
		return 0
	}
	return r.Heights[row*r.Cols+col]
}

// CellCenter returns the world-coordinate center of cell (col,row).
func (r *Raster) CellCenter(col, row int) Vec2 {
	return Vec2{
		r.OriginX + (float64(col)+0.5)*r.Delta,
		r.OriginY + (float64(row)+0.5)*r.Delta,
	}
}

// ColRowOf returns the cell covering world point p.
func (r *Raster) ColRowOf(p Vec2) (col, row int) {
	col = int(math.Floor((p[0] - r.OriginX) / r.Delta))
	row = int(math.Floor((p[1] - r.OriginY) / r.Delta))
	return
}

// HeightAt returns the surface height at the cell covering world point
// p (nearest-cell lookup, no interpolation).
func (r *Raster) HeightAt(p Vec2) float64 {
	col, row := r.ColRowOf(p)
	return r.At(col, row)
}

// Cell is one raster cell yielded by CellsNear: its grid indices, its
// world-space center, and its surface height.
type Cell struct {
	Col, Row int
	Center   Vec2
	Height   float64
}

// CellsNear returns, in deterministic scanline order over the
// rectangular bounding window of segment a-b grown by r, every cell
// whose 2D distance to the segment's horizontal projection is <= r
// (spec.md 4.1 "cells touching a link"). It is a lazy range-over-func
// sequence: large rasters are scanned without ever materializing a
// slice of candidate cells, and a caller that range-breaks early (an
// obstruction already found) stops the scan immediately.
//
// Returns immediately (yields nothing) if the segment has zero
// horizontal extent -- that degenerate case is caught by C2's easy
// rejects, never treated as an error here (spec.md 4.1).
func (r *Raster) CellsNear(a, b Vec3, radius float64) func(yield func(Cell) bool) {
	return func(yield func(Cell) bool) {
		a2, b2 := a.XY(), b.XY()
		if IsNull(a2.Sub(b2).Length()) {
			return
		}
		box := FootprintBox(a, b, radius)
		c0, r0 := r.ColRowOf(Vec2{box.Xmin, box.Ymin})
		c1, r1 := r.ColRowOf(Vec2{box.Xmax, box.Ymax})
		c0, c1 = clampRange(c0, c1, r.Cols)
		r0, r1 = clampRange(r0, r1, r.Rows)
		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				center := r.CellCenter(col, row)
				d, _ := DistancePointToSegment2D(center, a2, b2)
				if d <= radius {
					cell := Cell{Col: col, Row: row, Center: center, Height: r.At(col, row)}
					if !yield(cell) {
						return
					}
				}
			}
		}
	}
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi >= n {
		hi = n - 1
	}
	if lo > hi {
		return 0, -1 // empty range
	}
	return lo, hi
}
