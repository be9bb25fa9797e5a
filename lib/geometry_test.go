package lib

import "testing"

func TestVec2Distance(t *testing.T) {
	a := Vec2{0, 0}
	b := Vec2{3, 4}
	if d := b.Sub(a).Length(); d != 5 {
		t.Fatalf("expected 5, got %v", d)
	}
}

func TestDistancePointToSegment2D(t *testing.T) {
	a := Vec2{0, 0}
	b := Vec2{10, 0}
	d, proj := DistancePointToSegment2D(Vec2{5, 3}, a, b)
	if d != 3 {
		t.Fatalf("expected distance 3, got %v", d)
	}
	if proj != 0.5 {
		t.Fatalf("expected projection 0.5, got %v", proj)
	}

	// off the end of the segment clamps to the nearest endpoint
	d, proj = DistancePointToSegment2D(Vec2{-5, 0}, a, b)
	if d != 5 || proj != 0 {
		t.Fatalf("expected (5,0), got (%v,%v)", d, proj)
	}
}

func TestBoundingBoxInclude(t *testing.T) {
	box := NewBoundingBox()
	box.Include(Vec2{1, 2})
	box.Include(Vec2{-1, 5})
	if box.Xmin != -1 || box.Xmax != 1 || box.Ymin != 2 || box.Ymax != 5 {
		t.Fatalf("unexpected box: %+v", box)
	}
}

func TestPolygonContains(t *testing.T) {
	square := Polygon{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !square.Contains(Vec2{5, 5}) {
		t.Fatal("expected center point inside square")
	}
	if square.Contains(Vec2{20, 20}) {
		t.Fatal("expected far point outside square")
	}
}
