package lib

import "testing"

func TestTriangulateSquareHasDiagonal(t *testing.T) {
	points := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	edges := Triangulate(points)
	if len(edges) == 0 {
		t.Fatal("expected at least one triangulated edge over a square")
	}
	// all four boundary edges must appear
	want := map[[2]int]bool{
		{0, 1}: true, {1, 2}: true, {2, 3}: true, {0, 3}: true,
	}
	for _, e := range edges {
		key := [2]int{e.A, e.B}
		delete(want, key)
	}
	if len(want) != 0 {
		t.Fatalf("missing boundary edges: %v", want)
	}
	hasDiagonal := false
	for _, e := range edges {
		key := [2]int{e.A, e.B}
		if key == [2]int{0, 2} || key == [2]int{1, 3} {
			hasDiagonal = true
		}
	}
	if !hasDiagonal {
		t.Fatalf("expected a diagonal edge {0,2} or {1,3}, got %v", edges)
	}
}

func TestTriangulateTooFewPoints(t *testing.T) {
	if edges := Triangulate([]Vec2{{0, 0}, {1, 1}}); edges != nil {
		t.Fatalf("expected nil for fewer than 3 points, got %v", edges)
	}
}
