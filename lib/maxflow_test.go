package lib

import "testing"

func TestMaxFlowSingleLink(t *testing.T) {
	a := NewSiteID(0, 0, 0, POP, "a")
	b := NewSiteID(1, 0, 0, DN, "b")
	l := NewLink(a, b)

	g := BuildFlowGraph([]*Link{l}, func(*Link) float64 { return 3 })
	v, ok, err := MaxFlow(g, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected both endpoints present in the flow graph")
	}
	if v < 2.999 || v > 3.001 {
		t.Fatalf("expected max flow 3, got %v", v)
	}
}

func TestMaxFlowDisconnected(t *testing.T) {
	a := NewSiteID(0, 0, 0, POP, "a")
	b := NewSiteID(1, 0, 0, DN, "b")
	g := BuildFlowGraph(nil, func(*Link) float64 { return 1 })
	_, ok, err := MaxFlow(g, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected no flow between vertices absent from the graph")
	}
}

func TestVertexDisjointPathsTwoRoutes(t *testing.T) {
	a := NewSiteID(0, 0, 0, POP, "a")
	mid1 := NewSiteID(1, 0, 0, DN, "m1")
	mid2 := NewSiteID(2, 0, 0, DN, "m2")
	b := NewSiteID(3, 0, 0, DN, "b")

	links := []*Link{
		NewLink(a, mid1), NewLink(mid1, b),
		NewLink(a, mid2), NewLink(mid2, b),
	}
	n, err := VertexDisjointPaths(links, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("expected 2 vertex-disjoint paths, got %v", n)
	}
}
