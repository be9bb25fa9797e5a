package lib

import (
	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/flow"
)

// flowScale converts a Gbps capacity into the integer milli-Gbps units
// lvlath/flow's Dinic implementation (integer-weighted core.Graph
// edges) expects, and back. Spec.md 9's heuristic pre-pruning assumes
// "integer unit capacities"; milli-Gbps is a fine enough grid that the
// rounding never changes which candidate pairs survive pruning.
const flowScale = 1000.0

// BuildFlowGraph materializes a directed, weighted core.Graph over
// every site referenced by links, one vertex per site, one edge per
// link with the capacity capacityOf returns (Gbps). Used both by the
// redundancy phase's max-flow pre-pruning and by the Flow Analyzer's
// beta-feasibility bisection (spec.md 4.7, 4.8), grounded on
// katalvlaran/lvlath/flow's Dinic as a real published dependency
// exercising the pack's graph/flow algorithms directly.
func BuildFlowGraph(links []*Link, capacityOf func(*Link) float64) *core.Graph {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges())
	for _, l := range links {
		cap := capacityOf(l)
		if cap <= 0 {
			continue
		}
		from, to := l.From.String(), l.To.String()
		if !g.HasVertex(from) {
			_ = g.AddVertex(from)
		}
		if !g.HasVertex(to) {
			_ = g.AddVertex(to)
		}
		_, _ = g.AddEdge(from, to, int64(cap*flowScale))
	}
	return g
}

// MaxFlow returns the Dinic max flow from source to sink over g, in
// Gbps. ok is false if either endpoint is absent from g (disconnected
// from every link under consideration).
func MaxFlow(g *core.Graph, source, sink SiteID) (value float64, ok bool, err error) {
	s, t := source.String(), sink.String()
	if !g.HasVertex(s) || !g.HasVertex(t) {
		return 0, false, nil
	}
	mf, _, err := flow.Dinic(g, s, t, flow.FlowOptions{})
	if err != nil {
		return 0, false, err
	}
	return mf / flowScale, true, nil
}

// VertexDisjointPaths counts the maximum number of site-disjoint paths
// between source and sink over the given links, by the standard
// vertex-splitting trick: every intermediate site becomes an "in" and
// an "out" vertex joined by a unit-capacity edge, so a unit max-flow
// value equals the vertex-disjoint path count (spec.md 9: "Max-flow
// site-splitting uses integer unit capacities"). Used to pre-prune the
// redundancy phase's candidate DN/POP pairs before they enter the ILP.
func VertexDisjointPaths(links []*Link, source, sink SiteID) (int, error) {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges())
	inOf := func(id SiteID) string { return id.String() + "#in" }
	outOf := func(id SiteID) string { return id.String() + "#out" }
	ensureSplit := func(id SiteID) {
		if !g.HasVertex(inOf(id)) {
			_ = g.AddVertex(inOf(id))
			_ = g.AddVertex(outOf(id))
			cap := int64(1)
			if id == source || id == sink {
				cap = int64(len(links)) + 1 // endpoints themselves are not the bottleneck
			}
			_, _ = g.AddEdge(inOf(id), outOf(id), cap)
		}
	}
	for _, l := range links {
		ensureSplit(l.From)
		ensureSplit(l.To)
		_, _ = g.AddEdge(outOf(l.From), inOf(l.To), 1)
	}
	if !g.HasVertex(inOf(source)) || !g.HasVertex(inOf(sink)) {
		return 0, nil
	}
	mf, _, err := flow.Dinic(g, inOf(source), outOf(sink), flow.FlowOptions{})
	if err != nil {
		return 0, err
	}
	return int(mf), nil
}
