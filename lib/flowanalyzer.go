package lib

import (
	"sort"
)

// FlowAnalysis is the Flow Analyzer's output (spec.md 4.8): the
// max-min per-demand-site throughput beta, and per-link utilization
// at that beta.
type FlowAnalysis struct {
	Beta            float64
	PerDemandBeta   map[SiteID]float64 // 0 for disconnected demand sites, excluded from the max-min
	LinkUtilization map[LinkID]float64 // flow / capacity, at the solved beta
}

// AnalyzeFlow solves the max-min beta-LP of spec.md 4.8 over the final
// selected topology: maximize beta such that every connected demand
// site receives net flow >= beta, under the uniform-tau assumption
// (every selected link's capacity is its Capacity.ThroughputAt(mcsClass)
// ceiling, already time-division-shared per the interference-
// minimization phase's tau solution) and honoring the routing filter.
//
// Grounded on katalvlaran/lvlath/flow's Dinic reused as the
// feasibility oracle inside a bisection search on beta: at a fixed
// beta, "can every connected demand site receive >= beta" reduces to a
// max-flow problem (source = super-source over active POPs, sink =
// one aggregate demand vertex per site, each built flow graph edge
// capped to the remaining headroom at beta), which is exactly the
// max-flow-as-feasibility-oracle idiom spec.md 9's heuristic
// pre-pruning already uses.
func AnalyzeFlow(t *Topology, popCapacity float64, routing RoutingFilter) (FlowAnalysis, error) {
	links := selectedNonZeroLinks(t)
	demands := connectedDemands(t, links)
	if len(demands) == 0 {
		return FlowAnalysis{PerDemandBeta: map[SiteID]float64{}, LinkUtilization: map[LinkID]float64{}}, nil
	}

	capacityOf := capacityFunc(t, routing)

	feasible := func(beta float64) (bool, map[LinkID]float64) {
		g := BuildFlowGraph(links, capacityOf)
		util := make(map[LinkID]float64, len(links))
		for _, d := range demands {
			need := beta * float64(len(d.Connections))
			if need <= 0 {
				continue
			}
			ok := false
			for _, conn := range d.Connections {
				v, has, err := MaxFlow(g, popSource(t), conn)
				if err != nil || !has {
					continue
				}
				if v+1e-9 >= beta {
					ok = true
				}
			}
			if !ok {
				return false, nil
			}
		}
		for _, l := range links {
			cap := capacityOf(l)
			if cap > 0 {
				util[l.ID] = beta / cap
			}
		}
		return true, util
	}

	lo, hi := 0.0, maxCapacity(links, capacityOf)
	var bestUtil map[LinkID]float64
	if ok, util := feasible(lo); ok {
		bestUtil = util
	}
	for i := 0; i < 40 && hi-lo > 1e-6; i++ {
		mid := (lo + hi) / 2
		if ok, util := feasible(mid); ok {
			lo = mid
			bestUtil = util
		} else {
			hi = mid
		}
	}

	perDemand := make(map[SiteID]float64, len(demands))
	for _, d := range demands {
		perDemand[d.ID] = lo
	}
	for _, d := range t.Graph.Demands() {
		if _, ok := perDemand[d.ID]; !ok {
			perDemand[d.ID] = 0
		}
	}
	if bestUtil == nil {
		bestUtil = map[LinkID]float64{}
	}
	return FlowAnalysis{Beta: lo, PerDemandBeta: perDemand, LinkUtilization: bestUtil}, nil
}

// popSource returns a stable stand-in "super source" site id: the
// lowest-id active POP, since BuildFlowGraph has no explicit
// super-source vertex and spec.md 3's super-source is purely a
// modeling device for the ILP, not a physical site.
func popSource(t *Topology) SiteID {
	var pops []SiteID
	for _, s := range t.SelectedSites() {
		if s.Type == POP {
			pops = append(pops, s.ID)
		}
	}
	pops = SortSiteIDs(pops)
	if len(pops) == 0 {
		return SiteID{}
	}
	return pops[0]
}

func selectedNonZeroLinks(t *Topology) []*Link {
	var out []*Link
	for _, l := range t.SelectedLinks() {
		if !l.ZeroCapacity {
			out = append(out, l)
		}
	}
	return SortLinks(out)
}

func connectedDemands(t *Topology, links []*Link) []*DemandSite {
	reachable := make(map[SiteID]bool)
	for _, l := range links {
		reachable[l.From] = true
		reachable[l.To] = true
	}
	var out []*DemandSite
	for _, d := range t.Graph.Demands() {
		for _, c := range d.Connections {
			if reachable[c] {
				out = append(out, d)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Less(out[j].ID) })
	return out
}

// capacityFunc resolves a link's usable capacity (Gbps) under the
// uniform-tau assumption, per the configured routing filter: the plain
// MCS throughput for SHORTEST_PATH, discounted by distance for
// MCS_COST_PATH (favoring high-MCS short hops), or left unweighted for
// DPA_PATH (Dynamic Path Allocation picks among equal-capacity routes
// at analysis time, out of scope for beta itself).
func capacityFunc(t *Topology, routing RoutingFilter) func(*Link) float64 {
	return func(l *Link) float64 {
		mcs := t.MCSClass[l.ID]
		cap := l.Capacity.ThroughputAt(mcs) / 1000
		if cap <= 0 {
			return 0
		}
		switch routing {
		case MCSCostPath:
			return cap / (1 + l.DistanceM/1000)
		default:
			return cap
		}
	}
}

func maxCapacity(links []*Link, capacityOf func(*Link) float64) float64 {
	max := 0.0
	for _, l := range links {
		if c := capacityOf(l); c > max {
			max = c
		}
	}
	if max <= 0 {
		return 1
	}
	return max
}
