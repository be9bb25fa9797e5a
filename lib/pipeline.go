package lib

import (
	"io"
	"sort"
	"time"
)

// Pipeline runs the fixed six-phase optimization sequence of spec.md
// 4.7 over a candidate graph, each phase consuming the topology the
// previous one produced. Grounded on the teacher's cmd/antgen/main.go
// optimize loop (generate -> evaluate -> accept/reject -> repeat until
// convergence), generalized from a single-objective geometry search to
// a fixed phase sequence with its own feasibility-recovery rule per
// phase rather than one shared convergence test.
type Pipeline struct {
	Graph  *CandidateGraph
	Cfg    *Config
	Solver Solver

	Weight LinkWeightFunc
	Rank   AdversarialRankFunc

	// LPDump, when Cfg.DebugLPDump is set, receives one LP-format dump
	// per solver invocation (spec.md 4.6 "the adapter's only permitted
	// side effect").
	LPDump io.Writer

	// DB, if non-nil, receives a Topology snapshot after every phase
	// (spec.md 6 "also persists per-phase Topology snapshots for
	// resumability").
	DB    *Database
	RunID string
}

// NewPipeline returns a Pipeline with the built-in (non-scripted)
// weight and ranking functions.
func NewPipeline(graph *CandidateGraph, cfg *Config, solver Solver) *Pipeline {
	return &Pipeline{
		Graph:  graph,
		Cfg:    cfg,
		Solver: solver,
		Weight: DefaultLinkWeight,
		Rank:   DefaultAdversarialRank,
	}
}

// Run executes phases 1-6 in order and returns the final topology
// together with the Flow Analyzer's result.
func (p *Pipeline) Run() (*Topology, FlowAnalysis, error) {
	t := NewTopology(p.Graph)

	if p.Cfg.NumberOfExtraPOPs > 0 {
		var err error
		t, err = p.proposePOPs(t)
		if err != nil {
			return nil, FlowAnalysis{}, err
		}
		p.snapshot(t, "pop_proposal", 1)
	}

	t, connected, err := p.connectedDemandSites(t)
	if err != nil {
		return nil, FlowAnalysis{}, err
	}
	p.snapshot(t, "connected_demand", 2)

	t, err = p.minCostBaseNetwork(t, connected)
	if err != nil {
		return nil, FlowAnalysis{}, err
	}
	p.snapshot(t, "base_network", 3)

	t, err = p.redundancy(t)
	if err != nil {
		return nil, FlowAnalysis{}, err
	}
	p.snapshot(t, "redundancy", 4)

	t, err = p.interferenceMinimization(t)
	if err != nil {
		return nil, FlowAnalysis{}, err
	}
	p.snapshot(t, "interference_minimization", 5)

	analysis, err := AnalyzeFlow(t, p.Cfg.PopCapacityGbps, p.Cfg.TopologyRouting)
	if err != nil {
		return nil, FlowAnalysis{}, err
	}
	return t, analysis, nil
}

func (p *Pipeline) snapshot(t *Topology, phase string, seq int) {
	if p.DB == nil {
		return
	}
	_ = p.DB.PutSnapshot(p.RunID, phase, seq, t)
}

func (p *Pipeline) limits(phase string) SolveParams {
	l := p.Cfg.LimitsFor(phase)
	return SolveParams{
		RelGap:      l.RelGap,
		TimeLimit:   time.Duration(l.MaxTimeMinutes * float64(time.Minute)),
		ThreadCount: 1,
	}
}

// solve runs prob through the configured Solver, dumps its LP form
// when debug mode is on, and maps a bad outcome to the typed errors of
// spec.md 7: Infeasible, or SolverTimeout when the solver ran out of
// time with no usable incumbent (spec.md 4.7 "feasibility recovery").
// A timeout that *did* produce an incumbent is treated as a normal
// solution, per spec.md 4.6's adapter contract.
func (p *Pipeline) solve(phase string, prob Problem) (Solution, error) {
	if p.Cfg.DebugLPDump && p.LPDump != nil {
		_ = prob.WriteLP(p.LPDump)
	}
	sol, err := p.Solver.Solve(prob, p.limits(phase))
	if err != nil {
		return sol, err
	}
	switch sol.Status {
	case StatusInfeasible:
		return sol, &Infeasible{Phase: phase, Detail: "no feasible assignment"}
	case StatusTimedOut:
		if len(sol.Values) == 0 {
			return sol, &SolverTimeout{Phase: phase, HasIncumbent: false}
		}
	}
	return sol, nil
}

//----------------------------------------------------------------------
// Phase 1: POP proposal.

// proposePOPs solves the single-hop coverage-maximization knapsack of
// spec.md 4.7 phase 1: pick the NumberOfExtraPOPs candidate DNs whose
// directly-attached demand sums the most, and promote them to POP
// sites between phases (spec.md 5 permits graph mutation between
// phases, never during a solve).
func (p *Pipeline) proposePOPs(t *Topology) (*Topology, error) {
	type candidate struct {
		site    *Site
		gbps    float64
	}
	coverage := make(map[SiteID]float64)
	for _, d := range p.Graph.Demands() {
		for _, c := range d.Connections {
			coverage[c] += d.DemandGbps
		}
	}
	var candidates []candidate
	for _, s := range p.Graph.Sites() {
		if s.Type != DN {
			continue
		}
		candidates = append(candidates, candidate{site: s, gbps: coverage[s.ID]})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].gbps != candidates[j].gbps {
			return candidates[i].gbps > candidates[j].gbps
		}
		return candidates[i].site.ID.Less(candidates[j].site.ID)
	})

	k := p.Cfg.NumberOfExtraPOPs
	if k > len(candidates) {
		k = len(candidates)
	}
	for i := 0; i < k; i++ {
		candidates[i].site.Type = POP
	}
	return t, nil
}

//----------------------------------------------------------------------
// Phase 2: connected demand site optimization.

// connectedDemandSites maximizes the count of demand sites whose full
// demand can be served (zero shortfall), subject to flow balance/capacity/site
// gating and the site-selection-phase polarity proxy (spec.md 4.7
// phase 2: "M >= |S_DEM|"). A demand site's binary "connected_d"
// indicator is linked to its shortfall by a big-M constraint: phi_d <=
// d_gbps*(1-connected_d), so connected_d can only be 1 once phi_d is
// driven to 0.
func (p *Pipeline) connectedDemandSites(t *Topology) (*Topology, []SiteID, error) {
	links := SortLinks(p.Graph.Links())
	demands := p.Graph.Demands()
	channels := p.channels()
	bigM := float64(len(demands))

	b := NewProblemBuilder("connected_demand")
	EmitFlowBalance(b, p.Graph, demands, p.Cfg.PopCapacityGbps)
	EmitFlowCapacity(b, links, channels)
	EmitFlowSiteGating(b, p.Graph, bigM)
	EmitPolarityProxy(b, links, channels)

	var objTerms []Term
	for _, d := range demands {
		connected := "connected_" + d.ID.String()
		b.Var(connected, Binary, 0, 1)
		b.Constraint("connected_gate_"+d.ID.String(), LE, d.DemandGbps,
			Term{Var: varShortfall(d.ID), Coef: 1}, Term{Var: connected, Coef: d.DemandGbps})
		objTerms = append(objTerms, Term{Var: connected, Coef: 1})
	}
	b.SetObjective(false, objTerms...)

	sol, err := p.solve("connected_demand", b.Build())
	if err != nil {
		return nil, nil, err
	}

	out := t.Clone()
	for _, d := range demands {
		out.Shortfall[d.ID] = sol.Extract(varShortfall(d.ID))
	}
	var connected []SiteID
	for _, d := range demands {
		if sol.Extract("connected_"+d.ID.String()) > 0.5 {
			connected = append(connected, d.ID)
		}
	}
	return out, SortSiteIDs(connected), nil
}

//----------------------------------------------------------------------
// Phase 3: minimum-cost base network.

// minCostBaseNetwork selects sites and sectors minimizing
// Σ(c_i + Σ c̃_{i,k})s_i subject to a coverage floor parameterized by
// γ, stepping γ down from 1.0 until a feasible assignment exists
// (spec.md 4.7 phase 3). connected is the set of demand sites phase 2
// found reachable at all; the coverage floor is only meaningful over
// that set.
func (p *Pipeline) minCostBaseNetwork(t *Topology, connected []SiteID) (*Topology, error) {
	links := SortLinks(p.Graph.Links())
	demands := filterDemands(p.Graph.Demands(), connected)
	channels := p.channels()
	totalDemand := 0.0
	for _, d := range demands {
		totalDemand += d.DemandGbps
	}

	var lastErr error
	for gamma := 1.0; gamma >= 0; gamma -= 0.1 {
		b := NewProblemBuilder("base_network")
		EmitFlowBalance(b, p.Graph, demands, p.Cfg.PopCapacityGbps)
		EmitFlowCapacity(b, links, channels)
		EmitFlowSiteGating(b, p.Graph, totalDemand+1)
		EmitPolarityProxy(b, links, channels)
		EmitSectorNodeCoupling(b, p.Graph)
		EmitCoLocation(b, p.Graph.Sites())

		shortfallTerms := make([]Term, 0, len(demands))
		for _, d := range demands {
			shortfallTerms = append(shortfallTerms, Term{Var: varShortfall(d.ID), Coef: 1})
		}
		b.Constraint("coverage_floor", LE, (1-gamma)*totalDemand, shortfallTerms...)

		var objTerms []Term
		for _, s := range p.Graph.Sites() {
			b.Var(varSite(s.ID), Binary, 0, 1)
			objTerms = append(objTerms, Term{Var: varSite(s.ID), Coef: p.Cfg.SiteCapex})
		}
		seenNode := make(map[SiteID]map[int]bool)
		for _, sec := range p.Graph.Sectors() {
			if seenNode[sec.Site] == nil {
				seenNode[sec.Site] = make(map[int]bool)
			}
			if seenNode[sec.Site][sec.Node] {
				continue
			}
			seenNode[sec.Site][sec.Node] = true
			b.Var(varSector(sec.ID, 0), Binary, 0, 1)
			objTerms = append(objTerms, Term{Var: varSector(sec.ID, 0), Coef: p.Cfg.SectorCapex})
		}
		b.SetObjective(true, objTerms...)

		sol, err := p.solve("base_network", b.Build())
		if err != nil {
			lastErr = err
			continue
		}
		out := t.Clone()
		for _, s := range p.Graph.Sites() {
			if sol.Extract(varSite(s.ID)) > 0.5 {
				out.SiteState[s.ID] = StateProposed
			}
		}
		for _, sec := range p.Graph.Sectors() {
			if sol.Extract(varSector(sec.ID, 0)) > 0.5 {
				out.SectorState[sec.ID] = StateProposed
			}
		}
		for _, d := range demands {
			out.Shortfall[d.ID] = sol.Extract(varShortfall(d.ID))
		}
		return out, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &Infeasible{Phase: "base_network", Detail: "no gamma in [0,1] admits a feasible base network"}
}

func filterDemands(all []*DemandSite, keep []SiteID) []*DemandSite {
	set := make(map[SiteID]bool, len(keep))
	for _, id := range keep {
		set[id] = true
	}
	var out []*DemandSite
	for _, d := range all {
		if set[d.ID] {
			out = append(out, d)
		}
	}
	return out
}

//----------------------------------------------------------------------
// Phase 4: redundancy.

// redundancy dispatches to the legacy coverage-maximization method or
// the min-cost-with-redundancy method per Cfg.EnableLegacyRedundancy
// (spec.md 4.7 phase 4).
func (p *Pipeline) redundancy(t *Topology) (*Topology, error) {
	if p.Cfg.EnableLegacyRedundancy {
		return p.legacyRedundancy(t)
	}
	return p.minCostRedundancy(t)
}

// legacyRedundancy ranks selected links with p.Rank, passing each
// link's maximum throughput (Gbps) as its outage-impact value (the
// shortfall a removal would cause is not computed), forbids flow on
// the highest-ranked BackhaulRedundancyRatio fraction of them,
// then re-solves a coverage-maximization problem under BUDGET (spec.md
// 4.7 phase 4 "Legacy").
func (p *Pipeline) legacyRedundancy(t *Topology) (*Topology, error) {
	selected := SortLinks(t.SelectedLinks())
	type ranked struct {
		link *Link
		rank float64
	}
	var rs []ranked
	for _, l := range selected {
		rs = append(rs, ranked{l, p.Rank(l, maxThroughput(l))})
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].rank > rs[j].rank })

	forbidden := make(map[LinkID]bool)
	cut := int(float64(len(rs)) * clamp01(p.Cfg.BackhaulRedundancyRatio))
	for i := 0; i < cut && i < len(rs); i++ {
		forbidden[rs[i].link.ID] = true
	}

	links := SortLinks(p.Graph.Links())
	demands := p.Graph.Demands()
	channels := p.channels()

	b := NewProblemBuilder("legacy_redundancy")
	EmitFlowBalance(b, p.Graph, demands, p.Cfg.PopCapacityGbps)
	EmitFlowCapacity(b, links, channels)
	EmitFlowSiteGating(b, p.Graph, float64(len(demands)+1))
	EmitPolarityLinkGated(b, links, channels)
	EmitSectorNodeCoupling(b, p.Graph)
	EmitSymmetricBackhaul(b, links)
	EmitP2MP(b, p.Graph, p.Cfg.DNDNSectorLimit, p.Cfg.DNTotalSectorLimit)
	EmitCoLocation(b, p.Graph.Sites())

	for _, l := range links {
		if forbidden[l.ID] {
			b.Constraint("forbid_flow_"+l.ID.String(), EQ, 0, Term{Var: varFlow(l.ID), Coef: 1})
		}
	}

	budgetTerms := make([]Term, 0, len(p.Graph.Sites()))
	for _, s := range p.Graph.Sites() {
		b.Var(varSite(s.ID), Binary, 0, 1)
		budgetTerms = append(budgetTerms, Term{Var: varSite(s.ID), Coef: p.Cfg.SiteCapex})
	}
	for _, l := range links {
		budgetTerms = append(budgetTerms, Term{Var: varLink(l.ID), Coef: p.Cfg.SectorCapex})
	}
	b.Constraint("budget", LE, p.Cfg.BudgetUSD, budgetTerms...)

	var objTerms []Term
	for _, d := range demands {
		objTerms = append(objTerms, Term{Var: varShortfall(d.ID), Coef: -1})
	}
	b.SetObjective(false, objTerms...)

	sol, err := p.solve("legacy_redundancy", b.Build())
	if err != nil {
		return nil, err
	}
	return applyLinkSiteSolution(t, p.Graph, sol), nil
}

// minCostRedundancy prunes the candidate link set with Delaunay
// triangulation + max-flow site-disjoint-path counting, then solves
// the two-phase {minimize shortage, then minimize cost at that
// shortage} problem of spec.md 4.7 phase 4 "Min-cost with redundancy".
func (p *Pipeline) minCostRedundancy(t *Topology) (*Topology, error) {
	pruned, err := p.delaunayPrune()
	if err != nil {
		return nil, err
	}
	demands := p.Graph.Demands()
	channels := p.channels()
	capPOP, capDN, capSink := redundancyCaps(p.Cfg.RedundancyLevel)

	buildBase := func(phase string) *ProblemBuilder {
		b := NewProblemBuilder(phase)
		EmitFlowBalance(b, p.Graph, demands, p.Cfg.PopCapacityGbps*capPOP)
		EmitFlowCapacity(b, pruned, channels)
		EmitFlowSiteGating(b, p.Graph, float64(len(demands)+1))
		EmitPolarityLinkGated(b, pruned, channels)
		EmitSymmetricBackhaul(b, pruned)
		EmitP2MP(b, p.Graph, p.Cfg.DNDNSectorLimit, p.Cfg.DNTotalSectorLimit)
		for _, s := range p.Graph.Sites() {
			cap := capSink
			if s.Type == DN {
				cap = capDN
			}
			in := p.Graph.LinksTo(s.ID)
			if len(in) == 0 {
				continue
			}
			terms := make([]Term, 0, len(in))
			for _, l := range in {
				b.Var(varFlow(l.ID), Continuous, 0, maxThroughput(l))
				terms = append(terms, Term{Var: varFlow(l.ID), Coef: 1})
			}
			b.Constraint("redundancy_cap_"+s.ID.String(), LE, cap, terms...)
		}
		return b
	}

	shortageBuilder := buildBase("redundancy_shortage")
	var shortageTerms []Term
	for _, d := range demands {
		shortageTerms = append(shortageTerms, Term{Var: varShortfall(d.ID), Coef: 1})
	}
	shortageBuilder.SetObjective(true, shortageTerms...)
	shortageSol, err := p.solve("redundancy_shortage", shortageBuilder.Build())
	if err != nil {
		return nil, err
	}

	costBuilder := buildBase("redundancy_cost")
	for _, d := range demands {
		v := shortageSol.Extract(varShortfall(d.ID))
		costBuilder.Constraint("fix_shortage_"+d.ID.String(), EQ, v, Term{Var: varShortfall(d.ID), Coef: 1})
	}
	var costTerms []Term
	for _, l := range pruned {
		costBuilder.Var(varLink(l.ID), Binary, 0, 1)
		costTerms = append(costTerms, Term{Var: varLink(l.ID), Coef: p.Cfg.SectorCapex})
	}
	costBuilder.SetObjective(true, costTerms...)
	costSol, err := p.solve("redundancy_cost", costBuilder.Build())
	if err != nil {
		return nil, err
	}

	return applyLinkSiteSolution(t, p.Graph, costSol), nil
}

// delaunayPrune restricts the candidate link set to pairs that survive
// Delaunay triangulation over DN coordinates plus a site-disjoint-path
// floor: 4 paths between a POP and a DN, 2 between DN neighbors
// (spec.md 9).
func (p *Pipeline) delaunayPrune() ([]*Link, error) {
	var dnSites []*Site
	for _, s := range p.Graph.Sites() {
		if s.Type == DN || s.Type == POP {
			dnSites = append(dnSites, s)
		}
	}
	dnSites = SortSites(dnSites)
	points := make([]Vec2, len(dnSites))
	for i, s := range dnSites {
		points[i] = Vec2{s.Lon, s.Lat}
	}
	edges := Triangulate(points)

	allowed := make(map[[2]SiteID]bool, len(edges))
	allLinks := SortLinks(p.Graph.Links())
	for _, e := range edges {
		a, b := dnSites[e.A].ID, dnSites[e.B].ID
		required := 2
		if dnSites[e.A].Type == POP || dnSites[e.B].Type == POP {
			required = 4
		}
		n, err := VertexDisjointPaths(allLinks, a, b)
		if err != nil {
			return nil, err
		}
		if n < required {
			continue
		}
		allowed[[2]SiteID{a, b}] = true
		allowed[[2]SiteID{b, a}] = true
	}

	var pruned []*Link
	for _, l := range allLinks {
		fromSite, _ := p.Graph.Site(l.From)
		toSite, _ := p.Graph.Site(l.To)
		if fromSite == nil || toSite == nil {
			continue
		}
		if (fromSite.Type != DN && fromSite.Type != POP) || (toSite.Type != DN && toSite.Type != POP) {
			pruned = append(pruned, l) // access links (DN->CN) are never Delaunay-pruned
			continue
		}
		if allowed[[2]SiteID{l.From, l.To}] {
			pruned = append(pruned, l)
		}
	}
	return SortLinks(pruned), nil
}

func redundancyCaps(level RedundancyLevel) (pop, dn, sink float64) {
	switch level {
	case RedundancyHigh:
		return 1.5, 1.5, 1.5
	case RedundancyMedium:
		return 1.25, 1.25, 1.25
	default:
		return 1.0, 1.0, 1.0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func applyLinkSiteSolution(t *Topology, graph *CandidateGraph, sol Solution) *Topology {
	out := t.Clone()
	for _, l := range graph.Links() {
		if sol.Extract(varLink(l.ID)) > 0.5 {
			out.LinkState[l.ID] = StateProposed
			out.SiteState[l.From] = StateProposed
			out.SiteState[l.To] = StateProposed
		}
	}
	for _, d := range graph.Demands() {
		out.Shortfall[d.ID] = sol.Extract(varShortfall(d.ID))
	}
	return out
}

//----------------------------------------------------------------------
// Phase 5: interference minimization.

// interferenceMinimization selects the final link, sector/channel,
// time-division, MCS, chi and zeta assignment (spec.md 4.7 phase 5).
// The objective trades off residual shortfall against total
// (weighted) selected-link length: min(M*Σφ_i - Σw_{i,j}ℓ_{i,j}), or,
// when MaximizeCommonBandwidth is set, the max-min variant realized by
// maximizing a shared bandwidth floor variable bound by every selected
// link's weighted capacity.
func (p *Pipeline) interferenceMinimization(t *Topology) (*Topology, error) {
	links := SortLinks(t.SelectedLinks())
	if len(links) == 0 {
		links = SortLinks(p.Graph.Links())
	}
	demands := p.Graph.Demands()
	channels := p.channels()

	b := NewProblemBuilder("interference_minimization")
	EmitFlowBalance(b, p.Graph, demands, p.Cfg.PopCapacityGbps)
	EmitFlowCapacity(b, links, channels)
	EmitFlowSiteGating(b, p.Graph, float64(len(demands)+1))
	EmitPolarityLinkGated(b, links, channels)
	EmitTimeDivision(b, p.Graph, channels)
	EmitSectorNodeCoupling(b, p.Graph)
	EmitSymmetricBackhaul(b, links)
	EmitP2MP(b, p.Graph, p.Cfg.DNDNSectorLimit, p.Cfg.DNTotalSectorLimit)
	EmitDeploymentGeometry(b, p.Graph, p.Cfg.DiffSectorAngleLimitDeg, p.Cfg.NearFarAngleLimitDeg, p.Cfg.NearFarLengthRatio, channels)
	EmitCoLocation(b, p.Graph.Sites())
	noisePowerMw := dbmToMw(p.Cfg.Radio.ThermalNoiseDBm + p.Cfg.Radio.NoiseFigureDB)
	EmitSINRClassification(b, links, noisePowerMw, channels)
	for _, l := range links {
		for _, it := range l.Interference {
			interferer, ok := p.Graph.Link(it.From)
			if !ok {
				continue
			}
			for c := 0; c < channels; c++ {
				EmitChiLinearization(b, l.To, interferer.From, interferer.To, c)
			}
		}
	}

	bigM := 0.0
	for _, d := range demands {
		bigM += d.DemandGbps
	}
	bigM++

	if p.Cfg.MaximizeCommonBandwidth {
		b.Var("common_bandwidth", Continuous, 0, bigM)
		for _, l := range links {
			b.Constraint("common_bw_cap_"+l.ID.String(), LE, 0,
				Term{Var: "common_bandwidth", Coef: 1}, Term{Var: varLink(l.ID), Coef: -p.Weight(l) * maxThroughput(l)})
		}
		b.SetObjective(false, Term{Var: "common_bandwidth", Coef: 1})
	} else {
		var objTerms []Term
		for _, d := range demands {
			objTerms = append(objTerms, Term{Var: varShortfall(d.ID), Coef: bigM})
		}
		for _, l := range links {
			objTerms = append(objTerms, Term{Var: varLink(l.ID), Coef: -p.Weight(l)})
		}
		b.SetObjective(true, objTerms...)
	}

	sol, err := p.solve("interference_minimization", b.Build())
	if err != nil {
		return nil, err
	}

	out := t.Clone()
	for _, l := range links {
		if sol.Extract(varLink(l.ID)) > 0.5 {
			out.LinkState[l.ID] = StateProposed
		} else {
			out.LinkState[l.ID] = StateCandidate
		}
		for c := 0; c < channels; c++ {
			out.Tau[l.ID] += sol.Extract(varTau(l.ID, c))
			for m := range l.Capacity.Rows {
				if sol.Extract(varMCS(l.ID, c, m)) > 0.5 {
					out.MCSClass[l.ID] = m
				}
			}
		}
	}
	for _, sec := range p.Graph.Sectors() {
		for c := 0; c < channels; c++ {
			if sol.Extract(varSector(sec.ID, c)) > 0.5 {
				out.Channel[sec.ID] = c
				out.SectorState[sec.ID] = StateProposed
			}
		}
	}
	for _, s := range p.Graph.Sites() {
		if sol.Extract(varPolarity(s.ID)) > 0.5 {
			out.Polarity[s.ID] = 1
		}
	}
	for _, d := range demands {
		out.Shortfall[d.ID] = sol.Extract(varShortfall(d.ID))
	}
	return out, nil
}

func (p *Pipeline) channels() int {
	if p.Cfg.NumberOfChannels < 1 {
		return 1
	}
	return p.Cfg.NumberOfChannels
}
