package lib

import (
	"fmt"
	"io"
	"sort"
)

// VarKind distinguishes binary decision variables from the continuous
// ones (flow, time-division share, shortfall) spec.md 4.5 also needs.
type VarKind int

const (
	Binary VarKind = iota
	Continuous
)

// Variable is one column of the ILP (spec.md 4.5).
type Variable struct {
	Name string
	Kind VarKind
	Lo   float64
	Hi   float64
}

// Sense is a constraint's comparison operator.
type Sense int

const (
	LE Sense = iota
	GE
	EQ
)

func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "="
	}
}

// Term is one coefficient*variable addend of a constraint or objective.
type Term struct {
	Var  string
	Coef float64
}

// Constraint is one row of the ILP.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Objective is the problem's linear objective.
type Objective struct {
	Terms    []Term
	Minimize bool
}

// Problem is the solver-agnostic description the Solver Adapter
// consumes (spec.md 4.6: "build(variables, constraints, objective) ->
// Problem"). It never references CandidateGraph/Topology: by the time
// a Problem exists, every quantity has been reduced to plain
// variables and linear rows.
type Problem struct {
	Phase       string
	Vars        []Variable
	Constraints []Constraint
	Obj         Objective
}

// WriteLP renders the problem in CPLEX LP format, the adapter's only
// permitted side effect when debug mode is requested (spec.md 4.6).
// Variables and constraints are written in the order they were added,
// which is already the canonical deterministic order every builder
// below produces, so two runs over identical input byte-match
// (spec.md 8.1).
func (p *Problem) WriteLP(w io.Writer) error {
	dir := "Minimize"
	if !p.Obj.Minimize {
		dir = "Maximize"
	}
	if _, err := fmt.Fprintf(w, "\\ Problem: %s\n%s\n obj: %s\n", p.Phase, dir, formatTerms(p.Obj.Terms)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Subject To\n"); err != nil {
		return err
	}
	for _, c := range p.Constraints {
		if _, err := fmt.Fprintf(w, " %s: %s %s %g\n", c.Name, formatTerms(c.Terms), c.Sense, c.RHS); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Bounds\n"); err != nil {
		return err
	}
	for _, v := range p.Vars {
		if v.Kind == Binary {
			continue
		}
		if _, err := fmt.Fprintf(w, " %g <= %s <= %g\n", v.Lo, v.Name, v.Hi); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Binaries\n"); err != nil {
		return err
	}
	for _, v := range p.Vars {
		if v.Kind != Binary {
			continue
		}
		if _, err := fmt.Fprintf(w, " %s\n", v.Name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "End\n")
	return err
}

func formatTerms(terms []Term) string {
	s := ""
	for i, t := range terms {
		sign := "+"
		coef := t.Coef
		if coef < 0 {
			sign = "-"
			coef = -coef
		}
		if i == 0 && sign == "+" {
			s += fmt.Sprintf("%g %s", coef, t.Var)
		} else {
			s += fmt.Sprintf(" %s %g %s", sign, coef, t.Var)
		}
	}
	if s == "" {
		return "0"
	}
	return s
}

// ProblemBuilder accumulates variables and constraints in the order
// they are added, the canonical order mandated by spec.md 5 as long
// as every caller first sorts the graph entities it iterates over
// (which CandidateGraph's accessors already do).
type ProblemBuilder struct {
	phase   string
	varSeen map[string]bool
	prob    Problem
}

// NewProblemBuilder starts a builder for the named phase.
func NewProblemBuilder(phase string) *ProblemBuilder {
	return &ProblemBuilder{phase: phase, varSeen: make(map[string]bool), prob: Problem{Phase: phase}}
}

// Var registers a variable if not already present; idempotent so
// constraint emitters can declare a variable inline without tracking
// whether a sibling emitter already did.
func (b *ProblemBuilder) Var(name string, kind VarKind, lo, hi float64) {
	if b.varSeen[name] {
		return
	}
	b.varSeen[name] = true
	b.prob.Vars = append(b.prob.Vars, Variable{Name: name, Kind: kind, Lo: lo, Hi: hi})
}

// Constraint appends a row.
func (b *ProblemBuilder) Constraint(name string, sense Sense, rhs float64, terms ...Term) {
	b.prob.Constraints = append(b.prob.Constraints, Constraint{Name: name, Terms: terms, Sense: sense, RHS: rhs})
}

// SetObjective replaces the objective.
func (b *ProblemBuilder) SetObjective(minimize bool, terms ...Term) {
	b.prob.Obj = Objective{Terms: terms, Minimize: minimize}
}

// Build returns the finished, solver-ready problem.
func (b *ProblemBuilder) Build() Problem { return b.prob }

//----------------------------------------------------------------------
// Variable-name helpers (spec.md 4.5). Every name is a deterministic
// function of stable entity ids, never of iteration order.

func varSite(i SiteID) string                      { return "s_" + i.String() }
func varSector(k SectorID, c int) string           { return fmt.Sprintf("sigma_%s_%d", k.String(), c) }
func varLink(l LinkID) string                      { return "ell_" + l.String() }
func varPolarity(i SiteID) string                   { return "p_" + i.String() }
func varFlow(l LinkID) string                       { return "f_" + l.String() }
func varTau(l LinkID, c int) string                 { return fmt.Sprintf("tau_%s_%d", l.String(), c) }
func varShortfall(i SiteID) string                  { return "phi_" + i.String() }
func varMCS(l LinkID, c, m int) string              { return fmt.Sprintf("mu_%s_%d_%d", l.String(), c, m) }
func varChi(i SiteID, k, l SiteID, c int) string    { return fmt.Sprintf("chi_%s_%s_%s_%d", i, k, l, c) }
func varZeta(l LinkID, c int) string                { return fmt.Sprintf("zeta_%s_%d", l.String(), c) }

//----------------------------------------------------------------------
// Constraint family emitters. Each takes the graph/topology slice it
// needs (already sorted by the caller) plus the ids of the relevant
// ILP parameters, and appends its rows to b. Families are free
// functions, not methods, so a pipeline phase composes exactly the
// subset spec.md 4.7 calls for.

// EmitFlowBalance is constraint family 1: net flow is zero at
// POP/DN/CN, d_i-phi_i at demand sites, and the super-source feeds at
// most POP_CAPACITY per POP.
func EmitFlowBalance(b *ProblemBuilder, graph *CandidateGraph, demands []*DemandSite, popCapacity float64) {
	for _, s := range graph.Sites() {
		in := graph.LinksTo(s.ID)
		out := graph.LinksFrom(s.ID)
		terms := make([]Term, 0, len(in)+len(out))
		for _, l := range in {
			terms = append(terms, Term{Var: varFlow(l.ID), Coef: 1})
		}
		for _, l := range out {
			terms = append(terms, Term{Var: varFlow(l.ID), Coef: -1})
		}
		if s.Type == POP {
			// inflow - outflow >= -popCapacity: the super-source supplies at most popCapacity
			b.Constraint("flow_balance_"+s.ID.String(), GE, -popCapacity, terms...)
			continue
		}
		b.Constraint("flow_balance_"+s.ID.String(), EQ, 0, terms...)
	}
	for _, d := range demands {
		terms := []Term{{Var: varShortfall(d.ID), Coef: 1}}
		for _, c := range d.Connections {
			if l, ok := graph.Link(NewLinkID(c, d.ID)); ok {
				terms = append(terms, Term{Var: varFlow(l.ID), Coef: 1})
			}
		}
		b.Var(varShortfall(d.ID), Continuous, 0, d.DemandGbps)
		b.Constraint("flow_balance_demand_"+d.ID.String(), EQ, d.DemandGbps, terms...)
	}
}

// EmitFlowCapacity is constraint family 2: f_ij <= sum_c tau_ijc *
// t_ij, and f_ij <= sum_{c,m} mu_ijcm * throughput_m.
func EmitFlowCapacity(b *ProblemBuilder, links []*Link, channels int) {
	for _, l := range links {
		b.Var(varFlow(l.ID), Continuous, 0, maxThroughput(l))

		tauTerms := []Term{{Var: varFlow(l.ID), Coef: 1}}
		mcsTerms := []Term{{Var: varFlow(l.ID), Coef: 1}}
		for c := 0; c < channels; c++ {
			tauTerms = append(tauTerms, Term{Var: varTau(l.ID, c), Coef: -maxThroughput(l)})
			for m, row := range l.Capacity.Rows {
				mcsTerms = append(mcsTerms, Term{Var: varMCS(l.ID, c, m), Coef: -row.ThroughputMbps / 1000})
			}
		}
		b.Constraint(fmt.Sprintf("flow_cap_tau_%s", l.ID), LE, 0, tauTerms...)
		b.Constraint(fmt.Sprintf("flow_cap_mcs_%s", l.ID), LE, 0, mcsTerms...)
	}
}

func maxThroughput(l *Link) float64 {
	max := 0.0
	for _, r := range l.Capacity.Rows {
		if r.ThroughputMbps > max {
			max = r.ThroughputMbps
		}
	}
	return max / 1000 // Mbps -> Gbps, the flow unit spec.md 3/4.8 uses
}

// EmitFlowSiteGating is constraint family 3: incoming flow <= M*s_i.
func EmitFlowSiteGating(b *ProblemBuilder, graph *CandidateGraph, bigM float64) {
	for _, s := range graph.Sites() {
		in := graph.LinksTo(s.ID)
		if len(in) == 0 {
			continue
		}
		terms := make([]Term, 0, len(in)+1)
		for _, l := range in {
			terms = append(terms, Term{Var: varFlow(l.ID), Coef: 1})
		}
		b.Var(varSite(s.ID), Binary, 0, 1)
		terms = append(terms, Term{Var: varSite(s.ID), Coef: -bigM})
		b.Constraint("flow_gate_"+s.ID.String(), LE, 0, terms...)
	}
}

// EmitPolarityProxy is constraint family 4, the site-selection-phase
// form: tau <= p_i + p_j and tau <= 2 - p_i - p_j (gating the
// time-division share by a proxy for link selection before ell
// exists in the model).
func EmitPolarityProxy(b *ProblemBuilder, links []*Link, channels int) {
	for _, l := range links {
		b.Var(varPolarity(l.From), Binary, 0, 1)
		b.Var(varPolarity(l.To), Binary, 0, 1)
		for c := 0; c < channels; c++ {
			b.Var(varTau(l.ID, c), Continuous, 0, 1)
			b.Constraint(fmt.Sprintf("polarity_lo_%s_%d", l.ID, c), LE, 0,
				Term{Var: varTau(l.ID, c), Coef: 1}, Term{Var: varPolarity(l.From), Coef: -1}, Term{Var: varPolarity(l.To), Coef: -1})
			b.Constraint(fmt.Sprintf("polarity_hi_%s_%d", l.ID, c), LE, 2,
				Term{Var: varTau(l.ID, c), Coef: 1}, Term{Var: varPolarity(l.From), Coef: 1}, Term{Var: varPolarity(l.To), Coef: 1})
		}
	}
}

// EmitPolarityLinkGated is constraint family 4, the link-selection
// form: the same two inequalities gated by ell (ell <= p_i + p_j and
// ell <= 2 - p_i - p_j), emitted alongside the tau form of
// EmitPolarityProxy.
func EmitPolarityLinkGated(b *ProblemBuilder, links []*Link, channels int) {
	for _, l := range links {
		b.Var(varLink(l.ID), Binary, 0, 1)
		b.Var(varPolarity(l.From), Binary, 0, 1)
		b.Var(varPolarity(l.To), Binary, 0, 1)
		for c := 0; c < channels; c++ {
			b.Var(varTau(l.ID, c), Continuous, 0, 1)
			b.Constraint(fmt.Sprintf("polarity_lo_%s_%d", l.ID, c), LE, 0,
				Term{Var: varTau(l.ID, c), Coef: 1}, Term{Var: varPolarity(l.From), Coef: -1}, Term{Var: varPolarity(l.To), Coef: -1})
			b.Constraint(fmt.Sprintf("polarity_hi_%s_%d", l.ID, c), LE, 2,
				Term{Var: varTau(l.ID, c), Coef: 1}, Term{Var: varPolarity(l.From), Coef: 1}, Term{Var: varPolarity(l.To), Coef: 1})
		}
		b.Constraint("polarity_link_lo_"+l.ID.String(), LE, 0,
			Term{Var: varLink(l.ID), Coef: 1}, Term{Var: varPolarity(l.From), Coef: -1}, Term{Var: varPolarity(l.To), Coef: -1})
		b.Constraint("polarity_link_hi_"+l.ID.String(), LE, 2,
			Term{Var: varLink(l.ID), Coef: 1}, Term{Var: varPolarity(l.From), Coef: 1}, Term{Var: varPolarity(l.To), Coef: 1})
	}
}

// EmitTimeDivision is constraint family 5.
func EmitTimeDivision(b *ProblemBuilder, graph *CandidateGraph, channels int) {
	for _, sec := range graph.Sectors() {
		for c := 0; c < channels; c++ {
			var terms []Term
			for _, l := range graph.LinksFrom(sec.Site) {
				if l.FromSector == sec.ID {
					terms = append(terms, Term{Var: varTau(l.ID, c), Coef: 1})
				}
			}
			if len(terms) == 0 {
				continue
			}
			b.Var(varSector(sec.ID, c), Binary, 0, 1)
			terms = append(terms, Term{Var: varSector(sec.ID, c), Coef: -1})
			b.Constraint(fmt.Sprintf("tdiv_sector_%s_%d", sec.ID, c), LE, 0, terms...)
		}
	}
	for _, l := range graph.Links() {
		terms := []Term{{Var: varLink(l.ID), Coef: -1}}
		for c := 0; c < channels; c++ {
			terms = append(terms, Term{Var: varTau(l.ID, c), Coef: 1})
		}
		b.Constraint("tdiv_link_"+l.ID.String(), LE, 0, terms...)
	}
}

// EmitSectorNodeCoupling is constraint family 6.
func EmitSectorNodeCoupling(b *ProblemBuilder, graph *CandidateGraph) {
	type nodeKey struct {
		site SiteID
		node int
	}
	groups := make(map[nodeKey][]*Sector)
	for _, sec := range graph.Sectors() {
		k := nodeKey{sec.Site, sec.Node}
		groups[k] = append(groups[k], sec)
	}
	keys := make([]nodeKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].site.Less(keys[j].site) || keys[j].site.Less(keys[i].site) {
			return keys[i].site.Less(keys[j].site)
		}
		return keys[i].node < keys[j].node
	})
	for _, k := range keys {
		secs := groups[k]
		if len(secs) < 2 {
			continue
		}
		first := secs[0]
		b.Var(varSector(first.ID, 0), Binary, 0, 1)
		for _, other := range secs[1:] {
			b.Var(varSector(other.ID, 0), Binary, 0, 1)
			b.Constraint(fmt.Sprintf("node_couple_%s_%s", first.ID, other.ID), EQ, 0,
				Term{Var: varSector(first.ID, 0), Coef: 1}, Term{Var: varSector(other.ID, 0), Coef: -1})
		}
	}
	for _, l := range graph.Links() {
		b.Var(varLink(l.ID), Binary, 0, 1)
		b.Var(varSector(l.FromSector, 0), Binary, 0, 1)
		b.Var(varSector(l.ToSector, 0), Binary, 0, 1)
		b.Constraint("link_needs_from_sector_"+l.ID.String(), LE, 0,
			Term{Var: varLink(l.ID), Coef: 1}, Term{Var: varSector(l.FromSector, 0), Coef: -1})
		b.Constraint("link_needs_to_sector_"+l.ID.String(), LE, 0,
			Term{Var: varLink(l.ID), Coef: 1}, Term{Var: varSector(l.ToSector, 0), Coef: -1})
	}
}

// EmitSymmetricBackhaul is constraint family 7: ell_ij = ell_ji.
func EmitSymmetricBackhaul(b *ProblemBuilder, links []*Link) {
	seen := make(map[LinkID]bool)
	for _, l := range links {
		if !l.Backhaul || seen[l.ID] {
			continue
		}
		rev, ok := findLink(links, l.To, l.From)
		if !ok {
			continue
		}
		seen[l.ID], seen[rev.ID] = true, true
		b.Var(varLink(l.ID), Binary, 0, 1)
		b.Var(varLink(rev.ID), Binary, 0, 1)
		b.Constraint("symmetric_"+l.ID.String(), EQ, 0,
			Term{Var: varLink(l.ID), Coef: 1}, Term{Var: varLink(rev.ID), Coef: -1})
	}
}

func findLink(links []*Link, from, to SiteID) (*Link, bool) {
	for _, l := range links {
		if l.From == from && l.To == to {
			return l, true
		}
	}
	return nil, false
}

// EmitP2MP is constraint family 8.
func EmitP2MP(b *ProblemBuilder, graph *CandidateGraph, maxDN, maxTotal int) {
	for _, sec := range graph.Sectors() {
		if sec.Type != SectorDN {
			continue
		}
		var dnTerms, totalTerms []Term
		for _, l := range graph.LinksFrom(sec.Site) {
			if l.FromSector != sec.ID {
				continue
			}
			to, ok := graph.Site(l.To)
			if !ok {
				continue
			}
			b.Var(varLink(l.ID), Binary, 0, 1)
			totalTerms = append(totalTerms, Term{Var: varLink(l.ID), Coef: 1})
			if to.Type == DN || to.Type == POP {
				dnTerms = append(dnTerms, Term{Var: varLink(l.ID), Coef: 1})
			}
		}
		if len(dnTerms) > 0 {
			b.Constraint(fmt.Sprintf("p2mp_dn_%s", sec.ID), LE, float64(maxDN), dnTerms...)
		}
		if len(totalTerms) > 0 {
			b.Constraint(fmt.Sprintf("p2mp_total_%s", sec.ID), LE, float64(maxTotal), totalTerms...)
		}
	}
	for _, s := range graph.Sites() {
		if s.Type != CN {
			continue
		}
		in := graph.LinksTo(s.ID)
		if len(in) == 0 {
			continue
		}
		terms := make([]Term, 0, len(in))
		for _, l := range in {
			b.Var(varLink(l.ID), Binary, 0, 1)
			terms = append(terms, Term{Var: varLink(l.ID), Coef: 1})
		}
		b.Constraint("p2mp_cn_single_"+s.ID.String(), LE, 1, terms...)
	}
}

// EmitDeploymentGeometry is constraint family 9.
func EmitDeploymentGeometry(b *ProblemBuilder, graph *CandidateGraph, alphaDeg, thetaDeg, lengthRatio float64, channels int) {
	bySite := make(map[SiteID][]*Link)
	for _, l := range graph.Links() {
		bySite[l.From] = append(bySite[l.From], l)
	}
	sites := make([]SiteID, 0, len(bySite))
	for id := range bySite {
		sites = append(sites, id)
	}
	sites = SortSiteIDs(sites)
	for _, site := range sites {
		links := bySite[site]
		for i := 0; i < len(links); i++ {
			for j := i + 1; j < len(links); j++ {
				li, lj := links[i], links[j]
				if li.FromSector == lj.FromSector {
					continue
				}
				angle := angularDiffDeg(li.AzimuthDeg, lj.AzimuthDeg)
				ratio := lengthRatio
				required := alphaDeg
				if li.DistanceM > 0 && lj.DistanceM > 0 {
					r := li.DistanceM / lj.DistanceM
					if r < 1 {
						r = 1 / r
					}
					if r > ratio {
						required = thetaDeg
					}
				}
				if angle >= required {
					continue // already geometrically compatible, nothing to forbid
				}
				b.Var(varLink(li.ID), Binary, 0, 1)
				b.Var(varLink(lj.ID), Binary, 0, 1)
				if channels <= 1 {
					b.Constraint(fmt.Sprintf("geom_%s_%s", li.ID, lj.ID), LE, 1,
						Term{Var: varLink(li.ID), Coef: 1}, Term{Var: varLink(lj.ID), Coef: 1})
					continue
				}
				for c := 0; c < channels; c++ {
					b.Var(varZeta(li.ID, c), Binary, 0, 1)
					b.Var(varZeta(lj.ID, c), Binary, 0, 1)
					b.Constraint(fmt.Sprintf("geom_%s_%s_%d", li.ID, lj.ID, c), LE, 1,
						Term{Var: varZeta(li.ID, c), Coef: 1}, Term{Var: varZeta(lj.ID, c), Coef: 1})
				}
			}
		}
	}
}

// EmitCoLocation is constraint family 10.
func EmitCoLocation(b *ProblemBuilder, sites []*Site) {
	groups := make(map[Vec2][]*Site)
	var keys []Vec2
	for _, s := range sites {
		k := Vec2{s.Lon, s.Lat}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], s)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	for _, k := range keys {
		group := SortSites(groups[k])
		if len(group) < 2 {
			continue
		}
		terms := make([]Term, 0, len(group))
		for _, s := range group {
			b.Var(varSite(s.ID), Binary, 0, 1)
			terms = append(terms, Term{Var: varSite(s.ID), Coef: 1})
		}
		b.Constraint("colocation_"+group[0].ID.String(), LE, 1, terms...)
	}
}

// sinrInverseThreshold converts an MCS row's SNR threshold (dB) to the
// SINR-inverse upsilon_m spec.md 4.5 constraint family 11 bounds S^-1
// against: upsilon_m = 1 / 10^(SNR_dB/10).
func sinrInverseThreshold(snrDB float64) float64 {
	return 1 / dbToLinear(snrDB)
}

// EmitSINRClassification is constraint family 11: each link's own MCS
// table supplies its SINR-inverse thresholds upsilon_m, which decrease
// with m as the rows' SNR thresholds ascend (index-aligned with MCS class m, since a link's Capacity.Rows is
// already the device table filtered/recomputed for that specific
// link). Each link's Interference list names the interfering link by
// id (InterferenceTerm.From), resolved here back to its (k,l) site
// endpoints for the chi_{i,k,l,c} term. The row for class m binds only
// when mu_m is 1; a big-M term relaxes it when mu_m is 0.
func EmitSINRClassification(b *ProblemBuilder, links []*Link, noisePower float64, channels int) {
	byID := make(map[LinkID]*Link, len(links))
	for _, l := range links {
		byID[l.ID] = l
	}
	for _, l := range links {
		for c := 0; c < channels; c++ {
			terms := []Term{}
			for _, it := range l.Interference {
				interferer, ok := byID[it.From]
				if !ok {
					continue
				}
				terms = append(terms, Term{Var: varChi(l.To, interferer.From, interferer.To, c), Coef: it.PowerMw})
			}
			for m := range l.Capacity.Rows {
				b.Var(varMCS(l.ID, c, m), Binary, 0, 1)
			}
			if l.RSLDBm == 0 {
				continue
			}
			rslMw := dbmToMw(l.RSLDBm)
			for m, row := range l.Capacity.Rows {
				upsilon := sinrInverseThreshold(row.SNRThresholdDB)
				rhs := upsilon*rslMw - noisePower
				rowTerms := append([]Term{}, terms...)
				rowTerms = append(rowTerms, Term{Var: varMCS(l.ID, c, m), Coef: 1e6})
				b.Constraint(fmt.Sprintf("sinr_%s_%d_%d", l.ID, c, m), LE, rhs+1e6, rowTerms...)
			}
		}
	}
}

// EmitChiLinearization is constraint family 12: the standard
// McCormick-style linearization of chi = tau * [polarity_i=polarity_k].
func EmitChiLinearization(b *ProblemBuilder, i, k, l SiteID, c int) {
	chi := varChi(i, k, l, c)
	tau := varTau(NewLinkID(k, l), c) // time-division share of the interfering link (k,l)
	pi, pk := varPolarity(i), varPolarity(k)
	b.Var(chi, Continuous, 0, 1)
	b.Var(tau, Continuous, 0, 1)
	b.Var(pi, Binary, 0, 1)
	b.Var(pk, Binary, 0, 1)
	b.Constraint("chi_le_parity_"+chi, LE, 1, Term{Var: chi, Coef: 1}, Term{Var: pi, Coef: 1}, Term{Var: pk, Coef: -1})
	b.Constraint("chi_le_parity2_"+chi, LE, 1, Term{Var: chi, Coef: 1}, Term{Var: pi, Coef: -1}, Term{Var: pk, Coef: 1})
	b.Constraint("chi_le_tau_"+chi, LE, 0, Term{Var: chi, Coef: 1}, Term{Var: tau, Coef: -1})
	b.Constraint("chi_ge_"+chi, GE, -2, Term{Var: chi, Coef: 1}, Term{Var: tau, Coef: -1}, Term{Var: pi, Coef: -1}, Term{Var: pk, Coef: -1})
	b.Constraint("chi_ge_tau_"+chi, GE, 0, Term{Var: chi, Coef: 1}, Term{Var: tau, Coef: -1}, Term{Var: pi, Coef: 1}, Term{Var: pk, Coef: 1})
}
