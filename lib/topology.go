package lib

// DemandSite is a synthetic sink carrying a scalar demand (Gbps),
// attached to one or more CNs/DNs (spec.md 3). It is co-owned by the
// CandidateGraph and by the connecting sites: dropping either
// relationship is equivalent to deleting the demand site, so
// CandidateGraph.RemoveSite keeps demand-site connection lists in
// sync rather than leaving a dangling reference.
type DemandSite struct {
	ID          SiteID
	DemandGbps  float64
	Connections []SiteID // CNs/DNs this demand site is reachable from
}

// CandidateGraph is the directed multigraph of spec.md 3: sites plus an
// implicit super-source and demand sites as vertices; links plus
// super-source->POP edges and DN/CN->Demand edges as edges. Every
// accessor that iterates sites/sectors/links returns a sorted slice;
// nothing here ranges over a map when producing output.
type CandidateGraph struct {
	sites   map[SiteID]*Site
	sectors map[SectorID]*Sector
	links   map[LinkID]*Link
	demands map[SiteID]*DemandSite
}

// NewCandidateGraph returns an empty candidate graph.
func NewCandidateGraph() *CandidateGraph {
	return &CandidateGraph{
		sites:   make(map[SiteID]*Site),
		sectors: make(map[SectorID]*Sector),
		links:   make(map[LinkID]*Link),
		demands: make(map[SiteID]*DemandSite),
	}
}

// AddSite inserts (or replaces) a site.
func (g *CandidateGraph) AddSite(s *Site) { g.sites[s.ID] = s }

// AddSector inserts (or replaces) a sector.
func (g *CandidateGraph) AddSector(s *Sector) { g.sectors[s.ID] = s }

// AddLink inserts (or replaces) a link. Duplicate insertion with the
// same id is idempotent, so no link is stored twice.
func (g *CandidateGraph) AddLink(l *Link) { g.links[l.ID] = l }

// AddDemand inserts (or replaces) a demand site.
func (g *CandidateGraph) AddDemand(d *DemandSite) { g.demands[d.ID] = d }

// RemoveSite deletes a site and every demand-site connection that
// referenced it, preserving the co-ownership invariant of spec.md 3.
func (g *CandidateGraph) RemoveSite(id SiteID) {
	delete(g.sites, id)
	for _, d := range g.demands {
		out := d.Connections[:0]
		for _, c := range d.Connections {
			if c != id {
				out = append(out, c)
			}
		}
		d.Connections = out
	}
}

// Site looks up a site by id.
func (g *CandidateGraph) Site(id SiteID) (*Site, bool) { s, ok := g.sites[id]; return s, ok }

// Sector looks up a sector by id.
func (g *CandidateGraph) Sector(id SectorID) (*Sector, bool) { s, ok := g.sectors[id]; return s, ok }

// Link looks up a link by id.
func (g *CandidateGraph) Link(id LinkID) (*Link, bool) { l, ok := g.links[id]; return l, ok }

// Sites returns every site, sorted by stable id.
func (g *CandidateGraph) Sites() []*Site {
	out := make([]*Site, 0, len(g.sites))
	for _, s := range g.sites {
		out = append(out, s)
	}
	return SortSites(out)
}

// Sectors returns every sector, sorted deterministically.
func (g *CandidateGraph) Sectors() []*Sector {
	out := make([]*Sector, 0, len(g.sectors))
	for _, s := range g.sectors {
		out = append(out, s)
	}
	return SortSectors(out)
}

// Links returns every link, sorted by endpoint ids.
func (g *CandidateGraph) Links() []*Link {
	out := make([]*Link, 0, len(g.links))
	for _, l := range g.links {
		out = append(out, l)
	}
	return SortLinks(out)
}

// Demands returns every demand site, sorted by stable id.
func (g *CandidateGraph) Demands() []*DemandSite {
	ids := make([]SiteID, 0, len(g.demands))
	for id := range g.demands {
		ids = append(ids, id)
	}
	ids = SortSiteIDs(ids)
	out := make([]*DemandSite, len(ids))
	for i, id := range ids {
		out[i] = g.demands[id]
	}
	return out
}

// SectorsOfNode returns the sectors belonging to one node of a site,
// in position order -- the set that must be selected/deselected
// together per the sector-node coupling invariant (spec.md 3, 4.5.6).
func (g *CandidateGraph) SectorsOfNode(site SiteID, node int) []*Sector {
	var out []*Sector
	for _, s := range g.sectors {
		if s.Site == site && s.Node == node {
			out = append(out, s)
		}
	}
	return SortSectors(out)
}

// LinksFrom returns links whose From endpoint is site, sorted by To id.
func (g *CandidateGraph) LinksFrom(site SiteID) []*Link {
	var out []*Link
	for _, l := range g.links {
		if l.From == site {
			out = append(out, l)
		}
	}
	return SortLinks(out)
}

// LinksTo returns links whose To endpoint is site, sorted by From id.
func (g *CandidateGraph) LinksTo(site SiteID) []*Link {
	var out []*Link
	for _, l := range g.links {
		if l.To == site {
			out = append(out, l)
		}
	}
	return SortLinks(out)
}

//----------------------------------------------------------------------

// EntityState is the selection state of a site/sector/link at a point
// in the pipeline (spec.md 3: "Topology State").
type EntityState int

const (
	StateCandidate EntityState = iota
	StateProposed
	StateExisting
)

// Topology is the mutable selection state handed between pipeline
// phases. Per spec.md 9 ("Global state"), the pipeline treats a
// Topology as a value copied at each phase boundary: a phase reads one
// Topology and returns a new one, never mutating its input in place,
// so each phase is pure with respect to what it was given.
type Topology struct {
	Graph *CandidateGraph

	SiteState   map[SiteID]EntityState
	SectorState map[SectorID]EntityState
	LinkState   map[LinkID]EntityState

	Channel  map[SectorID]int
	MCSClass map[LinkID]int
	Tau      map[LinkID]float64
	Polarity map[SiteID]int // 0 or 1

	Shortfall map[SiteID]float64 // per-demand-site phi_i, after a phase runs
}

// NewTopology returns an empty topology view over graph, with every
// entity defaulted to StateCandidate.
func NewTopology(graph *CandidateGraph) *Topology {
	t := &Topology{
		Graph:       graph,
		SiteState:   make(map[SiteID]EntityState),
		SectorState: make(map[SectorID]EntityState),
		LinkState:   make(map[LinkID]EntityState),
		Channel:     make(map[SectorID]int),
		MCSClass:    make(map[LinkID]int),
		Tau:         make(map[LinkID]float64),
		Polarity:    make(map[SiteID]int),
		Shortfall:   make(map[SiteID]float64),
	}
	for _, s := range graph.Sites() {
		t.SiteState[s.ID] = StateCandidate
	}
	for _, s := range graph.Sectors() {
		t.SectorState[s.ID] = StateCandidate
	}
	for _, l := range graph.Links() {
		t.LinkState[l.ID] = StateCandidate
	}
	return t
}

// Clone returns a deep-enough copy for phase-boundary handoff: the
// Graph pointer is shared (the graph itself is not mutated mid-phase,
// per spec.md 5), but every per-entity map is copied so a phase can
// freely mutate its own copy.
func (t *Topology) Clone() *Topology {
	c := &Topology{
		Graph:       t.Graph,
		SiteState:   make(map[SiteID]EntityState, len(t.SiteState)),
		SectorState: make(map[SectorID]EntityState, len(t.SectorState)),
		LinkState:   make(map[LinkID]EntityState, len(t.LinkState)),
		Channel:     make(map[SectorID]int, len(t.Channel)),
		MCSClass:    make(map[LinkID]int, len(t.MCSClass)),
		Tau:         make(map[LinkID]float64, len(t.Tau)),
		Polarity:    make(map[SiteID]int, len(t.Polarity)),
		Shortfall:   make(map[SiteID]float64, len(t.Shortfall)),
	}
	for k, v := range t.SiteState {
		c.SiteState[k] = v
	}
	for k, v := range t.SectorState {
		c.SectorState[k] = v
	}
	for k, v := range t.LinkState {
		c.LinkState[k] = v
	}
	for k, v := range t.Channel {
		c.Channel[k] = v
	}
	for k, v := range t.MCSClass {
		c.MCSClass[k] = v
	}
	for k, v := range t.Tau {
		c.Tau[k] = v
	}
	for k, v := range t.Polarity {
		c.Polarity[k] = v
	}
	for k, v := range t.Shortfall {
		c.Shortfall[k] = v
	}
	return c
}

// SelectedSites returns the sites currently marked proposed or existing.
func (t *Topology) SelectedSites() []*Site {
	var out []*Site
	for _, s := range t.Graph.Sites() {
		if st := t.SiteState[s.ID]; st == StateProposed || st == StateExisting {
			out = append(out, s)
		}
	}
	return out
}

// SelectedLinks returns the links currently marked proposed or existing.
func (t *Topology) SelectedLinks() []*Link {
	var out []*Link
	for _, l := range t.Graph.Links() {
		if st := t.LinkState[l.ID]; st == StateProposed || st == StateExisting {
			out = append(out, l)
		}
	}
	return out
}
