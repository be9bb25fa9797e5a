package lib

import (
	"fmt"
	"math"
)

// DemandMode selects which demand model attaches demand sites to the
// candidate graph (spec.md 4.4 step 5).
type DemandMode int

const (
	DemandCN DemandMode = iota
	DemandUniform
	DemandManual
)

// DemandConfig is the demand-model toggle/value set of spec.md 6
// ("demand model toggles and values").
type DemandConfig struct {
	Mode               DemandMode
	SpacingM           float64  // uniform grid spacing
	ConnectionRadiusM  float64  // DEMAND_CONNECTION_RADIUS
	ManualSites        []Vec2   // manual demand-site locations (ground plane)
	ManualDemandGbps   float64  // demand value for manual/uniform sites
}

// DemandModel mirrors the teacher's pluggable-implementation registry
// (one Go interface, several named implementations selected by
// string/enum rather than reflection) so a new demand model is added
// the way a new geometry generator is: register it, no caller change.
type DemandModel interface {
	Name() string
	Build(sites []*Site, boundary Polygon, cfg DemandConfig) ([]*DemandSite, error)
}

var demandModels = map[DemandMode]DemandModel{
	DemandCN:      cnDemandModel{},
	DemandUniform: uniformDemandModel{},
	DemandManual:  manualDemandModel{},
}

// BuildDemandSites dispatches to the configured demand model.
func BuildDemandSites(sites []*Site, boundary Polygon, cfg DemandConfig) ([]*DemandSite, error) {
	m, ok := demandModels[cfg.Mode]
	if !ok {
		return nil, NewConfigError("demand.mode", "unknown demand mode %d", cfg.Mode)
	}
	return m.Build(sites, boundary, cfg)
}

//----------------------------------------------------------------------

// cnDemandModel attaches one demand site per CN, with multiplicity
// max(1, number_of_subscribers) (spec.md 4.4 step 5 "CN demand").
type cnDemandModel struct{}

func (cnDemandModel) Name() string { return "cn" }

func (cnDemandModel) Build(sites []*Site, _ Polygon, cfg DemandConfig) ([]*DemandSite, error) {
	var out []*DemandSite
	for _, s := range SortSites(sites) {
		if s.Type != CN {
			continue
		}
		demandID := NewSiteID(s.Lon, s.Lat, s.Alt, DEMAND, fmt.Sprintf("cn-demand-%s", s.ID))
		out = append(out, &DemandSite{
			ID:          demandID,
			DemandGbps:  cfg.ManualDemandGbps * float64(s.Multiplicity()),
			Connections: []SiteID{s.ID},
		})
	}
	return out, nil
}

//----------------------------------------------------------------------

// uniformDemandModel lays a regular grid of demand sites with spacing
// S over the boundary polygon, connecting any DN/CN within
// DEMAND_CONNECTION_RADIUS (spec.md 4.4 step 5 "Uniform demand").
type uniformDemandModel struct{}

func (uniformDemandModel) Name() string { return "uniform" }

func (uniformDemandModel) Build(sites []*Site, boundary Polygon, cfg DemandConfig) ([]*DemandSite, error) {
	if cfg.SpacingM <= 0 {
		return nil, NewConfigError("demand.spacing", "uniform demand model requires a positive spacing")
	}
	if len(boundary) < 3 {
		return nil, NewDataError("uniform demand model requires a boundary polygon")
	}
	box := NewBoundingBox()
	for _, p := range boundary {
		box.Include(p)
	}

	var grid []Vec2
	for y := box.Ymin; y <= box.Ymax; y += cfg.SpacingM {
		for x := box.Xmin; x <= box.Xmax; x += cfg.SpacingM {
			p := Vec2{x, y}
			if boundary.Contains(p) {
				grid = append(grid, p)
			}
		}
	}
	return connectDemandGrid(grid, sites, cfg), nil
}

//----------------------------------------------------------------------

// manualDemandModel attaches user-provided demand sites with the same
// radius-based connection rule as the uniform model (spec.md 4.4 step
// 5 "Manual demand").
type manualDemandModel struct{}

func (manualDemandModel) Name() string { return "manual" }

func (manualDemandModel) Build(sites []*Site, _ Polygon, cfg DemandConfig) ([]*DemandSite, error) {
	if len(cfg.ManualSites) == 0 {
		return nil, NewConfigError("demand.manual_sites", "manual demand model requires at least one site")
	}
	return connectDemandGrid(cfg.ManualSites, sites, cfg), nil
}

//----------------------------------------------------------------------

func connectDemandGrid(grid []Vec2, sites []*Site, cfg DemandConfig) []*DemandSite {
	radius := cfg.ConnectionRadiusM
	candidates := SortSites(sites)
	var out []*DemandSite
	for i, p := range grid {
		var conns []SiteID
		for _, s := range candidates {
			if s.Type != DN && s.Type != CN {
				continue
			}
			d := p.Sub(Vec2{s.Lon, s.Lat}).Length()
			if d <= radius {
				conns = append(conns, s.ID)
			}
		}
		if len(conns) == 0 {
			continue
		}
		demandID := NewSiteID(p[0], p[1], 0, DEMAND, fmt.Sprintf("demand-%d", i))
		out = append(out, &DemandSite{
			ID:          demandID,
			DemandGbps:  cfg.ManualDemandGbps,
			Connections: SortSiteIDs(conns),
		})
	}
	return out
}

// nearestSite returns the site in sites (of any type) closest to p in
// the ground plane, together with that distance.
func nearestSite(p Vec2, sites []*Site) (*Site, float64) {
	var best *Site
	bestD := math.Inf(1)
	for _, s := range sites {
		d := p.Sub(Vec2{s.Lon, s.Lat}).Length()
		if d < bestD {
			bestD = d
			best = s
		}
	}
	return best, bestD
}
