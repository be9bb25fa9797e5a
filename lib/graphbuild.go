package lib

import (
	"math"
	"sort"
)

// BuildConfig carries the per-run parameters of the candidate-graph
// builder (spec.md 4.4): the LOS model/thresholds, the radio
// parameters, the device catalog and the demand-model selection.
type BuildConfig struct {
	LOS   LOSConfig
	Radio RadioParams

	Devices []*Device // compatible devices, looked up by SiteType

	AutoSiteDetection   bool
	CornerAngleLimitDeg float64 // spec.md 4.4 step 2

	TxPowerDBm              float64
	DiffSectorAngleLimitDeg float64 // copied from Config; not read here (scan-range pruning uses ScanRangeDeg)
	BackhaulDeviationWeight float64 // extra weight for long/backhaul links

	Demand DemandConfig
}

// Building groups building-outline vertices by id, the input
// automatic site detection scans for highest points / centroids /
// qualifying corners (spec.md 4.4 step 2).
type Building struct {
	ID       string
	Outline  []Vec2 // closed ring, ground plane
	HeightsAt func(Vec2) float64
	HighestZ float64
}

// BuildCandidateGraph runs the deterministic steps of spec.md 4.4 and
// returns the resulting candidate graph. userSites are the
// caller-supplied sites (device-SKU already set, or empty to trigger
// per-compatible-device expansion); buildings feeds automatic site
// detection when enabled.
func BuildCandidateGraph(userSites []*Site, buildings []*Building, raster *Raster, boundary Polygon, cfg BuildConfig) (*CandidateGraph, error) {
	graph := NewCandidateGraph()

	sites, err := expandSites(userSites, cfg.Devices)
	if err != nil {
		return nil, err
	}
	if cfg.AutoSiteDetection {
		sites = append(sites, detectSites(buildings, cfg)...)
	}
	sites = dedupeSites(sites)
	for _, s := range sites {
		graph.AddSite(s)
	}

	sectors := instantiateSectors(sites)
	for _, sec := range sectors {
		graph.AddSector(sec)
	}

	links, err := generateLinks(sites, raster, cfg)
	if err != nil {
		return nil, err
	}
	orientSectors(sites, sectors, links, cfg)
	links = dropOutOfScanLinks(sites, sectors, links, cfg)
	for _, l := range links {
		graph.AddLink(l)
	}

	demands, err := BuildDemandSites(sites, boundary, cfg.Demand)
	if err != nil {
		return nil, err
	}
	for _, d := range demands {
		graph.AddDemand(d)
	}

	attachInterference(sites, sectors, links, raster, cfg)

	return graph, nil
}

// attachInterference fills in each link's Interference field from
// ComputeInterference's pairwise matrix (spec.md 4.4 step 6, spec.md
// 4.3), resolving the InterferenceQuery callbacks against the same
// sector-orientation data orientSectors just produced: "the sector
// towards a site" reuses sectorNearestAzimuth, and LOS between an
// interferer and a victim receiver is recomputed with Validate since
// that pair need not itself be a candidate link.
func attachInterference(sites []*Site, sectors []*Sector, links []*Link, raster *Raster, cfg BuildConfig) {
	siteByID := make(map[SiteID]*Site, len(sites))
	for _, s := range sites {
		siteByID[s.ID] = s
	}
	bySiteNode := make(map[SiteID][]*Sector, len(sites))
	sectorByID := make(map[SectorID]*Sector, len(sectors))
	for _, sec := range sectors {
		bySiteNode[sec.Site] = append(bySiteNode[sec.Site], sec)
		sectorByID[sec.ID] = sec
	}

	q := InterferenceQuery{
		HasLOS: func(k, j SiteID) bool {
			a, ok1 := siteByID[k]
			b, ok2 := siteByID[j]
			if !ok1 || !ok2 {
				return false
			}
			return Validate(a, b, raster, cfg.LOS).Accepted
		},
		SectorTowards: func(from, to SiteID) (SectorID, bool) {
			a, ok1 := siteByID[from]
			b, ok2 := siteByID[to]
			if !ok1 || !ok2 {
				return SectorID{}, false
			}
			sec := sectorNearestAzimuth(bySiteNode[from], azimuthDeg(a, b))
			if sec == nil {
				return SectorID{}, false
			}
			return sec.ID, true
		},
		SiteOf: func(id SiteID) (*Site, bool) {
			s, ok := siteByID[id]
			return s, ok
		},
		ProfileOf: func(sector SectorID) (SectorProfile, bool) {
			sec, ok := sectorByID[sector]
			if !ok {
				return SectorProfile{}, false
			}
			s, ok := siteByID[sec.Site]
			if !ok || s.Device == nil {
				return SectorProfile{}, false
			}
			return s.Device.Sector, true
		},
		DeviationAngle: func(site SiteID, sector SectorID, toward SiteID) float64 {
			sec, ok := sectorByID[sector]
			a, ok2 := siteByID[site]
			b, ok3 := siteByID[toward]
			if !ok || !ok2 || !ok3 {
				return 0
			}
			return angularDiffDeg(azimuthDeg(a, b), sec.BoresightAzimuthDeg)
		},
		DistanceM: func(a, b SiteID) float64 {
			sa, ok1 := siteByID[a]
			sb, ok2 := siteByID[b]
			if !ok1 || !ok2 {
				return 0
			}
			return NewSegment3(Vec3{sa.Lon, sa.Lat, sa.Alt}, Vec3{sb.Lon, sb.Lat, sb.Alt}).Length()
		},
	}

	terms := ComputeInterference(links, cfg.TxPowerDBm, cfg.Radio, q)
	byID := make(map[LinkID]*Link, len(links))
	for _, l := range links {
		byID[l.ID] = l
	}
	for _, it := range terms {
		if l, ok := byID[it.To]; ok {
			l.Interference = append(l.Interference, it)
		}
	}
}

// expandSites instantiates, for each user site with no device SKU
// assigned, one copy per compatible device of the same site type
// (spec.md 4.4 step 1).
func expandSites(userSites []*Site, devices []*Device) ([]*Site, error) {
	byType := make(map[SiteType][]*Device)
	for _, d := range devices {
		byType[d.Type] = append(byType[d.Type], d)
	}
	var out []*Site
	for _, s := range userSites {
		if s.Device != nil {
			s.RecomputeID()
			out = append(out, s)
			continue
		}
		compat := byType[s.Type]
		if len(compat) == 0 {
			return nil, NewDataError("no compatible device for site type %s", s.Type)
		}
		for _, d := range compat {
			clone := *s
			clone.Device = d
			clone.RecomputeID()
			out = append(out, &clone)
		}
	}
	return out, nil
}

// detectSites adds a candidate DN site at each building's best-fit
// centroid and at each qualifying corner (spec.md 4.4 step 2), both at
// the building's HighestZ altitude; no separate site is placed at the
// building's highest point.
func detectSites(buildings []*Building, cfg BuildConfig) []*Site {
	limit := cfg.CornerAngleLimitDeg * math.Pi / 180
	var out []*Site
	for _, b := range buildings {
		if len(b.Outline) >= 3 {
			ctr, _ := BestFitCentroid(b.Outline)
			out = append(out, &Site{Lon: ctr[0], Lat: ctr[1], Alt: b.HighestZ, Type: DN})

			n := len(b.Outline)
			for i := 0; i < n; i++ {
				a := b.Outline[(i-1+n)%n]
				v := b.Outline[i]
				c := b.Outline[(i+1)%n]
				if CornerAngle(a, v, c) <= limit {
					out = append(out, &Site{Lon: v[0], Lat: v[1], Alt: b.HighestZ, Type: DN})
				}
			}
		}
	}
	return out
}

// dedupeSites drops sites sharing (location, type, device SKU),
// keeping the first occurrence in the input order (spec.md 4.4 step 2
// "dedupe by location+type+SKU").
func dedupeSites(sites []*Site) []*Site {
	seen := make(map[SiteID]bool, len(sites))
	out := make([]*Site, 0, len(sites))
	for _, s := range sites {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		out = append(out, s)
	}
	return out
}

// instantiateSectors creates Device.NodesPerSite() nodes, each with its
// SectorsPerNode complementary-arc sectors, on every site that has a
// device.
func instantiateSectors(sites []*Site) []*Sector {
	var out []*Sector
	for _, s := range sites {
		if s.Device == nil {
			continue
		}
		kind := SectorDN
		if s.Device.Type == CN {
			kind = SectorCN
		}
		nodes := s.Device.NodesPerSite()
		perNode := s.Device.Sector.SectorsPerNode
		if perNode < 1 {
			perNode = 1
		}
		for node := 0; node < nodes; node++ {
			for pos := 0; pos < perNode; pos++ {
				out = append(out, NewSector(s.ID, node, pos, kind))
			}
		}
	}
	return out
}

// generateLinks invokes the LOS validator for every ordered pair of
// sites within the device-derived maximum distance and produces a
// radio-computed Link for each accepted pair (spec.md 4.4 step 3).
func generateLinks(sites []*Site, raster *Raster, cfg BuildConfig) ([]*Link, error) {
	sites = SortSites(sites)
	var out []*Link
	for _, a := range sites {
		if a.Device == nil {
			continue
		}
		for _, b := range sites {
			if a.ID == b.ID || b.Device == nil {
				continue
			}
			maxDist := MaxLinkDistance(a.Device.Sector, b.Device.Sector, lowestMCSThreshold(b.Device.Sector.MCS), cfg.TxPowerDBm, cfg.Radio, cfg.LOS.MaxDistanceM)
			localCfg := cfg.LOS
			if maxDist > 0 && (localCfg.MaxDistanceM <= 0 || maxDist < localCfg.MaxDistanceM) {
				localCfg.MaxDistanceM = maxDist
			}
			decision := Validate(a, b, raster, localCfg)
			if !decision.Accepted {
				continue
			}
			l := NewLink(a.ID, b.ID)
			l.DistanceM = NewSegment3(Vec3{a.Lon, a.Lat, a.Alt}, Vec3{b.Lon, b.Lat, b.Alt}).Length()
			l.AzimuthDeg = azimuthDeg(a, b)
			l.Backhaul = a.Type != CN && b.Type != CN
			ComputeLink(l, a.Device.Sector, b.Device.Sector, b.Device.Sector.MCS, cfg.TxPowerDBm, cfg.Radio)
			out = append(out, l)
		}
	}
	return out, nil
}

func lowestMCSThreshold(t MCSTable) float64 {
	min := math.Inf(1)
	for _, row := range t {
		if row.SNRThresholdDB < min {
			min = row.SNRThresholdDB
		}
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return min
}

func azimuthDeg(a, b *Site) float64 {
	dy, dx := b.Lat-a.Lat, b.Lon-a.Lon
	deg := math.Atan2(dy, dx) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// orientSectors assigns each DN sector's boresight azimuth to
// minimize total angular deviation of its candidate links, weighting
// long and backhaul links more heavily (spec.md 4.4 step 4). Each
// Node's sectors split the circle into SectorsPerNode complementary
// arcs; a node's orientation is the circular weighted mean azimuth of
// its incident links, offset per sector position. A site may host
// several Nodes (spec.md 3); each link is first assigned to whichever
// node's static home arc (the circle split evenly among that site's
// nodes) its azimuth falls nearest to, so every node -- not only node
// 0 -- accumulates the links it will end up orienting toward and
// receives a sector assignment.
func orientSectors(sites []*Site, sectors []*Sector, links []*Link, cfg BuildConfig) {
	type nodeKey struct {
		site SiteID
		node int
	}
	weightSum := make(map[nodeKey]float64)
	sinSum := make(map[nodeKey]float64)
	cosSum := make(map[nodeKey]float64)

	bySiteNode := make(map[nodeKey][]*Sector)
	seenNode := make(map[nodeKey]bool)
	nodesOfSite := make(map[SiteID][]int)
	for _, sec := range sectors {
		k := nodeKey{sec.Site, sec.Node}
		bySiteNode[k] = append(bySiteNode[k], sec)
		if !seenNode[k] {
			seenNode[k] = true
			nodesOfSite[sec.Site] = append(nodesOfSite[sec.Site], sec.Node)
		}
	}
	for site := range nodesOfSite {
		sort.Ints(nodesOfSite[site])
	}

	// nearestNode picks the node whose evenly-spaced home arc center is
	// closest to az, so links spread across a multi-node site's nodes
	// instead of all piling onto node 0.
	nearestNode := func(site SiteID, az float64) int {
		nodes := nodesOfSite[site]
		if len(nodes) == 0 {
			return 0
		}
		best, bestDiff := nodes[0], math.Inf(1)
		for _, n := range nodes {
			home := float64(n) * 360.0 / float64(len(nodes))
			if d := angularDiffDeg(az, home); d < bestDiff {
				bestDiff, best = d, n
			}
		}
		return best
	}

	weigh := func(l *Link) float64 {
		w := 1.0 + l.DistanceM/1000
		if l.Backhaul {
			w *= 1 + cfg.BackhaulDeviationWeight
		}
		return w
	}

	accumulate := func(site SiteID, az float64, w float64) {
		k := nodeKey{site, nearestNode(site, az)}
		rad := az * math.Pi / 180
		sinSum[k] += w * math.Sin(rad)
		cosSum[k] += w * math.Cos(rad)
		weightSum[k] += w
	}
	for _, l := range links {
		w := weigh(l)
		accumulate(l.From, l.AzimuthDeg, w)
		accumulate(l.To, l.AzimuthDeg+180, w)
	}

	for k, secs := range bySiteNode {
		mean := 0.0
		if weightSum[k] > eps {
			mean = math.Atan2(sinSum[k], cosSum[k]) * 180 / math.Pi
		} else {
			mean = float64(k.node) * 360.0 / float64(len(nodesOfSite[k.site]))
		}
		n := len(secs)
		if n == 0 {
			continue
		}
		arc := 360.0 / float64(n)
		sort.Slice(secs, func(i, j int) bool { return secs[i].Position < secs[j].Position })
		for i, sec := range secs {
			sec.BoresightAzimuthDeg = normalizeDeg(mean + float64(i)*arc)
		}
	}

	_ = sites
	sectorsOfSite := make(map[SiteID][]*Sector)
	for _, sec := range sectors {
		sectorsOfSite[sec.Site] = append(sectorsOfSite[sec.Site], sec)
	}
	for _, l := range links {
		fromSec := sectorNearestAzimuth(sectorsOfSite[l.From], l.AzimuthDeg)
		toSec := sectorNearestAzimuth(sectorsOfSite[l.To], l.AzimuthDeg+180)
		if fromSec != nil {
			l.FromSector = fromSec.ID
			l.DeviationFromDeg = angularDiffDeg(l.AzimuthDeg, fromSec.BoresightAzimuthDeg)
		}
		if toSec != nil {
			l.ToSector = toSec.ID
			l.DeviationToDeg = angularDiffDeg(l.AzimuthDeg+180, toSec.BoresightAzimuthDeg)
		}
	}
}

func normalizeDeg(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}

func angularDiffDeg(a, b float64) float64 {
	d := math.Mod(normalizeDeg(a)-normalizeDeg(b)+180, 360) - 180
	if d < -180 {
		d += 360
	}
	return math.Abs(d)
}

func sectorNearestAzimuth(secs []*Sector, azimuthDeg float64) *Sector {
	var best *Sector
	bestDiff := math.Inf(1)
	for _, s := range secs {
		d := angularDiffDeg(azimuthDeg, s.BoresightAzimuthDeg)
		if d < bestDiff {
			bestDiff = d
			best = s
		}
	}
	return best
}

// dropOutOfScanLinks removes links whose deviation from either
// endpoint sector's boresight exceeds that device's scan range
// (spec.md 4.4 step 4: "drop links whose deviation exceeds the scan
// range").
func dropOutOfScanLinks(sites []*Site, sectors []*Sector, links []*Link, cfg BuildConfig) []*Link {
	siteByID := make(map[SiteID]*Site, len(sites))
	for _, s := range sites {
		siteByID[s.ID] = s
	}
	out := links[:0]
	for _, l := range links {
		from, to := siteByID[l.From], siteByID[l.To]
		if from == nil || to == nil || from.Device == nil || to.Device == nil {
			continue
		}
		scanFrom := from.Device.Sector.ScanRangeDeg
		scanTo := to.Device.Sector.ScanRangeDeg
		if scanFrom > 0 && l.DeviationFromDeg > scanFrom {
			continue
		}
		if scanTo > 0 && l.DeviationToDeg > scanTo {
			continue
		}
		out = append(out, l)
	}
	return SortLinks(out)
}
