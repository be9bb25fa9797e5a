package lib

import "sort"

// SectorType mirrors the site-level role the sector ultimately serves
// (a DN sector forwards mesh traffic; a CN sector terminates it).
type SectorType int

const (
	SectorDN SectorType = iota
	SectorCN
)

// Sector is a realized radio aperture on a Node of a Site (spec.md 3).
// All sectors that belong to the same Node are selected together (the
// equality constraint of constraint family 6 in spec.md 4.5); that
// grouping is recorded here via Site+Node.
type Sector struct {
	ID                  SectorID
	Site                SiteID
	Node                int // node index on the site (a site may host several nodes)
	Position            int // position among sectors of the same node, complementary arcs
	Type                SectorType
	BoresightAzimuthDeg float64
	Channel             int // -1 as created; the interference-minimization phase records channels in Topology.Channel, not here
}

// NewSector creates a sector and derives its stable id.
func NewSector(site SiteID, node, position int, kind SectorType) *Sector {
	return &Sector{
		ID:       NewSectorID(site, node, position),
		Site:     site,
		Node:     node,
		Position: position,
		Type:     kind,
		Channel:  -1,
	}
}

// SortSectors returns sectors sorted by (site-id, node-index, position,
// type), the deterministic order spec.md 3 mandates.
func SortSectors(sectors []*Sector) []*Sector {
	out := make([]*Sector, len(sectors))
	copy(out, sectors)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Site.Less(b.Site) && !b.Site.Less(a.Site) {
			if a.Node != b.Node {
				return a.Node < b.Node
			}
			if a.Position != b.Position {
				return a.Position < b.Position
			}
			return a.Type < b.Type
		}
		return a.Site.Less(b.Site)
	})
	return out
}
