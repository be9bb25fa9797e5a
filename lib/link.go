package lib

import "sort"

// InterferenceTerm is one contribution to the interference seen at a
// receiving sector, from another active link sharing visibility of the
// receiver (spec.md 4.3). Computed once, over the whole candidate
// graph, before the ILP phases run -- never recomputed inside a solve.
type InterferenceTerm struct {
	From, To LinkID  // the interfering link (k,l)
	PowerMw  float64 // worst-case (max Tx) interference power, mW
}

// MCSCapacity is a link's per-MCS-class throughput table, derived once
// from distance, antenna pattern, Tx power and losses (spec.md 3
// invariant). Index i corresponds to MCSRow i in the device's table.
type MCSCapacity struct {
	Rows []MCSRow // filtered/recomputed rows feasible for this specific link
}

// ThroughputAt returns the throughput (Mbps) of MCS class m, or 0 if m
// is out of range (treated as zero-capacity, never a panic).
func (c MCSCapacity) ThroughputAt(m int) float64 {
	if m < 0 || m >= len(c.Rows) {
		return 0
	}
	return c.Rows[m].ThroughputMbps
}

// Link is a directed pair (From, To) with geometric and derived radio
// attributes (spec.md 3). Backhaul links exist in both directions as
// two Link values with a symmetric-selection constraint tying them
// together (constraint family 7); access links (DN->CN) exist in one
// direction only.
type Link struct {
	ID          LinkID
	From, To    SiteID
	FromSector  SectorID
	ToSector    SectorID
	DistanceM   float64
	AzimuthDeg  float64 // ground azimuth from From to To
	ElevationDeg float64

	// deviation of the link direction from each endpoint sector's
	// boresight, used by the deployment-geometry constraints and by
	// sector-orientation assignment (spec.md 4.4 step 4).
	DeviationFromDeg float64
	DeviationToDeg   float64

	RSLDBm       float64
	SNRDb        float64
	Capacity     MCSCapacity
	Interference []InterferenceTerm

	Backhaul bool // true for DN-DN / DN-POP; false for DN-CN access links

	// ZeroCapacity marks a link retained for topology continuity after
	// its SNR fell below the MCS table's lowest row (NumericalWarning,
	// spec.md 7); the ILP builder still emits its variables but every
	// throughput term is forced to zero.
	ZeroCapacity bool
}

// computeID derives a link's id and stores it.
func (l *Link) computeID() { l.ID = NewLinkID(l.From, l.To) }

// NewLink creates a link between two sites and computes its id.
func NewLink(from, to SiteID) *Link {
	l := &Link{From: from, To: to}
	l.computeID()
	return l
}

// SortLinks returns links sorted by (from, to) endpoint ids, the
// deterministic order spec.md 3 mandates.
func SortLinks(links []*Link) []*Link {
	out := make([]*Link, len(links))
	copy(out, links)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.From.Less(b.From) || b.From.Less(a.From) {
			return a.From.Less(b.From)
		}
		return a.To.Less(b.To)
	})
	return out
}
