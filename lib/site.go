package lib

import "sort"

// SiteType enumerates the roles a Site can play in the mesh.
type SiteType int

const (
	POP SiteType = iota
	DN
	CN
	DEMAND
)

func (t SiteType) String() string {
	switch t {
	case POP:
		return "POP"
	case DN:
		return "DN"
	case CN:
		return "CN"
	case DEMAND:
		return "DEMAND"
	default:
		return "?"
	}
}

// Site is a geographic point with a role, an optional building
// association, and an optional device assignment (spec.md 3).
type Site struct {
	ID          SiteID
	Lon, Lat    float64
	Alt         float64 // meters above the DSM surface, or absolute if no DSM lookup is needed
	Type        SiteType
	BuildingID  string // empty if not associated with a building
	Device      *Device
	Subscribers int // number_of_subscribers, CN only; 0 means "unspecified" (treated as 1)
}

// Multiplicity returns the CN demand multiplicity: max(1, Subscribers).
func (s *Site) Multiplicity() int {
	if s.Subscribers < 1 {
		return 1
	}
	return s.Subscribers
}

// SameLocation returns true if two sites occupy the same geographic
// point (used by the co-location dedup/invariant in spec.md 3).
func (s *Site) SameLocation(o *Site) bool {
	return IsNull(s.Lon-o.Lon) && IsNull(s.Lat-o.Lat)
}

// DeviceSKU returns the assigned device's SKU, or "" if none.
func (s *Site) DeviceSKU() string {
	if s.Device == nil {
		return ""
	}
	return s.Device.SKU
}

// RecomputeID re-derives the site's stable id from its defining fields.
// Called once a device has been assigned during candidate-graph
// expansion (spec.md 4.4 step 1), since the id is a function of the
// device SKU too.
func (s *Site) RecomputeID() {
	s.ID = NewSiteID(s.Lon, s.Lat, s.Alt, s.Type, s.DeviceSKU())
}

// SortSites returns sites sorted by stable id -- the canonical order
// required before any constraint/variable emission (spec.md 3, 5).
func SortSites(sites []*Site) []*Site {
	out := make([]*Site, len(sites))
	copy(out, sites)
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Less(out[j].ID) })
	return out
}

//----------------------------------------------------------------------

// PatternTable maps an angle (degrees, 0 = boresight) to a loss value
// (dB, always >= 0), used for both antenna radiation patterns and scan
// (off-boresight electronic steering) patterns. Lookups interpolate
// linearly between the two closest defined angles.
type PatternTable struct {
	Angles []float64 // ascending, degrees
	LossDB []float64 // matching loss, dB
}

// LossAt returns the interpolated loss (dB) at the given angle.
func (p PatternTable) LossAt(angleDeg float64) float64 {
	n := len(p.Angles)
	if n == 0 {
		return 0
	}
	a := absFloat(angleDeg)
	if a <= p.Angles[0] {
		return p.LossDB[0]
	}
	if a >= p.Angles[n-1] {
		return p.LossDB[n-1]
	}
	// binary search for the bracketing interval
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if p.Angles[mid] <= a {
			lo = mid
		} else {
			hi = mid
		}
	}
	span := p.Angles[hi] - p.Angles[lo]
	if IsNull(span) {
		return p.LossDB[lo]
	}
	frac := (a - p.Angles[lo]) / span
	return p.LossDB[lo] + frac*(p.LossDB[hi]-p.LossDB[lo])
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// MCSRow is one row of a device's modulation-and-coding-scheme table.
type MCSRow struct {
	MCS            int
	SNRThresholdDB float64
	ThroughputMbps float64
	TxBackoffDB    float64
}

// MCSTable is ordered ascending by SNRThresholdDB (and therefore by
// throughput too, since a higher SNR requirement always buys more
// throughput in a well-formed table).
type MCSTable []MCSRow

// ClassFor returns the highest-throughput row whose SNR threshold is
// <= snrDB, per spec.md 4.3 ("highest row ... with SNR_col <= SNR").
// The open question in spec.md 9 about equality at the boundary is
// resolved here: the comparison is "<=", so a row whose threshold
// exactly equals snrDB is itself eligible, and since the table is
// ascending by throughput, scanning to the last eligible row already
// picks the higher-throughput class on a tie.
func (t MCSTable) ClassFor(snrDB float64) (MCSRow, bool) {
	best, ok := MCSRow{}, false
	for _, row := range t {
		if row.SNRThresholdDB <= snrDB {
			best, ok = row, true
		}
	}
	return best, ok
}

// FeasibleRows returns every row whose SNR threshold is <= snrDB,
// ascending by SNRThresholdDB. A link carries noise-only SNR at its
// best class but must still have its coarser classes on hand so that
// EmitSINRClassification (spec.md 4.5 constraint family 11) can step
// mu down to a class that still clears SINR under interference.
func (t MCSTable) FeasibleRows(snrDB float64) []MCSRow {
	var rows []MCSRow
	for _, row := range t {
		if row.SNRThresholdDB <= snrDB {
			rows = append(rows, row)
		}
	}
	return rows
}

//----------------------------------------------------------------------

// SectorProfile is the radio-hardware profile shared by every Sector a
// Device instantiates (spec.md 3: "Device ... Sector profile").
type SectorProfile struct {
	ScanRangeDeg     float64 // +/- electronic scan range around boresight
	SectorsPerNode   int     // number of sectors covering complementary arcs
	BoresightGainDBi float64
	TxPowerMinDBm    float64
	TxPowerMaxDBm    float64
	RxSensDBm        float64
	DiversityGainDB  float64
	MiscLossDB       float64
	AntennaPattern   PatternTable
	ScanPattern      PatternTable
	MCS              MCSTable
}

// Device is a hardware profile assignable to a Site (spec.md 3).
type Device struct {
	SKU             string
	Type            SiteType // DN or CN
	CapexNode       float64
	MaxNodesPerSite int
	Sector          SectorProfile
}

// NodesPerSite returns the number of Nodes a site with this device may
// host. CN devices always have exactly one node per site (spec.md 3
// invariant).
func (d *Device) NodesPerSite() int {
	if d.Type == CN {
		return 1
	}
	if d.MaxNodesPerSite < 1 {
		return 1
	}
	return d.MaxNodesPerSite
}
