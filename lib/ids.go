package lib

import (
	"crypto/md5" //nolint:gosec // MD5 used only as a stable, non-cryptographic identifier hash (spec-mandated)
	"encoding/hex"
	"fmt"
	"sort"
)

// SiteID is a stable identifier for a Site: the MD5 digest of its
// canonical (longitude, latitude, altitude, type, device SKU) tuple.
// Computing ids this way, rather than assigning sequence numbers,
// means two independent runs over the same input always agree on
// identifiers -- required for the determinism property (spec.md 8.1)
// and for every sorted-iteration rule in spec.md 5.
type SiteID [16]byte

// SectorID identifies a Sector: MD5 of (site id, node index, position).
type SectorID [16]byte

// LinkID identifies a directed Link: MD5 of the (from, to) site id
// pair in that order, so the two directed backhaul edges of one
// physical link get distinct but derivable ids.
type LinkID [16]byte

func hashFields(fields ...any) [16]byte {
	h := md5.New() //nolint:gosec
	for _, f := range fields {
		fmt.Fprintf(h, "%v|", f)
	}
	var out [16]byte
	copy(out[:], h.Sum(nil))
	return out
}

// NewSiteID computes the stable id of a site from its defining fields.
func NewSiteID(lon, lat, alt float64, siteType SiteType, deviceSKU string) SiteID {
	return SiteID(hashFields(lon, lat, alt, siteType, deviceSKU))
}

// String renders the full hex digest.
func (id SiteID) String() string { return hex.EncodeToString(id[:]) }

// Short renders an 8-hex-digit prefix, for log lines and debug output.
func (id SiteID) Short() string { return hex.EncodeToString(id[:4]) }

// Less gives the canonical sort order over SiteIDs (byte-lexicographic),
// used everywhere the spec requires "sorted order, never insertion
// order" for set-like containers of sites.
func (id SiteID) Less(other SiteID) bool {
	for i := range id {
		if id[i] != other[i] {
			return id[i] < other[i]
		}
	}
	return false
}

// NewSectorID computes the stable id of a sector.
func NewSectorID(site SiteID, node, position int) SectorID {
	return SectorID(hashFields(site, node, position))
}

func (id SectorID) String() string { return hex.EncodeToString(id[:]) }
func (id SectorID) Short() string  { return hex.EncodeToString(id[:4]) }

// NewLinkID computes the stable id of a directed link (from, to).
func NewLinkID(from, to SiteID) LinkID {
	return LinkID(hashFields("link", from, to))
}

func (id LinkID) String() string { return hex.EncodeToString(id[:]) }
func (id LinkID) Short() string  { return hex.EncodeToString(id[:4]) }

// SortSiteIDs returns a sorted copy of ids, the canonical iteration
// order mandated by spec.md 5 ("iteration over set-like containers
// uses sorted order, never insertion order").
func SortSiteIDs(ids []SiteID) []SiteID {
	out := make([]SiteID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
