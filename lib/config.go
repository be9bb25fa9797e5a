package lib

import (
	"bytes"
	"encoding/json"
	"io"
)

// RedundancyLevel selects the per-site capacity caps the min-cost
// redundancy phase enforces (spec.md 4.7 phase 4).
type RedundancyLevel int

const (
	RedundancyLow RedundancyLevel = iota
	RedundancyMedium
	RedundancyHigh
)

// RoutingFilter selects how the Flow Analyzer attributes flow to paths
// (spec.md 4.8).
type RoutingFilter int

const (
	ShortestPath RoutingFilter = iota
	MCSCostPath
	DPAPath
)

// PhaseLimits is the {rel_gap, max_time_minutes} pair spec.md 6
// requires per solver phase.
type PhaseLimits struct {
	RelGap        float64 `json:"rel_gap"`
	MaxTimeMinutes float64 `json:"max_time_minutes"`
}

// BuildingConfig is the JSON-facing mirror of a Building: an outline
// plus a height attribute, without the derived HeightsAt closure that
// BuildCandidateGraph computes once buildings are joined with the DSM
// raster (spec.md 6 "building outlines ... with optional height
// attribute").
type BuildingConfig struct {
	ID       string  `json:"id"`
	Outline  []Vec2  `json:"outline"`
	HeightZ  float64 `json:"height_z"`
}

// DeviceConfig is one entry of the per-device radio-parameter catalog
// (spec.md 6 "per-device radio parameters").
type DeviceConfig struct {
	SKU             string        `json:"sku"`
	Type            SiteType      `json:"type"`
	CapexNode       float64       `json:"capex_node"`
	MaxNodesPerSite int           `json:"max_nodes_per_site"`
	Sector          SectorProfile `json:"sector"`
}

// Config is the flat typed record of every recognized field in
// spec.md §6's configuration surface. It mirrors the shape of the
// teacher's config.go Config/Default/Simulation split (one struct per
// concern, all reachable from a single top-level value) but collapses
// to one flat struct since the planning domain's fields, unlike the
// antenna optimizer's, don't subdivide into a command-line-default
// layer and a simulation-constants layer.
type Config struct {
	// geographic inputs
	Boundary  Polygon          `json:"boundary"`
	Buildings []BuildingConfig `json:"buildings"`
	Sites     []Site           `json:"sites"`

	// optional precomputed graph: when set, LOS is skipped (candidate
	// graph) or extended (base topology) rather than recomputed.
	CandidateGraphPath string `json:"candidate_graph_path"`
	BaseTopologyPath   string `json:"base_topology_path"`

	Devices []DeviceConfig `json:"devices"`

	LOS   LOSConfig   `json:"los"`
	Radio RadioParams `json:"radio"`

	TxPowerDBm              float64 `json:"tx_power_dbm"`
	LinkAvailabilityPercent float64 `json:"link_availability_percent"`

	SiteCapex   float64 `json:"site_capex"`
	SectorCapex float64 `json:"sector_capex"`
	BudgetUSD   float64 `json:"budget_usd"`

	Demand DemandConfig `json:"demand"`

	PopCapacityGbps     float64 `json:"pop_capacity_gbps"`
	NumberOfExtraPOPs   int     `json:"number_of_extra_pops"`
	DNDNSectorLimit     int     `json:"dn_dn_sector_limit"`
	DNTotalSectorLimit  int     `json:"dn_total_sector_limit"`
	DiffSectorAngleLimitDeg float64 `json:"diff_sector_angle_limit_deg"`

	NearFarLengthRatio    float64 `json:"near_far_length_ratio"`
	NearFarAngleLimitDeg  float64 `json:"near_far_angle_limit_deg"`

	OversubscriptionRatio    float64         `json:"oversubscription_ratio"`
	NumberOfChannels         int             `json:"number_of_channels"`
	MaximizeCommonBandwidth  bool            `json:"maximize_common_bandwidth"`
	AlwaysActivePOPs         []SiteID        `json:"always_active_pops"`
	EnableLegacyRedundancy   bool            `json:"enable_legacy_redundancy_method"`
	RedundancyLevel          RedundancyLevel `json:"redundancy_level"`
	BackhaulRedundancyRatio  float64         `json:"backhaul_link_redundancy_ratio"`

	PhaseLimits map[string]PhaseLimits `json:"phase_limits"`

	TopologyRouting RoutingFilter `json:"topology_routing"`

	// availability simulation knobs: Monte Carlo trial count and seed
	// for the link-availability-percent degradation study spec.md 6
	// names but leaves unspecified in detail.
	AvailabilityTrials int   `json:"availability_trials"`
	AvailabilitySeed   int64 `json:"availability_seed"`

	// extension points (SPEC_FULL.md A4)
	LinkWeightScript     string `json:"link_weight_script"`
	AdversarialRankScript string `json:"adversarial_rank_script"`

	DebugLPDump bool `json:"debug_lp_dump"`
}

// LoadConfig decodes a Config from r, rejecting any field not named
// above (spec.md 9 "unknown fields are errors, not silent defaults").
func LoadConfig(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, NewConfigError("", "decoding configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigBytes is a convenience wrapper for callers holding an
// already-read byte slice.
func LoadConfigBytes(data []byte) (*Config, error) {
	return LoadConfig(bytes.NewReader(data))
}

// Validate rejects a base topology together with a candidate graph
// (automatic site detection is already off whenever either is set; see
// BuildConfig), plus the minimal presence checks spec.md §7's
// DataError covers.
func (c *Config) Validate() error {
	if c.BaseTopologyPath != "" && c.CandidateGraphPath != "" {
		return NewConfigError("base_topology_path", "base topology and candidate graph are mutually exclusive")
	}
	if len(c.Devices) == 0 {
		return NewDataError("no devices defined")
	}
	if len(c.Boundary) == 0 {
		return NewDataError("empty boundary polygon")
	}
	skus := make(map[string]bool, len(c.Devices))
	for _, d := range c.Devices {
		skus[d.SKU] = true
	}
	for _, s := range c.Sites {
		if s.Device != nil && !skus[s.Device.SKU] {
			return NewConfigError("sites", "unrecognized device sku %q", s.Device.SKU)
		}
	}
	return nil
}

// BuildConfig projects the subset of Config that feeds
// BuildCandidateGraph (spec.md 4.4), resolving the device catalog from
// DeviceConfig entries into concrete *Device values.
func (c *Config) BuildConfig() BuildConfig {
	devices := make([]*Device, 0, len(c.Devices))
	for _, dc := range c.Devices {
		devices = append(devices, &Device{
			SKU:             dc.SKU,
			Type:            dc.Type,
			CapexNode:       dc.CapexNode,
			MaxNodesPerSite: dc.MaxNodesPerSite,
			Sector:          dc.Sector,
		})
	}
	return BuildConfig{
		LOS:                     c.LOS,
		Radio:                   c.Radio,
		Devices:                 devices,
		AutoSiteDetection:       len(c.Buildings) > 0 && c.BaseTopologyPath == "" && c.CandidateGraphPath == "",
		CornerAngleLimitDeg:     c.NearFarAngleLimitDeg,
		TxPowerDBm:              c.TxPowerDBm,
		DiffSectorAngleLimitDeg: c.DiffSectorAngleLimitDeg,
		BackhaulDeviationWeight: c.BackhaulRedundancyRatio,
		Demand:                  c.Demand,
	}
}

// ResolveBuildings joins the configured building outlines with a DSM
// raster to produce the HeightsAt lookups BuildCandidateGraph's
// automatic site detection needs (spec.md 4.4 step 2).
func (c *Config) ResolveBuildings(raster *Raster) []*Building {
	out := make([]*Building, 0, len(c.Buildings))
	for _, bc := range c.Buildings {
		bc := bc
		out = append(out, &Building{
			ID:      bc.ID,
			Outline: bc.Outline,
			HeightsAt: func(p Vec2) float64 {
				if raster == nil {
					return bc.HeightZ
				}
				return raster.HeightAt(p)
			},
			HighestZ: bc.HeightZ,
		})
	}
	return out
}

// LimitsFor returns the configured {rel_gap, max_time_minutes} for a
// named phase, or a permissive zero-value default if unset.
func (c *Config) LimitsFor(phase string) PhaseLimits {
	if c.PhaseLimits == nil {
		return PhaseLimits{}
	}
	return c.PhaseLimits[phase]
}
