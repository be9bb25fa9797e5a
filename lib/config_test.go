package lib

import "testing"

func TestConfigValidateRejectsMutuallyExclusivePaths(t *testing.T) {
	cfg := &Config{
		BaseTopologyPath:   "a.json",
		CandidateGraphPath: "b.json",
		Devices:            []DeviceConfig{{SKU: "x"}},
		Boundary:           Polygon{{0, 0}, {1, 0}, {1, 1}},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for mutually exclusive base topology / candidate graph paths")
	}
}

func TestConfigValidateRejectsEmptyBoundary(t *testing.T) {
	cfg := &Config{Devices: []DeviceConfig{{SKU: "x"}}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an empty boundary polygon")
	}
}

func TestConfigValidateRejectsUnknownDeviceSKU(t *testing.T) {
	cfg := &Config{
		Devices:  []DeviceConfig{{SKU: "known"}},
		Boundary: Polygon{{0, 0}, {1, 0}, {1, 1}},
		Sites:    []Site{{Device: &Device{SKU: "unknown"}}},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an error for an unrecognized device sku")
	}
}

func TestConfigValidateAccepts(t *testing.T) {
	cfg := &Config{
		Devices:  []DeviceConfig{{SKU: "known"}},
		Boundary: Polygon{{0, 0}, {1, 0}, {1, 1}},
		Sites:    []Site{{Device: &Device{SKU: "known"}}},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected a valid config, got %v", err)
	}
}
