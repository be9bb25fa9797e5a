package lib

import (
	"math"
	"testing"
)

func TestDbToLinear(t *testing.T) {
	if v := dbToLinear(0); math.Abs(v-1) > 1e-9 {
		t.Fatalf("0 dB should be linear 1, got %v", v)
	}
	if v := dbToLinear(10); math.Abs(v-10) > 1e-9 {
		t.Fatalf("10 dB should be linear 10, got %v", v)
	}
}

func TestSinrInverseThreshold(t *testing.T) {
	// a 10 dB SINR threshold inverts to 1/10
	if v := sinrInverseThreshold(10); math.Abs(v-0.1) > 1e-9 {
		t.Fatalf("expected 0.1, got %v", v)
	}
}

func TestComputeLinkZeroCapacityBelowLowestMCS(t *testing.T) {
	profile := SectorProfile{
		BoresightGainDBi: 20,
		MiscLossDB:       1,
		MCS: MCSTable{
			{MCS: 0, SNRThresholdDB: 50, ThroughputMbps: 1000},
		},
	}
	l := NewLink(SiteID{1}, SiteID{2})
	l.DistanceM = 5000
	p := RadioParams{FrequencyGHz: 60, NoiseFigureDB: 6, ThermalNoiseDBm: -70}
	ComputeLink(l, profile, profile, profile.MCS, 10, p)
	if !l.ZeroCapacity {
		t.Fatalf("expected zero capacity at long range against a high MCS floor, got RSL=%v SNR=%v", l.RSLDBm, l.SNRDb)
	}
}

func TestMaxLinkDistanceMonotonic(t *testing.T) {
	profile := SectorProfile{BoresightGainDBi: 30, MiscLossDB: 0}
	p := RadioParams{FrequencyGHz: 60, NoiseFigureDB: 6, ThermalNoiseDBm: -70}
	near := MaxLinkDistance(profile, profile, 5, 20, p, 20000)
	far := MaxLinkDistance(profile, profile, 30, 20, p, 20000)
	if near <= far {
		t.Fatalf("a lower SNR requirement should reach further: near=%v far=%v", near, far)
	}
}
