package lib

import "testing"

func TestAnalyzeFlowSingleLinkBeta(t *testing.T) {
	pop := NewSiteID(0, 0, 0, POP, "pop1")
	cn := NewSiteID(1, 0, 0, CN, "cn1")

	graph := NewCandidateGraph()
	graph.AddSite(&Site{ID: pop, Type: POP})
	graph.AddSite(&Site{ID: cn, Type: CN})

	l := NewLink(pop, cn)
	l.Capacity = MCSCapacity{Rows: []MCSRow{{MCS: 0, ThroughputMbps: 2000}}}
	graph.AddLink(l)

	demand := &DemandSite{ID: cn, DemandGbps: 5, Connections: []SiteID{cn}}
	graph.AddDemand(demand)

	top := NewTopology(graph)
	top.SiteState[pop] = StateProposed
	top.SiteState[cn] = StateProposed
	top.LinkState[l.ID] = StateProposed
	top.MCSClass[l.ID] = 0

	analysis, err := AnalyzeFlow(top, 0, ShortestPath)
	if err != nil {
		t.Fatal(err)
	}
	if analysis.Beta < 1.9 || analysis.Beta > 2.1 {
		t.Fatalf("expected beta near the 2 Gbps link capacity, got %v", analysis.Beta)
	}
	if got := analysis.PerDemandBeta[cn]; got < 1.9 || got > 2.1 {
		t.Fatalf("expected per-demand beta near 2, got %v", got)
	}
}

func TestAnalyzeFlowNoSelectedLinks(t *testing.T) {
	graph := NewCandidateGraph()
	top := NewTopology(graph)
	analysis, err := AnalyzeFlow(top, 0, ShortestPath)
	if err != nil {
		t.Fatal(err)
	}
	if analysis.Beta != 0 || len(analysis.PerDemandBeta) != 0 {
		t.Fatalf("expected an empty analysis over an empty topology, got %+v", analysis)
	}
}
