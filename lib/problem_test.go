package lib

import "testing"

func TestProblemBuilderBasic(t *testing.T) {
	b := NewProblemBuilder("test")
	b.Var("x", Binary, 0, 1)
	b.Constraint("cap", LE, 1, Term{Var: "x", Coef: 1})
	b.SetObjective(true, Term{Var: "x", Coef: 1})
	p := b.Build()

	if len(p.Vars) != 1 || p.Vars[0].Name != "x" {
		t.Fatalf("expected one variable x, got %+v", p.Vars)
	}
	if len(p.Constraints) != 1 || p.Constraints[0].Name != "cap" {
		t.Fatalf("expected constraint cap, got %+v", p.Constraints)
	}
	if !p.Obj.Minimize {
		t.Fatal("expected a minimize objective")
	}
}

// TestEmitSINRClassificationResolvesInterferer exercises the fix that
// resolves InterferenceTerm.From (an interfering LinkID) back to its
// site endpoints before building the chi variable name, instead of
// mistaking the id for a SiteID.
func TestEmitSINRClassificationResolvesInterferer(t *testing.T) {
	siteI := NewSiteID(0, 0, 0, DN, "victimRx")
	siteJ := NewSiteID(1, 0, 0, DN, "victimTx")
	siteK := NewSiteID(2, 0, 0, DN, "interfererTx")
	siteL := NewSiteID(3, 0, 0, DN, "interfererRx")

	victim := NewLink(siteJ, siteI)
	victim.RSLDBm = -40
	victim.Capacity = MCSCapacity{Rows: []MCSRow{{MCS: 0, SNRThresholdDB: 10}}}

	interferer := NewLink(siteK, siteL)

	victim.Interference = []InterferenceTerm{{From: interferer.ID, To: victim.ID, PowerMw: 0.001}}

	b := NewProblemBuilder("test")
	EmitSINRClassification(b, []*Link{victim, interferer}, 1e-9, 1)
	p := b.Build()

	wantVar := varChi(siteI, siteK, siteL, 0)
	found := false
	for _, c := range p.Constraints {
		for _, term := range c.Terms {
			if term.Var == wantVar {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("expected a constraint referencing %s, got %+v", wantVar, p.Constraints)
	}
}
