package lib

import "testing"

func TestBranchAndBoundSolverSimpleBinaryKnapsack(t *testing.T) {
	b := NewProblemBuilder("test")
	b.Var("x1", Binary, 0, 1)
	b.Var("x2", Binary, 0, 1)
	b.Constraint("budget", LE, 1, Term{Var: "x1", Coef: 1}, Term{Var: "x2", Coef: 1})
	b.SetObjective(false, Term{Var: "x1", Coef: 3}, Term{Var: "x2", Coef: 5})
	p := b.Build()

	s := &BranchAndBoundSolver{}
	sol, err := s.Solve(p, SolveParams{})
	if err != nil {
		t.Fatal(err)
	}
	if sol.Status != StatusOptimal && sol.Status != StatusFeasible {
		t.Fatalf("expected a feasible/optimal solution, got status %v", sol.Status)
	}
	if sol.Extract("x1") != 0 || sol.Extract("x2") != 1 {
		t.Fatalf("expected picking only the higher-value item, got x1=%v x2=%v",
			sol.Extract("x1"), sol.Extract("x2"))
	}
}

func TestBranchAndBoundSolverInfeasible(t *testing.T) {
	b := NewProblemBuilder("test")
	b.Var("x", Continuous, 0, 1)
	b.Constraint("lo", GE, 2, Term{Var: "x", Coef: 1})
	p := b.Build()

	s := &BranchAndBoundSolver{}
	sol, err := s.Solve(p, SolveParams{})
	if err != nil {
		t.Fatal(err)
	}
	if sol.Status != StatusInfeasible {
		t.Fatalf("expected StatusInfeasible for x<=1 contradicting x>=2, got %v", sol.Status)
	}
}
