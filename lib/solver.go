package lib

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// SolveStatus is the outcome taxonomy of spec.md 4.6.
type SolveStatus int

const (
	StatusOptimal SolveStatus = iota
	StatusFeasible
	StatusInfeasible
	StatusTimedOut
)

// SolveParams are the per-invocation knobs of spec.md 4.6.
type SolveParams struct {
	RelGap         float64
	TimeLimit      time.Duration
	ThreadCount    int // reference solver below ignores this beyond determinism bookkeeping
}

// Solution is a solved (or partially solved) problem's result.
type Solution struct {
	Status SolveStatus
	Values map[string]float64
	Cost   float64
	Gap    float64
}

// Extract returns the value assigned to a variable, or 0 if the
// solution has none (e.g. an Infeasible result).
func (s Solution) Extract(name string) float64 { return s.Values[name] }

// Solver is the adapter contract of spec.md 4.6: build/solve/extract,
// abstracted so the real MILP engine a deployment uses (commercial or
// open-source) is swappable without touching the problem builders in
// problem.go. lib ships exactly one concrete implementation,
// BranchAndBoundSolver, as a deterministic reference -- not a
// performance claim.
type Solver interface {
	Solve(p Problem, params SolveParams) (Solution, error)
}

//----------------------------------------------------------------------

// BranchAndBoundSolver is a depth-first branch-and-bound MILP solver in
// the shape of lvlath/tsp's TSPBranchAndBound: deterministic
// branching order, an LP-relaxation lower bound computed with
// gonum's simplex at each node, sparse wall-clock deadline checks, and
// an incumbent that is only ever replaced by a strictly better
// solution (so two runs over the same problem and thread count visit
// nodes in the same order and land on the same incumbent, satisfying
// the determinism property of spec.md 8.1).
type BranchAndBoundSolver struct {
	// MaxNodes bounds search effort as a last-resort safety valve
	// independent of the wall-clock deadline; 0 means unbounded.
	MaxNodes int
}

type bbNode struct {
	fixed map[string]float64 // binaries fixed so far
}

// Solve implements Solver. Infeasible and timed-out outcomes are
// reported through Solution.Status with a nil error.
func (s *BranchAndBoundSolver) Solve(p Problem, params SolveParams) (Solution, error) {
	binaries := make([]string, 0)
	for _, v := range p.Vars {
		if v.Kind == Binary {
			binaries = append(binaries, v.Name)
		}
	}
	sort.Strings(binaries) // deterministic branching order, independent of map/slice build order

	var deadline time.Time
	useDeadline := params.TimeLimit > 0
	if useDeadline {
		deadline = time.Now().Add(params.TimeLimit)
	}

	best := Solution{Status: StatusInfeasible}
	bestCost := math.Inf(1)
	sign := 1.0
	if !p.Obj.Minimize {
		sign = -1.0
	}

	nodes := 0
	var recurse func(idx int, fixed map[string]float64) bool // returns false to abort (timeout/node cap)
	recurse = func(idx int, fixed map[string]float64) bool {
		nodes++
		if s.MaxNodes > 0 && nodes > s.MaxNodes {
			return false
		}
		if useDeadline && nodes%256 == 0 && time.Now().After(deadline) {
			return false
		}

		relaxed, bound, feasible := lpBound(p, fixed, sign)
		if !feasible {
			return true // prune: infeasible subtree
		}
		if bound >= bestCost-1e-9 {
			return true // prune: cannot beat incumbent
		}

		if idx == len(binaries) {
			if bound < bestCost {
				bestCost = bound
				best = Solution{Status: StatusOptimal, Values: relaxed, Cost: sign * bound}
			}
			return true
		}

		name := binaries[idx]
		for _, val := range [2]float64{0, 1} {
			next := make(map[string]float64, len(fixed)+1)
			for k, v := range fixed {
				next[k] = v
			}
			next[name] = val
			if !recurse(idx+1, next) {
				return false
			}
		}
		return true
	}

	completed := recurse(0, map[string]float64{})
	if best.Status != StatusOptimal {
		if !completed {
			return Solution{Status: StatusTimedOut}, nil
		}
		return Solution{Status: StatusInfeasible}, nil
	}
	if !completed {
		best.Status = StatusTimedOut
		return best, nil
	}
	return best, nil
}

// lpBound solves the LP relaxation of p with the given binaries fixed,
// returning the (possibly fractional) solution, its objective value
// oriented for minimization (multiplied by sign), and whether it was
// feasible at all.
func lpBound(p Problem, fixed map[string]float64, sign float64) (map[string]float64, float64, bool) {
	c, A, b, index, err := standardForm(p, fixed, sign)
	if err != nil || len(c) == 0 {
		return nil, math.Inf(1), false
	}
	_, x, err := lp.Simplex(c, A, b, 1e-10, nil)
	if err != nil {
		return nil, math.Inf(1), false
	}
	values := make(map[string]float64, len(index))
	obj := 0.0
	for name, i := range index {
		lo := varByName(p.Vars, name).Lo
		values[name] = x[i] + lo
		obj += c[i] * (x[i] + lo)
	}
	for _, t := range p.Obj.Terms {
		if v, ok := fixed[t.Var]; ok {
			obj += sign * t.Coef * v
		}
	}
	for k, v := range fixed {
		values[k] = v
	}
	return values, obj, true
}

// standardForm converts p into gonum/lp's standard form: minimize
// c^T x subject to A x = b, x >= 0. Every variable is shifted to a
// zero lower bound (x' = x - Lo), every inequality row gains a slack
// or surplus column, and every variable's upper bound becomes an
// extra row -- the textbook reduction, applied mechanically so
// problem.go's builders never need to know the solver's internal
// representation.
func standardForm(p Problem, fixed map[string]float64, sign float64) ([]float64, *mat.Dense, []float64, map[string]int, error) {
	free := make([]Variable, 0, len(p.Vars))
	for _, v := range p.Vars {
		if val, ok := fixed[v.Name]; ok {
			_ = val
			continue
		}
		free = append(free, v)
	}
	index := make(map[string]int, len(free))
	for i, v := range free {
		index[v.Name] = i
	}
	nVar := len(free)

	rows := make([][]float64, 0, len(p.Constraints)+nVar)
	rhs := make([]float64, 0, len(p.Constraints)+nVar)

	rowFor := func(terms []Term, sense Sense, rhsVal float64) ([]float64, float64, bool) {
		row := make([]float64, nVar)
		adjusted := rhsVal
		for _, t := range terms {
			if val, ok := fixed[t.Var]; ok {
				adjusted -= t.Coef * val
				continue
			}
			i, ok := index[t.Var]
			if !ok {
				return nil, 0, false
			}
			v := varByName(free, t.Var)
			adjusted -= t.Coef * v.Lo
			row[i] += t.Coef
		}
		switch sense {
		case GE:
			for i := range row {
				row[i] = -row[i]
			}
			adjusted = -adjusted
		case EQ:
			// no slack
		}
		return row, adjusted, true
	}

	for _, con := range p.Constraints {
		row, rhsVal, ok := rowFor(con.Terms, con.Sense, con.RHS)
		if !ok {
			return nil, nil, nil, nil, fmt.Errorf("constraint %s references an unknown variable", con.Name)
		}
		if con.Sense == EQ {
			rows = append(rows, row)
			rhs = append(rhs, rhsVal)
			continue
		}
		slackRow := make([]float64, nVar+1)
		copy(slackRow, row)
		slackRow[nVar] = 1
		rows = append(rows, slackRow)
		rhs = append(rhs, rhsVal)
		nVar++ // a fresh slack column per inequality, appended at the end
		for i := range rows[:len(rows)-1] {
			rows[i] = append(rows[i], 0)
		}
	}

	for _, v := range free {
		if math.IsInf(v.Hi, 1) {
			continue
		}
		row := make([]float64, nVar+1)
		row[index[v.Name]] = 1
		row[nVar] = 1
		rows = append(rows, row)
		rhs = append(rhs, v.Hi-v.Lo)
		nVar++
		for i := range rows[:len(rows)-1] {
			rows[i] = append(rows[i], 0)
		}
	}

	c := make([]float64, nVar)
	for _, t := range p.Obj.Terms {
		if i, ok := index[t.Var]; ok {
			c[i] += sign * t.Coef
		}
	}

	m := len(rows)
	if m == 0 {
		return c, mat.NewDense(0, nVar, nil), nil, index, nil
	}
	flat := make([]float64, 0, m*nVar)
	for _, row := range rows {
		padded := make([]float64, nVar)
		copy(padded, row)
		flat = append(flat, padded...)
	}
	A := mat.NewDense(m, nVar, flat)
	return c, A, rhs, index, nil
}

func varByName(vars []Variable, name string) Variable {
	for _, v := range vars {
		if v.Name == name {
			return v
		}
	}
	return Variable{}
}
