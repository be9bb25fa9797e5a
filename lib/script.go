package lib

import (
	"fmt"

	lua "github.com/Shopify/go-lua"
)

// LinkWeightFunc scores a link for the interference-minimization
// objective (spec.md 4.7 phase 5: "w_{i,j} decreases with link length
// to reward short redundant links").
type LinkWeightFunc func(l *Link) float64

// AdversarialRankFunc scores a link for the legacy redundancy phase's
// outage-impact ranking (spec.md 4.7 phase 4 "Legacy").
type AdversarialRankFunc func(l *Link, shortfallIfRemoved float64) float64

// DefaultLinkWeight is the built-in w_{i,j} = 1/(1+distance_km), the
// monotonically-decreasing-in-length weight spec.md 4.7 describes in
// prose without pinning an exact formula.
func DefaultLinkWeight(l *Link) float64 {
	return 1 / (1 + l.DistanceM/1000)
}

// DefaultAdversarialRank ranks a link by the shortfall its removal
// would cause, the direct reading of "outage-impact ranking" (spec.md
// 4.7 phase 4 "Legacy").
func DefaultAdversarialRank(_ *Link, shortfallIfRemoved float64) float64 {
	return shortfallIfRemoved
}

// ScriptedScorer wraps a Lua script as a LinkWeightFunc or
// AdversarialRankFunc, the operator-substitutable scoring function of
// SPEC_FULL.md A4. Grounded on the teacher's LuaGenerator: inputs are
// pushed as Lua globals, a registered Go callback captures the
// script's single scalar result, and the whole script file is
// re-executed per call -- the same globals-in/callback-out idiom
// LuaGenerator uses for "num"/"segL" in, "setAngle" out, generalized
// from antenna-segment angles to link scores.
type ScriptedScorer struct {
	path string
}

// NewScriptedScorer records a Lua script path. The script is loaded
// and run fresh on every Weight/AdversarialRank call (DoFile has no
// cheaper "call again" entry point in this binding), so it must be
// side-effect-free aside from calling the registered result setter.
func NewScriptedScorer(path string) (*ScriptedScorer, error) {
	if path == "" {
		return nil, NewConfigError("link_weight_script", "empty script path")
	}
	return &ScriptedScorer{path: path}, nil
}

// Weight scores a link by running the script with distance_m,
// rsl_dbm and backhaul pushed as globals; the script calls the
// registered "setScore(value)" function with its result.
func (s *ScriptedScorer) Weight(l *Link) float64 {
	result, ok := s.run(map[string]float64{
		"distance_m": l.DistanceM,
		"rsl_dbm":    l.RSLDBm,
		"backhaul":   boolToFloat(l.Backhaul),
	})
	if !ok {
		return DefaultLinkWeight(l)
	}
	return result
}

// AdversarialRank scores a link by running the script with
// distance_m and shortfall_if_removed pushed as globals.
func (s *ScriptedScorer) AdversarialRank(l *Link, shortfallIfRemoved float64) float64 {
	result, ok := s.run(map[string]float64{
		"distance_m":           l.DistanceM,
		"shortfall_if_removed": shortfallIfRemoved,
	})
	if !ok {
		return DefaultAdversarialRank(l, shortfallIfRemoved)
	}
	return result
}

func (s *ScriptedScorer) run(globals map[string]float64) (result float64, ok bool) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	for name, val := range globals {
		state.PushNumber(val)
		state.SetGlobal(name)
	}
	state.Register("setScore", func(st *lua.State) int {
		v, _ := st.ToNumber(1)
		result = v
		ok = true
		return 0
	})
	if err := lua.DoFile(state, s.path); err != nil {
		return 0, false
	}
	return result, ok
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Name returns a label for logging/debug rendering.
func (s *ScriptedScorer) Name() string { return fmt.Sprintf("lua:%s", s.path) }
