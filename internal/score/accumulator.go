package score

import "github.com/ehiller1/dementia/internal/model"

// accumulator collects additive score adjustments alongside an
// append-only evidence log. The clamp into [0,1] happens exactly once,
// when the result is taken, so stacked penalties can't push the final
// score out of range.
type accumulator struct {
	score    float64
	evidence []string
}

func newAccumulator(base float64) *accumulator {
	return &accumulator{score: base}
}

// add applies a signed adjustment and records the evidence line for it
func (a *accumulator) add(delta float64, evidence string) {
	a.score += delta
	a.evidence = append(a.evidence, evidence)
}

// result clamps the accumulated score into [0,1] and returns the
// finished principle score
func (a *accumulator) result() model.PrincipleScore {
	s := a.score
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return model.PrincipleScore{
		Score:    s,
		Evidence: a.evidence,
	}
}
