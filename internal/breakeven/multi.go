package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
)

// SolveAll runs every target against the plan with default bounds.
// Targets without a solution are reported in Unsolved rather than failing the run.
func (s *Solver) SolveAll(ctx context.Context, plan *domain.Plan) (*MultiResult, error) {
	multi := &MultiResult{
		Unsolved: map[Target]string{},
	}

	for _, target := range AllTargets() {
		result, err := s.Solve(ctx, Request{Plan: plan, Target: target})
		if err != nil {
			if errors.Is(err, ErrNoSolution) {
				multi.Unsolved[target] = err.Error()
				continue
			}
			return nil, err
		}
		multi.Results = append(multi.Results, *result)
	}

	if len(multi.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "solve_all",
			Message:   "no target could be solved",
			Cause:     ErrNoSolution,
		}
	}

	multi.Recommendations = generateRecommendations(multi)
	return multi, nil
}

func generateRecommendations(multi *MultiResult) []string {
	var recommendations []string

	for _, r := range multi.Results {
		switch r.Target {
		case TargetMaxSpending:
			if r.Headroom() {
				recommendations = append(recommendations,
					fmt.Sprintf("Spending: you could spend up to $%s/month, $%s more than planned",
						r.Value.StringFixed(0), r.Difference.StringFixed(0)))
			} else {
				recommendations = append(recommendations,
					fmt.Sprintf("Spending: cut monthly spending by $%s to make savings last",
						r.Difference.Neg().StringFixed(0)))
			}
		case TargetMinSavings:
			if r.Headroom() {
				recommendations = append(recommendations,
					fmt.Sprintf("Savings: a lump sum of $%s would be enough, leaving a $%s cushion",
						r.Value.StringFixed(0), r.Difference.Neg().StringFixed(0)))
			} else {
				recommendations = append(recommendations,
					fmt.Sprintf("Savings: you need $%s more saved to last", r.Difference.StringFixed(0)))
			}
		case TargetMinGrowth:
			if r.Headroom() {
				recommendations = append(recommendations,
					fmt.Sprintf("Growth: the plan holds with returns as low as %s%%", r.Value.StringFixed(2)))
			} else {
				recommendations = append(recommendations,
					fmt.Sprintf("Growth: the plan needs at least %s%% annual growth", r.Value.StringFixed(2)))
			}
		}
	}

	if reason, ok := multi.Unsolved[TargetMinGrowth]; ok && reason != "" {
		recommendations = append(recommendations, "Growth alone cannot close the gap within 25% annual returns")
	}

	return recommendations
}
