// Package tuimsg holds the messages scenes send to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/runway/internal/breakeven"
	"github.com/rgehrsitz/runway/internal/compare"
	"github.com/rgehrsitz/runway/internal/domain"
)

// PlanLoadedMsg carries the plan read at start-up
type PlanLoadedMsg struct {
	Plan *domain.Plan
	Path string
}

// PlanChangedMsg carries an edited copy of the plan; the root re-runs the projection
type PlanChangedMsg struct {
	Plan *domain.Plan
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// CompareRequestedMsg asks for the current plan to be compared against templates
type CompareRequestedMsg struct {
	Templates []string
}

// CompareCompleteMsg signals a comparison has finished
type CompareCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// SavePlanMsg requests the edited plan be written to disk
type SavePlanMsg struct {
	Plan     *domain.Plan
	Filename string
}

// SaveCompleteMsg signals a save operation has finished
type SaveCompleteMsg struct {
	Filename string
	Err      error
}

// BreakEvenRequestedMsg asks for break-even values of the current plan
type BreakEvenRequestedMsg struct {
	Targets []breakeven.Target
}

// BreakEvenCompleteMsg carries solved targets and the reasons others had no solution
type BreakEvenCompleteMsg struct {
	Results  []breakeven.Result
	Unsolved map[breakeven.Target]string
	Err      error
}
