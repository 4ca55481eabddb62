package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the break-even value of a single plan input by binary search
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve searches the bracket for the break-even value of req.Target.
// The plan survives when savings never run out before life expectancy.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if req.Plan == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "plan cannot be nil"}
	}
	if _, err := ParseTarget(string(req.Target)); err != nil {
		return nil, err
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations <= 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = DefaultSolverOptions().MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if !req.Tolerance.IsPositive() {
		req.Tolerance = req.Target.defaultTolerance()
	}

	lower, upper := req.Target.defaultBounds(req.Plan)
	if req.Constraints.Lower != nil {
		lower = *req.Constraints.Lower
	}
	if req.Constraints.Upper != nil {
		upper = *req.Constraints.Upper
	}
	if lower.GreaterThan(upper) {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("lower bound %s is above upper bound %s", lower.String(), upper.String()),
		}
	}

	result := &Result{
		Target:         req.Target,
		CurrentValue:   req.Target.currentValue(req.Plan),
		Lower:          lower,
		Upper:          upper,
		BaseProjection: s.CalcEngine.RunPlan(req.Plan),
	}

	// pass is the end of the bracket known to survive, fail the end known not to
	pass, fail := lower, upper
	if !req.Target.maximize() {
		pass, fail = upper, lower
	}

	passRun, ok, err := s.evaluate(req, pass)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("%s: savings run out even at %s", req.Target, pass.String()),
			Cause:     ErrNoSolution,
		}
	}

	failRun, ok, err := s.evaluate(req, fail)
	if err != nil {
		return nil, err
	}
	if ok {
		result.Value = fail
		result.Projection = failRun
		result.Converged = true
		result.ConvergenceInfo = fmt.Sprintf("savings last across the whole bracket, %s returned", fail.String())
		result.Difference = result.Value.Sub(result.CurrentValue)
		return result, nil
	}

	for result.Iterations < req.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if fail.Sub(pass).Abs().LessThanOrEqual(req.Tolerance) {
			result.Converged = true
			break
		}

		result.Iterations++
		mid := pass.Add(fail).Div(two)

		run, ok, err := s.evaluate(req, mid)
		if err != nil {
			return nil, err
		}
		if ok {
			pass, passRun = mid, run
		} else {
			fail = mid
		}
	}

	if !result.Converged && fail.Sub(pass).Abs().LessThanOrEqual(req.Tolerance) {
		result.Converged = true
	}

	result.Value = pass
	result.Projection = passRun
	result.Difference = result.Value.Sub(result.CurrentValue)
	if result.Converged {
		result.ConvergenceInfo = fmt.Sprintf("binary search converged within %s after %d iterations", req.Tolerance.String(), result.Iterations)
	} else {
		result.ConvergenceInfo = fmt.Sprintf("max iterations (%d) reached", req.MaxIterations)
	}

	return result, nil
}

// evaluate runs the plan with the target set to value and reports survival
func (s *Solver) evaluate(req Request, value decimal.Decimal) (*domain.ScenarioResult, bool, error) {
	modified, err := calculation.ApplySensitivityValue(req.Plan, req.Target.parameter(), value)
	if err != nil {
		return nil, false, &BreakEvenError{
			Operation: "evaluate",
			Message:   "failed to apply value",
			Cause:     err,
		}
	}
	run := s.CalcEngine.RunPlan(modified)
	return run, run.IsSuccessful(), nil
}
