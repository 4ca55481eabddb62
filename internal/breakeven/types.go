package breakeven

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/shopspring/decimal"
)

// Target names the plan input the solver searches over
type Target string

const (
	TargetMaxSpending Target = "max_spending" // largest monthly spending for self that lasts
	TargetMinSavings  Target = "min_savings"  // smallest lump sum for self that lasts
	TargetMinGrowth   Target = "min_growth"   // lowest growth rate that lasts
)

// AllTargets lists the supported targets in display order
func AllTargets() []Target {
	return []Target{TargetMaxSpending, TargetMinSavings, TargetMinGrowth}
}

// ParseTarget converts a CLI or URL value into a Target
func ParseTarget(s string) (Target, error) {
	for _, t := range AllTargets() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &BreakEvenError{
		Operation: "parse_target",
		Message:   fmt.Sprintf("unsupported target %q, expected one of max_spending, min_savings, min_growth", s),
	}
}

// maximize reports whether larger values are harder to sustain
func (t Target) maximize() bool {
	return t == TargetMaxSpending
}

// parameter maps the target onto the plan input it varies
func (t Target) parameter() string {
	switch t {
	case TargetMaxSpending:
		return domain.ParamDesiredMonthlyIncome
	case TargetMinSavings:
		return domain.ParamLumpSum
	default:
		return domain.ParamGrowthRate
	}
}

// currentValue returns the plan's own value for the target
func (t Target) currentValue(plan *domain.Plan) decimal.Decimal {
	switch t {
	case TargetMaxSpending:
		return plan.Self.DesiredMonthlyIncome
	case TargetMinSavings:
		return plan.Self.LumpSumSavings
	default:
		return plan.InvestmentGrowthRate
	}
}

// defaultTolerance is the bracket width at which the search stops
func (t Target) defaultTolerance() decimal.Decimal {
	switch t {
	case TargetMaxSpending:
		return decimal.NewFromInt(1)
	case TargetMinSavings:
		return decimal.NewFromInt(100)
	default:
		return decimal.NewFromFloat(0.01)
	}
}

// defaultBounds returns the search bracket used when no constraints are given
func (t Target) defaultBounds(plan *domain.Plan) (decimal.Decimal, decimal.Decimal) {
	switch t {
	case TargetMaxSpending:
		upper := decimal.Max(
			decimal.NewFromInt(100000),
			plan.Self.DesiredMonthlyIncome.Mul(decimal.NewFromInt(10)),
			plan.Self.LumpSumSavings.Div(decimal.NewFromInt(12)),
		)
		return decimal.Zero, upper
	case TargetMinSavings:
		upper := decimal.Max(
			decimal.NewFromInt(10000000),
			plan.Self.LumpSumSavings.Mul(decimal.NewFromInt(10)),
		)
		return decimal.Zero, upper
	default:
		return decimal.Zero, decimal.NewFromInt(25)
	}
}

// Constraints override the default search bracket
type Constraints struct {
	Lower *decimal.Decimal `json:"lower,omitempty"`
	Upper *decimal.Decimal `json:"upper,omitempty"`
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.Lower != nil && c.Lower.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "lower bound cannot be negative",
		}
	}
	if c.Lower != nil && c.Upper != nil && c.Lower.GreaterThan(*c.Upper) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "lower bound cannot be greater than upper bound",
		}
	}
	return nil
}

// Request defines the parameters for one break-even search
type Request struct {
	Plan          *domain.Plan
	Target        Target
	Constraints   Constraints
	MaxIterations int
	Tolerance     decimal.Decimal
}

// Result is the outcome of a break-even search
type Result struct {
	Target          Target          `json:"target"`
	Value           decimal.Decimal `json:"value"`
	CurrentValue    decimal.Decimal `json:"currentValue"`
	Difference      decimal.Decimal `json:"difference"` // value minus current value
	Lower           decimal.Decimal `json:"lower"`
	Upper           decimal.Decimal `json:"upper"`
	Iterations      int             `json:"iterations"`
	Converged       bool            `json:"converged"`
	ConvergenceInfo string          `json:"convergenceInfo"`

	// projection at the break-even value
	Projection *domain.ScenarioResult `json:"projection"`
	// plan as given
	BaseProjection *domain.ScenarioResult `json:"baseProjection"`
}

// Headroom reports whether the current plan sits on the safe side of the break-even value
func (r *Result) Headroom() bool {
	if r.Target.maximize() {
		return r.CurrentValue.LessThanOrEqual(r.Value)
	}
	return r.CurrentValue.GreaterThanOrEqual(r.Value)
}

// MultiResult contains the results of solving every target for one plan
type MultiResult struct {
	Results         []Result          `json:"results"`
	Unsolved        map[Target]string `json:"unsolved,omitempty"`
	Recommendations []string          `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // zero means the per-target default
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 50,
	}
}

// ErrNoSolution is returned when no value inside the bracket lets savings last
var ErrNoSolution = errors.New("no break-even value within bounds")

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
