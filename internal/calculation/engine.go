package calculation

import (
	"time"

	"github.com/google/uuid"

	"github.com/rgehrsitz/runway/internal/domain"
)

// CalculationEngine runs projections for plans and stamps the results
type CalculationEngine struct {
	Logger Logger

	now   func() time.Time
	newID func() string
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Project runs a single projection over an assembled input
func (ce *CalculationEngine) Project(input domain.ScenarioInput) *domain.ScenarioResult {
	ce.Logger.Debugf("projecting from age %d to %d with savings %s", input.CurrentAge, input.CombinedLifeExpectancy, input.CombinedLumpSum.StringFixed(2))

	result := Project(input)

	if result.MoneyRunsOutAge != nil {
		ce.Logger.Infof("savings run out at age %d (%d)", *result.MoneyRunsOutAge, *result.MoneyRunsOutYear)
	} else {
		ce.Logger.Debugf("savings last to age %d with %s remaining", result.LifeExpectancy, result.Summary.FinalBalance.StringFixed(2))
	}
	if len(result.YearlyData) == 0 {
		ce.Logger.Warnf("projection produced no years (age %d, horizon %d, savings %s)", input.CurrentAge, input.CombinedLifeExpectancy, input.CombinedLumpSum.String())
	}
	return result
}

// RunPlan assembles the plan and projects it
func (ce *CalculationEngine) RunPlan(plan *domain.Plan) *domain.ScenarioResult {
	return ce.Project(AssembleScenario(plan))
}

// Analyze runs the plan and wraps the outcome in an identified analysis
func (ce *CalculationEngine) Analyze(plan *domain.Plan) *domain.Analysis {
	input := AssembleScenario(plan)
	name := plan.Name
	if name == "" {
		name = "Baseline"
	}
	return &domain.Analysis{
		ID:          ce.newID(),
		Name:        name,
		GeneratedAt: ce.now().UTC(),
		Plan:        plan.DeepCopy(),
		Input:       input,
		Result:      ce.Project(input),
	}
}
