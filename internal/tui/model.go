package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/rgehrsitz/runway/internal/breakeven"
	"github.com/rgehrsitz/runway/internal/calculation"
	"github.com/rgehrsitz/runway/internal/compare"
	"github.com/rgehrsitz/runway/internal/config"
	"github.com/rgehrsitz/runway/internal/domain"
	"github.com/rgehrsitz/runway/internal/tui/scenes"
	"github.com/rgehrsitz/runway/internal/tui/tuimsg"
)

// DefaultSavePath is where a plan that was not loaded from a file is saved
const DefaultSavePath = "runway-plan.yaml"

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	planPath string
	plan     *domain.Plan
	result   *domain.ScenarioResult

	calcEngine    *calculation.CalculationEngine
	compareEngine *compare.CompareEngine
	solver        *breakeven.Solver

	homeModel       *scenes.HomeModel
	parametersModel *scenes.ParametersModel
	resultsModel    *scenes.ResultsModel
	compareModel    *scenes.CompareModel
	breakEvenModel  *scenes.BreakEvenModel

	err     error
	status  string
	loading bool
}

// NewModel creates the application model. An empty planPath starts from
// the default plan.
func NewModel(planPath string) Model {
	calcEngine := calculation.NewCalculationEngine()
	calcEngine.SetLogger(log.WithField("component", "tui"))
	compareEngine := compare.NewCompareEngine(calcEngine)

	return Model{
		currentScene:    SceneHome,
		planPath:        planPath,
		calcEngine:      calcEngine,
		compareEngine:   compareEngine,
		solver:          breakeven.NewDefaultSolver(calcEngine),
		homeModel:       scenes.NewHomeModel(),
		parametersModel: scenes.NewParametersModel(),
		resultsModel:    scenes.NewResultsModel(),
		compareModel:    scenes.NewCompareModel(compareEngine.TemplateRegistry),
		breakEvenModel:  scenes.NewBreakEvenModel(),
		loading:         true,
		width:           80,
		height:          24,
	}
}

// Init loads the plan
func (m Model) Init() tea.Cmd {
	return loadPlanCmd(m.planPath)
}

// Plan returns the plan currently shown
func (m Model) Plan() *domain.Plan {
	return m.plan
}

// Result returns the projection of the current plan
func (m Model) Result() *domain.ScenarioResult {
	return m.result
}

func (m Model) CurrentScene() Scene {
	return m.currentScene
}

func loadPlanCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return tuimsg.PlanLoadedMsg{Plan: config.DefaultPlan()}
		}
		plan, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return tuimsg.PlanLoadedMsg{Plan: plan, Path: path}
	}
}

// compareCmd runs the templates against a snapshot of the plan
func compareCmd(engine *compare.CompareEngine, plan *domain.Plan, templates []string) tea.Cmd {
	return func() tea.Msg {
		set, err := engine.Compare(context.Background(), plan, compare.CompareOptions{Templates: templates})
		return tuimsg.CompareCompleteMsg{Set: set, Err: err}
	}
}

// breakEvenCmd solves each target against a snapshot of the plan
func breakEvenCmd(solver *breakeven.Solver, plan *domain.Plan, targets []breakeven.Target) tea.Cmd {
	return func() tea.Msg {
		msg := tuimsg.BreakEvenCompleteMsg{Unsolved: map[breakeven.Target]string{}}
		for _, t := range targets {
			result, err := solver.Solve(context.Background(), breakeven.Request{Plan: plan, Target: t})
			switch {
			case errors.Is(err, breakeven.ErrNoSolution):
				msg.Unsolved[t] = err.Error()
			case err != nil:
				msg.Err = err
				return msg
			default:
				msg.Results = append(msg.Results, *result)
			}
		}
		return msg
	}
}

func savePlanCmd(plan *domain.Plan, filename string) tea.Cmd {
	return func() tea.Msg {
		if err := config.NewInputParser().ValidatePlan(plan); err != nil {
			return tuimsg.SaveCompleteMsg{Filename: filename, Err: fmt.Errorf("plan not saved: %w", err)}
		}
		return tuimsg.SaveCompleteMsg{Filename: filename, Err: config.WritePlan(filename, plan)}
	}
}

// setPlan installs a plan and projects it. The projection is synchronous;
// a run over a human lifetime takes microseconds.
func (m *Model) setPlan(plan *domain.Plan) {
	m.plan = plan
	m.result = m.calcEngine.RunPlan(plan)
	m.homeModel.SetPlan(plan, m.result, m.planPath)
	m.resultsModel.SetResult(m.result)
	m.compareModel.Invalidate()
	m.breakEvenModel.Invalidate()
}
