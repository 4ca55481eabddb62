package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/rgehrsitz/runway/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.homeModel.SetSize(msg.Width, msg.Height)
		m.parametersModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		m.breakEvenModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case tuimsg.ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tuimsg.PlanLoadedMsg:
		m.loading = false
		m.planPath = msg.Path
		m.setPlan(msg.Plan)
		m.parametersModel.SetPlan(msg.Plan)
		m.resultsModel.SetBaseline(m.result)
		return m, nil

	case tuimsg.PlanChangedMsg:
		m.setPlan(msg.Plan)
		m.status = ""
		return m, nil

	case tuimsg.CompareRequestedMsg:
		if m.plan == nil {
			return m, nil
		}
		return m, compareCmd(m.compareEngine, m.plan.DeepCopy(), msg.Templates)

	case tuimsg.CompareCompleteMsg:
		if msg.Err != nil {
			m.compareModel.SetResults(nil)
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetResults(msg.Set)
		return m, nil

	case tuimsg.BreakEvenRequestedMsg:
		if m.plan == nil {
			return m, nil
		}
		return m, breakEvenCmd(m.solver, m.plan.DeepCopy(), msg.Targets)

	case tuimsg.BreakEvenCompleteMsg:
		if msg.Err != nil {
			m.breakEvenModel.Invalidate()
			m.err = msg.Err
			return m, nil
		}
		m.breakEvenModel.SetResults(msg.Results, msg.Unsolved)
		return m, nil

	case tuimsg.SavePlanMsg:
		return m, savePlanCmd(msg.Plan, msg.Filename)

	case tuimsg.SaveCompleteMsg:
		if msg.Err != nil {
			log.Errorf("failed to save plan: %v", msg.Err)
			m.err = msg.Err
			return m, nil
		}
		m.planPath = msg.Filename
		m.parametersModel.MarkSaved()
		m.resultsModel.SetBaseline(m.result)
		m.homeModel.SetPlan(m.plan, m.result, m.planPath)
		m.status = "Saved " + msg.Filename
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// handleKeyPress processes global shortcuts before handing keys to the scene
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		// any key dismisses the error
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		return m, navigate(SceneHelp)

	case "esc":
		if m.currentScene == SceneHome {
			return m, nil
		}
		back := m.previousScene
		if back == m.currentScene {
			back = SceneHome
		}
		return m, navigate(back)

	case "1":
		return m, navigate(SceneHome)
	case "2":
		return m, navigate(SceneParameters)
	case "3":
		return m, navigate(SceneResults)
	case "4":
		return m, navigate(SceneCompare)
	case "5":
		return m, navigate(SceneBreakEven)

	case "ctrl+s":
		if m.plan == nil {
			return m, nil
		}
		filename := m.planPath
		if filename == "" {
			filename = DefaultSavePath
		}
		plan := m.plan.DeepCopy()
		return m, func() tea.Msg {
			return tuimsg.SavePlanMsg{Plan: plan, Filename: filename}
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneBreakEven:
		m.breakEvenModel, cmd = m.breakEvenModel.Update(msg)
	}
	return m, cmd
}
