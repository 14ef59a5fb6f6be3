// Package wizard provides the interactive terminal UI for the intake
// assessment: one screen per engine step, navigation and submission wired
// through the engine's gates.
package wizard

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simorghcare/intake/cmd/intake/wizard/components"
	"github.com/simorghcare/intake/cmd/intake/wizard/screens"
	"github.com/simorghcare/intake/internal/assessment"
)

// Wizard is the main orchestrator for the wizard interface. The engine
// owns all state; the wizard only maps the current step to a screen and
// feeds user actions back into the engine.
type Wizard struct {
	engine *assessment.Engine

	// Screen instances, one active at a time depending on the step
	welcomeScreen      *screens.WelcomeScreen
	demoScreen         *screens.DemographicsScreen
	categoryScreen     *screens.CategoryScreen
	summaryScreen      *screens.SummaryScreen
	confirmationScreen *screens.ConfirmationScreen

	// Outcome of the last submission attempt
	submitErr   error
	lastPayload assessment.Payload

	// stale is set by the engine's step-change signal; the active screen
	// is rebuilt before the next render so it starts at the top.
	stale bool

	// Window size
	width  int
	height int

	// Final state
	cancelled bool
	finished  bool
}

// NewWizard creates a wizard over an engine and registers for its
// step-change signal.
func NewWizard(engine *assessment.Engine) *Wizard {
	w := &Wizard{engine: engine, stale: true}
	engine.SetOnStepChange(w.markStale)
	w.rebuild()
	return w
}

// markStale implements the engine's scroll-to-top contract: the active
// screen is rebuilt so the next render starts at the top of the step.
func (w *Wizard) markStale() {
	w.stale = true
}

// rebuild constructs the screen matching the engine's current step.
func (w *Wizard) rebuild() {
	step := w.engine.Step()

	switch {
	case step == assessment.StepWelcome:
		w.welcomeScreen = screens.NewWelcomeScreen()

	case step == assessment.StepDemographics:
		w.demoScreen = screens.NewDemographicsScreen(w.engine)

	case step == w.engine.SummaryStep():
		w.summaryScreen = screens.NewSummaryScreen(w.engine, w.submitErr)

	case step == w.engine.ConfirmationStep():
		w.confirmationScreen = screens.NewConfirmationScreen(
			w.lastPayload.SubmissionID, w.lastPayload.SubmittedAt)

	default:
		cat := w.engine.CategoryAt(step)
		header := components.ProgressHeader{
			Step:       step - 1, // demographics is position 1
			TotalSteps: w.engine.Catalog().Len() + 2,
			Selected:   w.engine.TotalSelected(),
			MaxTotal:   w.engine.Rules().MaxTotal,
		}
		w.categoryScreen = screens.NewCategoryScreen(w.engine, cat, header)
	}

	w.stale = false
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.currentInit()
}

func (w *Wizard) currentInit() tea.Cmd {
	step := w.engine.Step()
	switch {
	case step == assessment.StepWelcome:
		return w.welcomeScreen.Init()
	case step == assessment.StepDemographics:
		return w.demoScreen.Init()
	case step == w.engine.SummaryStep():
		return w.summaryScreen.Init()
	case step == w.engine.ConfirmationStep():
		return w.confirmationScreen.Init()
	default:
		return w.categoryScreen.Init()
	}
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = wsm.Width
		w.height = wsm.Height
	}

	step := w.engine.Step()
	var cmd tea.Cmd

	switch {
	case step == assessment.StepWelcome:
		cmd = w.updateWelcome(msg)
	case step == assessment.StepDemographics:
		cmd = w.updateDemographics(msg)
	case step == w.engine.SummaryStep():
		cmd = w.updateSummary(msg)
	case step == w.engine.ConfirmationStep():
		cmd = w.updateConfirmation(msg)
	default:
		cmd = w.updateCategory(msg)
	}

	if w.cancelled || w.finished {
		return w, tea.Quit
	}

	if w.stale {
		w.rebuild()
		return w, w.currentInit()
	}

	return w, cmd
}

// View implements tea.Model.
func (w *Wizard) View() string {
	step := w.engine.Step()
	switch {
	case step == assessment.StepWelcome:
		return w.welcomeScreen.View()
	case step == assessment.StepDemographics:
		return w.demoScreen.View()
	case step == w.engine.SummaryStep():
		return w.summaryScreen.View()
	case step == w.engine.ConfirmationStep():
		return w.confirmationScreen.View()
	default:
		return w.categoryScreen.View()
	}
}

func (w *Wizard) updateWelcome(msg tea.Msg) tea.Cmd {
	model, cmd := w.welcomeScreen.Update(msg)
	if s, ok := model.(*screens.WelcomeScreen); ok {
		w.welcomeScreen = s
	}

	if w.welcomeScreen.Cancelled() {
		w.cancelled = true
		return nil
	}
	if w.welcomeScreen.Done() {
		if !w.welcomeScreen.Begin() {
			w.cancelled = true
			return nil
		}
		w.engine.Start()
	}
	return cmd
}

func (w *Wizard) updateDemographics(msg tea.Msg) tea.Cmd {
	model, cmd := w.demoScreen.Update(msg)
	if s, ok := model.(*screens.DemographicsScreen); ok {
		w.demoScreen = s
	}

	if w.demoScreen.Cancelled() {
		w.cancelled = true
		return nil
	}
	if w.demoScreen.Back() {
		w.engine.Prev()
		return cmd
	}
	if w.demoScreen.Done() {
		w.engine.Next()
		if w.engine.Step() == assessment.StepDemographics {
			// Gate refused: rebuild the form so the user can finish it.
			w.stale = true
		}
	}
	return cmd
}

func (w *Wizard) updateCategory(msg tea.Msg) tea.Cmd {
	model, cmd := w.categoryScreen.Update(msg)
	if s, ok := model.(*screens.CategoryScreen); ok {
		w.categoryScreen = s
	}

	if w.categoryScreen.Cancelled() {
		w.cancelled = true
		return nil
	}
	if w.categoryScreen.Back() {
		w.engine.Prev()
		return cmd
	}
	if w.categoryScreen.Done() {
		before := w.engine.Step()
		w.engine.Next()
		if w.engine.Step() == before {
			w.stale = true
		}
	}
	return cmd
}

func (w *Wizard) updateSummary(msg tea.Msg) tea.Cmd {
	model, cmd := w.summaryScreen.Update(msg)
	if s, ok := model.(*screens.SummaryScreen); ok {
		w.summaryScreen = s
	}

	if w.summaryScreen.Cancelled() {
		w.cancelled = true
		return nil
	}
	if w.summaryScreen.Done() {
		switch w.summaryScreen.Action() {
		case screens.SummaryActionBack:
			w.engine.Prev()

		case screens.SummaryActionSubmit:
			payload, err := w.engine.Submit(context.Background())
			if err != nil {
				w.submitErr = err
				w.stale = true
				return cmd
			}
			w.submitErr = nil
			w.lastPayload = payload
			w.stale = true

		case screens.SummaryActionReset:
			w.engine.Reset()
			w.stale = true

		case screens.SummaryActionCancel:
			w.cancelled = true
		}
	}
	return cmd
}

func (w *Wizard) updateConfirmation(msg tea.Msg) tea.Cmd {
	model, cmd := w.confirmationScreen.Update(msg)
	if s, ok := model.(*screens.ConfirmationScreen); ok {
		w.confirmationScreen = s
	}

	if w.confirmationScreen.Cancelled() {
		w.finished = true
		return nil
	}
	if w.confirmationScreen.Done() {
		if w.confirmationScreen.Reset() {
			w.engine.Reset()
			w.stale = true
			return cmd
		}
		w.finished = true
	}
	return cmd
}

// Run mounts the engine (loading any persisted progress) and drives the
// interactive wizard to completion or cancellation.
func Run(engine *assessment.Engine) error {
	engine.Load()

	w := NewWizard(engine)
	p := tea.NewProgram(w, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}
	return nil
}
