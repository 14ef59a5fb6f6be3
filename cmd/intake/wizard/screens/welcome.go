// Package screens holds one bubbletea screen per wizard step.
package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/simorghcare/intake/cmd/intake/wizard/components"
)

const welcomeText = `این پرسشنامه برای شناخت بهتر رفتار کودک شما طراحی شده است.
ابتدا چند سوال درباره خانواده پاسخ می‌دهید و سپس در هر بخش،
مواردی را که در رفتار کودک خود می‌بینید علامت می‌زنید.

پاسخ‌های شما به صورت خودکار ذخیره می‌شود و می‌توانید
هر زمان ادامه دهید.`

// WelcomeScreen is the intro step. No data entry, only the choice to begin.
type WelcomeScreen struct {
	form      *huh.Form
	begin     bool
	done      bool
	cancelled bool
	width     int
	height    int
}

// NewWelcomeScreen creates the intro screen.
func NewWelcomeScreen() *WelcomeScreen {
	s := &WelcomeScreen{begin: true}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("begin").
				Title("شروع پرسشنامه؟").
				Affirmative("شروع").
				Negative("خروج").
				Value(&s.begin),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *WelcomeScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *WelcomeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *WelcomeScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("پرسشنامه رفتاری کودک")
	intro := components.SubtitleStyle.Render(welcomeText)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		intro,
		"",
		s.form.View(),
		"",
		"Enter: ادامه | Esc: خروج",
	)
}

// Done returns true if the form was completed
func (s *WelcomeScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *WelcomeScreen) Cancelled() bool { return s.cancelled }

// Begin returns true if the user chose to start the wizard
func (s *WelcomeScreen) Begin() bool { return s.begin }
