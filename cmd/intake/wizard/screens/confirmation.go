package screens

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/simorghcare/intake/cmd/intake/wizard/components"
)

const (
	confirmExit  = "exit"
	confirmReset = "reset"
)

// ConfirmationScreen is the terminal step shown after a successful
// submission, or immediately on mount when a completion record exists.
type ConfirmationScreen struct {
	form         *huh.Form
	submissionID string
	submittedAt  time.Time
	choice       string
	done         bool
	cancelled    bool
	width        int
	height       int
}

// NewConfirmationScreen creates the post-submission screen. submissionID
// and submittedAt may be zero when the wizard mounted onto an existing
// completion record.
func NewConfirmationScreen(submissionID string, submittedAt time.Time) *ConfirmationScreen {
	s := &ConfirmationScreen{
		submissionID: submissionID,
		submittedAt:  submittedAt,
		choice:       confirmExit,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("choice").
				Title("پرسشنامه شما ثبت شد").
				Options(
					huh.NewOption("خروج", confirmExit),
					huh.NewOption("پاک کردن و شروع پرسشنامه جدید", confirmReset),
				).
				Value(&s.choice),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *ConfirmationScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *ConfirmationScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (s *ConfirmationScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("با تشکر از شما")

	var detail string
	if s.submissionID != "" {
		detail = components.SubtitleStyle.Render(fmt.Sprintf(
			"کد پیگیری: %s\nزمان ثبت: %s",
			s.submissionID,
			s.submittedAt.Format("2006-01-02 15:04"),
		))
	} else {
		detail = components.SubtitleStyle.Render("این پرسشنامه قبلا تکمیل و ارسال شده است.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		detail,
		"",
		s.form.View(),
		"",
		"Enter: انتخاب | Esc: خروج",
	)
}

// Done returns true if the form was completed
func (s *ConfirmationScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *ConfirmationScreen) Cancelled() bool { return s.cancelled }

// Reset returns true if the user chose to discard and start over
func (s *ConfirmationScreen) Reset() bool { return s.choice == confirmReset }
