package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/simorghcare/intake/cmd/intake/wizard/components"
	"github.com/simorghcare/intake/internal/assessment"
)

// SummaryAction represents the action selected on the summary screen
type SummaryAction int

const (
	// SummaryActionBack returns to the last category step
	SummaryActionBack SummaryAction = iota
	// SummaryActionSubmit sends the completed assessment
	SummaryActionSubmit
	// SummaryActionReset discards all progress and starts over
	SummaryActionReset
	// SummaryActionCancel exits the wizard
	SummaryActionCancel
)

const (
	actionBack   = "back"
	actionSubmit = "submit"
	actionReset  = "reset"
	actionCancel = "cancel"
)

var (
	summaryPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(1, 2)

	summaryTitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63")).
		Bold(true).
		MarginBottom(1)

	summaryLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	summaryValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Bold(true)
)

// SummaryScreen shows the collected answers for review before submission.
type SummaryScreen struct {
	form      *huh.Form
	engine    *assessment.Engine
	action    string
	submitErr error
	done      bool
	cancelled bool
	width     int
	height    int
}

// NewSummaryScreen creates a new summary screen. submitErr carries the
// failure of a previous submission attempt, shown above the actions.
func NewSummaryScreen(engine *assessment.Engine, submitErr error) *SummaryScreen {
	s := &SummaryScreen{
		engine:    engine,
		action:    actionSubmit,
		submitErr: submitErr,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("چه کاری انجام شود؟").
				Options(
					huh.NewOption("ارسال نهایی پرسشنامه", actionSubmit),
					huh.NewOption("بازگشت و ویرایش", actionBack),
					huh.NewOption("پاک کردن همه پاسخ‌ها و شروع دوباره", actionReset),
					huh.NewOption("خروج", actionCancel),
				).
				Value(&s.action),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *SummaryScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			// Esc goes back instead of cancelling
			s.action = actionBack
			s.done = true
			return s, nil
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
func (s *SummaryScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("مرور پاسخ‌ها")

	panelWidth := 45
	left := summaryPanelStyle.Width(panelWidth).Render(s.buildDemographicsPanel())
	right := summaryPanelStyle.Width(panelWidth).Render(s.buildSelectionsPanel())
	panels := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	sections := []string{title, "", panels, "", s.buildTotalLine()}

	if s.submitErr != nil {
		sections = append(sections, "",
			components.WarnStyle.Render(fmt.Sprintf("ارسال ناموفق بود: %v — دوباره تلاش کنید", s.submitErr)))
	}

	sections = append(sections, "", s.form.View(), "", "Enter: انتخاب | Esc: بازگشت")

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// buildDemographicsPanel renders the household record for review.
func (s *SummaryScreen) buildDemographicsPanel() string {
	d := s.engine.Demographics()

	var sb strings.Builder
	sb.WriteString(summaryTitleStyle.Render("اطلاعات خانواده"))
	sb.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"وضعیت زندگی", d.LivingWith},
		{"استان", d.Province},
		{"شهر", d.City},
		{"وضعیت تاهل", d.MaritalStatus},
	}
	if d.FatherLiving {
		rows = append(rows,
			struct{ label, value string }{"سن پدر", d.FatherAge},
			struct{ label, value string }{"تحصیلات پدر", d.FatherEducation},
			struct{ label, value string }{"شغل پدر", d.FatherOccupation},
		)
	}
	if d.MotherLiving {
		rows = append(rows,
			struct{ label, value string }{"سن مادر", d.MotherAge},
			struct{ label, value string }{"تحصیلات مادر", d.MotherEducation},
			struct{ label, value string }{"شغل مادر", d.MotherOccupation},
		)
	}

	for _, r := range rows {
		sb.WriteString(summaryLabelStyle.Render(r.label + ": "))
		sb.WriteString(summaryValueStyle.Render(r.value))
		sb.WriteString("\n")
	}

	return sb.String()
}

// buildSelectionsPanel renders the per-category selection counts.
func (s *SummaryScreen) buildSelectionsPanel() string {
	var sb strings.Builder
	sb.WriteString(summaryTitleStyle.Render("موارد علامت‌خورده"))
	sb.WriteString("\n\n")

	for _, cat := range s.engine.Catalog().Categories() {
		status, _ := s.engine.CategoryValidity(cat.ID)
		sb.WriteString(summaryLabelStyle.Render(cat.Title + ": "))
		sb.WriteString(summaryValueStyle.Render(fmt.Sprintf("%d مورد", status.Selected)))
		if !status.Valid {
			sb.WriteString(components.WarnStyle.Render(fmt.Sprintf("  (حداقل %d)", status.Min)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// buildTotalLine renders the global total against the rules.
func (s *SummaryScreen) buildTotalLine() string {
	rules := s.engine.Rules()
	total := s.engine.TotalSelected()
	line := fmt.Sprintf("مجموع موارد: %d (مجاز: %d تا %d)", total, rules.MinTotal, rules.MaxTotal)

	if s.engine.GlobalValid() {
		return components.OkStyle.Render(line)
	}
	return components.WarnStyle.Render(line + " — برای ارسال باید در محدوده مجاز باشد")
}

// Done returns true if the form was completed
func (s *SummaryScreen) Done() bool { return s.done }

// Cancelled returns true if the user cancelled
func (s *SummaryScreen) Cancelled() bool { return s.cancelled }

// Action returns the selected action
func (s *SummaryScreen) Action() SummaryAction {
	switch s.action {
	case actionBack:
		return SummaryActionBack
	case actionSubmit:
		return SummaryActionSubmit
	case actionReset:
		return SummaryActionReset
	case actionCancel:
		return SummaryActionCancel
	default:
		return SummaryActionBack
	}
}
