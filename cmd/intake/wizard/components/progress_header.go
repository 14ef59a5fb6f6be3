package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63")).
			Bold(true)

	headerDotDoneStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63"))

	headerDotTodoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	headerTotalStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
)

// ProgressHeader renders the step position and the running selection total
// shown above every checklist screen.
type ProgressHeader struct {
	Step       int // 1-based position among the visible steps
	TotalSteps int
	Selected   int // running total of checked items
	MaxTotal   int
}

// View renders the header as a dot trail plus counters.
func (p ProgressHeader) View() string {
	var dots strings.Builder
	for i := 1; i <= p.TotalSteps; i++ {
		if i <= p.Step {
			dots.WriteString(headerDotDoneStyle.Render("●"))
		} else {
			dots.WriteString(headerDotTodoStyle.Render("○"))
		}
		if i < p.TotalSteps {
			dots.WriteString(" ")
		}
	}

	position := headerStepStyle.Render(fmt.Sprintf("مرحله %d از %d", p.Step, p.TotalSteps))
	total := headerTotalStyle.Render(fmt.Sprintf("موارد انتخاب‌شده: %d از حداکثر %d", p.Selected, p.MaxTotal))

	return lipgloss.JoinVertical(lipgloss.Left, position, dots.String(), total)
}
