package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/simorghcare/intake/cmd/intake/wizard/components"
	"github.com/simorghcare/intake/internal/assessment"
)

// CategoryScreen presents one checklist category as a multi-select.
// The huh Limit mirrors the category cap at the UI level; the answer
// store rejects over-cap toggles regardless.
type CategoryScreen struct {
	form     *huh.Form
	engine   *assessment.Engine
	category *assessment.Category
	header   components.ProgressHeader

	selected []int
	initial  []int

	done      bool
	back      bool
	cancelled bool
	width     int
	height    int
}

// NewCategoryScreen creates the checklist screen for one category,
// prefilled with the engine's current selection.
func NewCategoryScreen(engine *assessment.Engine, category *assessment.Category, header components.ProgressHeader) *CategoryScreen {
	initial := engine.Answers().Selected(category.ID)

	s := &CategoryScreen{
		engine:   engine,
		category: category,
		header:   header,
		selected: append([]int{}, initial...),
		initial:  initial,
	}

	options := make([]huh.Option[int], 0, len(category.Questions))
	for _, q := range category.Questions {
		options = append(options, huh.NewOption(q.Text, q.ID))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Key("selection").
				Title(category.Title).
				Description(selectionHint(category)).
				Options(options...).
				Limit(category.MaxSelection).
				Value(&s.selected).
				Validate(func(sel []int) error {
					if len(sel) < category.MinSelection {
						return fmt.Errorf("حداقل %d مورد را انتخاب کنید", category.MinSelection)
					}
					return nil
				}),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

func selectionHint(c *assessment.Category) string {
	if c.MinSelection > 0 {
		return fmt.Sprintf("بین %d تا %d مورد را علامت بزنید", c.MinSelection, c.MaxSelection)
	}
	return fmt.Sprintf("حداکثر %d مورد را علامت بزنید", c.MaxSelection)
}

// Init implements tea.Model
func (s *CategoryScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *CategoryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			s.syncToEngine()
			s.back = true
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
		s.syncToEngine()
		s.done = true
	}

	return s, cmd
}

// syncToEngine turns the multi-select result into individual toggle calls
// against the answer store: removals first so the cap never blocks a swap.
func (s *CategoryScreen) syncToEngine() {
	current := make(map[int]bool, len(s.selected))
	for _, id := range s.selected {
		current[id] = true
	}
	before := make(map[int]bool, len(s.initial))
	for _, id := range s.initial {
		before[id] = true
	}

	for _, id := range s.initial {
		if !current[id] {
			s.engine.UpdateAnswer(s.category.ID, id, false)
		}
	}
	for _, id := range s.selected {
		if !before[id] {
			s.engine.UpdateAnswer(s.category.ID, id, true)
		}
	}
	s.initial = s.engine.Answers().Selected(s.category.ID)
}

// View implements tea.Model
func (s *CategoryScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render(s.category.Title)

	return lipgloss.JoinVertical(lipgloss.Left,
		s.header.View(),
		"",
		title,
		"",
		s.form.View(),
		"",
		"Space: انتخاب | Enter: ادامه | Esc: بازگشت",
	)
}

// Done returns true if the form was completed
func (s *CategoryScreen) Done() bool { return s.done }

// Back returns true if the user asked to go back one step
func (s *CategoryScreen) Back() bool { return s.back }

// Cancelled returns true if the user cancelled
func (s *CategoryScreen) Cancelled() bool { return s.cancelled }
