package screens

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/simorghcare/intake/cmd/intake/wizard/components"
	"github.com/simorghcare/intake/internal/assessment"
)

// DemographicsScreen collects the household/background record. The father
// and mother groups only appear when the livingWith answer mentions that
// guardian; the engine re-derives the flags on every livingWith change.
type DemographicsScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	engine    *assessment.Engine

	livingWith    string
	province      string
	city          string
	maritalStatus string

	fatherAge        string
	fatherEducation  string
	fatherOccupation string
	motherAge        string
	motherEducation  string
	motherOccupation string

	done      bool
	back      bool
	cancelled bool
	width     int
	height    int
}

var educationOptions = []huh.Option[string]{
	huh.NewOption("بی‌سواد", "بی‌سواد"),
	huh.NewOption("ابتدایی", "ابتدایی"),
	huh.NewOption("سیکل", "سیکل"),
	huh.NewOption("دیپلم", "دیپلم"),
	huh.NewOption("کاردانی", "کاردانی"),
	huh.NewOption("کارشناسی", "کارشناسی"),
	huh.NewOption("کارشناسی ارشد یا بالاتر", "کارشناسی ارشد یا بالاتر"),
}

// NewDemographicsScreen creates the demographics form, prefilled from the
// engine's current record so a resumed session keeps its answers.
func NewDemographicsScreen(engine *assessment.Engine) *DemographicsScreen {
	d := engine.Demographics()

	s := &DemographicsScreen{
		helpPanel:        components.NewHelpPanel(),
		engine:           engine,
		livingWith:       d.LivingWith,
		province:         d.Province,
		city:             d.City,
		maritalStatus:    d.MaritalStatus,
		fatherAge:        d.FatherAge,
		fatherEducation:  d.FatherEducation,
		fatherOccupation: d.FatherOccupation,
		motherAge:        d.MotherAge,
		motherEducation:  d.MotherEducation,
		motherOccupation: d.MotherOccupation,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("living_with").
				Title("کودک با چه کسانی زندگی می‌کند؟").
				Options(
					huh.NewOption("با پدر و مادر", "با پدر و مادر"),
					huh.NewOption("فقط با مادر", "فقط با مادر"),
					huh.NewOption("فقط با پدر", "فقط با پدر"),
					huh.NewOption("با بستگان", "با بستگان"),
				).
				Value(&s.livingWith),

			huh.NewInput().
				Key("province").
				Title("استان").
				Value(&s.province).
				Validate(validateRequired("استان")),

			huh.NewInput().
				Key("city").
				Title("شهر").
				Value(&s.city).
				Validate(validateRequired("شهر")),

			huh.NewSelect[string]().
				Key("marital_status").
				Title("وضعیت تاهل والدین").
				Options(
					huh.NewOption("متاهل", "متاهل"),
					huh.NewOption("جدا شده", "جدا شده"),
					huh.NewOption("همسر فوت شده", "همسر فوت شده"),
				).
				Value(&s.maritalStatus),
		),

		huh.NewGroup(
			huh.NewInput().
				Key("father_age").
				Title("سن پدر").
				Value(&s.fatherAge).
				Validate(validateAge),

			huh.NewSelect[string]().
				Key("father_education").
				Title("تحصیلات پدر").
				Options(educationOptions...).
				Value(&s.fatherEducation),

			huh.NewInput().
				Key("father_occupation").
				Title("شغل پدر").
				Value(&s.fatherOccupation).
				Validate(validateRequired("شغل پدر")),
		).WithHideFunc(func() bool {
			return !s.engine.Demographics().FatherLiving
		}),

		huh.NewGroup(
			huh.NewInput().
				Key("mother_age").
				Title("سن مادر").
				Value(&s.motherAge).
				Validate(validateAge),

			huh.NewSelect[string]().
				Key("mother_education").
				Title("تحصیلات مادر").
				Options(educationOptions...).
				Value(&s.motherEducation),

			huh.NewInput().
				Key("mother_occupation").
				Title("شغل مادر").
				Value(&s.motherOccupation).
				Validate(validateRequired("شغل مادر")),
		).WithHideFunc(func() bool {
			return !s.engine.Demographics().MotherLiving
		}),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

func validateRequired(name string) func(string) error {
	return func(v string) error {
		if v == "" {
			return fmt.Errorf("%s را وارد کنید", name)
		}
		return nil
	}
}

func validateAge(v string) error {
	if v == "" {
		return fmt.Errorf("سن را وارد کنید")
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("سن باید عدد باشد")
	}
	if n < 15 || n > 99 {
		return fmt.Errorf("سن باید بین ۱۵ و ۹۹ باشد")
	}
	return nil
}

// Init implements tea.Model
func (s *DemographicsScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *DemographicsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			s.back = true
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetSize(msg.Width/3, msg.Height/2)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	// Keep the living flags current so the hide funcs see the guardian
	// groups appear/disappear as the answer changes.
	if s.livingWith != s.engine.Demographics().LivingWith {
		s.engine.UpdateDemographic(assessment.FieldLivingWith, s.livingWith)
	}

	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	if s.form.State == huh.StateCompleted {
		s.syncToEngine()
		s.done = true
	}

	return s, cmd
}

// syncToEngine writes the completed form back through the engine's field
// setters. livingWith goes first so the guardian fields land on fresh flags.
func (s *DemographicsScreen) syncToEngine() {
	e := s.engine
	e.UpdateDemographic(assessment.FieldLivingWith, s.livingWith)
	e.UpdateDemographic(assessment.FieldProvince, s.province)
	e.UpdateDemographic(assessment.FieldCity, s.city)
	e.UpdateDemographic(assessment.FieldMaritalStatus, s.maritalStatus)

	if e.Demographics().FatherLiving {
		e.UpdateDemographic(assessment.FieldFatherAge, s.fatherAge)
		e.UpdateDemographic(assessment.FieldFatherEducation, s.fatherEducation)
		e.UpdateDemographic(assessment.FieldFatherOccupation, s.fatherOccupation)
	}
	if e.Demographics().MotherLiving {
		e.UpdateDemographic(assessment.FieldMotherAge, s.motherAge)
		e.UpdateDemographic(assessment.FieldMotherEducation, s.motherEducation)
		e.UpdateDemographic(assessment.FieldMotherOccupation, s.motherOccupation)
	}
}

// View implements tea.Model
func (s *DemographicsScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("اطلاعات خانواده")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		"Tab: فیلد بعدی | Enter: ادامه | Esc: بازگشت",
	)
}

// Done returns true if the form was completed
func (s *DemographicsScreen) Done() bool { return s.done }

// Back returns true if the user asked to go back one step
func (s *DemographicsScreen) Back() bool { return s.back }

// Cancelled returns true if the user cancelled
func (s *DemographicsScreen) Cancelled() bool { return s.cancelled }
