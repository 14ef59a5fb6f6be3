package assessment

// CategoryStatus reports how a single category stands against its bounds.
type CategoryStatus struct {
	Valid    bool
	Selected int
	Min      int
	Max      int
}

// CategoryValidity compares a category's selection count against its
// min/max bounds. An empty selection counts as zero, which is valid when
// min_selection is zero.
func CategoryValidity(cat *Category, answers *Answers) CategoryStatus {
	selected := answers.Count(cat.ID)
	return CategoryStatus{
		Valid:    selected >= cat.MinSelection && selected <= cat.MaxSelection,
		Selected: selected,
		Min:      cat.MinSelection,
		Max:      cat.MaxSelection,
	}
}

// AtCap reports whether a category has reached its max_selection bound.
// The UI uses this to disable further checking in the category.
func AtCap(cat *Category, answers *Answers) bool {
	return answers.Count(cat.ID) >= cat.MaxSelection
}

// DemographicsValid reports whether the demographics record is complete:
// the four base fields must be non-empty, and each guardian flagged as
// living with the child needs all three detail fields filled in.
func DemographicsValid(d Demographics) bool {
	if d.LivingWith == "" || d.Province == "" || d.City == "" || d.MaritalStatus == "" {
		return false
	}
	if d.FatherLiving {
		if d.FatherAge == "" || d.FatherEducation == "" || d.FatherOccupation == "" {
			return false
		}
	}
	if d.MotherLiving {
		if d.MotherAge == "" || d.MotherEducation == "" || d.MotherOccupation == "" {
			return false
		}
	}
	return true
}

// TotalSelected is the sum of selection counts across all categories.
// Always recomputed, never stored.
func TotalSelected(answers *Answers) int {
	return answers.Total()
}

// GlobalValid compares the total selection count against the global rules.
func GlobalValid(answers *Answers, rules Rules) bool {
	total := answers.Total()
	return total >= rules.MinTotal && total <= rules.MaxTotal
}
