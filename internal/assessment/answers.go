package assessment

import "errors"

var (
	// ErrUnknownCategory is returned when a toggle references a category
	// id that does not exist in the catalog.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownQuestion is returned when a toggle references a question
	// id that does not exist in its category.
	ErrUnknownQuestion = errors.New("unknown question in category")

	// ErrSelectionCap is returned when a toggle-on would push a category
	// past its max_selection bound. The store rejects the mutation so the
	// cap invariant holds even if the UI-level disablement is bypassed.
	ErrSelectionCap = errors.New("category selection is at its maximum")
)

// Answers maps each category to the ordered set of selected question ids.
// Order is insertion order and carries no meaning; ids never repeat.
type Answers struct {
	catalog  *Catalog
	selected map[int][]int
}

// NewAnswers creates an empty answer store with one empty selection list
// per known category.
func NewAnswers(catalog *Catalog) *Answers {
	a := &Answers{
		catalog:  catalog,
		selected: make(map[int][]int, catalog.Len()),
	}
	for _, cat := range catalog.Categories() {
		a.selected[cat.ID] = []int{}
	}
	return a
}

// Toggle adds or removes a question id from a category's selection.
// Adding an already-selected id or removing an absent one is a no-op.
// Returns true when the selection actually changed.
func (a *Answers) Toggle(categoryID, questionID int, checked bool) (bool, error) {
	cat, ok := a.catalog.Category(categoryID)
	if !ok {
		return false, ErrUnknownCategory
	}
	if _, ok := cat.Question(questionID); !ok {
		return false, ErrUnknownQuestion
	}

	list := a.selected[categoryID]
	idx := -1
	for i, id := range list {
		if id == questionID {
			idx = i
			break
		}
	}

	if checked {
		if idx >= 0 {
			return false, nil
		}
		if len(list) >= cat.MaxSelection {
			return false, ErrSelectionCap
		}
		a.selected[categoryID] = append(list, questionID)
		return true, nil
	}

	if idx < 0 {
		return false, nil
	}
	a.selected[categoryID] = append(list[:idx], list[idx+1:]...)
	return true, nil
}

// Selected returns a copy of the selection list for a category.
func (a *Answers) Selected(categoryID int) []int {
	list := a.selected[categoryID]
	out := make([]int, len(list))
	copy(out, list)
	return out
}

// Count returns how many questions are selected in a category.
func (a *Answers) Count(categoryID int) int {
	return len(a.selected[categoryID])
}

// Total returns the sum of selection counts across all categories.
func (a *Answers) Total() int {
	total := 0
	for _, list := range a.selected {
		total += len(list)
	}
	return total
}

// Snapshot returns a deep copy of the full selection map.
func (a *Answers) Snapshot() map[int][]int {
	out := make(map[int][]int, len(a.selected))
	for id, list := range a.selected {
		cp := make([]int, len(list))
		copy(cp, list)
		out[id] = cp
	}
	return out
}

// Clear resets every category to an empty selection list.
func (a *Answers) Clear() {
	for _, cat := range a.catalog.Categories() {
		a.selected[cat.ID] = []int{}
	}
}

// restore replaces the store contents from a persisted snapshot. Entries
// referencing unknown categories or questions are dropped rather than
// failing the whole load, and per-category caps are re-applied, so a stale
// snapshot can never violate the catalog invariants.
func (a *Answers) restore(snapshot map[int][]int) {
	a.Clear()
	for categoryID, list := range snapshot {
		cat, ok := a.catalog.Category(categoryID)
		if !ok {
			continue
		}
		for _, questionID := range list {
			if _, ok := cat.Question(questionID); !ok {
				continue
			}
			if a.Count(categoryID) >= cat.MaxSelection {
				break
			}
			if _, err := a.Toggle(categoryID, questionID, true); err != nil {
				break
			}
		}
	}
}
