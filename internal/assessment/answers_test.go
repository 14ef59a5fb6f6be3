package assessment

import (
	"errors"
	"reflect"
	"testing"
)

// testCatalog mirrors the two-category setup used across the engine
// tests: C1 needs 1-2 picks out of {10,11,12}, C2 allows 0-1 out of
// {20,21}, and the global rules demand 1-2 picks in total.
func testCatalog(t *testing.T) (*Catalog, Rules) {
	t.Helper()
	catalog, err := NewCatalog([]Category{
		{
			ID: 1, Title: "نگرانی", MinSelection: 1, MaxSelection: 2,
			Questions: []Question{{ID: 10, Text: "الف"}, {ID: 11, Text: "ب"}, {ID: 12, Text: "ج"}},
		},
		{
			ID: 2, Title: "خواب", MinSelection: 0, MaxSelection: 1,
			Questions: []Question{{ID: 20, Text: "د"}, {ID: 21, Text: "ه"}},
		},
	})
	if err != nil {
		t.Fatalf("building test catalog: %v", err)
	}
	return catalog, Rules{MinTotal: 1, MaxTotal: 2}
}

func TestAnswers_InitialState(t *testing.T) {
	catalog, _ := testCatalog(t)
	a := NewAnswers(catalog)

	if a.Total() != 0 {
		t.Errorf("Expected empty store, got total %d", a.Total())
	}
	if got := a.Selected(1); len(got) != 0 {
		t.Errorf("Expected empty selection for category 1, got %v", got)
	}
}

func TestAnswers_ToggleOnAndOff(t *testing.T) {
	catalog, _ := testCatalog(t)
	a := NewAnswers(catalog)

	changed, err := a.Toggle(1, 10, true)
	if err != nil || !changed {
		t.Fatalf("Toggle on: changed=%v err=%v", changed, err)
	}
	if got := a.Selected(1); !reflect.DeepEqual(got, []int{10}) {
		t.Errorf("Expected [10], got %v", got)
	}

	// Toggling the same id on again is a no-op
	changed, err = a.Toggle(1, 10, true)
	if err != nil || changed {
		t.Errorf("Repeated toggle on: changed=%v err=%v", changed, err)
	}

	changed, err = a.Toggle(1, 10, false)
	if err != nil || !changed {
		t.Fatalf("Toggle off: changed=%v err=%v", changed, err)
	}
	if a.Count(1) != 0 {
		t.Errorf("Expected empty selection after removal, got %d", a.Count(1))
	}

	// Removing an absent id twice stays a no-op
	changed, err = a.Toggle(1, 10, false)
	if err != nil || changed {
		t.Errorf("Repeated toggle off: changed=%v err=%v", changed, err)
	}
}

func TestAnswers_InsertionOrderKept(t *testing.T) {
	catalog, _ := testCatalog(t)
	a := NewAnswers(catalog)

	a.Toggle(1, 11, true)
	a.Toggle(1, 10, true)
	if got := a.Selected(1); !reflect.DeepEqual(got, []int{11, 10}) {
		t.Errorf("Expected insertion order [11 10], got %v", got)
	}

	a.Toggle(1, 11, false)
	if got := a.Selected(1); !reflect.DeepEqual(got, []int{10}) {
		t.Errorf("Expected [10] after removing 11, got %v", got)
	}
}

func TestAnswers_CapRejected(t *testing.T) {
	catalog, _ := testCatalog(t)
	a := NewAnswers(catalog)

	a.Toggle(1, 10, true)
	a.Toggle(1, 11, true)

	changed, err := a.Toggle(1, 12, true)
	if !errors.Is(err, ErrSelectionCap) {
		t.Fatalf("Expected ErrSelectionCap, got %v", err)
	}
	if changed {
		t.Error("Cap-exceeding toggle must not change the store")
	}
	if got := a.Selected(1); !reflect.DeepEqual(got, []int{10, 11}) {
		t.Errorf("Selection corrupted by rejected toggle: %v", got)
	}

	// Removing one frees a slot again
	a.Toggle(1, 10, false)
	if _, err := a.Toggle(1, 12, true); err != nil {
		t.Errorf("Toggle after freeing a slot: %v", err)
	}
}

func TestAnswers_UnknownIDs(t *testing.T) {
	catalog, _ := testCatalog(t)
	a := NewAnswers(catalog)

	if _, err := a.Toggle(99, 10, true); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
	if _, err := a.Toggle(1, 20, true); !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("Expected ErrUnknownQuestion for question of another category, got %v", err)
	}
	if a.Total() != 0 {
		t.Errorf("Rejected toggles must not mutate the store, total %d", a.Total())
	}
}

func TestAnswers_SnapshotIsolated(t *testing.T) {
	catalog, _ := testCatalog(t)
	a := NewAnswers(catalog)
	a.Toggle(1, 10, true)

	snap := a.Snapshot()
	snap[1][0] = 999
	snap[2] = append(snap[2], 20)

	if got := a.Selected(1); !reflect.DeepEqual(got, []int{10}) {
		t.Errorf("Mutating a snapshot leaked into the store: %v", got)
	}
	if a.Count(2) != 0 {
		t.Errorf("Mutating a snapshot leaked into the store: category 2 has %d", a.Count(2))
	}
}

func TestAnswers_RestoreDropsInvalidEntries(t *testing.T) {
	catalog, _ := testCatalog(t)
	a := NewAnswers(catalog)

	a.restore(map[int][]int{
		1:  {10, 999, 11, 12}, // 999 unknown, 12 over the cap of 2
		2:  {20},
		99: {1}, // unknown category
	})

	if got := a.Selected(1); !reflect.DeepEqual(got, []int{10, 11}) {
		t.Errorf("Expected [10 11] after restore, got %v", got)
	}
	if got := a.Selected(2); !reflect.DeepEqual(got, []int{20}) {
		t.Errorf("Expected [20] after restore, got %v", got)
	}
	if a.Total() != 3 {
		t.Errorf("Expected total 3 after restore, got %d", a.Total())
	}
}

func TestAnswers_Clear(t *testing.T) {
	catalog, _ := testCatalog(t)
	a := NewAnswers(catalog)
	a.Toggle(1, 10, true)
	a.Toggle(2, 20, true)

	a.Clear()

	if a.Total() != 0 {
		t.Errorf("Expected empty store after Clear, got total %d", a.Total())
	}
	if got := a.Selected(1); len(got) != 0 {
		t.Errorf("Expected empty selection after Clear, got %v", got)
	}
}
