// Package assessment implements the constrained multi-step intake engine:
// the question catalog, answer and demographics stores, validation rules,
// the wizard state machine and the submission assembler.
package assessment

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Question is a single checklist item within a category.
type Question struct {
	ID   int    `yaml:"id"`
	Text string `yaml:"text"`
}

// Category is a themed group of checklist questions with its own
// selection bounds. Immutable after load.
type Category struct {
	ID           int        `yaml:"id"`
	Title        string     `yaml:"title"`
	MinSelection int        `yaml:"min_selection"`
	MaxSelection int        `yaml:"max_selection"`
	Questions    []Question `yaml:"questions"`
}

// Question returns the question with the given id, if it exists in this category.
func (c *Category) Question(id int) (Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Rules holds the global lower/upper bounds on the total number of
// checked items across all categories.
type Rules struct {
	MinTotal int `yaml:"min_total"`
	MaxTotal int `yaml:"max_total"`
}

// Catalog is the ordered, read-only list of categories.
type Catalog struct {
	categories []Category
	byID       map[int]*Category
}

// NewCatalog builds a catalog from the given categories, validating the
// structural invariants (unique ids, sane bounds, non-empty questions).
func NewCatalog(categories []Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("catalog has no categories")
	}

	c := &Catalog{
		categories: categories,
		byID:       make(map[int]*Category, len(categories)),
	}

	for i := range categories {
		cat := &c.categories[i]
		if cat.Title == "" {
			return nil, fmt.Errorf("category %d has no title", cat.ID)
		}
		if _, dup := c.byID[cat.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %d", cat.ID)
		}
		if cat.MinSelection < 0 {
			return nil, fmt.Errorf("category %d: min_selection must be >= 0, got %d", cat.ID, cat.MinSelection)
		}
		if cat.MaxSelection < cat.MinSelection {
			return nil, fmt.Errorf("category %d: max_selection %d is below min_selection %d",
				cat.ID, cat.MaxSelection, cat.MinSelection)
		}
		if len(cat.Questions) == 0 {
			return nil, fmt.Errorf("category %d has no questions", cat.ID)
		}
		seen := make(map[int]bool, len(cat.Questions))
		for _, q := range cat.Questions {
			if q.Text == "" {
				return nil, fmt.Errorf("category %d: question %d has no text", cat.ID, q.ID)
			}
			if seen[q.ID] {
				return nil, fmt.Errorf("category %d: duplicate question id %d", cat.ID, q.ID)
			}
			seen[q.ID] = true
		}
		c.byID[cat.ID] = cat
	}

	return c, nil
}

// Categories returns the ordered category list.
func (c *Catalog) Categories() []Category {
	return c.categories
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.categories)
}

// Category returns the category with the given id.
func (c *Catalog) Category(id int) (*Category, bool) {
	cat, ok := c.byID[id]
	return cat, ok
}

// At returns the category at the given position in catalog order.
func (c *Catalog) At(index int) *Category {
	return &c.categories[index]
}

// catalogFile is the YAML document shape for catalog files.
type catalogFile struct {
	Rules      Rules      `yaml:"rules"`
	Categories []Category `yaml:"categories"`
}

// LoadCatalog parses the embedded default catalog and its selection rules.
func LoadCatalog() (*Catalog, Rules, error) {
	return parseCatalog(defaultCatalogYAML)
}

// LoadCatalogFile parses a catalog from a YAML file on disk.
func LoadCatalogFile(path string) (*Catalog, Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Rules{}, fmt.Errorf("reading catalog: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*Catalog, Rules, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, Rules{}, fmt.Errorf("parsing catalog: %w", err)
	}

	if file.Rules.MinTotal < 0 {
		return nil, Rules{}, fmt.Errorf("rules: min_total must be >= 0, got %d", file.Rules.MinTotal)
	}
	if file.Rules.MaxTotal < file.Rules.MinTotal {
		return nil, Rules{}, fmt.Errorf("rules: max_total %d is below min_total %d",
			file.Rules.MaxTotal, file.Rules.MinTotal)
	}

	catalog, err := NewCatalog(file.Categories)
	if err != nil {
		return nil, Rules{}, err
	}

	return catalog, file.Rules, nil
}
