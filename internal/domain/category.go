package domain

import "fmt"

// Category selects the kind of study content to generate. It drives
// which prompt template the generation pipeline uses.
type Category string

// All content categories the application exposes.
const (
	CategoryContent    Category = "content"
	CategoryQuiz       Category = "quiz"
	CategoryMaterials  Category = "materials"
	CategoryNotes      Category = "notes"
	CategoryFlashcards Category = "flashcards"
	CategoryAssistant  Category = "assistant"
)

// Categories returns every defined content category. The slice is freshly
// allocated on each call so callers may not mutate shared state.
func Categories() []Category {
	return []Category{
		CategoryContent,
		CategoryQuiz,
		CategoryMaterials,
		CategoryNotes,
		CategoryFlashcards,
		CategoryAssistant,
	}
}

// ParseCategory converts a raw string into a Category.
// Returns ErrUnknownCategory if the value is not a defined category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// Validate checks that the category is one of the defined values.
func (c Category) Validate() error {
	switch c {
	case CategoryContent, CategoryQuiz, CategoryMaterials,
		CategoryNotes, CategoryFlashcards, CategoryAssistant:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}
