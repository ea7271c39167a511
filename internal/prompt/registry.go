package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/kdriscoll/mentora-api/internal/domain"
)

// directives is appended to every rendered prompt regardless of category.
// The UI renders model output verbatim, so markup must be suppressed at
// the source.
const directives = "Respond in plain text only. Do not use markdown, HTML, or any other markup syntax. Do not include code fences."

// templateText holds the instruction template for each category. Each
// template contains exactly one substitution point for the user's topic.
var templateText = map[domain.Category]string{
	domain.CategoryContent:    "You are an expert educator. Write a detailed, well-structured educational explanation of the following topic, covering the fundamentals first and building up to the important nuances: {{.Topic}}",
	domain.CategoryQuiz:       "You are an expert quiz writer. Create a quiz of 10 multiple-choice questions on the following topic. Number each question, list four answer options labelled A to D, and give the correct answer with a one-line explanation after each question. Topic: {{.Topic}}",
	domain.CategoryMaterials:  "You are a curriculum designer. Produce a curated set of study materials for the following topic: an ordered reading list, key concepts to master, suggested exercises, and common pitfalls to avoid. Topic: {{.Topic}}",
	domain.CategoryNotes:      "You are a study coach. Write concise revision notes on the following topic, organized as short sections with the essential facts, definitions, and formulas a student must remember: {{.Topic}}",
	domain.CategoryFlashcards: "You are a flashcard author. Create 15 flashcards on the following topic. For each card write 'Q:' followed by the question on one line and 'A:' followed by the answer on the next line, with a blank line between cards. Topic: {{.Topic}}",
	domain.CategoryAssistant:  "You are a patient, knowledgeable tutor. Answer the following question clearly and completely, explaining your reasoning step by step where it helps understanding: {{.Topic}}",
}

// topicData is the data passed to a template on render.
type topicData struct {
	Topic string
}

// Template is a parsed, immutable prompt template bound to one category.
type Template struct {
	category domain.Category
	tmpl     *template.Template
}

// Category returns the content category this template is registered for.
func (t Template) Category() domain.Category {
	return t.category
}

// Registry resolves content categories to their prompt templates.
type Registry struct {
	templates map[domain.Category]Template
}

// NewRegistry builds the registry from the built-in template set.
// It fails if any defined category is missing a template or a template
// fails to parse, so an incomplete registry can never be constructed.
func NewRegistry() (*Registry, error) {
	templates := make(map[domain.Category]Template, len(templateText))

	for _, category := range domain.Categories() {
		text, ok := templateText[category]
		if !ok {
			return nil, fmt.Errorf("%w: no template registered for %q",
				domain.ErrUnknownCategory, category)
		}

		if strings.Count(text, "{{.Topic}}") != 1 {
			return nil, fmt.Errorf("template for %q must contain exactly one topic placeholder", category)
		}

		tmpl, err := template.New(string(category)).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template for %q: %w", category, err)
		}

		templates[category] = Template{category: category, tmpl: tmpl}
	}

	return &Registry{templates: templates}, nil
}

// Resolve returns the template registered for the given category.
// Returns domain.ErrUnknownCategory if the category is not registered.
func (r *Registry) Resolve(category domain.Category) (Template, error) {
	tmpl, ok := r.templates[category]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	return tmpl, nil
}

// Render substitutes the user prompt into the template's single
// placeholder and appends the category-independent formatting
// directives. The user prompt must be non-empty.
func Render(tmpl Template, userPrompt string) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", domain.ErrEmptyPrompt
	}
	if tmpl.tmpl == nil {
		return "", fmt.Errorf("%w: template not initialized", domain.ErrUnknownCategory)
	}

	var buf bytes.Buffer
	if err := tmpl.tmpl.Execute(&buf, topicData{Topic: userPrompt}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	buf.WriteString("\n\n")
	buf.WriteString(directives)

	return buf.String(), nil
}
