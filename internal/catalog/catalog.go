// Package catalog holds the static question definitions of every supported
// questionnaire, in the order they are presented.
package catalog

import (
	"fmt"

	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// Catalog is the ordered, immutable question list of one questionnaire.
type Catalog struct {
	questionnaire domain.Questionnaire
	questions     []domain.Question
	index         map[string]int
}

// New builds a catalog, validating every question definition and rejecting
// duplicate identifiers.
func New(q domain.Questionnaire, questions []domain.Question) (*Catalog, error) {
	if !q.IsValid() {
		return nil, fmt.Errorf("catalog: %w: %q", domain.ErrUnknownQuestionnaire, q)
	}

	c := &Catalog{
		questionnaire: q,
		questions:     make([]domain.Question, len(questions)),
		index:         make(map[string]int, len(questions)),
	}
	copy(c.questions, questions)

	for i, question := range c.questions {
		if err := question.Validate(); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", q, err)
		}
		if _, dup := c.index[question.ID]; dup {
			return nil, fmt.Errorf("catalog %s: %w: duplicate id '%s'", q, domain.ErrInvalidQuestion, question.ID)
		}
		c.index[question.ID] = i
	}

	return c, nil
}

// mustNew is used for the built-in catalogs, whose definitions are covered by tests.
func mustNew(q domain.Questionnaire, questions []domain.Question) *Catalog {
	c, err := New(q, questions)
	if err != nil {
		panic(err)
	}
	return c
}

// Questionnaire returns the questionnaire the catalog belongs to.
func (c *Catalog) Questionnaire() domain.Questionnaire {
	return c.questionnaire
}

// Questions returns a copy of the questions in declaration order.
func (c *Catalog) Questions() []domain.Question {
	out := make([]domain.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Question looks up a question by identifier.
func (c *Catalog) Question(id string) (domain.Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Question{}, false
	}
	return c.questions[i], true
}

// Position returns the declaration index of id, or -1.
func (c *Catalog) Position(id string) int {
	i, ok := c.index[id]
	if !ok {
		return -1
	}
	return i
}

// IDs returns the question identifiers in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.questions))
	for i, q := range c.questions {
		ids[i] = q.ID
	}
	return ids
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

var builtin = map[domain.Questionnaire]*Catalog{
	domain.IPSS:     IPSSCatalog(),
	domain.MIPRO:    MIPROCatalog(),
	domain.ENURESIS: EnuresisCatalog(),
}

// For returns the built-in catalog of a questionnaire.
func For(q domain.Questionnaire) (*Catalog, error) {
	c, ok := builtin[q]
	if !ok {
		return nil, fmt.Errorf("catalog: %w: %q", domain.ErrUnknownQuestionnaire, q)
	}
	return c, nil
}
