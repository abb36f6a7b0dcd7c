package service

import (
	"github.com/sirupsen/logrus"

	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// VisibilityResolver filters a catalog down to the questions that apply to the
// current answers. It holds no state between calls and is re-run after every
// answer change.
type VisibilityResolver struct {
	logger *logrus.Logger
}

// NewVisibilityResolver creates a new visibility resolver
func NewVisibilityResolver(logger *logrus.Logger) *VisibilityResolver {
	return &VisibilityResolver{logger: logger}
}

// Resolve returns the visible questions in catalog declaration order.
func (r *VisibilityResolver) Resolve(c *catalog.Catalog, answers domain.AnswerSet) []domain.Question {
	questions := c.Questions()
	visible := questions[:0]
	hidden := 0

	for _, q := range questions {
		if q.IsVisible(answers) {
			visible = append(visible, q)
			continue
		}
		hidden++
	}

	r.logger.WithFields(logrus.Fields{
		"questionnaire": c.Questionnaire().String(),
		"visible":       len(visible),
		"hidden":        hidden,
	}).Debug("Resolved visible questions")

	return visible
}

// IsVisible reports whether the question id is part of the visible sequence.
func (r *VisibilityResolver) IsVisible(c *catalog.Catalog, answers domain.AnswerSet, id string) bool {
	q, ok := c.Question(id)
	return ok && q.IsVisible(answers)
}
