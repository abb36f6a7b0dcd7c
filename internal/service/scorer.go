package service

import (
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// Outcome is what a scorer derives from a completed answer set.
type Outcome struct {
	Score     int
	Tier      domain.RiskTier
	Flags     domain.FlagSet
	Defaulted []string // absent answers that were filled with their documented default
}

// Scorer is one questionnaire's scoring variant. Implementations are pure: the
// same answer set always yields the same outcome, and the answer set is never
// modified.
type Scorer interface {
	Questionnaire() domain.Questionnaire
	Score(answers domain.AnswerSet) (*Outcome, error)
}

// DefaultScorers returns one scorer per supported questionnaire.
func DefaultScorers() []Scorer {
	return []Scorer{
		NewIPSSScorer(),
		NewMIPROScorer(),
		NewEnuresisScorer(),
	}
}
