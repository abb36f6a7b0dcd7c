package service

import (
	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

const (
	enuresisHighFrequencyPoints = 10
	enuresisPointsPerImpact     = 2
)

// EnuresisScorer scores the bedwetting survey: 10 points for five or more wet
// nights a week plus 2 per quality-of-life impact. No tier and no flags.
type EnuresisScorer struct{}

// NewEnuresisScorer creates the Enuresis scoring variant
func NewEnuresisScorer() *EnuresisScorer {
	return &EnuresisScorer{}
}

// Questionnaire implements Scorer.
func (s *EnuresisScorer) Questionnaire() domain.Questionnaire {
	return domain.ENURESIS
}

// Score implements Scorer. Frequency is mandatory; an absent impact list means
// nothing was selected.
func (s *EnuresisScorer) Score(answers domain.AnswerSet) (*Outcome, error) {
	frequency, ok := answers.Get(catalog.EnuresisFrequency)
	if !ok {
		return nil, &domain.IncompleteAnswersError{
			Questionnaire: domain.ENURESIS,
			Missing:       []string{catalog.EnuresisFrequency},
		}
	}

	score := 0
	if frequency.Choice == catalog.NightsFivePlus {
		score += enuresisHighFrequencyPoints
	}

	var defaulted []string
	if impact, ok := answers.Get(catalog.EnuresisQoLImpact); ok {
		score += enuresisPointsPerImpact * len(impact.Selections)
	} else {
		defaulted = append(defaulted, catalog.EnuresisQoLImpact)
	}

	return &Outcome{
		Score:     score,
		Tier:      domain.RISK_NONE,
		Flags:     domain.NewFlagSet(),
		Defaulted: defaulted,
	}, nil
}
