package service

import (
	"fmt"

	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// IPSS per-question bounds.
const (
	ipssMinItem = 0
	ipssMaxItem = 5
)

// IPSSScorer sums the seven symptom items. Every item is mandatory; IPSS
// computes no tier and no flags.
type IPSSScorer struct {
	catalog *catalog.Catalog
}

// NewIPSSScorer creates the IPSS scoring variant
func NewIPSSScorer() *IPSSScorer {
	return &IPSSScorer{catalog: catalog.IPSSCatalog()}
}

// Questionnaire implements Scorer.
func (s *IPSSScorer) Questionnaire() domain.Questionnaire {
	return domain.IPSS
}

// Score implements Scorer. The result lies in [0,35].
func (s *IPSSScorer) Score(answers domain.AnswerSet) (*Outcome, error) {
	var missing []string
	total := 0

	for _, id := range s.catalog.IDs() {
		v, ok := answers.Get(id)
		if !ok {
			missing = append(missing, id)
			continue
		}
		n, ok := v.Int()
		if !ok || n < ipssMinItem || n > ipssMaxItem {
			return nil, &domain.OutOfRangeAnswerError{
				QuestionID: id,
				Value:      v.String(),
				Reason:     fmt.Sprintf("expected an integer in [%d,%d]", ipssMinItem, ipssMaxItem),
			}
		}
		total += n
	}

	if len(missing) > 0 {
		return nil, &domain.IncompleteAnswersError{Questionnaire: domain.IPSS, Missing: missing}
	}

	return &Outcome{
		Score: total,
		Tier:  domain.RISK_NONE,
		Flags: domain.NewFlagSet(),
	}, nil
}
