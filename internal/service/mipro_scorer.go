package service

import (
	"math"

	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// MIPRO tier and flag thresholds. Each tier includes its lower bound.
const (
	miproLowRiskFloor    = 70 // score >= 70 → low
	miproMediumRiskFloor = 40 // 40 <= score < 70 → medium
	miproHighConcernMax  = 30 // score <= 30 → high_concern
	miproLowConcernMin   = 70 // score >= 70 → low_concern
	miproMoodImpactHigh  = 7  // mood >= 7 with no fertility thoughts is inconsistent
	miproSliderMax       = 10
)

// Submission-time defaults for absent MIPRO answers.
const (
	defaultFertilityConfidence = 5
	defaultMoodImpact          = 0
)

// miproInputs is the answer set after defaults have been applied.
type miproInputs struct {
	PriorTesting        bool
	ClinicalFindings    []string
	EjaculateChanges    []string
	ErectionDifficulty  string
	SexualDesire        string
	FertilityConfidence int
	RelationshipImpact  string
	FertilityThoughts   string
	MoodImpact          int
}

// miproFlagRule is a single named condition over the inputs and the score.
type miproFlagRule struct {
	Flag    domain.Flag
	Applies func(in miproInputs, score int) bool
}

// miproFlagRules are all evaluated for every submission; a result carries every
// flag whose condition holds.
var miproFlagRules = []miproFlagRule{
	{
		Flag:    domain.FLAG_HIGH_CONCERN,
		Applies: func(_ miproInputs, score int) bool { return score <= miproHighConcernMax },
	},
	{
		Flag:    domain.FLAG_LOW_CONCERN,
		Applies: func(_ miproInputs, score int) bool { return score >= miproLowConcernMin },
	},
	{
		Flag: domain.FLAG_SUGGEST_SEMEN_ANALYSIS,
		Applies: func(in miproInputs, _ int) bool {
			if in.PriorTesting {
				return false
			}
			for _, change := range in.EjaculateChanges {
				if change != catalog.EjaculateNoChanges {
					return true
				}
			}
			return false
		},
	},
	{
		Flag: domain.FLAG_RESPONSE_INCONSISTENCY,
		Applies: func(in miproInputs, _ int) bool {
			return in.FertilityThoughts == catalog.FrequencyNever && in.MoodImpact >= miproMoodImpactHigh
		},
	},
	{
		Flag: domain.FLAG_RELATIONSHIP_SUPPORT_NEEDED,
		Applies: func(in miproInputs, _ int) bool {
			return in.RelationshipImpact == catalog.RelationshipWithTension
		},
	},
	{
		Flag: domain.FLAG_SEXUAL_HEALTH_FOCUS,
		Applies: func(in miproInputs, _ int) bool {
			return in.ErectionDifficulty == catalog.FrequencyOften || in.SexualDesire == catalog.FrequencyOften
		},
	},
}

// MIPROScorer scores the male fertility assessment. Absent answers take their
// documented defaults; nothing else is ever substituted.
type MIPROScorer struct{}

// NewMIPROScorer creates the MIPRO scoring variant
func NewMIPROScorer() *MIPROScorer {
	return &MIPROScorer{}
}

// Questionnaire implements Scorer.
func (s *MIPROScorer) Questionnaire() domain.Questionnaire {
	return domain.MIPRO
}

// Score implements Scorer.
func (s *MIPROScorer) Score(answers domain.AnswerSet) (*Outcome, error) {
	in, defaulted, err := resolveMIPROInputs(answers)
	if err != nil {
		return nil, err
	}

	score := miproScore(in.FertilityConfidence, in.MoodImpact, desireScore(in.SexualDesire))

	var flags []domain.Flag
	for _, rule := range miproFlagRules {
		if rule.Applies(in, score) {
			flags = append(flags, rule.Flag)
		}
	}

	return &Outcome{
		Score:     score,
		Tier:      miproRiskTier(score),
		Flags:     domain.NewFlagSet(flags...),
		Defaulted: defaulted,
	}, nil
}

// miproScore averages confidence, inverted mood impact and desire score on a
// 0-10 scale and rescales by 10.
func miproScore(confidence, mood, desire int) int {
	sum := confidence + (miproSliderMax - mood) + desire
	return int(math.Round(float64(sum) / 3 * 10))
}

// desireScore maps reduced-desire frequency to 0-3.
func desireScore(desire string) int {
	switch desire {
	case catalog.FrequencyOften:
		return 3
	case catalog.FrequencySometimes:
		return 2
	case catalog.FrequencyRarely:
		return 1
	default:
		return 0
	}
}

// miproRiskTier buckets a score into low / medium / high.
func miproRiskTier(score int) domain.RiskTier {
	switch {
	case score >= miproLowRiskFloor:
		return domain.RISK_LOW
	case score >= miproMediumRiskFloor:
		return domain.RISK_MEDIUM
	default:
		return domain.RISK_HIGH
	}
}

// resolveMIPROInputs reads the answer set, substituting the documented default
// for each absent answer and recording which ids were defaulted.
func resolveMIPROInputs(answers domain.AnswerSet) (miproInputs, []string, error) {
	in := miproInputs{}
	var defaulted []string

	choice := func(id, fallback string) string {
		v, ok := answers.Get(id)
		if !ok {
			defaulted = append(defaulted, id)
			return fallback
		}
		return v.Choice
	}
	selections := func(id string) []string {
		v, ok := answers.Get(id)
		if !ok {
			defaulted = append(defaulted, id)
			return []string{}
		}
		return v.Selections
	}
	slider := func(id string, fallback int) int {
		v, ok := answers.Get(id)
		if !ok {
			defaulted = append(defaulted, id)
			return fallback
		}
		return v.Number
	}

	if v, ok := answers.Get(catalog.MIPROPriorTesting); ok {
		b, valid := v.Bool()
		if !valid {
			return in, nil, &domain.OutOfRangeAnswerError{
				QuestionID: catalog.MIPROPriorTesting,
				Value:      v.String(),
				Reason:     "expected true or false",
			}
		}
		in.PriorTesting = b
	} else {
		defaulted = append(defaulted, catalog.MIPROPriorTesting)
	}

	in.ClinicalFindings = selections(catalog.MIPROClinicalFindings)
	in.EjaculateChanges = selections(catalog.MIPROEjaculateChanges)
	in.ErectionDifficulty = choice(catalog.MIPROErectionDifficulty, catalog.FrequencyNever)
	in.SexualDesire = choice(catalog.MIPROSexualDesire, catalog.FrequencyNever)
	in.FertilityConfidence = slider(catalog.MIPROFertilityConfidence, defaultFertilityConfidence)
	in.RelationshipImpact = choice(catalog.MIPRORelationshipImpact, catalog.RelationshipNo)
	in.FertilityThoughts = choice(catalog.MIPROFertilityThoughts, catalog.FrequencyNever)
	in.MoodImpact = slider(catalog.MIPROMoodImpact, defaultMoodImpact)

	return in, defaulted, nil
}
