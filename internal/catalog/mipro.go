package catalog

import "github.com/urolinq-questionnaire-engine/internal/domain"

// MIPRO question identifiers.
const (
	MIPROPriorTesting        = "prior_testing"
	MIPROClinicalFindings    = "clinical_findings"
	MIPROEjaculateChanges    = "ejaculate_changes"
	MIPROErectionDifficulty  = "erection_difficulty"
	MIPROSexualDesire        = "sexual_desire"
	MIPROFertilityConfidence = "fertility_confidence"
	MIPRORelationshipImpact  = "relationship_impact"
	MIPROFertilityThoughts   = "fertility_thoughts"
	MIPROMoodImpact          = "mood_impact"
)

// Option values referenced by the MIPRO scoring rules.
const (
	FrequencyNever     = "never"
	FrequencyRarely    = "rarely"
	FrequencySometimes = "sometimes"
	FrequencyOften     = "often"
	FrequencyDaily     = "daily"

	RelationshipNo             = "no"
	RelationshipWithoutTension = "without_tension"
	RelationshipWithTension    = "with_tension"

	EjaculateNoChanges = "No changes"
)

const (
	sectionMedicalHistory  = "Medical History"
	sectionSexualHealth    = "Sexual Health"
	sectionEmotionalImpact = "Emotional Impact"
)

func labels(values ...string) []domain.Option {
	opts := make([]domain.Option, len(values))
	for i, v := range values {
		opts[i] = domain.Option{Value: v, Label: v}
	}
	return opts
}

var sexualFunctionOptions = []domain.Option{
	{Value: FrequencyNever, Label: "Never"},
	{Value: FrequencyRarely, Label: "Rarely (less than 25% of the time)"},
	{Value: FrequencySometimes, Label: "Sometimes (25-50% of the time)"},
	{Value: FrequencyOften, Label: "Often (more than 50% of the time)"},
}

// PriorTestingDone is the visibility predicate of the clinical findings question.
func PriorTestingDone(answers domain.AnswerSet) bool {
	v, ok := answers.Get(MIPROPriorTesting)
	if !ok {
		return false
	}
	b, ok := v.Bool()
	return ok && b
}

// MIPROCatalog builds the male fertility assessment catalog.
func MIPROCatalog() *Catalog {
	return mustNew(domain.MIPRO, []domain.Question{
		{
			ID:    MIPROPriorTesting,
			Title: "Fertility History",
			Text:  "Have you or your partner ever sought medical advice for fertility concerns?",
			Kind:  domain.SINGLE_CHOICE,
			Options: []domain.Option{
				{Value: "false", Label: "No"},
				{Value: "true", Label: "Yes"},
			},
			HelpText: "This helps us understand your fertility journey",
			Section:  sectionMedicalHistory,
		},
		{
			ID:    MIPROClinicalFindings,
			Title: "Clinical Findings",
			Text:  "Were any of the following ever identified? (Select all that apply)",
			Kind:  domain.MULTI_CHOICE,
			Options: labels(
				"Low sperm count",
				"Blockage in reproductive tract",
				"Hormone imbalance",
				"I don't know the details",
			),
			HelpText:  "Select all that apply",
			Section:   sectionMedicalHistory,
			VisibleIf: PriorTestingDone,
		},
		{
			ID:       MIPROEjaculateChanges,
			Title:    "Physical Changes",
			Text:     "Some men notice differences in their ejaculate over time. Have you observed any of the following?",
			Kind:     domain.MULTI_CHOICE,
			Options:  labels("Reduced volume", "Thinner consistency", EjaculateNoChanges),
			HelpText: "These observations can help guide our evaluation",
			Section:  sectionMedicalHistory,
		},
		{
			ID:       MIPROErectionDifficulty,
			Title:    "Sexual Function",
			Text:     "How often do you experience difficulty with erection?",
			Kind:     domain.SINGLE_CHOICE,
			Options:  sexualFunctionOptions,
			HelpText: "This helps assess potential contributing factors",
			Section:  sectionSexualHealth,
		},
		{
			ID:      MIPROSexualDesire,
			Title:   "Sexual Desire",
			Text:    "How often do you experience reduced sexual desire?",
			Kind:    domain.SINGLE_CHOICE,
			Options: sexualFunctionOptions,
			Section: sectionSexualHealth,
		},
		{
			ID:       MIPROFertilityConfidence,
			Title:    "Confidence Level",
			Text:     `How much do you agree with: "I feel confident about my fertility health."`,
			Kind:     domain.NUMERIC_SLIDER,
			Min:      0,
			Max:      10,
			MinLabel: "Strongly disagree",
			MaxLabel: "Strongly agree",
			HelpText: "0 = No confidence, 10 = Complete confidence",
			Section:  sectionEmotionalImpact,
		},
		{
			ID:    MIPRORelationshipImpact,
			Title: "Relationship Impact",
			Text:  "Has fertility been a topic of discussion with your partner?",
			Kind:  domain.SINGLE_CHOICE,
			Options: []domain.Option{
				{Value: RelationshipNo, Label: "No, we haven't discussed it"},
				{Value: RelationshipWithoutTension, Label: "Yes, it's been a neutral/positive discussion"},
				{Value: RelationshipWithTension, Label: "Yes, it's caused tension"},
			},
			Section: sectionEmotionalImpact,
		},
		{
			ID:    MIPROFertilityThoughts,
			Title: "Thought Frequency",
			Text:  "How often do you think about fertility?",
			Kind:  domain.SINGLE_CHOICE,
			Options: []domain.Option{
				{Value: FrequencyNever, Label: "Never"},
				{Value: FrequencyRarely, Label: "Rarely (less than once a month)"},
				{Value: FrequencySometimes, Label: "Sometimes (1-3 times a week)"},
				{Value: FrequencyOften, Label: "Often (4-6 times a week)"},
				{Value: FrequencyDaily, Label: "Daily"},
			},
			Section: sectionEmotionalImpact,
		},
		{
			ID:       MIPROMoodImpact,
			Title:    "Mood Impact",
			Text:     "How much does fertility concern affect your mood?",
			Kind:     domain.NUMERIC_SLIDER,
			Min:      0,
			Max:      10,
			MinLabel: "Not at all",
			MaxLabel: "Extremely",
			HelpText: "0 = No impact, 10 = Severe impact",
			Section:  sectionEmotionalImpact,
		},
	})
}
