package catalog

import "github.com/urolinq-questionnaire-engine/internal/domain"

// Enuresis question identifiers.
const (
	EnuresisFrequency = "frequency"
	EnuresisVolume    = "volume"
	EnuresisQoLImpact = "qol_impact"
)

// NightsFivePlus is the frequency option that carries the high-frequency weight.
const NightsFivePlus = "5+"

// EnuresisCatalog builds the bedwetting survey catalog. The volume question is
// collected for the clinician but does not contribute to the score.
func EnuresisCatalog() *Catalog {
	return mustNew(domain.ENURESIS, []domain.Question{
		{
			ID:      EnuresisFrequency,
			Title:   "Frequency",
			Text:    "How many nights per week do you wet the bed?",
			Kind:    domain.SINGLE_CHOICE,
			Options: labels("0", "1-2", "3-4", NightsFivePlus),
		},
		{
			ID:       EnuresisVolume,
			Title:    "Volume",
			Text:     "How much urine is typically leaked?",
			Kind:     domain.MULTI_CHOICE,
			Options:  labels("Drops", "Small puddle", "Large soak"),
			Optional: true,
		},
		{
			ID:       EnuresisQoLImpact,
			Title:    "Quality of Life",
			Text:     "Has enuresis affected your daily life?",
			Kind:     domain.MULTI_CHOICE,
			Options:  labels("Avoided sleepovers", "Felt embarrassed", "Missed work/school"),
			Optional: true,
		},
	})
}
