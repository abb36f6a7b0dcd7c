package catalog

import "github.com/urolinq-questionnaire-engine/internal/domain"

// IPSS question identifiers. The seven symptom questions of the AUA Symptom
// Index; the quality-of-life item is not part of the score and is not asked.
const (
	IPSSIncompleteEmptying = "incomplete_emptying"
	IPSSFrequency          = "frequency"
	IPSSIntermittency      = "intermittency"
	IPSSUrgency            = "urgency"
	IPSSWeakStream         = "weak_stream"
	IPSSStraining          = "straining"
	IPSSNocturia           = "nocturia"
)

var ipssFrequencyOptions = []domain.Option{
	{Value: "0", Label: "Not at all"},
	{Value: "1", Label: "Less than 1 time in 5"},
	{Value: "2", Label: "Less than half the time"},
	{Value: "3", Label: "About half the time"},
	{Value: "4", Label: "More than half the time"},
	{Value: "5", Label: "Almost always"},
}

var ipssNocturiaOptions = []domain.Option{
	{Value: "0", Label: "None"},
	{Value: "1", Label: "1 time"},
	{Value: "2", Label: "2 times"},
	{Value: "3", Label: "3 times"},
	{Value: "4", Label: "4 times"},
	{Value: "5", Label: "5 times or more"},
}

func ipssQuestion(id, title, text string, options []domain.Option) domain.Question {
	return domain.Question{
		ID:      id,
		Title:   title,
		Text:    text,
		Kind:    domain.SINGLE_CHOICE,
		Options: options,
		Section: "Urinary Symptoms",
	}
}

// IPSSCatalog builds the International Prostate Symptom Score catalog.
func IPSSCatalog() *Catalog {
	nocturia := ipssQuestion(IPSSNocturia, "Nocturia",
		"Over the past month, how many times did you most typically get up to urinate from the time you went to bed at night until the time you got up in the morning?",
		ipssNocturiaOptions)
	nocturia.HelpText = "(Number of times you wake up specifically to urinate)"

	return mustNew(domain.IPSS, []domain.Question{
		ipssQuestion(IPSSIncompleteEmptying, "Incomplete Emptying",
			"Over the past month, how often have you had a sensation of not emptying your bladder completely after you finished urinating?",
			ipssFrequencyOptions),
		ipssQuestion(IPSSFrequency, "Frequency",
			"Over the past month, how often have you had to urinate again less than two hours after you finished urinating?",
			ipssFrequencyOptions),
		ipssQuestion(IPSSIntermittency, "Intermittency",
			"Over the past month, how often have you found you stopped and started again several times when you urinated?",
			ipssFrequencyOptions),
		ipssQuestion(IPSSUrgency, "Urgency",
			"Over the past month, how often have you found it difficult to postpone urination?",
			ipssFrequencyOptions),
		ipssQuestion(IPSSWeakStream, "Weak Stream",
			"Over the past month, how often have you had a weak urinary stream?",
			ipssFrequencyOptions),
		ipssQuestion(IPSSStraining, "Straining",
			"Over the past month, how often have you had to push or strain to begin urination?",
			ipssFrequencyOptions),
		nocturia,
	})
}
