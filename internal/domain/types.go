// Package domain contains the core entities of the UroLinq questionnaire engine:
// questionnaires, questions, answers and the scored results handed to the
// presentation layer.
//
// Instruments: International Prostate Symptom Score (IPSS, Barry et al. 1992),
// the MIPRO male fertility assessment and the Enuresis (bedwetting) survey.
package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Questionnaire identifies one of the supported clinical questionnaires.
type Questionnaire string

const (
	IPSS     Questionnaire = "IPSS"
	MIPRO    Questionnaire = "MIPRO"
	ENURESIS Questionnaire = "ENURESIS"
)

// IsValid reports whether q is a supported questionnaire.
func (q Questionnaire) IsValid() bool {
	switch q {
	case IPSS, MIPRO, ENURESIS:
		return true
	default:
		return false
	}
}

// String returns the string representation of the questionnaire.
func (q Questionnaire) String() string {
	return string(q)
}

// Title returns the patient-facing name of the questionnaire.
func (q Questionnaire) Title() string {
	switch q {
	case IPSS:
		return "International Prostate Symptom Score"
	case MIPRO:
		return "Male Fertility Assessment"
	case ENURESIS:
		return "Enuresis (Bedwetting) Survey"
	default:
		return "Unknown questionnaire"
	}
}

// ParseQuestionnaire resolves a case-insensitive questionnaire name.
func ParseQuestionnaire(name string) (Questionnaire, error) {
	q := Questionnaire(strings.ToUpper(strings.TrimSpace(name)))
	if !q.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownQuestionnaire, name)
	}
	return q, nil
}

// AllQuestionnaires returns every supported questionnaire in menu order.
func AllQuestionnaires() []Questionnaire {
	return []Questionnaire{IPSS, MIPRO, ENURESIS}
}

// AnswerKind describes how a question is answered.
type AnswerKind string

const (
	SINGLE_CHOICE  AnswerKind = "SINGLE_CHOICE"
	MULTI_CHOICE   AnswerKind = "MULTI_CHOICE"
	NUMERIC_SLIDER AnswerKind = "NUMERIC_SLIDER"
)

// IsValid validates the answer kind.
func (k AnswerKind) IsValid() bool {
	switch k {
	case SINGLE_CHOICE, MULTI_CHOICE, NUMERIC_SLIDER:
		return true
	default:
		return false
	}
}

// String returns the string representation of the answer kind.
func (k AnswerKind) String() string {
	return string(k)
}

// RiskTier is the coarse ordinal bucketing derived from a numeric score.
// RISK_NONE marks questionnaires that do not compute a tier.
type RiskTier string

const (
	RISK_NONE   RiskTier = "none"
	RISK_LOW    RiskTier = "low"
	RISK_MEDIUM RiskTier = "medium"
	RISK_HIGH   RiskTier = "high"
)

// IsValid validates the risk tier.
func (t RiskTier) IsValid() bool {
	switch t {
	case RISK_NONE, RISK_LOW, RISK_MEDIUM, RISK_HIGH:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk tier.
func (t RiskTier) String() string {
	return string(t)
}

// Rank orders tiers low < medium < high. RISK_NONE ranks below all of them.
func (t RiskTier) Rank() int {
	switch t {
	case RISK_LOW:
		return 1
	case RISK_MEDIUM:
		return 2
	case RISK_HIGH:
		return 3
	default:
		return 0
	}
}

// Less reports whether t ranks below other.
func (t RiskTier) Less(other RiskTier) bool {
	return t.Rank() < other.Rank()
}

// RequiresFollowUp reports whether the tier should be surfaced to a clinician.
func (t RiskTier) RequiresFollowUp() bool {
	return t == RISK_HIGH
}

// LogFields returns structured logging fields for audit trails.
func (t RiskTier) LogFields() map[string]any {
	return map[string]any{
		"risk_tier":          string(t),
		"risk_rank":          t.Rank(),
		"requires_follow_up": t.RequiresFollowUp(),
	}
}

// Flag is a named boolean signal attached to a result. Flags drive downstream
// clinical guidance independently of the numeric score.
type Flag string

const (
	FLAG_HIGH_CONCERN                Flag = "high_concern"
	FLAG_LOW_CONCERN                 Flag = "low_concern"
	FLAG_SUGGEST_SEMEN_ANALYSIS      Flag = "suggest_semen_analysis"
	FLAG_RESPONSE_INCONSISTENCY      Flag = "response_inconsistency"
	FLAG_RELATIONSHIP_SUPPORT_NEEDED Flag = "relationship_support_needed"
	FLAG_SEXUAL_HEALTH_FOCUS         Flag = "sexual_health_focus"
)

// IsValid reports whether f is a known flag.
func (f Flag) IsValid() bool {
	switch f {
	case FLAG_HIGH_CONCERN, FLAG_LOW_CONCERN, FLAG_SUGGEST_SEMEN_ANALYSIS,
		FLAG_RESPONSE_INCONSISTENCY, FLAG_RELATIONSHIP_SUPPORT_NEEDED, FLAG_SEXUAL_HEALTH_FOCUS:
		return true
	default:
		return false
	}
}

// String returns the string representation of the flag.
func (f Flag) String() string {
	return string(f)
}

// Guidance returns the clinical guidance associated with the flag.
func (f Flag) Guidance() string {
	switch f {
	case FLAG_HIGH_CONCERN:
		return "Significant fertility concerns reported; discuss with a specialist"
	case FLAG_LOW_CONCERN:
		return "Low level of concern reported"
	case FLAG_SUGGEST_SEMEN_ANALYSIS:
		return "Ejaculate changes without prior testing; a semen analysis may help"
	case FLAG_RESPONSE_INCONSISTENCY:
		return "High mood impact reported while never thinking about fertility; review answers"
	case FLAG_RELATIONSHIP_SUPPORT_NEEDED:
		return "Fertility has caused tension with the partner; consider couple support"
	case FLAG_SEXUAL_HEALTH_FOCUS:
		return "Frequent erectile difficulty or reduced desire; assess sexual health"
	default:
		return "Unknown flag"
	}
}

// FlagSet is an ordered set of flags. Order carries no meaning; flags are kept
// sorted so that equal sets always serialize identically.
type FlagSet []Flag

// NewFlagSet builds a sorted, de-duplicated flag set.
func NewFlagSet(flags ...Flag) FlagSet {
	seen := make(map[Flag]struct{}, len(flags))
	set := make(FlagSet, 0, len(flags))
	for _, f := range flags {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		set = append(set, f)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set
}

// Has reports whether the set contains f.
func (s FlagSet) Has(f Flag) bool {
	for _, existing := range s {
		if existing == f {
			return true
		}
	}
	return false
}

// Strings returns the flag names.
func (s FlagSet) Strings() []string {
	out := make([]string, len(s))
	for i, f := range s {
		out[i] = string(f)
	}
	return out
}
