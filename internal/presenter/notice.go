// Package presenter turns questions and results into terminal output. It holds
// no scoring logic: everything it shows is read from a domain.Result.
package presenter

import "github.com/urolinq-questionnaire-engine/internal/domain"

// NoticeLevel is the severity of a post-submission notice.
type NoticeLevel string

const (
	NOTICE_SUCCESS NoticeLevel = "success"
	NOTICE_INFO    NoticeLevel = "info"
	NOTICE_WARNING NoticeLevel = "warning"
)

// Action is an optional follow-up offered with a notice.
type Action struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// Notice is the message shown once a questionnaire has been submitted.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Title   string      `json:"title"`
	Message string      `json:"message,omitempty"`
	Action  *Action     `json:"action,omitempty"`
}

// ResourcesPath is where the "Learn More" action points.
const ResourcesPath = "/resources"

// NoticeFor selects the notice for a result. Only MIPRO flags change the
// notice; the first matching rule wins.
func NoticeFor(r *domain.Result) Notice {
	switch r.Questionnaire {
	case domain.MIPRO:
		switch {
		case r.Flags.Has(domain.FLAG_HIGH_CONCERN):
			return Notice{
				Level:   NOTICE_WARNING,
				Title:   "Important Notice",
				Message: "Your responses suggest significant fertility concerns. We recommend discussing these with a specialist.",
				Action:  &Action{Label: "Learn More", Target: ResourcesPath},
			}
		case r.Flags.Has(domain.FLAG_SUGGEST_SEMEN_ANALYSIS):
			return Notice{
				Level:   NOTICE_INFO,
				Title:   "Assessment Recommended",
				Message: "Based on your responses, a semen analysis might provide valuable insights.",
			}
		default:
			return Notice{
				Level:   NOTICE_SUCCESS,
				Title:   "Thank You!",
				Message: "Your questionnaire has been submitted successfully.",
			}
		}
	case domain.IPSS:
		return Notice{Level: NOTICE_SUCCESS, Title: "Questionnaire submitted successfully!"}
	default:
		return Notice{Level: NOTICE_SUCCESS, Title: "Thank You!", Message: "Your survey has been submitted."}
	}
}

// IPSS symptom severity bands.
const (
	ipssMildMax     = 7
	ipssModerateMax = 19
)

// IPSSSeverity labels an IPSS total for display: mild (0-7), moderate (8-19)
// or severe (20-35). It is not part of the result.
func IPSSSeverity(score int) string {
	switch {
	case score <= ipssMildMax:
		return "mild"
	case score <= ipssModerateMax:
		return "moderate"
	default:
		return "severe"
	}
}
