package domain

import (
	"fmt"
	"strconv"
)

// Option is a selectable answer. For multi-choice questions Value and Label
// are the same string.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Predicate decides whether a question applies given the answers so far.
type Predicate func(answers AnswerSet) bool

// Question is an immutable catalog entry.
type Question struct {
	ID       string     `json:"id"`
	Title    string     `json:"title,omitempty"`
	Text     string     `json:"text"`
	Kind     AnswerKind `json:"kind"`
	Options  []Option   `json:"options,omitempty"`
	Min      int        `json:"min,omitempty"`
	Max      int        `json:"max,omitempty"`
	MinLabel string     `json:"min_label,omitempty"`
	MaxLabel string     `json:"max_label,omitempty"`
	HelpText string     `json:"help_text,omitempty"`
	Section  string     `json:"section,omitempty"`

	// Optional multi-choice questions may be left with no selection.
	Optional bool `json:"optional,omitempty"`

	// VisibleIf is nil for questions that are always shown.
	VisibleIf Predicate `json:"-"`
}

// IsVisible evaluates the visibility predicate against answers.
func (q Question) IsVisible(answers AnswerSet) bool {
	return q.VisibleIf == nil || q.VisibleIf(answers)
}

// IsAnsweredIn reports whether answers holds an answer that lets navigation
// move past q. Optional questions always count as answered.
func (q Question) IsAnsweredIn(answers AnswerSet) bool {
	if q.Optional {
		return true
	}
	v, ok := answers.Get(q.ID)
	return ok && v.IsAnswered()
}

// IsConditional reports whether the question has a visibility predicate.
func (q Question) IsConditional() bool {
	return q.VisibleIf != nil
}

// HasOption reports whether value is one of the declared option values.
func (q Question) HasOption(value string) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// OptionLabel returns the label for an option value, or the value itself.
func (q Question) OptionLabel(value string) string {
	for _, o := range q.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Validate checks the definition itself.
func (q Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question validation: %w: id is required", ErrInvalidQuestion)
	}
	if !q.Kind.IsValid() {
		return fmt.Errorf("question validation: %w: '%s' has invalid kind %q", ErrInvalidQuestion, q.ID, q.Kind)
	}
	switch q.Kind {
	case SINGLE_CHOICE, MULTI_CHOICE:
		if len(q.Options) == 0 {
			return fmt.Errorf("question validation: %w: '%s' has no options", ErrInvalidQuestion, q.ID)
		}
	case NUMERIC_SLIDER:
		if q.Min >= q.Max {
			return fmt.Errorf("question validation: %w: '%s' has empty range [%d,%d]", ErrInvalidQuestion, q.ID, q.Min, q.Max)
		}
	}
	return nil
}

// ValidateAnswer checks that v is valid for the question's answer kind:
// choices drawn from the declared options, slider values within [Min,Max].
// Out-of-domain values are reported, never clamped.
func (q Question) ValidateAnswer(v AnswerValue) error {
	if v.Kind != q.Kind {
		return &OutOfRangeAnswerError{
			QuestionID: q.ID,
			Value:      v.String(),
			Reason:     fmt.Sprintf("expected %s answer, got %s", q.Kind, v.Kind),
		}
	}

	switch q.Kind {
	case SINGLE_CHOICE:
		if !q.HasOption(v.Choice) {
			return &OutOfRangeAnswerError{QuestionID: q.ID, Value: v.String(), Reason: "not a declared option"}
		}
	case MULTI_CHOICE:
		for _, s := range v.Selections {
			if !q.HasOption(s) {
				return &OutOfRangeAnswerError{QuestionID: q.ID, Value: strconv.Quote(s), Reason: "not a declared option"}
			}
		}
	case NUMERIC_SLIDER:
		if v.Number < q.Min || v.Number > q.Max {
			return &OutOfRangeAnswerError{
				QuestionID: q.ID,
				Value:      v.String(),
				Reason:     fmt.Sprintf("outside [%d,%d]", q.Min, q.Max),
			}
		}
	}
	return nil
}
