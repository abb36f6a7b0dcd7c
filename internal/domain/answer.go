package domain

import (
	"sort"
	"strconv"
	"strings"
)

// AnswerValue is a single recorded answer. Which field is meaningful depends on Kind:
// Choice for SINGLE_CHOICE, Selections for MULTI_CHOICE and Number for NUMERIC_SLIDER.
type AnswerValue struct {
	Kind       AnswerKind `json:"kind"`
	Choice     string     `json:"choice,omitempty"`
	Selections []string   `json:"selections,omitempty"`
	Number     int        `json:"number,omitempty"`
}

// Choice records a single selected option value.
func Choice(value string) AnswerValue {
	return AnswerValue{Kind: SINGLE_CHOICE, Choice: value}
}

// Selections records a set of selected option labels. Duplicates collapse and
// the labels are kept sorted, since selection order carries no meaning.
func Selections(labels ...string) AnswerValue {
	seen := make(map[string]struct{}, len(labels))
	set := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		set = append(set, l)
	}
	sort.Strings(set)
	return AnswerValue{Kind: MULTI_CHOICE, Selections: set}
}

// Slider records a numeric slider position.
func Slider(n int) AnswerValue {
	return AnswerValue{Kind: NUMERIC_SLIDER, Number: n}
}

// Bool interprets a yes/no single choice stored as "true" / "false".
func (v AnswerValue) Bool() (value bool, ok bool) {
	if v.Kind != SINGLE_CHOICE {
		return false, false
	}
	b, err := strconv.ParseBool(v.Choice)
	if err != nil {
		return false, false
	}
	return b, true
}

// Int interprets a single choice whose option values are integers (IPSS).
func (v AnswerValue) Int() (int, bool) {
	switch v.Kind {
	case NUMERIC_SLIDER:
		return v.Number, true
	case SINGLE_CHOICE:
		n, err := strconv.Atoi(v.Choice)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Contains reports whether a multi-choice answer includes label.
func (v AnswerValue) Contains(label string) bool {
	for _, s := range v.Selections {
		if s == label {
			return true
		}
	}
	return false
}

// IsAnswered reports whether the value counts as an answer for navigation:
// a multi-choice needs at least one selection, a single choice a non-empty value.
func (v AnswerValue) IsAnswered() bool {
	switch v.Kind {
	case SINGLE_CHOICE:
		return v.Choice != ""
	case MULTI_CHOICE:
		return len(v.Selections) > 0
	case NUMERIC_SLIDER:
		return true
	default:
		return false
	}
}

// String renders the value for logs and error messages.
func (v AnswerValue) String() string {
	switch v.Kind {
	case SINGLE_CHOICE:
		return strconv.Quote(v.Choice)
	case MULTI_CHOICE:
		return "[" + strings.Join(v.Selections, ", ") + "]"
	case NUMERIC_SLIDER:
		return strconv.Itoa(v.Number)
	default:
		return "<invalid>"
	}
}

// AnswerSet maps question identifiers to the patient's current answers.
// It is passed explicitly into the resolver and the scorers; neither keeps a
// reference to it nor mutates it.
type AnswerSet map[string]AnswerValue

// NewAnswerSet creates an empty answer set.
func NewAnswerSet() AnswerSet {
	return make(AnswerSet)
}

// Get returns the answer for id.
func (a AnswerSet) Get(id string) (AnswerValue, bool) {
	v, ok := a[id]
	return v, ok
}

// Has reports whether id has a recorded answer.
func (a AnswerSet) Has(id string) bool {
	_, ok := a[id]
	return ok
}

// IDs returns the answered question identifiers, sorted.
func (a AnswerSet) IDs() []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy of the answer set.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for id, v := range a {
		if v.Selections != nil {
			v.Selections = append([]string(nil), v.Selections...)
		}
		out[id] = v
	}
	return out
}
