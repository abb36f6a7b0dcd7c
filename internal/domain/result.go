package domain

import (
	"fmt"
	"time"
)

// Result is the scored outcome of a completed questionnaire. It is created once
// per submission and never mutated afterwards.
type Result struct {
	ID            string        `json:"id"`
	Questionnaire Questionnaire `json:"questionnaire"`
	Answers       AnswerSet     `json:"answers"`
	Score         int           `json:"score"`
	RiskTier      RiskTier      `json:"risk_tier"`
	Flags         FlagSet       `json:"flags"`
	Defaulted     []string      `json:"defaulted,omitempty"`
	SubmittedAt   time.Time     `json:"submitted_at"`
}

// Validate ensures a result read back from storage is well formed.
func (r *Result) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("result validation: %w", NewValidationError("id", "id is required", r.ID))
	}
	if !r.Questionnaire.IsValid() {
		return fmt.Errorf("result validation: %w", ErrUnknownQuestionnaire)
	}
	if !r.RiskTier.IsValid() {
		return fmt.Errorf("result validation: %w: %q", ErrInvalidRiskTier, r.RiskTier)
	}
	for _, f := range r.Flags {
		if !f.IsValid() {
			return fmt.Errorf("result validation: %w", NewValidationError("flags", "unknown flag", string(f)))
		}
	}
	return nil
}

// LogFields returns structured logging fields for audit trails. Raw answers
// are never logged.
func (r *Result) LogFields() map[string]any {
	fields := map[string]any{
		"result_id":     r.ID,
		"questionnaire": string(r.Questionnaire),
		"score":         r.Score,
		"flags":         r.Flags.Strings(),
		"answer_count":  len(r.Answers),
		"submitted_at":  r.SubmittedAt,
	}
	for k, v := range r.RiskTier.LogFields() {
		fields[k] = v
	}
	return fields
}
