package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Typed errors below match them through errors.Is.
var (
	ErrNotFound              = errors.New("not found")
	ErrAlreadyExists         = errors.New("already exists")
	ErrUnknownQuestionnaire  = errors.New("unknown questionnaire")
	ErrUnknownQuestion       = errors.New("unknown question identifier")
	ErrIncompleteAnswers     = errors.New("incomplete answers")
	ErrOutOfRange            = errors.New("answer out of range")
	ErrUnanswered            = errors.New("question not answered")
	ErrHiddenQuestion        = errors.New("question not visible")
	ErrSessionSubmitted      = errors.New("session already submitted")
	ErrInvalidRiskTier       = errors.New("invalid risk tier")
	ErrInvalidQuestion       = errors.New("invalid question definition")
)

// IncompleteAnswersError reports mandatory questions with no recorded answer
// at submission time.
type IncompleteAnswersError struct {
	Questionnaire Questionnaire `json:"questionnaire"`
	Missing       []string      `json:"missing"`
}

// Error implements the error interface
func (e *IncompleteAnswersError) Error() string {
	return fmt.Sprintf("%s: %s missing %s", ErrIncompleteAnswers, e.Questionnaire, strings.Join(e.Missing, ", "))
}

// Is matches ErrIncompleteAnswers.
func (e *IncompleteAnswersError) Is(target error) bool {
	return target == ErrIncompleteAnswers
}

// OutOfRangeAnswerError reports an answer outside its question's declared domain.
type OutOfRangeAnswerError struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
	Reason     string `json:"reason"`
}

// Error implements the error interface
func (e *OutOfRangeAnswerError) Error() string {
	return fmt.Sprintf("%s: question '%s' value %s: %s", ErrOutOfRange, e.QuestionID, e.Value, e.Reason)
}

// Is matches ErrOutOfRange.
func (e *OutOfRangeAnswerError) Is(target error) bool {
	return target == ErrOutOfRange
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}
