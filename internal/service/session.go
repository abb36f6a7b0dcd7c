package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// Progress describes the cursor position within the visible sequence.
type Progress struct {
	Position int     // 1-based
	Total    int     // visible questions
	Percent  float64 // Position / Total × 100
}

// Session is a single patient's pass through one questionnaire: the answer
// store plus a step cursor over the visible questions. It is not safe for
// concurrent use; all mutation happens in response to discrete user actions.
type Session struct {
	logger    *logrus.Logger
	engine    *ScoringEngine
	catalog   *catalog.Catalog
	answers   domain.AnswerSet
	visible   []domain.Question
	cursor    int
	submitted *domain.Result
}

// NewSession starts a session at the first question of the questionnaire.
func NewSession(logger *logrus.Logger, engine *ScoringEngine, q domain.Questionnaire) (*Session, error) {
	c, err := catalog.For(q)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s := &Session{
		logger:  logger,
		engine:  engine,
		catalog: c,
		answers: domain.NewAnswerSet(),
	}
	s.visible = engine.Resolver().Resolve(c, s.answers)
	return s, nil
}

// Questionnaire returns the questionnaire being answered.
func (s *Session) Questionnaire() domain.Questionnaire {
	return s.catalog.Questionnaire()
}

// Answers returns a copy of the current answer set.
func (s *Session) Answers() domain.AnswerSet {
	return s.answers.Clone()
}

// Visible returns the current visible question sequence.
func (s *Session) Visible() []domain.Question {
	out := make([]domain.Question, len(s.visible))
	copy(out, s.visible)
	return out
}

// Current returns the question under the cursor.
func (s *Session) Current() domain.Question {
	return s.visible[s.cursor]
}

// Progress reports the cursor position.
func (s *Session) Progress() Progress {
	total := len(s.visible)
	return Progress{
		Position: s.cursor + 1,
		Total:    total,
		Percent:  float64(s.cursor+1) / float64(total) * 100,
	}
}

// IsFirst reports whether the cursor is on the first visible question.
func (s *Session) IsFirst() bool {
	return s.cursor == 0
}

// IsLast reports whether the cursor is on the last visible question; moving on
// from there means submitting.
func (s *Session) IsLast() bool {
	return s.cursor == len(s.visible)-1
}

// Answer records v for question id, validates it and re-resolves the visible
// sequence. The cursor stays on the same question when it remains visible.
func (s *Session) Answer(id string, v domain.AnswerValue) error {
	if s.submitted != nil {
		return domain.ErrSessionSubmitted
	}

	q, ok := s.catalog.Question(id)
	if !ok {
		return fmt.Errorf("%w: '%s' in %s", domain.ErrUnknownQuestion, id, s.Questionnaire())
	}
	if !q.IsVisible(s.answers) {
		return fmt.Errorf("%w: '%s'", domain.ErrHiddenQuestion, id)
	}
	if err := q.ValidateAnswer(v); err != nil {
		return err
	}

	s.answers[id] = v
	s.resolve()

	s.logger.WithFields(logrus.Fields{
		"questionnaire": s.Questionnaire().String(),
		"question_id":   id,
		"visible":       len(s.visible),
	}).Debug("Answer recorded")
	return nil
}

// AnswerCurrent records v for the question under the cursor.
func (s *Session) AnswerCurrent(v domain.AnswerValue) error {
	return s.Answer(s.Current().ID, v)
}

// resolve recomputes the visible sequence after a mutation.
func (s *Session) resolve() {
	currentID := s.visible[s.cursor].ID
	s.visible = s.engine.Resolver().Resolve(s.catalog, s.answers)

	for i, q := range s.visible {
		if q.ID == currentID {
			s.cursor = i
			return
		}
	}
	if s.cursor >= len(s.visible) {
		s.cursor = len(s.visible) - 1
	}
}

// IsAnswered reports whether the current question may be left.
func (s *Session) IsAnswered() bool {
	return s.Current().IsAnsweredIn(s.answers)
}

// Next advances the cursor. It fails with ErrUnanswered while the current
// question has no answer and never moves past the last question.
func (s *Session) Next() (moved bool, err error) {
	if !s.IsAnswered() {
		return false, fmt.Errorf("%w: '%s'", domain.ErrUnanswered, s.Current().ID)
	}
	if s.IsLast() {
		return false, nil
	}
	s.cursor++
	return true, nil
}

// Previous moves the cursor back; it never moves below the first question.
func (s *Session) Previous() bool {
	if s.IsFirst() {
		return false
	}
	s.cursor--
	return true
}

// Submit scores the session. Every visible question must be answered; the
// result is produced once and later calls fail with ErrSessionSubmitted.
func (s *Session) Submit() (*domain.Result, error) {
	if s.submitted != nil {
		return nil, domain.ErrSessionSubmitted
	}

	var missing []string
	for _, q := range s.visible {
		if !q.IsAnsweredIn(s.answers) {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.IncompleteAnswersError{Questionnaire: s.Questionnaire(), Missing: missing}
	}

	result, err := s.engine.Score(s.Questionnaire(), s.answers)
	if err != nil {
		return nil, err
	}
	s.submitted = result
	return result, nil
}

// Result returns the submitted result, or nil before submission.
func (s *Session) Result() *domain.Result {
	return s.submitted
}
