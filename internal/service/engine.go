package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// ScoringEngine validates an answer set against its catalog, dispatches it to
// the questionnaire's scorer and stamps the resulting Questionnaire Result.
type ScoringEngine struct {
	logger   *logrus.Logger
	resolver *VisibilityResolver
	scorers  map[domain.Questionnaire]Scorer
	now      func() time.Time
	newID    func() string
}

// EngineOption is a functional option for ScoringEngine.
type EngineOption func(*ScoringEngine)

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *ScoringEngine) {
		e.now = now
	}
}

// WithIDGenerator overrides the result identifier source.
func WithIDGenerator(newID func() string) EngineOption {
	return func(e *ScoringEngine) {
		e.newID = newID
	}
}

// WithScorer registers or replaces the scorer of one questionnaire.
func WithScorer(s Scorer) EngineOption {
	return func(e *ScoringEngine) {
		e.scorers[s.Questionnaire()] = s
	}
}

// NewScoringEngine creates a scoring engine with the default scorers
func NewScoringEngine(logger *logrus.Logger, opts ...EngineOption) *ScoringEngine {
	e := &ScoringEngine{
		logger:   logger,
		resolver: NewVisibilityResolver(logger),
		scorers:  make(map[domain.Questionnaire]Scorer),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
	}
	for _, s := range DefaultScorers() {
		e.scorers[s.Questionnaire()] = s
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolver returns the visibility resolver used by the engine.
func (e *ScoringEngine) Resolver() *VisibilityResolver {
	return e.resolver
}

// Evaluate computes score, tier and flags without stamping a result. Answers to
// questions outside the catalog are logged and ignored; answers to questions
// that are currently hidden are not read.
func (e *ScoringEngine) Evaluate(q domain.Questionnaire, answers domain.AnswerSet) (*Outcome, error) {
	c, err := catalog.For(q)
	if err != nil {
		return nil, err
	}
	scorer, ok := e.scorers[q]
	if !ok {
		return nil, fmt.Errorf("no scorer registered: %w: %s", domain.ErrUnknownQuestionnaire, q)
	}

	scored := domain.NewAnswerSet()
	for _, id := range answers.IDs() {
		v := answers[id]
		question, known := c.Question(id)
		if !known {
			e.logger.WithFields(logrus.Fields{
				"questionnaire": q.String(),
				"question_id":   id,
			}).Warn("Ignoring answer for unknown question identifier")
			continue
		}
		if !e.resolver.IsVisible(c, answers, id) {
			e.logger.WithFields(logrus.Fields{
				"questionnaire": q.String(),
				"question_id":   id,
			}).Debug("Skipping answer to hidden question")
			continue
		}
		if err := question.ValidateAnswer(v); err != nil {
			return nil, fmt.Errorf("scoring %s: %w", q, err)
		}
		scored[id] = v
	}

	outcome, err := scorer.Score(scored)
	if err != nil {
		return nil, fmt.Errorf("scoring %s: %w", q, err)
	}
	return outcome, nil
}

// Score evaluates the answers and produces the immutable Questionnaire Result.
// The result keeps its own copy of the answers.
func (e *ScoringEngine) Score(q domain.Questionnaire, answers domain.AnswerSet) (*domain.Result, error) {
	outcome, err := e.Evaluate(q, answers)
	if err != nil {
		e.logger.WithError(err).WithField("questionnaire", q.String()).Warn("Questionnaire scoring failed")
		return nil, err
	}

	result := &domain.Result{
		ID:            e.newID(),
		Questionnaire: q,
		Answers:       answers.Clone(),
		Score:         outcome.Score,
		RiskTier:      outcome.Tier,
		Flags:         outcome.Flags,
		Defaulted:     outcome.Defaulted,
		SubmittedAt:   e.now(),
	}

	e.logger.WithFields(logrus.Fields(result.LogFields())).Info("Questionnaire scored")
	return result, nil
}
