package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
	"github.com/urolinq-questionnaire-engine/internal/results"
)

// QuestionnaireService is the entry point used by presentation layers. It hands
// out sessions, scores answer sets and, when an archive is configured, stores
// every produced result.
type QuestionnaireService struct {
	logger  *logrus.Logger
	engine  *ScoringEngine
	archive results.Store
}

// NewQuestionnaireService creates the service. archive may be nil, in which
// case results are returned but not kept.
func NewQuestionnaireService(logger *logrus.Logger, engine *ScoringEngine, archive results.Store) *QuestionnaireService {
	return &QuestionnaireService{
		logger:  logger,
		engine:  engine,
		archive: archive,
	}
}

// Catalog returns the question catalog of q.
func (s *QuestionnaireService) Catalog(q domain.Questionnaire) (*catalog.Catalog, error) {
	return catalog.For(q)
}

// Start opens a new session for q.
func (s *QuestionnaireService) Start(q domain.Questionnaire) (*Session, error) {
	session, err := NewSession(s.logger, s.engine, q)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("questionnaire", q.String()).Info("Questionnaire session started")
	return session, nil
}

// Submit scores a session and archives the result.
func (s *QuestionnaireService) Submit(ctx context.Context, session *Session) (*domain.Result, error) {
	result, err := session.Submit()
	if err != nil {
		return nil, err
	}
	if err := s.archiveResult(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}

// ScoreAnswers scores a complete answer set without a session, as used for
// answer files and batch rescoring.
func (s *QuestionnaireService) ScoreAnswers(ctx context.Context, q domain.Questionnaire, answers domain.AnswerSet) (*domain.Result, error) {
	result, err := s.engine.Score(q, answers)
	if err != nil {
		return nil, err
	}
	if err := s.archiveResult(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}

// archiveResult stores result when an archive is configured. The result is
// returned to the caller even when storage fails.
func (s *QuestionnaireService) archiveResult(ctx context.Context, result *domain.Result) error {
	if s.archive == nil {
		return nil
	}
	if err := s.archive.Save(ctx, result); err != nil {
		s.logger.WithError(err).WithField("result_id", result.ID).Error("Failed to archive questionnaire result")
		return fmt.Errorf("failed to archive result: %w", err)
	}
	s.logger.WithField("result_id", result.ID).Debug("Questionnaire result archived")
	return nil
}
