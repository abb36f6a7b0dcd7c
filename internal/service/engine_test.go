package service

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

var fixedTime = time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*ScoringEngine, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	engine := NewScoringEngine(logger,
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string { return "result-1" }),
	)
	return engine, hook
}

func TestScoringEngine_Score(t *testing.T) {
	engine, _ := newTestEngine(t)

	answers := miproAnswers(10, 0, catalog.FrequencyOften)
	result, err := engine.Score(domain.MIPRO, answers)

	require.NoError(t, err)
	assert.Equal(t, "result-1", result.ID)
	assert.Equal(t, domain.MIPRO, result.Questionnaire)
	assert.Equal(t, 77, result.Score)
	assert.Equal(t, domain.RISK_LOW, result.RiskTier)
	assert.True(t, result.Flags.Has(domain.FLAG_LOW_CONCERN))
	assert.Equal(t, fixedTime, result.SubmittedAt)
	assert.NoError(t, result.Validate())
}

func TestScoringEngine_ResultKeepsOwnAnswers(t *testing.T) {
	engine, _ := newTestEngine(t)

	answers := domain.AnswerSet{
		catalog.EnuresisFrequency: domain.Choice(catalog.NightsFivePlus),
		catalog.EnuresisQoLImpact: domain.Selections("Felt embarrassed"),
	}
	result, err := engine.Score(domain.ENURESIS, answers)
	require.NoError(t, err)

	answers[catalog.EnuresisFrequency] = domain.Choice("0")
	answers[catalog.EnuresisQoLImpact].Selections[0] = "changed"

	assert.Equal(t, domain.Choice(catalog.NightsFivePlus), result.Answers[catalog.EnuresisFrequency])
	assert.Equal(t, []string{"Felt embarrassed"}, result.Answers[catalog.EnuresisQoLImpact].Selections)
}

func TestScoringEngine_Idempotent(t *testing.T) {
	engine, _ := newTestEngine(t)

	answers := miproAnswers(3, 8, catalog.FrequencySometimes)
	answers[catalog.MIPRORelationshipImpact] = domain.Choice(catalog.RelationshipWithTension)

	first, err := engine.Score(domain.MIPRO, answers)
	require.NoError(t, err)
	second, err := engine.Score(domain.MIPRO, answers)
	require.NoError(t, err)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.RiskTier, second.RiskTier)
	assert.Equal(t, first.Flags, second.Flags)
}

func TestScoringEngine_UnknownQuestionIsLoggedAndIgnored(t *testing.T) {
	engine, hook := newTestEngine(t)

	answers := ipssAnswers("1", "1", "1", "1", "1", "1", "1")
	answers["bladder_pain"] = domain.Choice("5")

	result, err := engine.Score(domain.IPSS, answers)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Score)

	var found bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Message == "Ignoring answer for unknown question identifier" {
			assert.Equal(t, "bladder_pain", entry.Data["question_id"])
			found = true
		}
	}
	assert.True(t, found, "expected a warning for the unknown question id")
}

func TestScoringEngine_StaleHiddenAnswerIsIgnored(t *testing.T) {
	engine, _ := newTestEngine(t)

	answers := miproAnswers(5, 0, catalog.FrequencyNever)
	answers[catalog.MIPROPriorTesting] = domain.Choice("false")
	// left over from when prior_testing was "true"; even an invalid value is not read
	answers[catalog.MIPROClinicalFindings] = domain.Selections("not an option")

	result, err := engine.Score(domain.MIPRO, answers)

	require.NoError(t, err)
	assert.Equal(t, 50, result.Score)
}

func TestScoringEngine_OutOfRangeAnswer(t *testing.T) {
	tests := []struct {
		name    string
		q       domain.Questionnaire
		answers domain.AnswerSet
	}{
		{
			name:    "slider above max",
			q:       domain.MIPRO,
			answers: domain.AnswerSet{catalog.MIPROMoodImpact: domain.Slider(11)},
		},
		{
			name:    "undeclared option",
			q:       domain.MIPRO,
			answers: domain.AnswerSet{catalog.MIPROSexualDesire: domain.Choice("always")},
		},
		{
			name:    "wrong answer kind",
			q:       domain.MIPRO,
			answers: domain.AnswerSet{catalog.MIPROFertilityConfidence: domain.Choice("5")},
		},
		{
			name: "undeclared multi-choice label",
			q:    domain.ENURESIS,
			answers: domain.AnswerSet{
				catalog.EnuresisFrequency: domain.Choice("0"),
				catalog.EnuresisQoLImpact: domain.Selections("A", "B"),
			},
		},
	}

	engine, _ := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Score(tt.q, tt.answers)
			assert.ErrorIs(t, err, domain.ErrOutOfRange)
			assert.Nil(t, result)
		})
	}
}

func TestScoringEngine_Incomplete(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.Score(domain.IPSS, domain.NewAnswerSet())
	assert.ErrorIs(t, err, domain.ErrIncompleteAnswers)
}

func TestScoringEngine_UnknownQuestionnaire(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.Score(domain.Questionnaire("PHQ9"), domain.NewAnswerSet())
	assert.ErrorIs(t, err, domain.ErrUnknownQuestionnaire)
}

type constantScorer struct{}

func (constantScorer) Questionnaire() domain.Questionnaire { return domain.ENURESIS }

func (constantScorer) Score(domain.AnswerSet) (*Outcome, error) {
	return &Outcome{Score: 99, Tier: domain.RISK_NONE, Flags: domain.NewFlagSet()}, nil
}

func TestScoringEngine_WithScorer(t *testing.T) {
	logger, _ := test.NewNullLogger()
	engine := NewScoringEngine(logger, WithScorer(constantScorer{}))

	result, err := engine.Score(domain.ENURESIS, domain.NewAnswerSet())
	require.NoError(t, err)
	assert.Equal(t, 99, result.Score)
	assert.NotEmpty(t, result.ID)
}
