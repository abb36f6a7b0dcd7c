package service

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

func questionIDs(questions []domain.Question) []string {
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func TestVisibilityResolver_Resolve(t *testing.T) {
	logger, _ := test.NewNullLogger()
	resolver := NewVisibilityResolver(logger)
	c := catalog.MIPROCatalog()

	tests := []struct {
		name        string
		answers     domain.AnswerSet
		wantVisible bool
	}{
		{name: "no answers", answers: domain.NewAnswerSet(), wantVisible: false},
		{name: "no prior testing", answers: domain.AnswerSet{catalog.MIPROPriorTesting: domain.Choice("false")}, wantVisible: false},
		{name: "prior testing", answers: domain.AnswerSet{catalog.MIPROPriorTesting: domain.Choice("true")}, wantVisible: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible := resolver.Resolve(c, tt.answers)
			ids := questionIDs(visible)

			if tt.wantVisible {
				assert.Len(t, ids, 9)
				assert.Equal(t, catalog.MIPROClinicalFindings, ids[1], "declaration order is kept")
			} else {
				assert.Len(t, ids, 8)
				assert.NotContains(t, ids, catalog.MIPROClinicalFindings)
			}
			assert.Equal(t, tt.wantVisible, resolver.IsVisible(c, tt.answers, catalog.MIPROClinicalFindings))
		})
	}
}

func TestVisibilityResolver_DoesNotMutateCatalog(t *testing.T) {
	logger, _ := test.NewNullLogger()
	resolver := NewVisibilityResolver(logger)
	c := catalog.MIPROCatalog()

	resolver.Resolve(c, domain.NewAnswerSet())

	assert.Equal(t, c.IDs(), questionIDs(c.Questions()))
	assert.Len(t, c.Questions(), 9)
}

func TestVisibilityResolver_UnconditionalCatalogs(t *testing.T) {
	logger, _ := test.NewNullLogger()
	resolver := NewVisibilityResolver(logger)

	assert.Len(t, resolver.Resolve(catalog.IPSSCatalog(), domain.NewAnswerSet()), 7)
	assert.Len(t, resolver.Resolve(catalog.EnuresisCatalog(), domain.NewAnswerSet()), 3)
	assert.False(t, resolver.IsVisible(catalog.IPSSCatalog(), domain.NewAnswerSet(), "unknown"))
}
