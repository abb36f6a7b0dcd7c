package answerfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

func TestParse_MIPROYAML(t *testing.T) {
	input := `
prior_testing: false
ejaculate_changes: [Reduced volume, Thinner consistency]
erection_difficulty: never
sexual_desire: often
fertility_confidence: 10
relationship_impact: with_tension
fertility_thoughts: daily
mood_impact: 0
`
	answers, err := Parse(strings.NewReader(input), catalog.MIPROCatalog())
	require.NoError(t, err)

	assert.Equal(t, domain.Choice("false"), answers[catalog.MIPROPriorTesting])
	assert.Equal(t, domain.Selections("Reduced volume", "Thinner consistency"), answers[catalog.MIPROEjaculateChanges])
	assert.Equal(t, domain.Slider(10), answers[catalog.MIPROFertilityConfidence])
	assert.Equal(t, domain.Slider(0), answers[catalog.MIPROMoodImpact])
	assert.Equal(t, domain.Choice(catalog.RelationshipWithTension), answers[catalog.MIPRORelationshipImpact])
	assert.Len(t, answers, 8)
}

func TestParse_IPSSJSON(t *testing.T) {
	input := `{"incomplete_emptying": 1, "frequency": 2, "intermittency": 0, "urgency": 5,
		"weak_stream": 3, "straining": 0, "nocturia": "4"}`

	answers, err := Parse(strings.NewReader(input), catalog.IPSSCatalog())
	require.NoError(t, err)

	assert.Equal(t, domain.Choice("1"), answers[catalog.IPSSIncompleteEmptying])
	assert.Equal(t, domain.Choice("4"), answers[catalog.IPSSNocturia])
	assert.Len(t, answers, 7)
}

func TestParse_Enuresis(t *testing.T) {
	input := "frequency: 5+\nvolume:\nqol_impact: Felt embarrassed\n"

	answers, err := Parse(strings.NewReader(input), catalog.EnuresisCatalog())
	require.NoError(t, err)

	assert.Equal(t, domain.Choice("5+"), answers[catalog.EnuresisFrequency])
	assert.Equal(t, domain.Selections(), answers[catalog.EnuresisVolume])
	assert.Equal(t, domain.Selections("Felt embarrassed"), answers[catalog.EnuresisQoLImpact])
}

func TestParse_UnknownIdsAreKept(t *testing.T) {
	answers, err := Parse(strings.NewReader("frequency: \"0\"\nbladder_pain: 3\n"), catalog.EnuresisCatalog())
	require.NoError(t, err)

	assert.Equal(t, domain.Choice("3"), answers["bladder_pain"])
}

func TestParse_Empty(t *testing.T) {
	answers, err := Parse(strings.NewReader(""), catalog.IPSSCatalog())
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{name: "not a mapping", input: "- 1\n- 2\n", field: "answers"},
		{name: "slider text", input: "mood_impact: high\n", field: catalog.MIPROMoodImpact},
		{name: "slider list", input: "mood_impact: [1, 2]\n", field: catalog.MIPROMoodImpact},
		{name: "choice list", input: "sexual_desire: [often]\n", field: catalog.MIPROSexualDesire},
		{name: "choice null", input: "sexual_desire:\n", field: catalog.MIPROSexualDesire},
		{name: "duplicate", input: "mood_impact: 1\nmood_impact: 2\n", field: catalog.MIPROMoodImpact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), catalog.MIPROCatalog())
			require.Error(t, err)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse(strings.NewReader("mood_impact: [1,\n"), catalog.MIPROCatalog())
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frequency: \"3-4\"\n"), 0644))

	answers, err := ParseFile(path, catalog.EnuresisCatalog())
	require.NoError(t, err)
	assert.Equal(t, domain.Choice("3-4"), answers[catalog.EnuresisFrequency])

	_, err = ParseFile(filepath.Join(t.TempDir(), "absent.yaml"), catalog.EnuresisCatalog())
	assert.Error(t, err)
}

func TestEncode_ParsesBack(t *testing.T) {
	c := catalog.MIPROCatalog()
	answers := domain.AnswerSet{
		catalog.MIPROPriorTesting:        domain.Choice("true"),
		catalog.MIPROClinicalFindings:    domain.Selections("Hormone imbalance", "I don't know the details"),
		catalog.MIPROFertilityConfidence: domain.Slider(7),
		catalog.MIPROSexualDesire:        domain.Choice(catalog.FrequencyRarely),
		"not_in_catalog":                 domain.Choice("x"),
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c, answers))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "prior_testing:"), "catalog order: %s", out)
	assert.NotContains(t, out, "not_in_catalog")

	parsed, err := Parse(&buf, c)
	require.NoError(t, err)
	delete(answers, "not_in_catalog")
	assert.Equal(t, answers, parsed)
}
