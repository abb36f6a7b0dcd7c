package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urolinq-questionnaire-engine/internal/answerfile"
	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// isolate points configuration and the archive at a temporary directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("UROLINQ_DATA_DIR", dir)
	t.Setenv("UROLINQ_LOGGING_LEVEL", "error")
	t.Setenv("UROLINQ_OUTPUT_COLOR", "never")
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()

	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "urolinq", cmd.Use)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"catalog", "take", "score", "results", "db"} {
		assert.Contains(t, names, want)
	}
}

func TestCatalogCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "catalog", "ipss")
	require.NoError(t, err)
	assert.Contains(t, out, "International Prostate Symptom Score (IPSS)")
	assert.Contains(t, out, catalog.IPSSIncompleteEmptying)
	assert.Contains(t, out, catalog.IPSSNocturia)
}

func TestCatalogCommand_WithAnswers(t *testing.T) {
	dir := isolate(t)

	out, err := execute(t, "", "catalog", "mipro")
	require.NoError(t, err)
	assert.Contains(t, out, catalog.MIPROClinicalFindings)

	answers := writeFile(t, dir, "answers.yaml", "prior_testing: false\n")
	out, err = execute(t, "", "catalog", "mipro", "--answers", answers)
	require.NoError(t, err)
	assert.NotContains(t, out, catalog.MIPROClinicalFindings)
	assert.Contains(t, out, catalog.MIPROEjaculateChanges)
}

func TestCatalogCommand_UnknownQuestionnaire(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "catalog", "phq9")
	assert.ErrorIs(t, err, domain.ErrUnknownQuestionnaire)
}

func TestTakeCommand_IPSS(t *testing.T) {
	isolate(t)

	// option numbers map to values 5,4,3,2,1,0,5
	out, err := execute(t, "6\n5\n4\n3\n2\n1\n6\n", "take", "ipss")
	require.NoError(t, err)

	assert.Contains(t, out, "Question 1 of 7")
	assert.Contains(t, out, "Question 7 of 7 (100%)")
	assert.Contains(t, out, "Score: 20 (severe symptoms)")
	assert.Contains(t, out, "Questionnaire submitted successfully!")

	out, err = execute(t, "", "results", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "IPSS")
	assert.Contains(t, out, "1 of 1 results")
}

func TestTakeCommand_EnuresisWithBackAndSave(t *testing.T) {
	dir := isolate(t)
	saved := filepath.Join(dir, "enuresis.yaml")

	out, err := execute(t, "4\n1\nb\n\n1,2\n", "take", "enuresis", "--no-archive", "--save-answers", saved)
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 14")
	assert.Contains(t, out, "Thank You!")

	answers, err := answerfile.ParseFile(saved, catalog.EnuresisCatalog())
	require.NoError(t, err)
	assert.Equal(t, domain.Choice(catalog.NightsFivePlus), answers[catalog.EnuresisFrequency])
	assert.Equal(t, domain.Selections("Drops"), answers[catalog.EnuresisVolume])
	assert.Equal(t, domain.Selections("Avoided sleepovers", "Felt embarrassed"), answers[catalog.EnuresisQoLImpact])

	out, err = execute(t, "", "results", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No results archived.")
}

func TestTakeCommand_Warnings(t *testing.T) {
	isolate(t)

	out, err := execute(t, "\n9\nfoo\nq\n", "take", "ipss")
	require.NoError(t, err)

	assert.Contains(t, out, unansweredWarning)
	assert.Contains(t, out, "enter an option number from 1 to 6")
	assert.Contains(t, out, "Questionnaire abandoned.")
	assert.NotContains(t, out, "Score:")
}

func TestTakeCommand_MIPROSliderRange(t *testing.T) {
	isolate(t)

	// prior_testing=No, ejaculate=Reduced volume, erection=Never, desire=Never,
	// confidence 11 rejected then 0, relationship=No, thoughts=Sometimes, mood 10
	input := "1\n1\n1\n1\n11\n0\n1\n3\n10\n"
	out, err := execute(t, input, "take", "mipro", "--no-archive")
	require.NoError(t, err)

	assert.Contains(t, out, "outside [0,10]")
	assert.Contains(t, out, "Question 8 of 8")
	assert.Contains(t, out, "Risk:  high")
	assert.Contains(t, out, "Important Notice")
	assert.Contains(t, out, "Learn More: /resources")
}

func TestTakeCommand_InputClosed(t *testing.T) {
	isolate(t)

	_, err := execute(t, "6\n", "take", "ipss")
	assert.ErrorIs(t, err, errInputClosed)
}

func TestScoreCommand(t *testing.T) {
	dir := isolate(t)
	answers := writeFile(t, dir, "ipss.yaml", `
incomplete_emptying: 1
frequency: 1
intermittency: 1
urgency: 1
weak_stream: 1
straining: 1
nocturia: 1
`)

	out, err := execute(t, "", "score", "ipss", "--answers", answers, "--no-archive")
	require.NoError(t, err)

	var doc struct {
		Result struct {
			Score         int    `json:"score"`
			Questionnaire string `json:"questionnaire"`
			RiskTier      string `json:"risk_tier"`
		} `json:"result"`
		Notice struct {
			Title string `json:"title"`
		} `json:"notice"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 7, doc.Result.Score)
	assert.Equal(t, "IPSS", doc.Result.Questionnaire)
	assert.Equal(t, "none", doc.Result.RiskTier)
	assert.Equal(t, "Questionnaire submitted successfully!", doc.Notice.Title)
}

func TestScoreCommand_MIPROJSON(t *testing.T) {
	dir := isolate(t)
	answers := writeFile(t, dir, "mipro.json", `{
  "prior_testing": "false",
  "ejaculate_changes": ["Reduced volume"],
  "erection_difficulty": "never",
  "sexual_desire": "never",
  "fertility_confidence": 0,
  "relationship_impact": "no",
  "fertility_thoughts": "sometimes",
  "mood_impact": 10
}`)

	out, err := execute(t, "", "score", "mipro", "-a", answers, "--no-archive")
	require.NoError(t, err)

	var doc struct {
		Result *domain.Result `json:"result"`
		Notice struct {
			Level  string `json:"level"`
			Action *struct {
				Target string `json:"target"`
			} `json:"action"`
		} `json:"notice"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.NotNil(t, doc.Result)
	assert.Equal(t, domain.RISK_HIGH, doc.Result.RiskTier)
	assert.True(t, doc.Result.Flags.Has(domain.FLAG_HIGH_CONCERN))
	assert.True(t, doc.Result.Flags.Has(domain.FLAG_SUGGEST_SEMEN_ANALYSIS))
	assert.Equal(t, "warning", doc.Notice.Level)
	require.NotNil(t, doc.Notice.Action)
	assert.Equal(t, "/resources", doc.Notice.Action.Target)
}

func TestScoreCommand_Errors(t *testing.T) {
	dir := isolate(t)

	t.Run("incomplete", func(t *testing.T) {
		answers := writeFile(t, dir, "partial.yaml", "incomplete_emptying: 1\n")
		_, err := execute(t, "", "score", "ipss", "--answers", answers)

		var incomplete *domain.IncompleteAnswersError
		require.ErrorAs(t, err, &incomplete)
		assert.Len(t, incomplete.Missing, 6)
	})

	t.Run("out of range", func(t *testing.T) {
		answers := writeFile(t, dir, "range.yaml", "frequency: 7+\n")
		_, err := execute(t, "", "score", "enuresis", "--answers", answers)
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
	})

	t.Run("missing flag", func(t *testing.T) {
		_, err := execute(t, "", "score", "ipss")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "", "score", "ipss", "--answers", filepath.Join(dir, "nope.yaml"))
		assert.ErrorContains(t, err, "failed to read answers")
	})
}

func TestResultsCommands(t *testing.T) {
	dir := isolate(t)
	answers := writeFile(t, dir, "enuresis.yaml", "frequency: 5+\nqol_impact: [Avoided sleepovers, Felt embarrassed]\n")

	out, err := execute(t, "", "score", "enuresis", "--answers", answers)
	require.NoError(t, err)

	var doc struct {
		Result struct {
			ID string `json:"id"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	id := doc.Result.ID
	require.NotEmpty(t, id)

	out, err = execute(t, "", "results", "list", "-q", "enuresis")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "1 of 1 results")

	out, err = execute(t, "", "results", "list", "-q", "ipss")
	require.NoError(t, err)
	assert.Contains(t, out, "No results archived.")

	out, err = execute(t, "", "results", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 14")

	out, err = execute(t, "", "results", "show", id, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"score": 14`)

	exported := filepath.Join(dir, "backup.json")
	_, err = execute(t, "", "results", "export", "--output", exported)
	require.NoError(t, err)
	assert.FileExists(t, exported)

	out, err = execute(t, "", "results", "import", exported)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 results (1 already archived)")

	out, err = execute(t, "", "results", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted result "+id)

	_, err = execute(t, "", "results", "show", id)
	assert.Error(t, err)

	out, err = execute(t, "", "results", "import", exported)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 results (0 already archived)")
}

func TestDBCommand_RequiresURL(t *testing.T) {
	isolate(t)

	_, err := execute(t, "", "db", "ping")
	assert.ErrorContains(t, err, "no database URL")

	_, err = execute(t, "", "db", "migrate", "sideways")
	assert.Error(t, err)
}

func TestParseInput(t *testing.T) {
	ipss := catalog.IPSSCatalog().Questions()[0]
	qol, _ := catalog.EnuresisCatalog().Question(catalog.EnuresisQoLImpact)
	mood, _ := catalog.MIPROCatalog().Question(catalog.MIPROMoodImpact)

	tests := []struct {
		name    string
		q       domain.Question
		input   string
		want    domain.AnswerValue
		wantErr bool
	}{
		{name: "single choice", q: ipss, input: "1", want: domain.Choice("0")},
		{name: "single choice last", q: ipss, input: "6", want: domain.Choice("5")},
		{name: "single choice zero", q: ipss, input: "0", wantErr: true},
		{name: "single choice text", q: ipss, input: "often", wantErr: true},
		{name: "multi choice", q: qol, input: "3, 1", want: domain.Selections("Missed work/school", "Avoided sleepovers")},
		{name: "multi choice none", q: qol, input: "-", want: domain.Selections()},
		{name: "multi choice bad", q: qol, input: "1,4", wantErr: true},
		{name: "slider", q: mood, input: "7", want: domain.Slider(7)},
		{name: "slider text", q: mood, input: "seven", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInput(tt.q, tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
