package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/urolinq-questionnaire-engine/internal/answerfile"
	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
	"github.com/urolinq-questionnaire-engine/internal/presenter"
	"github.com/urolinq-questionnaire-engine/internal/service"
)

// scoreOutput is the JSON document printed by the score command.
type scoreOutput struct {
	Result *domain.Result   `json:"result"`
	Notice presenter.Notice `json:"notice"`
}

func newScoreCommand(opts *globalOptions) *cobra.Command {
	var answersFile string
	var noArchive bool

	cmd := &cobra.Command{
		Use:   "score <questionnaire>",
		Short: "Score a recorded answer file",
		Long: `Score an answer file without prompting and print the result as JSON.

Answer files are YAML or JSON maps from question id to value: a string for a
single choice, a list for a multi-choice and an integer for a slider.

Examples:
  urolinq score ipss --answers ipss.yaml
  urolinq score enuresis --answers survey.json --no-archive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := domain.ParseQuestionnaire(args[0])
			if err != nil {
				return err
			}
			rt, err := opts.load(cmd)
			if err != nil {
				return err
			}

			c, err := catalog.For(q)
			if err != nil {
				return err
			}
			answers, err := loadAnswers(answersFile, c)
			if err != nil {
				return err
			}

			archive, err := rt.optionalArchive(noArchive)
			if err != nil {
				return err
			}
			if archive != nil {
				defer archive.Close()
			}

			svc := service.NewQuestionnaireService(rt.logger, service.NewScoringEngine(rt.logger), archive)
			result, scoreErr := svc.ScoreAnswers(cmd.Context(), q, answers)
			if result == nil {
				return scoreErr
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(scoreOutput{Result: result, Notice: presenter.NoticeFor(result)}); err != nil {
				return fmt.Errorf("failed to write result: %w", err)
			}
			return scoreErr
		},
	}

	cmd.Flags().StringVarP(&answersFile, "answers", "a", "", "Answer file (YAML or JSON)")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false, "Do not store the result")
	_ = cmd.MarkFlagRequired("answers")

	return cmd
}

func loadAnswers(path string, c *catalog.Catalog) (domain.AnswerSet, error) {
	answers, err := answerfile.ParseFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	return answers, nil
}
