package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/urolinq-questionnaire-engine/internal/domain"
	"github.com/urolinq-questionnaire-engine/internal/presenter"
	"github.com/urolinq-questionnaire-engine/internal/service"
)

func newCatalogCommand(opts *globalOptions) *cobra.Command {
	var answersFile string

	cmd := &cobra.Command{
		Use:   "catalog <questionnaire>",
		Short: "List the questions of a questionnaire",
		Long: `List the questions of a questionnaire in order.

With --answers, only the questions visible for that answer file are listed.

Examples:
  urolinq catalog ipss
  urolinq catalog mipro --answers answers.yaml`,
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

			svc := service.NewQuestionnaireService(rt.logger, service.NewScoringEngine(rt.logger), nil)
			c, err := svc.Catalog(q)
			if err != nil {
				return err
			}

			questions := c.Questions()
			if answersFile != "" {
				answers, err := loadAnswers(answersFile, c)
				if err != nil {
					return err
				}
				questions = service.NewVisibilityResolver(rt.logger).Resolve(c, answers)
			}

			rt.renderer(cmd).Catalog(q, questions)
			return nil
		},
	}

	cmd.Flags().StringVar(&answersFile, "answers", "", "Answer file used to resolve conditional questions")

	return cmd
}

func questionnaireNames() []string {
	all := domain.AllQuestionnaires()
	names := make([]string, len(all))
	for i, q := range all {
		names[i] = strings.ToLower(q.String())
	}
	return names
}

// renderer builds a presenter for the command's output stream.
func (rt *runtime) renderer(cmd *cobra.Command) *presenter.Renderer {
	out := cmd.OutOrStdout()
	f, _ := out.(*os.File)

	return presenter.NewRenderer(out, presenter.ColorEnabled(rt.cfg.Output.Color, f))
}
