package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/urolinq-questionnaire-engine/internal/answerfile"
	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
	"github.com/urolinq-questionnaire-engine/internal/presenter"
	"github.com/urolinq-questionnaire-engine/internal/service"
)

const unansweredWarning = "Please answer the question before proceeding"

var (
	errAbandoned   = errors.New("questionnaire abandoned")
	errInputClosed = errors.New("input closed before the questionnaire was submitted")
)

func newTakeCommand(opts *globalOptions) *cobra.Command {
	var saveAnswers string
	var noArchive bool

	cmd := &cobra.Command{
		Use:   "take <questionnaire>",
		Short: "Answer a questionnaire interactively",
		Long: `Answer a questionnaire one question at a time.

Choices are entered by number; multi-choice questions take a comma-separated
list, or - for no selection where that is allowed. Sliders take a number.

  enter  keep the current answer and continue
  b      go back one question
  q      quit without submitting

Examples:
  urolinq take ipss
  urolinq take mipro --save-answers mipro.yaml`,
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

			archive, err := rt.optionalArchive(noArchive)
			if err != nil {
				return err
			}
			if archive != nil {
				defer archive.Close()
			}

			svc := service.NewQuestionnaireService(rt.logger, service.NewScoringEngine(rt.logger), archive)
			session, err := svc.Start(q)
			if err != nil {
				return err
			}

			w := &wizard{
				reader:   bufio.NewReader(cmd.InOrStdin()),
				out:      cmd.OutOrStdout(),
				renderer: rt.renderer(cmd),
				session:  session,
				submit: func() (*domain.Result, error) {
					return svc.Submit(cmd.Context(), session)
				},
			}

			result, err := w.run()
			if errors.Is(err, errAbandoned) {
				fmt.Fprintln(cmd.OutOrStdout(), "Questionnaire abandoned.")
				return nil
			}
			if result == nil {
				return err
			}

			w.renderer.Result(result)
			if err != nil {
				w.renderer.Warning(fmt.Sprintf("The result could not be archived: %v", err))
			}

			if saveAnswers != "" {
				if err := writeAnswerFile(saveAnswers, session); err != nil {
					return err
				}
				rt.logger.WithField("path", saveAnswers).Info("Answers saved")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&saveAnswers, "save-answers", "", "Write the submitted answers to a YAML answer file")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false, "Do not store the result")

	return cmd
}

// wizard drives a session from line-based input.
type wizard struct {
	reader   *bufio.Reader
	out      io.Writer
	renderer *presenter.Renderer
	session  *service.Session
	submit   func() (*domain.Result, error)
}

// run loops until the session is submitted or abandoned. An archive failure
// is returned together with the result.
func (w *wizard) run() (*domain.Result, error) {
	for {
		q := w.session.Current()
		var current *domain.AnswerValue
		if v, ok := w.session.Answers().Get(q.ID); ok {
			current = &v
		}

		p := w.session.Progress()
		w.renderer.Question(q, presenter.Progress{Position: p.Position, Total: p.Total, Percent: p.Percent}, current)
		w.renderer.Prompt(w.session.IsFirst(), w.session.IsLast())

		line, err := w.reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			fmt.Fprintln(w.out)
			return nil, errInputClosed
		}
		input := strings.TrimSpace(line)

		switch strings.ToLower(input) {
		case "q", "quit":
			return nil, errAbandoned
		case "b", "back":
			w.session.Previous()
			continue
		case "":
			if !w.session.IsAnswered() {
				w.renderer.Warning(unansweredWarning)
				continue
			}
		default:
			v, err := parseInput(q, input)
			if err == nil {
				err = w.session.AnswerCurrent(v)
			}
			if err != nil {
				w.renderer.Warning(err.Error())
				continue
			}
		}

		if !w.session.IsLast() {
			if _, err := w.session.Next(); err != nil {
				w.renderer.Warning(unansweredWarning)
			}
			continue
		}

		result, err := w.submit()
		if result != nil {
			return result, err
		}
		var incomplete *domain.IncompleteAnswersError
		if errors.As(err, &incomplete) {
			w.renderer.Warning(err.Error())
			continue
		}
		return nil, err
	}
}

// parseInput converts a typed line into an answer for q. Options are
// numbered from 1.
func parseInput(q domain.Question, input string) (domain.AnswerValue, error) {
	switch q.Kind {
	case domain.SINGLE_CHOICE:
		value, err := optionAt(q, input)
		if err != nil {
			return domain.AnswerValue{}, err
		}
		return domain.Choice(value), nil

	case domain.MULTI_CHOICE:
		if input == "-" {
			return domain.Selections(), nil
		}
		var values []string
		for _, part := range strings.Split(input, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			value, err := optionAt(q, part)
			if err != nil {
				return domain.AnswerValue{}, err
			}
			values = append(values, value)
		}
		return domain.Selections(values...), nil

	case domain.NUMERIC_SLIDER:
		n, err := strconv.Atoi(input)
		if err != nil {
			return domain.AnswerValue{}, fmt.Errorf("enter a number from %d to %d", q.Min, q.Max)
		}
		return domain.Slider(n), nil

	default:
		return domain.AnswerValue{}, fmt.Errorf("unsupported answer kind %s", q.Kind)
	}
}

func optionAt(q domain.Question, input string) (string, error) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(q.Options) {
		return "", fmt.Errorf("enter an option number from 1 to %d", len(q.Options))
	}
	return q.Options[n-1].Value, nil
}

func writeAnswerFile(path string, session *service.Session) error {
	c, err := catalog.For(session.Questionnaire())
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create answer file: %w", err)
	}
	defer f.Close()

	if err := answerfile.Encode(f, c, session.Answers()); err != nil {
		return fmt.Errorf("failed to write answer file: %w", err)
	}
	return nil
}
