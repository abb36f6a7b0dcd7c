package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// ColorEnabled resolves a color mode (auto, always, never) for f.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// colorScheme holds the colors used for output
type colorScheme struct {
	title   *color.Color
	section *color.Color
	muted   *color.Color
	success *color.Color
	info    *color.Color
	warn    *color.Color
	value   *color.Color
}

func newColorScheme(enabled bool) *colorScheme {
	s := &colorScheme{
		title:   color.New(color.Bold),
		section: color.New(color.FgCyan),
		muted:   color.New(color.FgHiBlack),
		success: color.New(color.FgGreen, color.Bold),
		info:    color.New(color.FgBlue, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		value:   color.New(color.FgHiWhite, color.Bold),
	}
	for _, c := range []*color.Color{s.title, s.section, s.muted, s.success, s.info, s.warn, s.value} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// Renderer writes questionnaire screens to a terminal.
type Renderer struct {
	out    io.Writer
	colors *colorScheme
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, colorEnabled bool) *Renderer {
	return &Renderer{out: out, colors: newColorScheme(colorEnabled)}
}

// Progress is the cursor position shown above a question.
type Progress struct {
	Position int
	Total    int
	Percent  float64
}

// Question renders one question with its numbered options. current is the
// recorded answer, if any.
func (r *Renderer) Question(q domain.Question, p Progress, current *domain.AnswerValue) {
	fmt.Fprintln(r.out)
	header := fmt.Sprintf("Question %d of %d (%.0f%%)", p.Position, p.Total, p.Percent)
	if q.Section != "" {
		header += "  " + r.colors.section.Sprint(q.Section)
	}
	fmt.Fprintln(r.out, r.colors.muted.Sprint(header))

	if q.Title != "" {
		fmt.Fprintln(r.out, r.colors.title.Sprint(q.Title))
	}
	fmt.Fprintln(r.out, q.Text)
	if q.HelpText != "" {
		fmt.Fprintln(r.out, r.colors.muted.Sprint(q.HelpText))
	}

	switch q.Kind {
	case domain.SINGLE_CHOICE, domain.MULTI_CHOICE:
		for i, o := range q.Options {
			marker := "  "
			if current != nil && isSelected(q.Kind, *current, o.Value) {
				marker = r.colors.success.Sprint("* ")
			}
			fmt.Fprintf(r.out, "%s%d) %s\n", marker, i+1, o.Label)
		}
		if q.Kind == domain.MULTI_CHOICE {
			hint := "Enter option numbers separated by commas"
			if q.Optional {
				hint += ", or - for none"
			}
			fmt.Fprintln(r.out, r.colors.muted.Sprint(hint))
		}
	case domain.NUMERIC_SLIDER:
		fmt.Fprintf(r.out, "  %d = %s ... %d = %s\n", q.Min, q.MinLabel, q.Max, q.MaxLabel)
		if current != nil {
			fmt.Fprintf(r.out, "  current: %s\n", r.colors.value.Sprint(current.Number))
		}
	}
}

func isSelected(kind domain.AnswerKind, v domain.AnswerValue, option string) bool {
	if kind == domain.MULTI_CHOICE {
		return v.Contains(option)
	}
	return v.Choice == option
}

// Prompt writes the input prompt.
func (r *Renderer) Prompt(isFirst, isLast bool) {
	var parts []string
	if !isFirst {
		parts = append(parts, "b = back")
	}
	if isLast {
		parts = append(parts, "enter = submit")
	} else {
		parts = append(parts, "enter = next")
	}
	parts = append(parts, "q = quit")
	fmt.Fprintf(r.out, "%s > ", r.colors.muted.Sprint(strings.Join(parts, ", ")))
}

// Warning writes a validation or navigation warning.
func (r *Renderer) Warning(msg string) {
	fmt.Fprintln(r.out, r.colors.warn.Sprint(msg))
}

// Result renders a scored result followed by its notice.
func (r *Renderer) Result(res *domain.Result) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.colors.title.Sprintf("%s result", res.Questionnaire.Title()))

	score := r.colors.value.Sprint(res.Score)
	if res.Questionnaire == domain.IPSS {
		score += fmt.Sprintf(" (%s symptoms)", IPSSSeverity(res.Score))
	}
	fmt.Fprintf(r.out, "  Score: %s\n", score)

	if res.RiskTier != domain.RISK_NONE {
		fmt.Fprintf(r.out, "  Risk:  %s\n", r.tierColor(res.RiskTier).Sprint(res.RiskTier))
	}
	for _, f := range res.Flags {
		fmt.Fprintf(r.out, "  - %s: %s\n", f, f.Guidance())
	}

	r.Notice(NoticeFor(res))
}

func (r *Renderer) tierColor(t domain.RiskTier) *color.Color {
	switch t {
	case domain.RISK_HIGH:
		return r.colors.warn
	case domain.RISK_MEDIUM:
		return r.colors.info
	default:
		return r.colors.success
	}
}

// Notice renders a post-submission notice.
func (r *Renderer) Notice(n Notice) {
	c := r.colors.success
	switch n.Level {
	case NOTICE_WARNING:
		c = r.colors.warn
	case NOTICE_INFO:
		c = r.colors.info
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, c.Sprint(n.Title))
	if n.Message != "" {
		fmt.Fprintln(r.out, n.Message)
	}
	if n.Action != nil {
		fmt.Fprintf(r.out, "%s: %s\n", n.Action.Label, n.Action.Target)
	}
}

// Catalog renders a static listing of questions.
func (r *Renderer) Catalog(q domain.Questionnaire, questions []domain.Question) {
	fmt.Fprintln(r.out, r.colors.title.Sprintf("%s (%s)", q.Title(), q))
	for i, question := range questions {
		suffix := ""
		if question.IsConditional() {
			suffix = r.colors.muted.Sprint(" [conditional]")
		}
		fmt.Fprintf(r.out, "%2d. %s %s%s\n", i+1, r.colors.section.Sprint(question.ID), question.Text, suffix)
		switch question.Kind {
		case domain.NUMERIC_SLIDER:
			fmt.Fprintf(r.out, "    %d-%d\n", question.Min, question.Max)
		default:
			values := make([]string, len(question.Options))
			for j, o := range question.Options {
				values[j] = o.Value
			}
			fmt.Fprintf(r.out, "    %s\n", r.colors.muted.Sprint(strings.Join(values, " | ")))
		}
	}
}
