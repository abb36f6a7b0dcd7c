// Package answerfile reads and writes recorded answer sets. A file is a flat
// YAML (or JSON) mapping from question id to value: a string or integer for a
// single choice, a list for a multi-choice and an integer for a slider.
package answerfile

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/urolinq-questionnaire-engine/internal/catalog"
	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// Parse reads an answer set for the questionnaire of c. Ids the catalog does
// not know are kept as single choices so the engine can report and skip them.
func Parse(r io.Reader, c *catalog.Catalog) (domain.AnswerSet, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return domain.NewAnswerSet(), nil
		}
		return nil, fmt.Errorf("failed to decode answer file: %w", err)
	}

	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil, domain.NewValidationError("answers", fmt.Sprintf("line %d: expected a mapping of question id to answer", doc.Line), "")
	}

	answers := domain.NewAnswerSet()
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		id := key.Value
		if answers.Has(id) {
			return nil, domain.NewValidationError(id, fmt.Sprintf("line %d: duplicate answer", key.Line), id)
		}

		q, known := c.Question(id)
		if !known {
			answers[id] = domain.Choice(value.Value)
			continue
		}

		v, err := decodeValue(q, value)
		if err != nil {
			return nil, err
		}
		answers[id] = v
	}
	return answers, nil
}

// ParseFile reads an answer file from disk.
func ParseFile(path string, c *catalog.Catalog) (domain.AnswerSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open answer file: %w", err)
	}
	defer f.Close()
	return Parse(f, c)
}

func decodeValue(q domain.Question, node *yaml.Node) (domain.AnswerValue, error) {
	invalid := func(msg string) error {
		return domain.NewValidationError(q.ID, fmt.Sprintf("line %d: %s", node.Line, msg), node.Value)
	}

	switch q.Kind {
	case domain.SINGLE_CHOICE:
		if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
			return domain.AnswerValue{}, invalid("expected a single value")
		}
		return domain.Choice(node.Value), nil

	case domain.MULTI_CHOICE:
		switch node.Kind {
		case yaml.SequenceNode:
			labels := make([]string, 0, len(node.Content))
			for _, item := range node.Content {
				if item.Kind != yaml.ScalarNode {
					return domain.AnswerValue{}, invalid("expected a list of option labels")
				}
				labels = append(labels, item.Value)
			}
			return domain.Selections(labels...), nil
		case yaml.ScalarNode:
			if node.Tag == "!!null" {
				return domain.Selections(), nil
			}
			return domain.Selections(node.Value), nil
		default:
			return domain.AnswerValue{}, invalid("expected a list of option labels")
		}

	case domain.NUMERIC_SLIDER:
		if node.Kind != yaml.ScalarNode {
			return domain.AnswerValue{}, invalid("expected an integer")
		}
		var n int
		if err := node.Decode(&n); err != nil {
			return domain.AnswerValue{}, invalid("expected an integer")
		}
		return domain.Slider(n), nil
	}

	return domain.AnswerValue{}, invalid("unsupported answer kind")
}

// Encode writes answers as a flat YAML mapping in catalog order. Answers to
// ids outside the catalog are not written.
func Encode(w io.Writer, c *catalog.Catalog, answers domain.AnswerSet) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	for _, q := range c.Questions() {
		v, ok := answers.Get(q.ID)
		if !ok {
			continue
		}

		value := &yaml.Node{}
		switch v.Kind {
		case domain.SINGLE_CHOICE:
			value.Kind = yaml.ScalarNode
			value.Value = v.Choice
			if _, err := strconv.Atoi(v.Choice); err == nil {
				value.Tag = "!!int"
			} else {
				value.Tag = "!!str"
			}
		case domain.MULTI_CHOICE:
			value.Kind = yaml.SequenceNode
			value.Style = yaml.FlowStyle
			for _, s := range v.Selections {
				value.Content = append(value.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s})
			}
		case domain.NUMERIC_SLIDER:
			value.Kind = yaml.ScalarNode
			value.Tag = "!!int"
			value.Value = strconv.Itoa(v.Number)
		default:
			continue
		}

		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: q.ID},
			value,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	return enc.Close()
}
