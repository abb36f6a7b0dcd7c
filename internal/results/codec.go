package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// resultColumns is the column list shared by every SELECT.
const resultColumns = "id, questionnaire, score, risk_tier, flags, defaulted, answers, submitted_at"

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// encodedResult holds the JSON-encoded collection columns of a result.
type encodedResult struct {
	Flags     string
	Defaulted string
	Answers   string
}

func encodeResult(r *domain.Result) (*encodedResult, error) {
	flags := r.Flags
	if flags == nil {
		flags = domain.FlagSet{}
	}
	flagsJSON, err := json.Marshal(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to encode flags: %w", err)
	}

	defaulted := r.Defaulted
	if defaulted == nil {
		defaulted = []string{}
	}
	defaultedJSON, err := json.Marshal(defaulted)
	if err != nil {
		return nil, fmt.Errorf("failed to encode defaulted ids: %w", err)
	}

	answers := r.Answers
	if answers == nil {
		answers = domain.NewAnswerSet()
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	return &encodedResult{
		Flags:     string(flagsJSON),
		Defaulted: string(defaultedJSON),
		Answers:   string(answersJSON),
	}, nil
}

// decodeResult rebuilds a result from its stored columns.
func decodeResult(id, questionnaire string, score int, tier string, flags, defaulted, answers []byte, submittedAt time.Time) (*domain.Result, error) {
	r := &domain.Result{
		ID:            id,
		Questionnaire: domain.Questionnaire(questionnaire),
		Score:         score,
		RiskTier:      domain.RiskTier(tier),
		SubmittedAt:   submittedAt.UTC(),
	}

	if err := json.Unmarshal(flags, &r.Flags); err != nil {
		return nil, fmt.Errorf("failed to decode flags of %s: %w", id, err)
	}
	if err := json.Unmarshal(defaulted, &r.Defaulted); err != nil {
		return nil, fmt.Errorf("failed to decode defaulted ids of %s: %w", id, err)
	}
	if len(r.Defaulted) == 0 {
		r.Defaulted = nil
	}
	if err := json.Unmarshal(answers, &r.Answers); err != nil {
		return nil, fmt.Errorf("failed to decode answers of %s: %w", id, err)
	}
	return r, nil
}

// exportJSON writes every result in s as an Export envelope.
func exportJSON(ctx context.Context, s Store, writer io.Writer) error {
	all, err := s.List(ctx, "", maxExportLimit, 0)
	if err != nil {
		return fmt.Errorf("failed to list results: %w", err)
	}
	if all == nil {
		all = []*domain.Result{}
	}

	export := &Export{
		Version:    ExportVersion,
		ExportedAt: time.Now().UTC(),
		Count:      len(all),
		Results:    all,
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(export)
}

// importJSON saves every result of an Export envelope not yet present in s.
func importJSON(ctx context.Context, s Store, reader io.Reader) (imported int, skipped int, err error) {
	var export Export
	if err := json.NewDecoder(reader).Decode(&export); err != nil {
		return 0, 0, fmt.Errorf("failed to decode JSON: %w", err)
	}

	for _, r := range export.Results {
		if err := r.Validate(); err != nil {
			return imported, skipped, fmt.Errorf("invalid result in import: %w", err)
		}

		_, err := s.Get(ctx, r.ID)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return imported, skipped, fmt.Errorf("failed to check existing: %w", err)
		}

		if err := s.Save(ctx, r); err != nil {
			return imported, skipped, fmt.Errorf("failed to save: %w", err)
		}
		imported++
	}

	return imported, skipped, nil
}
