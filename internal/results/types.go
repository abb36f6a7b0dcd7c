// Package results archives scored questionnaire results. Results are stored as
// produced and never modified; the archive only adds, lists and removes them.
package results

import (
	"context"
	"io"
	"time"

	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// Store defines the interface for result archive operations.
type Store interface {
	// Save stores a new result. Saving an id that already exists fails with
	// domain.ErrAlreadyExists.
	Save(ctx context.Context, result *domain.Result) error

	// Get retrieves a result by id, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Result, error)

	// List returns results newest first. An empty questionnaire lists all.
	List(ctx context.Context, questionnaire domain.Questionnaire, limit, offset int) ([]*domain.Result, error)

	// Count returns the number of stored results. An empty questionnaire counts all.
	Count(ctx context.Context, questionnaire domain.Questionnaire) (int64, error)

	// Delete removes a result by id, or fails with domain.ErrNotFound.
	Delete(ctx context.Context, id string) error

	// ExportJSON writes every stored result as an Export envelope.
	ExportJSON(ctx context.Context, writer io.Writer) error

	// ImportJSON reads an Export envelope. Results whose id is already stored
	// are skipped.
	ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error)

	// Close closes the store and releases resources.
	Close() error
}

// ExportVersion is written into every export envelope.
const ExportVersion = "1.0"

// Export represents the JSON export format.
type Export struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Count      int              `json:"count"`
	Results    []*domain.Result `json:"results"`
}

// maxExportLimit is the maximum number of entries to export at once.
const maxExportLimit = 1000000
