package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	_ "github.com/lib/pq"

	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// PostgresStore implements the Store interface using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL result store.
// It expects the schema to already exist (created via migrations).
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromURL creates a new PostgreSQL result store from a connection URL.
func NewPostgresStoreFromURL(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	store, err := NewPostgresStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func scanPostgresResult(row scanner) (*domain.Result, error) {
	var (
		id, questionnaire, tier   string
		score                     int
		flags, defaulted, answers []byte
		submittedAt               time.Time
	)
	if err := row.Scan(&id, &questionnaire, &score, &tier, &flags, &defaulted, &answers, &submittedAt); err != nil {
		return nil, err
	}
	return decodeResult(id, questionnaire, score, tier, flags, defaulted, answers, submittedAt)
}

// Save stores a new result.
func (s *PostgresStore) Save(ctx context.Context, result *domain.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}

	enc, err := encodeResult(result)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO questionnaire_results (
			id, questionnaire, score, risk_tier, flags, defaulted, answers, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	res, err := s.db.ExecContext(ctx, query,
		result.ID,
		string(result.Questionnaire),
		result.Score,
		string(result.RiskTier),
		enc.Flags,
		enc.Defaulted,
		enc.Answers,
		result.SubmittedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: result %s", domain.ErrAlreadyExists, result.ID)
	}
	return nil
}

// Get retrieves a result by id.
func (s *PostgresStore) Get(ctx context.Context, id string) (*domain.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM questionnaire_results WHERE id = $1`

	r, err := scanPostgresResult(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: result %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return r, nil
}

// List returns results newest first with pagination.
func (s *PostgresStore) List(ctx context.Context, questionnaire domain.Questionnaire, limit, offset int) ([]*domain.Result, error) {
	query := `
		SELECT ` + resultColumns + `
		FROM questionnaire_results
		WHERE ($1 = '' OR questionnaire = $1)
		ORDER BY submitted_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, string(questionnaire), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var out []*domain.Result
	for rows.Next() {
		r, err := scanPostgresResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// Count returns the number of stored results.
func (s *PostgresStore) Count(ctx context.Context, questionnaire domain.Questionnaire) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM questionnaire_results WHERE ($1 = '' OR questionnaire = $1)",
		string(questionnaire),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return count, nil
}

// Delete removes a result by id.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM questionnaire_results WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: result %s", domain.ErrNotFound, id)
	}
	return nil
}

// ExportJSON exports all results to a JSON writer.
func (s *PostgresStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	return exportJSON(ctx, s, writer)
}

// ImportJSON imports results from a JSON reader.
func (s *PostgresStore) ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error) {
	return importJSON(ctx, s, reader)
}

// Close closes the store and releases resources.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
