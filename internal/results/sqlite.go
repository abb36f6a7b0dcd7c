package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/urolinq-questionnaire-engine/internal/domain"
)

// sqliteTimeLayout keeps stored timestamps sortable as text.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite result store.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// createSchema creates the database tables and indexes.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS questionnaire_results (
		id TEXT PRIMARY KEY,
		questionnaire TEXT NOT NULL,
		score INTEGER NOT NULL,
		risk_tier TEXT NOT NULL,
		flags TEXT NOT NULL DEFAULT '[]',
		defaulted TEXT NOT NULL DEFAULT '[]',
		answers TEXT NOT NULL DEFAULT '{}',
		submitted_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_results_questionnaire ON questionnaire_results(questionnaire);
	CREATE INDEX IF NOT EXISTS idx_results_submitted_at ON questionnaire_results(submitted_at);
	`

	_, err := db.Exec(schema)
	return err
}

// Path returns the database file location.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

func scanSQLiteResult(row scanner) (*domain.Result, error) {
	var (
		id, questionnaire, tier, submittedAt string
		score                                int
		flags, defaulted, answers            []byte
	)
	if err := row.Scan(&id, &questionnaire, &score, &tier, &flags, &defaulted, &answers, &submittedAt); err != nil {
		return nil, err
	}

	ts, err := time.Parse(sqliteTimeLayout, submittedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse submitted_at of %s: %w", id, err)
	}
	return decodeResult(id, questionnaire, score, tier, flags, defaulted, answers, ts)
}

// Save stores a new result.
func (s *SQLiteStore) Save(ctx context.Context, result *domain.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}

	var existing string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM questionnaire_results WHERE id = ?", result.ID,
	).Scan(&existing)
	if err == nil {
		return fmt.Errorf("%w: result %s", domain.ErrAlreadyExists, result.ID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check existing: %w", err)
	}

	enc, err := encodeResult(result)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO questionnaire_results (
			id, questionnaire, score, risk_tier, flags, defaulted, answers, submitted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		result.ID,
		string(result.Questionnaire),
		result.Score,
		string(result.RiskTier),
		enc.Flags,
		enc.Defaulted,
		enc.Answers,
		result.SubmittedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert: %w", err)
	}
	return nil
}

// Get retrieves a result by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.Result, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+resultColumns+" FROM questionnaire_results WHERE id = ?", id)

	r, err := scanSQLiteResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: result %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return r, nil
}

// List returns results newest first with pagination.
func (s *SQLiteStore) List(ctx context.Context, questionnaire domain.Questionnaire, limit, offset int) ([]*domain.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+resultColumns+`
		FROM questionnaire_results
		WHERE (? = '' OR questionnaire = ?)
		ORDER BY submitted_at DESC, id
		LIMIT ? OFFSET ?
	`, string(questionnaire), string(questionnaire), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var out []*domain.Result
	for rows.Next() {
		r, err := scanSQLiteResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of stored results.
func (s *SQLiteStore) Count(ctx context.Context, questionnaire domain.Questionnaire) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM questionnaire_results WHERE (? = '' OR questionnaire = ?)",
		string(questionnaire), string(questionnaire),
	).Scan(&count)
	return count, err
}

// Delete removes a result by id.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM questionnaire_results WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete: %w", err)
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
func (s *SQLiteStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	return exportJSON(ctx, s, writer)
}

// ImportJSON imports results from a JSON reader.
func (s *SQLiteStore) ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error) {
	return importJSON(ctx, s, reader)
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
