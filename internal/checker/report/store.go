package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	apperrors "github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Plagiarism-Similarity-Checker/pkg/postgres"
)

const table = "similarity_reports"

var reportFields = []string{
	"id",
	"original_hash",
	"candidate_hash",
	"score",
	"rounded",
	"vocabulary_size",
	"tokenizer",
	"created_at",
}

const schema = `
CREATE TABLE IF NOT EXISTS similarity_reports (
    id              UUID PRIMARY KEY,
    original_hash   TEXT NOT NULL,
    candidate_hash  TEXT NOT NULL,
    score           DOUBLE PRECISION NOT NULL,
    rounded         DOUBLE PRECISION NOT NULL,
    vocabulary_size INTEGER NOT NULL,
    tokenizer       TEXT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL
)`

const pairIndex = `CREATE INDEX IF NOT EXISTS similarity_reports_pair_idx ON similarity_reports (original_hash, candidate_hash)`

// Store persists reports in the similarity_reports table created by
// EnsureSchema.
type Store struct {
	db     *postgres.Client
	sb     squirrel.StatementBuilderType
	logger *slog.Logger
}

// NewStore creates a report store on db.
func NewStore(db *postgres.Client) *Store {
	return &Store{
		db:     db,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(db.DB),
		logger: logger.WithComponent("report-store"),
	}
}

// EnsureSchema creates the reports table and its pair index if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.db.InTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{schema, pairIndex} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("creating report schema: %w", err)
			}
		}
		return nil
	})
}

// Save inserts r. Saving the same id twice is a no-op.
func (s *Store) Save(ctx context.Context, r Report) error {
	_, err := s.sb.
		Insert(table).
		Columns(reportFields...).
		Values(r.ID.String(), r.OriginalHash, r.CandidateHash, r.Score, r.Rounded, r.VocabularySize, r.Tokenizer, r.CreatedAt).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("saving report %s: %w", r.ID, err)
	}
	s.logger.Debug("report saved", "report_id", r.ID, "rounded", r.Rounded)
	return nil
}

// Get loads a report by id, returning ErrReportNotFound when absent.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	row := s.sb.
		Select(reportFields...).
		From(table).
		Where(squirrel.Eq{"id": id.String()}).
		QueryRowContext(ctx)
	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s: %w", id, apperrors.ErrReportNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying report %s: %w", id, err)
	}
	return r, nil
}

// ListByPair returns up to limit reports for a document pair, newest first.
// The pair is unordered because scores are symmetric.
func (s *Store) ListByPair(ctx context.Context, hashA, hashB string, limit int) ([]Report, error) {
	rows, err := s.sb.
		Select(reportFields...).
		From(table).
		Where(squirrel.Or{
			squirrel.And{squirrel.Eq{"original_hash": hashA}, squirrel.Eq{"candidate_hash": hashB}},
			squirrel.And{squirrel.Eq{"original_hash": hashB}, squirrel.Eq{"candidate_hash": hashA}},
		}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		reports = append(reports, *r)
	}
	return reports, rows.Err()
}

func scanReport(row squirrel.RowScanner) (*Report, error) {
	var r Report
	var id string
	if err := row.Scan(&id, &r.OriginalHash, &r.CandidateHash, &r.Score, &r.Rounded, &r.VocabularySize, &r.Tokenizer, &r.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing report id %q: %w", id, err)
	}
	r.ID = parsed
	return &r, nil
}
