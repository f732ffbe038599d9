package source

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/arloliu/affinity/internal/logging"
	"github.com/arloliu/affinity/types"
)

// Default queries of the SQL source. Terms are read in position order because
// the first term heads the initial cluster.
const (
	DefaultTermsQuery        = "SELECT term FROM terms ORDER BY position"
	DefaultSimilaritiesQuery = "SELECT term_a, term_b, score FROM similarities"
)

// SQLSchema holds the statements creating the tables read by the default queries.
var SQLSchema = []string{
	`CREATE TABLE IF NOT EXISTS terms (
	position INTEGER NOT NULL PRIMARY KEY,
	term     TEXT    NOT NULL UNIQUE
)`,
	`CREATE TABLE IF NOT EXISTS similarities (
	term_a TEXT NOT NULL,
	term_b TEXT NOT NULL,
	score  REAL NOT NULL,
	PRIMARY KEY (term_a, term_b)
)`,
}

// SQL implements a similarity source reading from a database/sql database.
type SQL struct {
	db                *sql.DB
	termsQuery        string
	similaritiesQuery string
	logger            types.Logger
}

var _ types.SimilaritySource[string] = (*SQL)(nil)

// SQLOption configures a SQL source.
type SQLOption func(*SQL)

// WithTermsQuery overrides the query returning the active domain (one text column).
func WithTermsQuery(query string) SQLOption {
	return func(s *SQL) {
		s.termsQuery = query
	}
}

// WithSimilaritiesQuery overrides the query returning (term_a, term_b, score) rows.
func WithSimilaritiesQuery(query string) SQLOption {
	return func(s *SQL) {
		s.similaritiesQuery = query
	}
}

// WithSQLLogger sets the logger used to report loaded feed sizes.
func WithSQLLogger(logger types.Logger) SQLOption {
	return func(s *SQL) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSQL creates a new SQL similarity source.
//
// Parameters:
//   - db: Open database handle (any driver)
//   - opts: Optional configuration (WithTermsQuery, WithSimilaritiesQuery, WithSQLLogger)
//
// Returns:
//   - *SQL: Initialized SQL source
//
// Example:
//
//	db, _ := sql.Open("sqlite", "file:mesh.db")
//	src := source.NewSQL(db)
//	placement, err := affinity.New(ctx, &cfg, src)
func NewSQL(db *sql.DB, opts ...SQLOption) *SQL {
	s := &SQL{
		db:                db,
		termsQuery:        DefaultTermsQuery,
		similaritiesQuery: DefaultSimilaritiesQuery,
		logger:            logging.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Load runs both queries.
//
// Returns:
//   - types.Dataset[string]: Loaded dataset
//   - error: Query or scan error
func (s *SQL) Load(ctx context.Context) (types.Dataset[string], error) {
	terms, err := s.loadTerms(ctx)
	if err != nil {
		return types.Dataset[string]{}, err
	}
	entries, err := s.loadSimilarities(ctx)
	if err != nil {
		return types.Dataset[string]{}, err
	}

	s.logger.Info("similarity feed loaded", "terms", len(terms), "similarities", len(entries))

	return types.Dataset[string]{Terms: terms, Similarities: entries}, nil
}

func (s *SQL) loadTerms(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.termsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query terms: %w", err)
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("failed to scan term: %w", err)
		}
		terms = append(terms, term)
	}

	return terms, rows.Err()
}

func (s *SQL) loadSimilarities(ctx context.Context) ([]types.SimilarityEntry[string], error) {
	rows, err := s.db.QueryContext(ctx, s.similaritiesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query similarities: %w", err)
	}
	defer rows.Close()

	var entries []types.SimilarityEntry[string]
	for rows.Next() {
		var e types.SimilarityEntry[string]
		if err := rows.Scan(&e.A, &e.B, &e.Score); err != nil {
			return nil, fmt.Errorf("failed to scan similarity: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// InsertDataset writes a dataset into the default schema, creating it if needed.
//
// Existing rows are replaced in a single transaction.
func InsertDataset(ctx context.Context, db *sql.DB, ds types.Dataset[string]) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmts := append(slices.Clone(SQLSchema), "DELETE FROM terms", "DELETE FROM similarities")
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to prepare schema: %w", err)
		}
	}

	for i, term := range ds.Terms {
		if _, err := tx.ExecContext(ctx, "INSERT INTO terms (position, term) VALUES (?, ?)", i, term); err != nil {
			return fmt.Errorf("failed to insert term %q: %w", term, err)
		}
	}
	for _, e := range ds.Similarities {
		if _, err := tx.ExecContext(ctx, "INSERT INTO similarities (term_a, term_b, score) VALUES (?, ?, ?)", e.A, e.B, e.Score); err != nil {
			return fmt.Errorf("failed to insert similarity (%s, %s): %w", e.A, e.B, err)
		}
	}

	return tx.Commit()
}
