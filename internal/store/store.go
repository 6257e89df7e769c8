// Package store persists computed ratings in SQLite so reads never
// have to touch the GitHub API.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/promptkit/bundle-pulse/internal/feedback"
	"github.com/promptkit/bundle-pulse/internal/rating"
)

// ErrNotFound is returned when no rating exists for a resource
var ErrNotFound = errors.New("rating not found")

// Record is one persisted rating snapshot for a resource
type Record struct {
	Source     string               `json:"source"`
	ResourceID string               `json:"resource_id"`
	Metrics    rating.Metrics       `json:"metrics"`
	Stars      feedback.StarSummary `json:"stars"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// Store wraps the SQLite connection with prepared statements
type Store struct {
	db       *sql.DB
	prepared map[string]*sql.Stmt
	mutex    sync.RWMutex
}

// Open opens the ratings database under dataDir, creating it and
// running migrations as needed.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "ratings.db")
	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	s := &Store{
		db:       db,
		prepared: make(map[string]*sql.Stmt),
	}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := s.initPreparedStatements(); err != nil {
		return nil, fmt.Errorf("failed to initialize prepared statements: %w", err)
	}

	slog.Info("Ratings database initialized", "path", dbPath)

	return s, nil
}

func (s *Store) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS ratings (
			source TEXT NOT NULL,
			resource_id TEXT NOT NULL,
			wilson_score REAL NOT NULL,
			bayesian_score REAL NOT NULL,
			star_rating REAL NOT NULL,
			upvotes INTEGER NOT NULL,
			downvotes INTEGER NOT NULL,
			total_votes INTEGER NOT NULL,
			confidence TEXT NOT NULL,
			star_average REAL NOT NULL,
			star_count INTEGER NOT NULL,
			star_confidence TEXT NOT NULL,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (source, resource_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_ratings_wilson ON ratings(wilson_score DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_updated ON ratings(updated_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

func (s *Store) initPreparedStatements() error {
	statements := map[string]string{
		"upsert_rating": `INSERT INTO ratings (
			source, resource_id, wilson_score, bayesian_score, star_rating,
			upvotes, downvotes, total_votes, confidence,
			star_average, star_count, star_confidence, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source, resource_id) DO UPDATE SET
			wilson_score = excluded.wilson_score,
			bayesian_score = excluded.bayesian_score,
			star_rating = excluded.star_rating,
			upvotes = excluded.upvotes,
			downvotes = excluded.downvotes,
			total_votes = excluded.total_votes,
			confidence = excluded.confidence,
			star_average = excluded.star_average,
			star_count = excluded.star_count,
			star_confidence = excluded.star_confidence,
			updated_at = excluded.updated_at`,

		"get_rating": `SELECT source, resource_id, wilson_score, bayesian_score, star_rating,
			upvotes, downvotes, total_votes, confidence,
			star_average, star_count, star_confidence, updated_at
			FROM ratings WHERE source = ? AND resource_id = ?`,

		"top_rated": `SELECT source, resource_id, wilson_score, bayesian_score, star_rating,
			upvotes, downvotes, total_votes, confidence,
			star_average, star_count, star_confidence, updated_at
			FROM ratings ORDER BY wilson_score DESC, total_votes DESC LIMIT ?`,
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for name, query := range statements {
		stmt, err := s.db.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement %s: %w", name, err)
		}
		s.prepared[name] = stmt
	}

	return nil
}

func (s *Store) stmt(name string) (*sql.Stmt, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	stmt, exists := s.prepared[name]
	if !exists {
		return nil, fmt.Errorf("prepared statement %s not found", name)
	}
	return stmt, nil
}

// Upsert inserts or updates the rating snapshot for a resource
func (s *Store) Upsert(ctx context.Context, record Record) error {
	stmt, err := s.stmt("upsert_rating")
	if err != nil {
		return err
	}

	_, err = stmt.ExecContext(ctx,
		record.Source,
		record.ResourceID,
		record.Metrics.WilsonScore,
		record.Metrics.BayesianScore,
		record.Metrics.StarRating,
		record.Metrics.Upvotes,
		record.Metrics.Downvotes,
		record.Metrics.TotalVotes,
		string(record.Metrics.Confidence),
		record.Stars.Average,
		record.Stars.Count,
		string(record.Stars.Confidence),
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rating for %s/%s: %w", record.Source, record.ResourceID, err)
	}

	return nil
}

// Get fetches the rating snapshot for a resource
func (s *Store) Get(ctx context.Context, source, resourceID string) (*Record, error) {
	stmt, err := s.stmt("get_rating")
	if err != nil {
		return nil, err
	}

	record, err := scanRecord(stmt.QueryRowContext(ctx, source, resourceID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating for %s/%s: %w", source, resourceID, err)
	}

	return record, nil
}

// TopRated returns up to limit records ordered by Wilson score
func (s *Store) TopRated(ctx context.Context, limit int) ([]Record, error) {
	stmt, err := s.stmt("top_rated")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top rated: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var record Record
	var confidence, starConfidence string

	err := row.Scan(
		&record.Source,
		&record.ResourceID,
		&record.Metrics.WilsonScore,
		&record.Metrics.BayesianScore,
		&record.Metrics.StarRating,
		&record.Metrics.Upvotes,
		&record.Metrics.Downvotes,
		&record.Metrics.TotalVotes,
		&confidence,
		&record.Stars.Average,
		&record.Stars.Count,
		&starConfidence,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Metrics.Confidence = rating.Confidence(confidence)
	record.Stars.Confidence = rating.Confidence(starConfidence)

	return &record, nil
}

// PoolStats returns database connection pool statistics
func (s *Store) PoolStats() map[string]interface{} {
	stats := s.db.Stats()

	return map[string]interface{}{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
		"wait_duration_ms": stats.WaitDuration.Milliseconds(),
	}
}

// Close closes prepared statements and the database connection
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for name, stmt := range s.prepared {
		if err := stmt.Close(); err != nil {
			slog.Warn("Failed to close prepared statement", "name", name, "error", err)
		}
	}
	s.prepared = make(map[string]*sql.Stmt)

	return s.db.Close()
}
