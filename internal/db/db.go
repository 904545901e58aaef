// Package db provides optional PostgreSQL persistence for scrape runs.
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/course-catalog-agent/internal/types"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the tables used by the agent if they do not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scrape_runs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			base_url TEXT NOT NULL,
			status TEXT NOT NULL,
			row_count INTEGER,
			started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		);
		CREATE TABLE IF NOT EXISTS course_rows (
			id BIGSERIAL PRIMARY KEY,
			run_id UUID NOT NULL REFERENCES scrape_runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			day TEXT NOT NULL,
			time TEXT NOT NULL,
			day_time TEXT NOT NULL,
			start_date TEXT NOT NULL,
			duration TEXT NOT NULL,
			period TEXT NOT NULL,
			price TEXT NOT NULL,
			course_number TEXT NOT NULL,
			teacher TEXT NOT NULL,
			language TEXT NOT NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			url TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// CreateRun records the start of a scrape run and returns its ID.
func (db *DB) CreateRun(ctx context.Context, baseURL string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO scrape_runs (base_url, status)
		 VALUES ($1, 'running')
		 RETURNING id`,
		baseURL,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a scrape run as finished with the given status and the
// number of rows it produced.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, rowCount int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE scrape_runs SET status = $1, row_count = $2, completed_at = NOW() WHERE id = $3`,
		status, rowCount, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveRows stores the joined offering rows for a run in one batch.
func (db *DB) SaveRows(ctx context.Context, runID uuid.UUID, rows []types.Row) error {
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(
			`INSERT INTO course_rows (
				run_id, name, day, time, day_time, start_date, duration,
				period, price, course_number, teacher, language, type,
				status, url, category, description
			 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			runID, row.CourseName, row.Day, row.Time, row.DayTime,
			row.StartDate, row.Duration, row.Period, row.Price,
			row.CourseNumber, row.Teacher, row.Language, row.Type,
			string(row.Status), row.URL, row.Category, row.Description,
		)
	}

	results := db.pool.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()
	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save rows for run %s: %w", runID, err)
		}
	}
	return nil
}
