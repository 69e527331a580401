// Package timeseries provides the SQLite-backed status interval store.
package timeseries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/ukparliament/outage-importer/pkg/models"
)

const (
	dbOperationTimeout = 5 * time.Second

	createTablesSQL = `
	-- Status intervals, one row per contiguous span per endpoint.
	-- A row's effective end may be bounded by the next row's start when
	-- a status change superseded it without an explicit rewrite.
	CREATE TABLE IF NOT EXISTS intervals (
		measurement TEXT NOT NULL,
		endpoint_id INTEGER NOT NULL,
		endpoint TEXT NOT NULL,
		hostname TEXT NOT NULL,
		start_time INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		status TEXT NOT NULL,
		PRIMARY KEY (measurement, endpoint_id, start_time)
	);

	CREATE INDEX IF NOT EXISTS idx_intervals_endpoint_time
		ON intervals(measurement, endpoint_id, start_time DESC);

	PRAGMA foreign_keys=ON;
	`
)

// Store wraps the SQLite connection and implements Service.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and initializes the schema.
func New(dbPath string) (Service, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedOpenDB, err)
	}

	// WAL mode for concurrent readers while the importer writes.
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToEnableWAL, err)
	}

	if _, err := sqlDB.Exec(createTablesSQL); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToInit, err)
	}

	return &Store{db: sqlDB}, nil
}

// LastInterval returns the most recently started interval for an endpoint,
// or nil when none has been recorded yet.
func (s *Store) LastInterval(ctx context.Context, measurement string, endpointID int) (*models.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	const query = `
        SELECT start_time, duration_seconds, status
        FROM intervals
        WHERE measurement = ? AND endpoint_id = ?
        ORDER BY start_time DESC
        LIMIT 1
    `

	var (
		startUnix int64
		durSecs   int64
		status    string
	)

	err := s.db.QueryRowContext(ctx, query, measurement, endpointID).Scan(&startUnix, &durSecs, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w last interval: %w", errFailedToQuery, err)
	}

	interval := models.Interval{
		Start:    time.Unix(startUnix, 0),
		Duration: time.Duration(durSecs) * time.Second,
		Status:   models.Status(status),
	}

	return &interval, nil
}

// WriteIntervals upserts the intervals for one endpoint, tagged with its
// identity. Rewriting a merged tail (same start, longer duration) lands on
// the existing row, so replays are idempotent.
func (s *Store) WriteIntervals(ctx context.Context, measurement string, endpoint models.Endpoint, intervals []models.Interval) error {
	if len(intervals) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", errFailedToBeginTx, err)
	}

	var committed bool
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("Error rolling back transaction: %v", rbErr)
			}
		}
	}()

	const upsertSQL = `
        INSERT INTO intervals
            (measurement, endpoint_id, endpoint, hostname, start_time, duration_seconds, status)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(measurement, endpoint_id, start_time) DO UPDATE SET
            duration_seconds = excluded.duration_seconds,
            status = excluded.status
    `

	for _, interval := range intervals {
		_, err := tx.ExecContext(ctx, upsertSQL,
			measurement, endpoint.ID, endpoint.Name, endpoint.Hostname,
			interval.Start.Unix(), int64(interval.Duration/time.Second), string(interval.Status))
		if err != nil {
			return fmt.Errorf("%w interval: %w", errFailedToInsert, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit intervals: %w", err)
	}

	committed = true

	return nil
}

// TruncateTail shortens a stored interval in place. Used only when
// explicit close-out writes are configured.
func (s *Store) TruncateTail(ctx context.Context, measurement string, endpointID int, start time.Time, duration time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	const updateSQL = `
        UPDATE intervals
        SET duration_seconds = ?
        WHERE measurement = ? AND endpoint_id = ? AND start_time = ?
    `

	result, err := s.db.ExecContext(ctx, updateSQL,
		int64(duration/time.Second), measurement, endpointID, start.Unix())
	if err != nil {
		return fmt.Errorf("failed to truncate interval: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: endpoint %d start %d", ErrIntervalNotFound, endpointID, start.Unix())
	}

	return nil
}

// Endpoints returns each endpoint's identity together with its latest
// recorded interval.
func (s *Store) Endpoints(ctx context.Context, measurement string) ([]EndpointStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	const query = `
        SELECT i.endpoint_id, i.endpoint, i.hostname, i.start_time, i.duration_seconds, i.status
        FROM intervals i
        WHERE i.measurement = ?
          AND i.start_time = (
            SELECT MAX(start_time) FROM intervals
            WHERE measurement = i.measurement AND endpoint_id = i.endpoint_id
          )
        ORDER BY i.endpoint_id
    `

	rows, err := s.db.QueryContext(ctx, query, measurement) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w endpoints: %w", errFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var statuses []EndpointStatus

	for rows.Next() {
		var (
			es        EndpointStatus
			startUnix int64
			durSecs   int64
			status    string
		)

		if err := rows.Scan(&es.Endpoint.ID, &es.Endpoint.Name, &es.Endpoint.Hostname,
			&startUnix, &durSecs, &status); err != nil {
			return nil, fmt.Errorf("%w endpoint row: %w", errFailedToScan, err)
		}

		es.Last = models.Interval{
			Start:    time.Unix(startUnix, 0),
			Duration: time.Duration(durSecs) * time.Second,
			Status:   models.Status(status),
		}

		statuses = append(statuses, es)
	}

	return statuses, nil
}

// EndpointOutages returns up to limit intervals for one endpoint, most
// recent first.
func (s *Store) EndpointOutages(ctx context.Context, measurement string, endpointID, limit int) ([]models.Interval, error) {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	const query = `
        SELECT start_time, duration_seconds, status
        FROM intervals
        WHERE measurement = ? AND endpoint_id = ?
        ORDER BY start_time DESC
        LIMIT ?
    `

	rows, err := s.db.QueryContext(ctx, query, measurement, endpointID, limit) //nolint:rowserrcheck // rows.Close() is deferred
	if err != nil {
		return nil, fmt.Errorf("%w endpoint outages: %w", errFailedToQuery, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}(rows)

	var intervals []models.Interval

	for rows.Next() {
		var (
			startUnix int64
			durSecs   int64
			status    string
		)

		if err := rows.Scan(&startUnix, &durSecs, &status); err != nil {
			return nil, fmt.Errorf("%w outage row: %w", errFailedToScan, err)
		}

		intervals = append(intervals, models.Interval{
			Start:    time.Unix(startUnix, 0),
			Duration: time.Duration(durSecs) * time.Second,
			Status:   models.Status(status),
		})
	}

	return intervals, nil
}

// CleanOldData removes intervals that started before the retention cutoff.
func (s *Store) CleanOldData(ctx context.Context, measurement string, retention time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, dbOperationTimeout)
	defer cancel()

	cutoff := time.Now().Add(-retention).Unix()

	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM intervals WHERE measurement = ? AND start_time < ?",
		measurement, cutoff,
	); err != nil {
		return fmt.Errorf("%w old intervals: %w", errFailedToClean, err)
	}

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
