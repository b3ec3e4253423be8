package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/astrovalid/srd-metrics/services/registry/common"
	_ "github.com/mattn/go-sqlite3"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("storage")

// sqliteStorage is the sqlite implementation for the measurements store
type sqliteStorage struct {
	db               *sql.DB
	retentionSeconds int
	cancelFunc       context.CancelFunc
	wg               sync.WaitGroup
}

// NewSQLiteStorage creates the database, schema, and starts the retention cleaner
func NewSQLiteStorage(dbPath string, retentionSeconds int) (*sqliteStorage, error) {
	err := prepareDirectories(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial empty DB file: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = createSchema(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &sqliteStorage{
		db:               db,
		retentionSeconds: retentionSeconds,
		cancelFunc:       cancel,
	}

	s.startRetentionCleaner(ctx)

	return s, nil
}

func prepareDirectories(dbPath string) error {
	return os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS measurements (
		metric      TEXT    NOT NULL,
		filter      TEXT    NOT NULL,
		source      TEXT    NOT NULL,
		value       REAL    NOT NULL,
		unit        TEXT    NOT NULL,
		threshold   REAL    NOT NULL,
		passed      INTEGER NOT NULL,
		recorded_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_measurements_metric ON measurements(metric);
	CREATE INDEX IF NOT EXISTS idx_measurements_recorded_at ON measurements(recorded_at);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveMeasurement appends one verified measurement
func (s *sqliteStorage) SaveMeasurement(ctx context.Context, rec common.MeasurementRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO measurements (metric, filter, source, value, unit, threshold, passed, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Metric, rec.Filter, rec.Source, rec.Value, rec.Unit, rec.Threshold, boolToInt(rec.Passed), rec.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to insert measurement: %w", err)
	}

	return nil
}

// GetLatestMeasurements fetches the most recent measurement for each metric+filter pair
func (s *sqliteStorage) GetLatestMeasurements(ctx context.Context) ([]common.MeasurementRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT metric, filter, source, value, unit, threshold, passed, recorded_at
		FROM (
			SELECT *,
				ROW_NUMBER() OVER(PARTITION BY metric, filter ORDER BY recorded_at DESC) as rn
			FROM measurements
		)
		WHERE rn = 1
		ORDER BY metric, filter
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanMeasurements(rows)
}

// GetMeasurementHistory returns all retained measurements for a metric in ascending timestamp order
func (s *sqliteStorage) GetMeasurementHistory(ctx context.Context, metric string) ([]common.MeasurementRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT metric, filter, source, value, unit, threshold, passed, recorded_at
		FROM measurements
		WHERE metric = ?
		ORDER BY recorded_at
	`, metric)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	records, err := scanMeasurements(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("metric not found")
	}

	return records, nil
}

// GetSummary returns the pass/fail counts of retained measurements per metric
func (s *sqliteStorage) GetSummary(ctx context.Context) (map[string]common.PassFailCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT metric,
			SUM(CASE WHEN passed = 1 THEN 1 ELSE 0 END),
			SUM(CASE WHEN passed = 0 THEN 1 ELSE 0 END)
		FROM measurements
		GROUP BY metric
	`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make(map[string]common.PassFailCount)
	for rows.Next() {
		var metric string
		var counts common.PassFailCount
		if err := rows.Scan(&metric, &counts.Passed, &counts.Failed); err != nil {
			return nil, err
		}
		res[metric] = counts
	}

	return res, rows.Err()
}

// DeleteMeasurements removes all retained measurements for a metric
func (s *sqliteStorage) DeleteMeasurements(ctx context.Context, metric string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM measurements WHERE metric = ?", metric)
	return err
}

func scanMeasurements(rows *sql.Rows) ([]common.MeasurementRecord, error) {
	var records []common.MeasurementRecord
	for rows.Next() {
		var rec common.MeasurementRecord
		var passed int

		err := rows.Scan(&rec.Metric, &rec.Filter, &rec.Source, &rec.Value, &rec.Unit, &rec.Threshold, &passed, &rec.RecordedAt)
		if err != nil {
			return nil, err
		}

		rec.Passed = passed != 0
		records = append(records, rec)
	}

	return records, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}

// cleanRetainedMeasurements executes the retention cleanup query synchronously
func (s *sqliteStorage) cleanRetainedMeasurements(ctx context.Context) error {
	nowSec := time.Now().Unix()
	cutoff := nowSec - int64(s.retentionSeconds)
	_, err := s.db.ExecContext(ctx, "DELETE FROM measurements WHERE recorded_at < ?", cutoff)
	return err
}

func (s *sqliteStorage) startRetentionCleaner(ctx context.Context) {
	s.wg.Add(1)

	// max(RetentionSeconds/10, 60)
	intervalSec := s.retentionSeconds / 10
	if intervalSec < 60 {
		intervalSec = 60
	}

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)

	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Debug("running retention cleanup")

				err := s.cleanRetainedMeasurements(ctx)
				if err != nil {
					log.Warn("failed to cleanup retained measurements", "error", err)
				}
			}
		}
	}()
}

// Close closes the database and stops background routines
func (s *sqliteStorage) Close() error {
	s.cancelFunc()
	s.wg.Wait()
	return s.db.Close()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *sqliteStorage) IsInterfaceNil() bool {
	return s == nil
}
