package storage

import (
	"context"
	"testing"
	"time"

	"github.com/astrovalid/srd-metrics/services/registry/common"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStorage_SaveAndGet(t *testing.T) {
	s, err := NewSQLiteStorage(":memory:", 3600)
	require.NoError(t, err)
	require.False(t, s.IsInterfaceNil())
	defer func() {
		_ = s.Close()
	}()

	ctx := context.Background()
	now := time.Now().Unix()

	// Two PA1/r measurements, oldest first
	err = s.SaveMeasurement(ctx, common.MeasurementRecord{
		Metric: "PA1", Filter: "r", Source: "drp-worker-1",
		Value: 4.8, Unit: "mmag", Threshold: 5.0, Passed: true, RecordedAt: now - 10,
	})
	require.NoError(t, err)

	err = s.SaveMeasurement(ctx, common.MeasurementRecord{
		Metric: "PA1", Filter: "r", Source: "drp-worker-1",
		Value: 5.3, Unit: "mmag", Threshold: 5.0, Passed: false, RecordedAt: now,
	})
	require.NoError(t, err)

	// One AM1/i measurement
	err = s.SaveMeasurement(ctx, common.MeasurementRecord{
		Metric: "AM1", Filter: "i", Source: "drp-worker-2",
		Value: 9.0, Unit: "marcsec", Threshold: 10.0, Passed: true, RecordedAt: now,
	})
	require.NoError(t, err)

	// History is in ascending timestamp order
	hist, err := s.GetMeasurementHistory(ctx, "PA1")
	require.NoError(t, err)
	require.Len(t, hist, 2)
	require.Equal(t, 4.8, hist[0].Value)
	require.Equal(t, 5.3, hist[1].Value)
	require.True(t, hist[0].Passed)
	require.False(t, hist[1].Passed)

	// Latest returns one entry per metric+filter pair
	latest, err := s.GetLatestMeasurements(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 2)

	var pa1 *common.MeasurementRecord
	var am1 *common.MeasurementRecord
	for i := range latest {
		if latest[i].Metric == "PA1" {
			pa1 = &latest[i]
		}
		if latest[i].Metric == "AM1" {
			am1 = &latest[i]
		}
	}

	require.NotNil(t, pa1)
	require.Equal(t, 5.3, pa1.Value)
	require.Equal(t, "drp-worker-1", pa1.Source)

	require.NotNil(t, am1)
	require.Equal(t, 9.0, am1.Value)
	require.Equal(t, "i", am1.Filter)

	// Summary counts pass/fail per metric
	summary, err := s.GetSummary(ctx)
	require.NoError(t, err)
	require.Equal(t, common.PassFailCount{Passed: 1, Failed: 1}, summary["PA1"])
	require.Equal(t, common.PassFailCount{Passed: 1, Failed: 0}, summary["AM1"])

	// Deletion removes all measurements of a metric
	err = s.DeleteMeasurements(ctx, "PA1")
	require.NoError(t, err)

	latestAfterDelete, err := s.GetLatestMeasurements(ctx)
	require.NoError(t, err)
	require.Len(t, latestAfterDelete, 1)
	require.Equal(t, "AM1", latestAfterDelete[0].Metric)

	_, err = s.GetMeasurementHistory(ctx, "PA1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "metric not found")
}

func TestSQLiteStorage_RetentionCleaner(t *testing.T) {
	// Set retention very low (3 seconds) to make the stale record eligible
	s, err := NewSQLiteStorage(":memory:", 3)
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()

	ctx := context.Background()
	now := time.Now().Unix()

	err = s.SaveMeasurement(ctx, common.MeasurementRecord{
		Metric: "PA1", Filter: "r", Source: "drp-worker-1",
		Value: 4.8, Unit: "mmag", Threshold: 5.0, Passed: true, RecordedAt: now - 10,
	})
	require.NoError(t, err)

	// Call the synchronous cleaner instead of waiting for the ticker
	err = s.cleanRetainedMeasurements(ctx)
	require.NoError(t, err)

	_, err = s.GetMeasurementHistory(ctx, "PA1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "metric not found")
}

func TestSQLiteStorage_HistoryOfUnknownMetric(t *testing.T) {
	s, err := NewSQLiteStorage(":memory:", 3600)
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()

	_, err = s.GetMeasurementHistory(context.Background(), "missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "metric not found")
}
