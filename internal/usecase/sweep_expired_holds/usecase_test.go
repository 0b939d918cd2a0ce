package sweep_expired_holds

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVB-ReservationService/internal/infra/storage/venuestate"
)

type fakeStateRepo struct {
	venueIDs []int64
	listErr  error

	removedByVenue map[int64]int
	errByVenue     map[int64]error
	purged         []int64
}

func (r *fakeStateRepo) ListVenueIDs(ctx context.Context) ([]int64, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.venueIDs, nil
}

func (r *fakeStateRepo) PurgeExpiredHolds(ctx context.Context, venueID int64, now time.Time) (int, error) {
	r.purged = append(r.purged, venueID)
	if err := r.errByVenue[venueID]; err != nil {
		return 0, err
	}
	return r.removedByVenue[venueID], nil
}

type recordingMetrics struct {
	runs    []string
	removed int
}

func (m *recordingMetrics) SweepRun(trigger string) { m.runs = append(m.runs, trigger) }
func (m *recordingMetrics) SweepHoldsRemoved(count int) { m.removed += count }

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func TestSweep_RemovesAcrossVenues(t *testing.T) {
	repo := &fakeStateRepo{
		venueIDs:       []int64{1, 2, 3},
		removedByVenue: map[int64]int{1: 2, 2: 0, 3: 1},
	}
	metrics := &recordingMetrics{}
	uc := NewUseCase(repo, metrics, noopLogger{})

	result, err := uc.Execute(context.Background(), TriggerTicker)

	require.NoError(t, err)
	assert.Equal(t, 3, result.VenuesScanned)
	assert.Equal(t, 3, result.HoldsRemoved)
	assert.Equal(t, 0, result.Errors)
	assert.Equal(t, []int64{1, 2, 3}, repo.purged)
	assert.Equal(t, []string{TriggerTicker}, metrics.runs)
	assert.Equal(t, 3, metrics.removed)
}

func TestSweep_VersionConflictDoesNotAbortPass(t *testing.T) {
	// Площадка 2 занята движком - пропускается, остальные чистятся
	repo := &fakeStateRepo{
		venueIDs:       []int64{1, 2, 3},
		removedByVenue: map[int64]int{1: 1, 3: 2},
		errByVenue:     map[int64]error{2: venuestate.ErrVersionConflict},
	}
	uc := NewUseCase(repo, nil, noopLogger{})

	result, err := uc.Execute(context.Background(), TriggerHTTP)

	require.NoError(t, err)
	assert.Equal(t, 3, result.VenuesScanned)
	assert.Equal(t, 3, result.HoldsRemoved)
	assert.Equal(t, 1, result.Errors)
}

func TestSweep_RepoErrorCountedAndPassContinues(t *testing.T) {
	repo := &fakeStateRepo{
		venueIDs:   []int64{1, 2},
		errByVenue: map[int64]error{1: errors.New("connection reset")},
	}
	uc := NewUseCase(repo, nil, noopLogger{})

	result, err := uc.Execute(context.Background(), TriggerTicker)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, []int64{1, 2}, repo.purged)
}

func TestSweep_ListFailure(t *testing.T) {
	repo := &fakeStateRepo{listErr: errors.New("db down")}
	uc := NewUseCase(repo, nil, noopLogger{})

	_, err := uc.Execute(context.Background(), TriggerTicker)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestSweep_NoMetricsWhenNothingRemoved(t *testing.T) {
	repo := &fakeStateRepo{venueIDs: []int64{1}}
	metrics := &recordingMetrics{}
	uc := NewUseCase(repo, metrics, noopLogger{})

	_, err := uc.Execute(context.Background(), TriggerHTTP)

	require.NoError(t, err)
	assert.Equal(t, 0, metrics.removed)
}
