package get_slot_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/infra/storage/venuestate"
)

type fakeStateRepo struct {
	state *domain.VenueSlotState
}

func (r *fakeStateRepo) Get(ctx context.Context, venueID int64) (*domain.VenueSlotState, error) {
	if r.state == nil || r.state.VenueID != venueID {
		return nil, venuestate.ErrVenueStateNotFound
	}
	copied := *r.state
	return &copied, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

func TestGetSlotAvailability_Execute(t *testing.T) {
	uc := NewUseCase(&fakeStateRepo{state: testState()}, noopLogger{})
	uc.timeProvider = fixedTime{now: longAgo}

	resp, err := uc.Execute(context.Background(), &Request{
		VenueID:  1,
		FromDate: tuesday,
		ToDate:   tuesday,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.VenueID)
	assert.Equal(t, tuesday, resp.FromDate)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, domain.SlotAvailable, resp.Slots[0].Status)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
}

func TestGetSlotAvailability_VenueNotFound(t *testing.T) {
	uc := NewUseCase(&fakeStateRepo{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		VenueID:  404,
		FromDate: tuesday,
		ToDate:   tuesday,
	})

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{
			name:    "zero venue id",
			req:     Request{VenueID: 0, FromDate: "2026-09-15", ToDate: "2026-09-15"},
			wantErr: ErrInvalidVenueID,
		},
		{
			name:    "bad from date",
			req:     Request{VenueID: 1, FromDate: "15.09.2026", ToDate: "2026-09-15"},
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "to before from",
			req:     Request{VenueID: 1, FromDate: "2026-09-15", ToDate: "2026-09-14"},
			wantErr: ErrInvalidDateRange,
		},
		{
			name:    "range too wide",
			req:     Request{VenueID: 1, FromDate: "2026-09-01", ToDate: "2026-12-31"},
			wantErr: ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, validateRequest(&tt.req), tt.wantErr)
		})
	}

	assert.NoError(t, validateRequest(&Request{VenueID: 1, FromDate: "2026-09-01", ToDate: "2026-10-31"}))
}
