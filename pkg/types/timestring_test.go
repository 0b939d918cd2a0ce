package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 9, 15, 18, 30, 45, 0, time.UTC)
	assert.Equal(t, TimeString("18:30"), NewTimeString(moment))
}

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid time", input: "09:00", want: TimeString("09:00")},
		{name: "midnight", input: "00:00", want: TimeString("00:00")},
		{name: "end of day", input: "23:59", want: TimeString("23:59")},
		{name: "missing leading zero", input: "9:00", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	minutes, err := TimeString("10:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 630, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), got)

	got, err = TimeString("10:00").AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), got)

	// Переход через полночь не поддерживается
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("11:00").IsAfter("10:59"))
}

func TestTimeString_At(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	day := time.Date(2026, 9, 15, 0, 0, 0, 0, loc)
	got, err := TimeString("18:00").At(day, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 15, 18, 0, 0, 0, loc), got)
}
