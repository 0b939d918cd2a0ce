package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDateStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DateString
		wantErr bool
	}{
		{name: "valid date", input: "2026-09-15", want: DateString("2026-09-15")},
		{name: "wrong separator", input: "2026/09/15", wantErr: true},
		{name: "month out of range", input: "2026-13-01", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDateStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDateFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateString_Time(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	got, err := DateString("2026-09-15").Time(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, loc), got)
}

func TestDateString_Weekday(t *testing.T) {
	// 2026-09-15 - вторник
	day, err := DateString("2026-09-15").Weekday()
	require.NoError(t, err)
	assert.Equal(t, time.Tuesday, day)
}

func TestDateString_IsBefore(t *testing.T) {
	assert.True(t, DateString("2026-09-14").IsBefore("2026-09-15"))
	assert.False(t, DateString("2026-09-15").IsBefore("2026-09-15"))
}
