package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID int64
	}{
		{
			name:       "valid header",
			header:     "42",
			wantStatus: http.StatusOK,
			wantUserID: 42,
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a number",
			header:     "abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "zero user id",
			header:     "0",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "negative user id",
			header:     "-5",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int64
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				userID, ok := GetUserID(r.Context())
				require.True(t, ok)
				gotUserID = userID
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/x", nil)
			if tt.header != "" {
				req.Header.Set("X-User-ID", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, tt.wantUserID, gotUserID)
			} else {
				assert.False(t, called)
			}
		})
	}
}

func TestGetUserID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserID(req.Context())

	assert.False(t, ok)
}
