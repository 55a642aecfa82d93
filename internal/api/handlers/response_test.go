package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWallClock(t *testing.T) {
	want := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{name: "minutes", input: "2024-06-03T10:00"},
		{name: "seconds", input: "2024-06-03T10:00:00"},
		{name: "utc", input: "2024-06-03T10:00:00Z"},
		{name: "offset is dropped", input: "2024-06-03T10:00:00+02:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWallClock(tt.input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseWallClock("03.06.2024 10:00")
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var v struct {
		Status string `json:"status"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"status":"confirmed"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "confirmed", v.Status)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"state":"confirmed"}`))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "taken")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":409,"message":"taken"}`, rec.Body.String())
}
