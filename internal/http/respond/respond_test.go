package respond

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/staffly-be/internal/apperr"
	"github.com/hongminglow/staffly-be/internal/storage"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"app error", apperr.Conflict("Payroll for this month already exists"), http.StatusBadRequest, "Payroll for this month already exists"},
		{"wrapped app error", fmt.Errorf("ctx: %w", apperr.Forbidden("Forbidden access")), http.StatusForbidden, "Forbidden access"},
		{"invalid id", fmt.Errorf("find: %w", storage.ErrInvalidID), http.StatusBadRequest, "Invalid id format"},
		{"not found", storage.ErrNotFound, http.StatusNotFound, "Not found"},
		{"duplicate", fmt.Errorf("insert: %w", storage.ErrAlreadyExists), http.StatusBadRequest, "Already exists"},
		{"canceled", fmt.Errorf("query: %w", context.Canceled), http.StatusServiceUnavailable, "Request canceled"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
		{"internal app error", apperr.Wrap(apperr.CodeInternal, "db exploded", errors.New("x")), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FromError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			require.Equal(t, tt.status, rec.Code)
			var body Envelope
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestDecode(t *testing.T) {
	var v struct{ Email string }
	err := Decode(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")), &v)
	assert.True(t, apperr.IsCode(err, apperr.CodeBadRequest))

	require.NoError(t, Decode(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Email":"a@x.com"}`)), &v))
	assert.Equal(t, "a@x.com", v.Email)
}

func TestDecodeRejectsOversizedBody(t *testing.T) {
	payload := `{"Email":"` + strings.Repeat("a", MaxBodyBytes) + `"}`
	var v struct{ Email string }
	err := Decode(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)), &v)
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeTooLarge), err)

	rec := httptest.NewRecorder()
	FromError(rec, httptest.NewRequest(http.MethodPost, "/", nil), err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestText(t *testing.T) {
	rec := httptest.NewRecorder()
	Text(rec, http.StatusOK, "STAFFLY IS RUNNING...")
	assert.Equal(t, "STAFFLY IS RUNNING...", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}
