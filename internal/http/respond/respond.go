package respond

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/hongminglow/staffly-be/internal/apperr"
	"github.com/hongminglow/staffly-be/internal/storage"
)

const (
	internalMessage = "Internal server error"

	// MaxBodyBytes caps JSON request bodies.
	MaxBodyBytes = 1 << 20
)

// Envelope is the body of every error response.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON writes payload as the response body.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}

// Error writes an error response with the shared envelope structure.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Code: status, Message: message})
}

// Text writes a plain-text body.
func Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// FromError is the single place handler errors become HTTP responses.
// Anything not classified is logged and reported as a 500 without detail.
func FromError(w http.ResponseWriter, r *http.Request, err error) {
	if ae, ok := apperr.As(err); ok && ae.Code != apperr.CodeInternal {
		Error(w, ae.Code.Status, ae.Message)
		return
	}
	switch {
	case errors.Is(err, storage.ErrInvalidID):
		Error(w, http.StatusBadRequest, "Invalid id format")
	case errors.Is(err, storage.ErrNotFound):
		Error(w, http.StatusNotFound, "Not found")
	case errors.Is(err, storage.ErrAlreadyExists):
		Error(w, apperr.CodeConflict.Status, "Already exists")
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the body.
		Error(w, apperr.CodeUnavailable.Status, "Request canceled")
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		Error(w, http.StatusInternalServerError, internalMessage)
	}
}

// InternalError writes the generic 500 body.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, internalMessage)
}

// Decode reads a JSON body of at most MaxBodyBytes into v. Malformed bodies
// are BadRequest.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return apperr.BadRequest("invalid JSON payload")
	}
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Wrap(apperr.CodeTooLarge, "request body too large", err)
		}
		return apperr.Wrap(apperr.CodeBadRequest, "invalid JSON payload", err)
	}
	return nil
}
