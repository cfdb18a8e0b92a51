// Package service holds the business rules behind each HTTP resource.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hongminglow/staffly-be/internal/apperr"
	"github.com/hongminglow/staffly-be/internal/storage"
)

// SelfChecker enforces that the caller owns the record addressed by email.
type SelfChecker interface {
	RequireSelf(ctx context.Context, email string) error
}

// storeError maps storage sentinels to client errors. notFound is the
// message used when the record is missing.
func storeError(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrInvalidID):
		return apperr.Wrap(apperr.CodeBadRequest, "Invalid id format", err)
	case errors.Is(err, storage.ErrNotFound):
		return apperr.Wrap(apperr.CodeNotFound, notFound, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return apperr.Wrap(apperr.CodeInternal, "storage failure", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
