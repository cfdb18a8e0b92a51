package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := fmt.Errorf("create payroll: %w", Wrap(CodeConflict, "Payroll for this month already exists", cause))

	ae, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ae.Code.Status)
	assert.Equal(t, "Payroll for this month already exists", ae.Message)
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(err, CodeNotFound))
}

func TestAsOnPlainError(t *testing.T) {
	_, ok := As(errors.New("boom"))
	assert.False(t, ok)
	assert.Equal(t, "Forbidden Request", Forbidden("Forbidden Request").Error())
}
