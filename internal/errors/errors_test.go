package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	plain := stderrors.New("boom")
	wrapped := Wrap(plain, "loading failed")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "loading failed: boom", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, plain))
}

func TestWrap_PreservesAppErrorCode(t *testing.T) {
	inner := ConfigInvalid("H0_REF must be positive")
	wrapped := Wrap(inner, "configuration validation failed")
	assert.Equal(t, CodeConfigInvalid, GetCode(wrapped))
}

func TestConstructorsCarryCodesAndCauses(t *testing.T) {
	cause := stderrors.New("no such file")

	catErr := CatalogError("catalog file not found", cause)
	assert.Equal(t, CodeCatalogError, GetCode(catErr))
	assert.True(t, stderrors.Is(catErr, cause))

	dbErr := DatabaseError("failed to connect", cause)
	assert.Equal(t, CodeDatabaseError, GetCode(dbErr))
	require.Contains(t, dbErr.Error(), "no such file")

	assert.Equal(t, "UNKNOWN", GetCode(cause))
}
