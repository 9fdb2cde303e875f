package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabaseError_Classification(t *testing.T) {
	cases := []struct {
		name   string
		cause  error
		status int
		is     func(error) bool
	}{
		{"unique", errors.New("UNIQUE constraint failed: notes.id"), http.StatusConflict, IsAlreadyExists},
		{"duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "projects_pkey"`), http.StatusConflict, IsAlreadyExists},
		{"missing row", errors.New("record not found"), http.StatusNotFound, IsNotFound},
		{"dial", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), http.StatusServiceUnavailable, IsDatabaseConnectionError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewDatabaseError("create", "project", tc.cause)
			assert.Equal(t, tc.status, err.StatusCode)
			assert.True(t, tc.is(err))
			assert.Same(t, tc.cause, err.Cause)
		})
	}

	generic := NewDatabaseError("update", "note", errors.New("syntax error"))
	assert.Equal(t, http.StatusInternalServerError, generic.StatusCode)
	assert.ErrorIs(t, generic, ErrDatabaseQuery)
	assert.False(t, IsNotFound(generic))
	assert.Equal(t, "database query failed: Failed to update note", generic.Error())
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("Project")
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "Project not found", err.Message())
	assert.True(t, IsNotFound(err))
}

func TestGetFullError_FollowsCauses(t *testing.T) {
	inner := NewServiceUnavailableError("redis", errors.New("i/o timeout"))
	outer := NewConfigError("session store", inner)

	assert.Equal(t,
		"configuration invalid: Configuration error for session store -> service unavailable: redis is unavailable -> i/o timeout",
		outer.GetFullError())
	assert.True(t, IsServiceUnavailableError(inner))
}

func TestSessionErrors(t *testing.T) {
	missing := NewMissingSessionError("/login")
	assert.Equal(t, http.StatusUnauthorized, missing.StatusCode)
	assert.Equal(t, "Sign in at /login", missing.Details)
	assert.True(t, IsMissingSessionError(missing))
	assert.False(t, IsExpiredSessionError(missing))

	expired := NewExpiredSessionError()
	assert.True(t, IsExpiredSessionError(expired))

	denied := NewAccessDeniedError("completed projects cannot be edited")
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)
	assert.Equal(t, "Access Denied", denied.Message())
	assert.True(t, IsAccessDeniedError(denied))
}

func TestValidationErrors(t *testing.T) {
	invalid := NewInvalidFieldError("price", "must be a finite number")
	require.Equal(t, http.StatusBadRequest, invalid.StatusCode)
	assert.Equal(t, "price", invalid.Field)
	assert.Equal(t, "Invalid field price: must be a finite number", invalid.Details)
	assert.True(t, IsInvalidFieldError(invalid))
	assert.False(t, IsMissingRequiredFieldError(invalid))

	missing := NewMissingRequiredFieldError("name")
	assert.True(t, IsMissingRequiredFieldError(missing))
	assert.Equal(t, "name", missing.Field)
}
