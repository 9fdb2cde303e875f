package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Sessions and roles
var (
	ErrMissingSession     = errors.New("missing session")
	ErrExpiredSession     = errors.New("session expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("Access Denied")
)

func NewMissingSessionError(loginPath string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrMissingSession,
		Details:    fmt.Sprintf("Sign in at %s", loginPath),
		Field:      "authorization",
	}
}

func NewExpiredSessionError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrExpiredSession,
		Details:    "Session is expired or was signed out",
		Field:      "authorization",
	}
}

func NewInvalidCredentialsError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        ErrInvalidCredentials,
		Field:      "password",
	}
}

// NewAccessDeniedError is returned when a session holds the wrong role for a
// resource, or a freelancer manager violates a project edit precondition.
func NewAccessDeniedError(reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrAccessDenied,
		Details:    reason,
	}
}

func IsMissingSessionError(err error) bool {
	return errors.Is(err, ErrMissingSession)
}

func IsExpiredSessionError(err error) bool {
	return errors.Is(err, ErrExpiredSession)
}

func IsAccessDeniedError(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}
