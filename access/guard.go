// Package access decides what each session role may see and change.
package access

import (
	"errors"
	"strings"

	"github.com/webiquedev/opsboard-backend/auth"
)

const (
	LoginPath                  = "/login"
	FreelancerManagerPath      = "/freelancer-manager"
	FreelancerManagerLoginPath = "/freelancer-manager/login"
)

// Decision is the outcome of a route guard check.
type Decision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(to string) Decision {
	return Decision{Redirect: to}
}

// Guard decides whether a console route may be shown for state.
func Guard(state auth.State, path string) Decision {
	path = normalizePath(path)

	switch {
	case path == LoginPath || path == FreelancerManagerLoginPath:
		return allow()
	case isFreelancerManagerRoute(path):
		if state.Empty() {
			return redirect(FreelancerManagerLoginPath)
		}
		return allow()
	case state.HasFreelancerManager():
		return redirect(FreelancerManagerPath)
	case !state.HasDashboard():
		return redirect(LoginPath)
	default:
		return allow()
	}
}

func isFreelancerManagerRoute(path string) bool {
	return path == FreelancerManagerPath || strings.HasPrefix(path, FreelancerManagerPath+"/")
}

func normalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// Scope is what an API route requires of the caller.
type Scope int

const (
	// ScopeShared routes serve both roles (projects).
	ScopeShared Scope = iota
	// ScopeDashboard routes serve only dashboard sessions.
	ScopeDashboard
)

var ErrNoSession = errors.New("no session")

// DeniedError is returned when a session exists but may not do what it asked.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	return "Access Denied: " + e.Reason
}

func deny(reason string) error {
	return &DeniedError{Reason: reason}
}

// IsDenied reports whether err is a DeniedError.
func IsDenied(err error) bool {
	var denied *DeniedError
	return errors.As(err, &denied)
}

// Authorize checks state against scope. A freelancer manager session shuts
// out dashboard routes even when a dashboard session is also present.
func Authorize(state auth.State, scope Scope) error {
	if state.Empty() {
		return ErrNoSession
	}
	if scope == ScopeDashboard {
		if state.HasFreelancerManager() {
			return deny("freelancer manager sessions cannot use dashboard features")
		}
		if !state.HasDashboard() {
			return ErrNoSession
		}
	}
	return nil
}

// ActsAsFreelancerManager reports whether the freelancer manager rules apply.
func ActsAsFreelancerManager(state auth.State) bool {
	return state.HasFreelancerManager()
}
