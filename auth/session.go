// Package auth issues and verifies the two kinds of console sessions: the
// dashboard owner and the freelancer manager.
package auth

import (
	"context"
	"time"
)

type Role string

const (
	RoleDashboard         Role = "dashboard"
	RoleFreelancerManager Role = "freelancer_manager"
)

func (r Role) Valid() bool {
	return r == RoleDashboard || r == RoleFreelancerManager
}

// FreelancerManagerTTL is fixed; the dashboard TTL is configurable.
const FreelancerManagerTTL = 24 * time.Hour

// Session is a verified session token.
type Session struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Subject   string    `json:"subject"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Token is a freshly issued session and its signed value.
type Token struct {
	Value   string  `json:"token"`
	Session Session `json:"session"`
}

// State holds the sessions a request carried. Either may be nil.
type State struct {
	Dashboard         *Session `json:"dashboard,omitempty"`
	FreelancerManager *Session `json:"freelancerManager,omitempty"`
}

func (s State) HasDashboard() bool {
	return s.Dashboard != nil
}

func (s State) HasFreelancerManager() bool {
	return s.FreelancerManager != nil
}

func (s State) Empty() bool {
	return s.Dashboard == nil && s.FreelancerManager == nil
}

// Set stores session in the slot for its role.
func (s *State) Set(session *Session) {
	switch session.Role {
	case RoleDashboard:
		s.Dashboard = session
	case RoleFreelancerManager:
		s.FreelancerManager = session
	}
}

type stateKey struct{}

// WithState returns a copy of ctx carrying state.
func WithState(ctx context.Context, state State) context.Context {
	return context.WithValue(ctx, stateKey{}, state)
}

// FromContext returns the request's session state, empty when none was set.
func FromContext(ctx context.Context) State {
	state, _ := ctx.Value(stateKey{}).(State)
	return state
}
