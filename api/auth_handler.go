package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/webiquedev/opsboard-backend/access"
	"github.com/webiquedev/opsboard-backend/auth"
	"github.com/webiquedev/opsboard-backend/errs"
	"github.com/webiquedev/opsboard-backend/metrics"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      *auth.Service
}

func newAuthHandler(authService *auth.Service, notifier *errorNotifier) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger).withNotifier(notifier),
		logger:    logger,
		auth:      authService,
	}
}

type dashboardLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type freelancerManagerLoginRequest struct {
	Password string `json:"password"`
}

// loginResult labels the outcome for the login counter.
func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, auth.ErrLoginDisabled):
		return "disabled"
	default:
		return "invalid"
	}
}

// dashboardLogin issues a dashboard session
// @Summary Dashboard login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dashboardLoginRequest true "Username and password"
// @Success 200 {object} envelope "Session token"
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid credentials"
// @Router /api/auth/dashboard/login [post]
func (h authHandler) dashboardLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dashboardLoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.Username == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("username"))
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		token, err := h.auth.LoginDashboard(req.Username, req.Password)
		metrics.RecordLogin(string(auth.RoleDashboard), loginResult(err))
		if err != nil {
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("Dashboard login failed")
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, token)
	}
}

// freelancerManagerLogin issues a freelancer manager session
// @Summary Freelancer manager login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body freelancerManagerLoginRequest true "Password"
// @Success 200 {object} envelope "Session token, valid for 24 hours"
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid credentials"
// @Router /api/auth/freelancer-manager/login [post]
func (h authHandler) freelancerManagerLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req freelancerManagerLoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.Password == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("password"))
			return
		}

		token, err := h.auth.LoginFreelancerManager(req.Password)
		metrics.RecordLogin(string(auth.RoleFreelancerManager), loginResult(err))
		if err != nil {
			h.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("Freelancer manager login failed")
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, token)
	}
}

// logout revokes every session the request carries
// @Summary Logout
// @Tags Auth
// @Success 200 {object} messageEnvelope "Signed out"
// @Failure 401 {object} ErrorResponse "Unauthorized - No session"
// @Router /api/auth/logout [post]
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := sessionState(r)
		for _, session := range []*auth.Session{state.Dashboard, state.FreelancerManager} {
			if session == nil {
				continue
			}
			if err := h.auth.Logout(r.Context(), session); err != nil {
				h.responder.WriteError(w, errs.NewServiceUnavailableError("session store", err))
				return
			}
		}
		h.responder.WriteMessage(w, "Signed out successfully")
	}
}

// getSession returns the verified sessions of the request
// @Summary Current session
// @Tags Auth
// @Success 200 {object} envelope "Session state"
// @Failure 401 {object} ErrorResponse "Unauthorized - No session"
// @Router /api/auth/session [get]
func (h authHandler) getSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteData(w, http.StatusOK, sessionState(r))
	}
}

// guard decides whether a console route may be shown
// @Summary Route guard
// @Description Returns allowed, or the path to redirect to, for the sessions on the request.
// @Tags Auth
// @Param path query string true "Console route, for example /projects"
// @Success 200 {object} envelope "allowed and redirect"
// @Router /api/auth/guard [get]
func (h authHandler) guard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		if path == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("path"))
			return
		}
		h.responder.WriteData(w, http.StatusOK, access.Guard(sessionState(r), path))
	}
}
