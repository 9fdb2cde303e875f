package api

import (
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/webiquedev/opsboard-backend/access"
	"github.com/webiquedev/opsboard-backend/auth"
	"github.com/webiquedev/opsboard-backend/errs"
	"github.com/webiquedev/opsboard-backend/metrics"
)

const (
	dashboardSessionHeader         = "X-Dashboard-Session"
	freelancerManagerSessionHeader = "X-Freelancer-Manager-Session"
)

type sessionMiddleware struct {
	responder Responder
	logger    zerolog.Logger
	auth      *auth.Service
}

func newSessionMiddleware(authService *auth.Service) sessionMiddleware {
	logger := log.With().Str("handlerName", "sessionMiddleware").Logger()
	return sessionMiddleware{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      authService,
	}
}

// load verifies every session token on the request and stores the result in
// the context. Tokens that fail verification are treated as absent.
func (m sessionMiddleware) load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			state    auth.State
			rejected bool
		)

		verify := func(token string, want auth.Role) {
			token = strings.TrimSpace(token)
			if token == "" {
				return
			}
			session, err := m.auth.Verify(r.Context(), token)
			if err != nil {
				m.logger.Debug().Err(err).Msg("Session token rejected")
				rejected = true
				return
			}
			if want != "" && session.Role != want {
				rejected = true
				return
			}
			state.Set(session)
		}

		verify(r.Header.Get(dashboardSessionHeader), auth.RoleDashboard)
		verify(r.Header.Get(freelancerManagerSessionHeader), auth.RoleFreelancerManager)
		if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			verify(strings.TrimPrefix(authHeader, "Bearer "), "")
		}

		next.ServeHTTP(w, r.WithContext(ctxWithSessionState(r.Context(), state, rejected)))
	})
}

// require refuses requests whose sessions do not satisfy scope.
func (m sessionMiddleware) require(scope access.Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := sessionState(r)
			err := access.Authorize(state, scope)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case access.IsDenied(err):
				metrics.RecordAccessDenied(routePattern(r))
				m.responder.WriteError(w, err)
			case state.Empty() && ctxSessionRejected(r.Context()):
				m.responder.WriteError(w, errs.NewExpiredSessionError())
			default:
				m.responder.WriteError(w, err)
			}
		})
	}
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					NewResponder(log.Logger).WriteJSON(srw, http.StatusInternalServerError, ErrorResponse{
						Error: "Internal Server Error",
					})
				}
			}
		}()

		next.ServeHTTP(srw, r)

		// Optionally log 500s that weren't panics (e.g. manually set by handlers)
		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// CORSCheckMiddleware checks if the request is blocked by CORS and returns a proper error
func CORSCheckMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// If no origin header, it's likely a same-origin request
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed := false
			for _, allowedOrigin := range allowedOrigins {
				if allowedOrigin == "*" || allowedOrigin == origin {
					allowed = true
					break
				}
			}

			// If not allowed and it's a preflight request, return error
			if !allowed && r.Method == http.MethodOptions {
				responder := NewResponder(log.Logger)
				responder.WriteError(w, errs.NewCORSError(origin))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MetricsMiddleware records request latency per route pattern.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		metrics.RecordHTTPRequest(r.Method, routePattern(r), srw.status, time.Since(start))
	})
}

// routePattern is the matched chi pattern, so ids do not explode label
// cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	// Set up colored console writer for development
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		// Color-code based on HTTP status codes
		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
