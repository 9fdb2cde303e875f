package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/webiquedev/opsboard-backend/auth"
	"github.com/webiquedev/opsboard-backend/config"
	"github.com/webiquedev/opsboard-backend/database"
	"github.com/webiquedev/opsboard-backend/finance"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, database database.Database, authService *auth.Service) (Server, error) {
	if authService == nil {
		return Server{}, fmt.Errorf("api: auth service is required")
	}

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router := newRouter(database,
		withConfig(c),
		withStartupTime(startupTime),
		withAuth(authService),
		withEconomics(EconomicsFromConfig(c)),
	)

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

// EconomicsFromConfig reads the break-even figures, falling back to the
// standard pricing.
func EconomicsFromConfig(c map[string]string) finance.Economics {
	def := finance.DefaultEconomics()
	return finance.Economics{
		RevenuePerProject: config.GetFloat(c, "BREAK_EVEN_REVENUE_PER_PROJECT", def.RevenuePerProject),
		DomainCost:        config.GetFloat(c, "BREAK_EVEN_DOMAIN_COST", def.DomainCost),
		ManagerFee:        config.GetFloat(c, "BREAK_EVEN_MANAGER_FEE", def.ManagerFee),
		FreelancerFee:     config.GetFloat(c, "BREAK_EVEN_FREELANCER_FEE", def.FreelancerFee),
	}
}

type router struct {
	config      map[string]string
	startupTime time.Time
	auth        *auth.Service
	now         func() time.Time
	economics   *finance.Economics
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func withAuth(authService *auth.Service) func(*router) {
	return func(r *router) {
		r.auth = authService
	}
}

func withClock(now func() time.Time) func(*router) {
	return func(r *router) {
		r.now = now
	}
}

func withEconomics(econ finance.Economics) func(*router) {
	return func(r *router) {
		r.economics = &econ
	}
}

func newRouter(database database.Database, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.now == nil {
		router.now = time.Now
	}
	if router.startupTime.IsZero() {
		router.startupTime = router.now()
	}
	economics := finance.DefaultEconomics()
	if router.economics != nil {
		economics = *router.economics
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(MetricsMiddleware)

	handlers := initializeHandlers(database, handlerDeps{
		auth:        router.auth,
		economics:   economics,
		now:         router.now,
		startupTime: router.startupTime,
		webhookURL:  config.GetString(router.config, "ERROR_WEBHOOK_URL", ""),
	})

	sessions := newSessionMiddleware(router.auth)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	if len(acceptedOrigins) == 0 {
		acceptedOrigins = []string{"http://localhost:3000"}
	}
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins: acceptedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			dashboardSessionHeader, freelancerManagerSessionHeader,
		},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	setupOperationalRoutes(chiRouter, handlers)
	setupAPIRoutes(chiRouter, handlers, sessions)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
