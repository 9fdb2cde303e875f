package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/webiquedev/opsboard-backend/access"
)

// setupOperationalRoutes exposes health and metrics without a session.
func setupOperationalRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/health", handlers.healthHandler.getHealth())
	r.Handle("/metrics", promhttp.Handler())
}

// setupAPIRoutes mounts the console API. Every route loads the session state;
// each group then requires the scope it serves.
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, sessions sessionMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(sessions.load)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/dashboard/login", handlers.authHandler.dashboardLogin())
			r.Post("/freelancer-manager/login", handlers.authHandler.freelancerManagerLogin())
			r.Get("/guard", handlers.authHandler.guard())

			r.Group(func(r chi.Router) {
				r.Use(sessions.require(access.ScopeShared))
				r.Post("/logout", handlers.authHandler.logout())
				r.Get("/session", handlers.authHandler.getSession())
			})
		})

		// Projects are shared with freelancer managers, apart from the
		// dashboard-only operations below.
		r.Route("/projects", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(sessions.require(access.ScopeDashboard))
				r.Get("/finances", handlers.statsHandler.getFinances())
				r.Get("/stats/overview", handlers.statsHandler.getOverview())
				r.Delete("/{id}", handlers.projectHandler.deleteProject())
				r.Patch("/{id}/complete", handlers.projectHandler.completeProject())
				r.Patch("/{id}/reactivate", handlers.projectHandler.reactivateProject())
			})

			r.Group(func(r chi.Router) {
				r.Use(sessions.require(access.ScopeShared))
				r.Get("/", handlers.projectHandler.getAllProjects())
				r.Post("/", handlers.projectHandler.createProject())
				r.Get("/{id}", handlers.projectHandler.getProject())
				r.Put("/{id}", handlers.projectHandler.updateProject())
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(sessions.require(access.ScopeDashboard))

			r.Route("/subscriptions", func(r chi.Router) {
				h := handlers.subscriptionHandler
				r.Get("/", h.list())
				r.Post("/", h.create())
				r.Get("/stats/total", h.totals())
				r.Get("/{id}", h.get())
				r.Put("/{id}", h.update())
				r.Delete("/{id}", h.remove())
			})

			r.Route("/tiktok-ads", func(r chi.Router) {
				h := handlers.tikTokAdHandler
				r.Get("/", h.list())
				r.Post("/", h.create())
				r.Get("/stats/total", h.totals())
				r.Get("/{id}", h.get())
				r.Put("/{id}", h.update())
				r.Delete("/{id}", h.remove())
			})

			r.Route("/notes", func(r chi.Router) {
				r.Route("/important", func(r chi.Router) {
					h := handlers.importantNoteHandler
					r.Get("/", h.list())
					r.Post("/", h.create())
					r.Get("/{id}", h.get())
					r.Put("/{id}", h.update())
					r.Delete("/{id}", h.remove())
				})

				r.Route("/general", func(r chi.Router) {
					h := handlers.generalNoteHandler
					r.Get("/", h.list())
					r.Post("/", h.create())
					r.Get("/{id}", h.get())
					r.Put("/{id}", h.update())
					r.Delete("/{id}", h.remove())
				})

				r.Route("/daily-tasks", func(r chi.Router) {
					h := handlers.dailyTaskHandler
					r.Get("/", h.getDailyTasks())
					r.Post("/", h.createDailyTask())
					r.Get("/{id}", h.getDailyTask())
					r.Put("/{id}", h.updateDailyTask())
					r.Delete("/{id}", h.deleteDailyTask())
					r.Patch("/{id}/complete", h.toggleDailyTask())
					r.Patch("/{id}/move", h.moveDailyTask())
				})
			})

			r.Get("/calculator/break-even", handlers.statsHandler.getBreakEven())
		})
	})
}
