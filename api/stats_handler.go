package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/webiquedev/opsboard-backend/database"
	"github.com/webiquedev/opsboard-backend/errs"
	"github.com/webiquedev/opsboard-backend/finance"
	"github.com/webiquedev/opsboard-backend/models"
)

type statsHandler struct {
	responder        Responder
	logger           zerolog.Logger
	projectRepo      *database.ProjectRepo
	subscriptionRepo *database.CostRepo[models.Subscription]
	tikTokAdRepo     *database.CostRepo[models.TikTokAd]
	economics        finance.Economics
	now              func() time.Time
}

func newStatsHandler(db database.Database, economics finance.Economics, now func() time.Time, notifier *errorNotifier) statsHandler {
	logger := log.With().Str("handlerName", "statsHandler").Logger()

	return statsHandler{
		responder:        NewResponder(logger).withNotifier(notifier),
		logger:           logger,
		projectRepo:      db.ProjectRepo(),
		subscriptionRepo: db.SubscriptionRepo(),
		tikTokAdRepo:     db.TikTokAdRepo(),
		economics:        economics,
		now:              now,
	}
}

type financesResponse struct {
	Range    finance.Range              `json:"range"`
	Projects []finance.ProjectBreakdown `json:"projects"`
	Totals   finance.Overview           `json:"totals"`
}

type overviewResponse struct {
	Range finance.Range `json:"range"`
	finance.Overview
}

func (h statsHandler) parseRange(r *http.Request) (finance.Range, error) {
	rng, err := finance.ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		return "", errs.NewInvalidFieldError("range", err.Error())
	}
	return rng, nil
}

// projectsInRange loads every project whose reference date falls in rng.
func (h statsHandler) projectsInRange(ctx context.Context, rng finance.Range, now time.Time) ([]*models.Project, error) {
	projects, err := h.projectRepo.FindAll(ctx, database.ProjectFilter{})
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}
	return finance.FilterProjects(projects, rng, now), nil
}

// costsInRange loads the cost records dated within rng.
func costsInRange[T database.CostModel](ctx context.Context, repo *database.CostRepo[T], rng finance.Range, now time.Time) ([]models.CostEntry, error) {
	var filter database.CostFilter
	if cutoff, ok := rng.Cutoff(now); ok {
		start := models.NewDate(cutoff)
		filter.Start = &start
	}
	records, err := repo.FindAll(ctx, filter)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "costs", err)
	}
	entries := make([]models.CostEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, *costEntry(rec))
	}
	return entries, nil
}

// overview loads the three record kinds concurrently and totals them.
func (h statsHandler) overview(ctx context.Context, rng finance.Range, now time.Time) ([]*models.Project, finance.Overview, error) {
	var (
		projects      []*models.Project
		subscriptions []models.CostEntry
		ads           []models.CostEntry
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		projects, err = h.projectsInRange(ctx, rng, now)
		return err
	})
	g.Go(func() (err error) {
		subscriptions, err = costsInRange(ctx, h.subscriptionRepo, rng, now)
		return err
	})
	g.Go(func() (err error) {
		ads, err = costsInRange(ctx, h.tikTokAdRepo, rng, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, finance.Overview{}, err
	}
	return projects, finance.ComputeOverview(projects, subscriptions, ads), nil
}

// getFinances returns the per-project profit breakdown
// @Summary Project finances
// @Tags Stats
// @Param range query string false "all, 1m, 3m, 6m or 12m" default(all)
// @Success 200 {object} envelope "Breakdown per project and portfolio totals"
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown range"
// @Router /api/projects/finances [get]
func (h statsHandler) getFinances() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, err := h.parseRange(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, totals, err := h.overview(r.Context(), rng, h.now())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteData(w, http.StatusOK, financesResponse{
			Range:    rng,
			Projects: finance.Breakdowns(projects),
			Totals:   totals,
		})
	}
}

// getOverview returns portfolio totals
// @Summary Portfolio overview
// @Tags Stats
// @Param range query string false "all, 1m, 3m, 6m or 12m" default(all)
// @Success 200 {object} envelope "Portfolio totals"
// @Failure 400 {object} ErrorResponse "Bad Request - Unknown range"
// @Router /api/projects/stats/overview [get]
func (h statsHandler) getOverview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, err := h.parseRange(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		_, totals, err := h.overview(r.Context(), rng, h.now())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, overviewResponse{Range: rng, Overview: totals})
	}
}

// getBreakEven runs the break-even calculator
// @Summary Break-even calculator
// @Description How many projects pay off a purchase, delivered in house and through freelancers.
// @Tags Stats
// @Param price query number true "Purchase price"
// @Param revenuePerProject query number false "Overrides the configured revenue per project"
// @Param domainCost query number false "Overrides the configured domain cost"
// @Param managerFee query number false "Overrides the configured manager fee"
// @Param freelancerFee query number false "Overrides the configured freelancer fee"
// @Success 200 {object} envelope "Break-even per basis"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid price"
// @Router /api/calculator/break-even [get]
func (h statsHandler) getBreakEven() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("price") == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("price"))
			return
		}
		price, err := floatQuery(r, "price", 0)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		econ := h.economics
		overrides := []struct {
			name string
			dst  *float64
		}{
			{"revenuePerProject", &econ.RevenuePerProject},
			{"domainCost", &econ.DomainCost},
			{"managerFee", &econ.ManagerFee},
			{"freelancerFee", &econ.FreelancerFee},
		}
		for _, o := range overrides {
			if *o.dst, err = floatQuery(r, o.name, *o.dst); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		result, err := finance.CalculateBreakEven(price, econ)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteData(w, http.StatusOK, result)
	}
}
