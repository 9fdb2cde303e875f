package api

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/webiquedev/opsboard-backend/auth"
	"github.com/webiquedev/opsboard-backend/database"
	"github.com/webiquedev/opsboard-backend/finance"
	"github.com/webiquedev/opsboard-backend/models"
)

type handlerDeps struct {
	auth        *auth.Service
	economics   finance.Economics
	now         func() time.Time
	startupTime time.Time
	webhookURL  string
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, deps handlerDeps) *routeHandlers {
	notifier := newErrorNotifier(deps.webhookURL, log.Logger)

	return &routeHandlers{
		authHandler:    newAuthHandler(deps.auth, notifier),
		projectHandler: newProjectHandler(db.ProjectRepo(), deps.now, notifier),
		subscriptionHandler: newCostHandler[models.Subscription](
			db.SubscriptionRepo(), "subscriptions", "Subscription", notifier),
		tikTokAdHandler: newCostHandler[models.TikTokAd](
			db.TikTokAdRepo(), "tiktok-ads", "TikTok ad", notifier),
		importantNoteHandler: newNoteHandler[models.ImportantNote](
			db.ImportantNoteRepo(), "important-notes", "Important note", notifier),
		generalNoteHandler: newNoteHandler[models.GeneralNote](
			db.GeneralNoteRepo(), "general-notes", "General note", notifier),
		dailyTaskHandler: newDailyTaskHandler(db.DailyTaskRepo(), notifier),
		statsHandler:     newStatsHandler(db, deps.economics, deps.now, notifier),
		healthHandler:    newHealthHandler(db, deps.startupTime),
	}
}
