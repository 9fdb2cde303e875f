package api

import "github.com/webiquedev/opsboard-backend/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler          authHandler
	projectHandler       projectHandler
	subscriptionHandler  costHandler[models.Subscription]
	tikTokAdHandler      costHandler[models.TikTokAd]
	importantNoteHandler noteHandler[models.ImportantNote]
	generalNoteHandler   noteHandler[models.GeneralNote]
	dailyTaskHandler     dailyTaskHandler
	statsHandler         statsHandler
	healthHandler        healthHandler
}

// envelope is the body of every successful response.
type envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Pagination *pagination `json:"pagination,omitempty"`
}

type pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

type messageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Project not found"`
	Field   string `json:"field,omitempty" example:"name"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}
