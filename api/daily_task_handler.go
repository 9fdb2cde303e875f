package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/webiquedev/opsboard-backend/database"
	"github.com/webiquedev/opsboard-backend/errs"
	"github.com/webiquedev/opsboard-backend/metrics"
	"github.com/webiquedev/opsboard-backend/models"
)

const dailyTaskEntity = "Daily task"

type dailyTaskHandler struct {
	responder     Responder
	logger        zerolog.Logger
	dailyTaskRepo *database.DailyTaskRepo
}

func newDailyTaskHandler(dailyTaskRepo *database.DailyTaskRepo, notifier *errorNotifier) dailyTaskHandler {
	logger := log.With().Str("handlerName", "dailyTaskHandler").Logger()

	return dailyTaskHandler{
		responder:     NewResponder(logger).withNotifier(notifier),
		logger:        logger,
		dailyTaskRepo: dailyTaskRepo,
	}
}

// getDailyTasks lists tasks
// @Summary List daily tasks
// @Tags Notes
// @Param date query string false "Only tasks on this day, YYYY-MM-DD"
// @Param completed query bool false "Filter by completion"
// @Param search query string false "Case-insensitive match on content"
// @Success 200 {object} envelope "Page of tasks"
// @Router /api/notes/daily-tasks [get]
func (h dailyTaskHandler) getDailyTasks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			filter database.DailyTaskFilter
			err    error
		)
		if filter.Page, err = pageParams(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if filter.Date, err = dateQuery(r, "date"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if filter.Completed, err = boolQuery(r, "completed"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		filter.Search = r.URL.Query().Get("search")

		tasks, total, err := h.dailyTaskRepo.Find(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "daily tasks", err))
			return
		}
		if tasks == nil {
			tasks = []*models.DailyTask{}
		}
		h.responder.WritePage(w, tasks, filter.Page, total)
	}
}

// getDailyTask returns one task
// @Summary Get daily task
// @Tags Notes
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} envelope "Task"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/notes/daily-tasks/{id} [get]
func (h dailyTaskHandler) getDailyTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		task, err := h.dailyTaskRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", dailyTaskEntity, err))
			return
		}
		if task == nil {
			h.responder.WriteError(w, errs.NewNotFound(dailyTaskEntity))
			return
		}
		h.responder.WriteData(w, http.StatusOK, task)
	}
}

// createDailyTask stores a task
// @Summary Create daily task
// @Tags Notes
// @Param task body models.DailyTaskPatch true "content and date are required"
// @Success 201 {object} envelope "Created task"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid data"
// @Router /api/notes/daily-tasks [post]
func (h dailyTaskHandler) createDailyTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.DailyTaskPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		task := &models.DailyTask{}
		patch.Apply(task)
		if err := h.dailyTaskRepo.Add(r.Context(), task); err != nil {
			h.responder.WriteError(w, storeError("create", dailyTaskEntity, err))
			return
		}

		metrics.RecordMutation("daily-tasks", "create")
		h.responder.WriteData(w, http.StatusCreated, task)
	}
}

// updateDailyTask changes the fields present in the body
// @Summary Update daily task
// @Tags Notes
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} envelope "Updated task"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/notes/daily-tasks/{id} [put]
func (h dailyTaskHandler) updateDailyTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var patch models.DailyTaskPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		task, err := h.dailyTaskRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", dailyTaskEntity, err))
			return
		}
		if task == nil {
			h.responder.WriteError(w, errs.NewNotFound(dailyTaskEntity))
			return
		}

		patch.Apply(task)
		if err := h.dailyTaskRepo.Update(r.Context(), task); err != nil {
			h.responder.WriteError(w, storeError("update", dailyTaskEntity, err))
			return
		}

		metrics.RecordMutation("daily-tasks", "update")
		h.responder.WriteData(w, http.StatusOK, task)
	}
}

// deleteDailyTask removes a task
// @Summary Delete daily task
// @Tags Notes
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} messageEnvelope "Deleted"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/notes/daily-tasks/{id} [delete]
func (h dailyTaskHandler) deleteDailyTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		found, err := h.dailyTaskRepo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", dailyTaskEntity, err))
			return
		}
		if !found {
			h.responder.WriteError(w, errs.NewNotFound(dailyTaskEntity))
			return
		}

		metrics.RecordMutation("daily-tasks", "delete")
		h.responder.WriteMessage(w, "Daily task deleted successfully")
	}
}

// toggleDailyTask flips the completed flag and nothing else
// @Summary Toggle daily task completion
// @Tags Notes
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} envelope "Updated task"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/notes/daily-tasks/{id}/complete [patch]
func (h dailyTaskHandler) toggleDailyTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		task, err := h.dailyTaskRepo.ToggleCompleted(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("update", dailyTaskEntity, err))
			return
		}
		if task == nil {
			h.responder.WriteError(w, errs.NewNotFound(dailyTaskEntity))
			return
		}

		metrics.RecordMutation("daily-tasks", "toggle")
		h.responder.WriteData(w, http.StatusOK, task)
	}
}

type moveRequest struct {
	Date *models.Date `json:"date"`
}

// moveDailyTask changes the day of a task, keeping its id
// @Summary Move daily task
// @Tags Notes
// @Param id path string true "Task ID" format(uuid)
// @Param body body moveRequest true "Target date"
// @Success 200 {object} envelope "Moved task"
// @Failure 400 {object} ErrorResponse "Bad Request - date is required"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/notes/daily-tasks/{id}/move [patch]
func (h dailyTaskHandler) moveDailyTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var req moveRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.Date == nil || req.Date.IsZero() {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("date"))
			return
		}

		task, err := h.dailyTaskRepo.Move(r.Context(), id, *req.Date)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("move", dailyTaskEntity, err))
			return
		}
		if task == nil {
			h.responder.WriteError(w, errs.NewNotFound(dailyTaskEntity))
			return
		}

		metrics.RecordMutation("daily-tasks", "move")
		h.responder.WriteData(w, http.StatusOK, task)
	}
}
