package api

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/webiquedev/opsboard-backend/database"
	"github.com/webiquedev/opsboard-backend/errs"
	"github.com/webiquedev/opsboard-backend/metrics"
	"github.com/webiquedev/opsboard-backend/models"
)

type noteHandler[T database.NoteModel] struct {
	responder Responder
	logger    zerolog.Logger
	repo      *database.NoteRepo[T]
	resource  string
	entity    string
}

func newNoteHandler[T database.NoteModel](repo *database.NoteRepo[T], resource, entity string, notifier *errorNotifier) noteHandler[T] {
	logger := log.With().Str("handlerName", resource+"Handler").Logger()

	return noteHandler[T]{
		responder: NewResponder(logger).withNotifier(notifier),
		logger:    logger,
		repo:      repo,
		resource:  resource,
		entity:    entity,
	}
}

func noteBody[T database.NoteModel](note *T) *models.NoteBody {
	switch v := any(note).(type) {
	case *models.ImportantNote:
		return &v.NoteBody
	case *models.GeneralNote:
		return &v.NoteBody
	default:
		panic(fmt.Sprintf("unsupported note %T", note))
	}
}

type notePatch struct {
	Content *string `json:"content"`
}

// list returns a page of notes, newest first
// @Summary List notes
// @Tags Notes
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Case-insensitive match on content"
// @Success 200 {object} envelope "Page of notes"
// @Router /api/notes/important [get]
// @Router /api/notes/general [get]
func (h noteHandler[T]) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		notes, total, err := h.repo.Find(r.Context(), database.NoteFilter{
			Search: r.URL.Query().Get("search"),
			Page:   page,
		})
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", h.resource, err))
			return
		}
		if notes == nil {
			notes = []*T{}
		}
		h.responder.WritePage(w, notes, page, total)
	}
}

// get returns one note
// @Summary Get note
// @Tags Notes
// @Param id path string true "Note ID" format(uuid)
// @Success 200 {object} envelope "Note"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/notes/important/{id} [get]
// @Router /api/notes/general/{id} [get]
func (h noteHandler[T]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		note, err := h.repo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", h.entity, err))
			return
		}
		if note == nil {
			h.responder.WriteError(w, errs.NewNotFound(h.entity))
			return
		}
		h.responder.WriteData(w, http.StatusOK, note)
	}
}

// create stores a note
// @Summary Create note
// @Tags Notes
// @Param note body models.NoteBody true "Note content"
// @Success 201 {object} envelope "Created note"
// @Failure 400 {object} ErrorResponse "Bad Request - content is required"
// @Router /api/notes/important [post]
// @Router /api/notes/general [post]
func (h noteHandler[T]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body models.NoteBody
		if err := decodeJSON(w, r, &body); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		note := new(T)
		*noteBody(note) = body
		if err := h.repo.Add(r.Context(), note); err != nil {
			h.responder.WriteError(w, storeError("create", h.entity, err))
			return
		}

		metrics.RecordMutation(h.resource, "create")
		h.responder.WriteData(w, http.StatusCreated, note)
	}
}

// update replaces the content of a note
// @Summary Update note
// @Tags Notes
// @Param id path string true "Note ID" format(uuid)
// @Success 200 {object} envelope "Updated note"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/notes/important/{id} [put]
// @Router /api/notes/general/{id} [put]
func (h noteHandler[T]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var patch notePatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		note, err := h.repo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", h.entity, err))
			return
		}
		if note == nil {
			h.responder.WriteError(w, errs.NewNotFound(h.entity))
			return
		}

		if patch.Content != nil {
			noteBody(note).Content = *patch.Content
		}
		if err := h.repo.Update(r.Context(), note); err != nil {
			h.responder.WriteError(w, storeError("update", h.entity, err))
			return
		}

		metrics.RecordMutation(h.resource, "update")
		h.responder.WriteData(w, http.StatusOK, note)
	}
}

// remove deletes a note
// @Summary Delete note
// @Tags Notes
// @Param id path string true "Note ID" format(uuid)
// @Success 200 {object} messageEnvelope "Deleted"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/notes/important/{id} [delete]
// @Router /api/notes/general/{id} [delete]
func (h noteHandler[T]) remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		found, err := h.repo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", h.entity, err))
			return
		}
		if !found {
			h.responder.WriteError(w, errs.NewNotFound(h.entity))
			return
		}

		metrics.RecordMutation(h.resource, "delete")
		h.responder.WriteMessage(w, h.entity+" deleted successfully")
	}
}
