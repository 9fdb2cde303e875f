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

// costHandler serves the pure cost resources. Subscriptions and TikTok ads
// share every route and differ only in their table.
type costHandler[T database.CostModel] struct {
	responder Responder
	logger    zerolog.Logger
	repo      *database.CostRepo[T]
	resource  string
	entity    string
}

func newCostHandler[T database.CostModel](repo *database.CostRepo[T], resource, entity string, notifier *errorNotifier) costHandler[T] {
	logger := log.With().Str("handlerName", resource+"Handler").Logger()

	return costHandler[T]{
		responder: NewResponder(logger).withNotifier(notifier),
		logger:    logger,
		repo:      repo,
		resource:  resource,
		entity:    entity,
	}
}

// costEntry exposes the shared fields of a cost record.
func costEntry[T database.CostModel](record *T) *models.CostEntry {
	switch v := any(record).(type) {
	case *models.Subscription:
		return &v.CostEntry
	case *models.TikTokAd:
		return &v.CostEntry
	default:
		panic(fmt.Sprintf("unsupported cost record %T", record))
	}
}

// list returns a page of records
// @Summary List cost records
// @Tags Costs
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Case-insensitive match on name"
// @Param startDate query string false "Earliest date, YYYY-MM-DD"
// @Param endDate query string false "Latest date, YYYY-MM-DD"
// @Success 200 {object} envelope "Page of records"
// @Router /api/subscriptions [get]
// @Router /api/tiktok-ads [get]
func (h costHandler[T]) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := costFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		records, total, err := h.repo.Find(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", h.resource, err))
			return
		}
		if records == nil {
			records = []*T{}
		}
		h.responder.WritePage(w, records, filter.Page, total)
	}
}

func (h costHandler[T]) load(w http.ResponseWriter, r *http.Request) (*T, bool) {
	id, err := idParam(r)
	if err != nil {
		h.responder.WriteError(w, err)
		return nil, false
	}

	record, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		h.responder.WriteError(w, errs.NewDatabaseError("find", h.entity, err))
		return nil, false
	}
	if record == nil {
		h.responder.WriteError(w, errs.NewNotFound(h.entity))
		return nil, false
	}
	return record, true
}

// get returns one record
// @Summary Get cost record
// @Tags Costs
// @Param id path string true "Record ID" format(uuid)
// @Success 200 {object} envelope "Record"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/subscriptions/{id} [get]
// @Router /api/tiktok-ads/{id} [get]
func (h costHandler[T]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := h.load(w, r)
		if !ok {
			return
		}
		h.responder.WriteData(w, http.StatusOK, record)
	}
}

// create stores a new record
// @Summary Create cost record
// @Tags Costs
// @Accept json
// @Param record body models.CostEntry true "name, price and date"
// @Success 201 {object} envelope "Created record"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid data"
// @Router /api/subscriptions [post]
// @Router /api/tiktok-ads [post]
func (h costHandler[T]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var entry models.CostEntry
		if err := decodeJSON(w, r, &entry); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		record := new(T)
		*costEntry(record) = entry
		if err := h.repo.Add(r.Context(), record); err != nil {
			h.responder.WriteError(w, storeError("create", h.entity, err))
			return
		}

		metrics.RecordMutation(h.resource, "create")
		h.responder.WriteData(w, http.StatusCreated, record)
	}
}

// update changes the fields present in the body
// @Summary Update cost record
// @Tags Costs
// @Accept json
// @Param id path string true "Record ID" format(uuid)
// @Param record body models.CostEntryPatch true "Fields to change"
// @Success 200 {object} envelope "Updated record"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/subscriptions/{id} [put]
// @Router /api/tiktok-ads/{id} [put]
func (h costHandler[T]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := idParam(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		var patch models.CostEntryPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		record, ok := h.load(w, r)
		if !ok {
			return
		}

		patch.Apply(costEntry(record))
		if err := h.repo.Update(r.Context(), record); err != nil {
			h.responder.WriteError(w, storeError("update", h.entity, err))
			return
		}

		metrics.RecordMutation(h.resource, "update")
		h.responder.WriteData(w, http.StatusOK, record)
	}
}

// remove deletes a record
// @Summary Delete cost record
// @Tags Costs
// @Param id path string true "Record ID" format(uuid)
// @Success 200 {object} messageEnvelope "Deleted"
// @Failure 404 {object} ErrorResponse "Not Found"
// @Router /api/subscriptions/{id} [delete]
// @Router /api/tiktok-ads/{id} [delete]
func (h costHandler[T]) remove() http.HandlerFunc {
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

// totals sums the price of the matching records
// @Summary Total spend
// @Tags Costs
// @Param startDate query string false "Earliest date, YYYY-MM-DD"
// @Param endDate query string false "Latest date, YYYY-MM-DD"
// @Success 200 {object} envelope "totalCost and count"
// @Router /api/subscriptions/stats/total [get]
// @Router /api/tiktok-ads/stats/total [get]
func (h costHandler[T]) totals() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := costFilter(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		totals, err := h.repo.Totals(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("sum", h.resource, err))
			return
		}
		h.responder.WriteData(w, http.StatusOK, totals)
	}
}
