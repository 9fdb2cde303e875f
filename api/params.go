package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/webiquedev/opsboard-backend/database"
	"github.com/webiquedev/opsboard-backend/errs"
	"github.com/webiquedev/opsboard-backend/models"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	maxBodyBytes     = 1 << 20
)

// decodeJSON reads a JSON body into dst, capped at maxBodyBytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		case errors.Is(err, io.EOF):
			return errs.NewMalformedPayloadError("empty", err)
		default:
			return errs.NewInvalidJSONError(err)
		}
	}
	return nil
}

// idParam parses the {id} path parameter.
func idParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError("id")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError("id", "must be a UUID")
	}
	return id, nil
}

// pageParams reads page and limit. Limits above maxPageLimit are clamped.
func pageParams(r *http.Request) (database.Page, error) {
	page := database.Page{Number: 1, Limit: defaultPageLimit}
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, errs.NewInvalidFieldError("page", "must be a positive integer")
		}
		page.Number = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, errs.NewInvalidFieldError("limit", "must be a positive integer")
		}
		page.Limit = min(n, maxPageLimit)
	}
	return page, nil
}

func dateQuery(r *http.Request, name string) (*models.Date, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, errs.NewInvalidFieldError(name, fmt.Sprintf("expected %s", models.DateLayout))
	}
	return &d, nil
}

func boolQuery(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errs.NewInvalidFieldError(name, "must be true or false")
	}
	return &b, nil
}

func floatQuery(r *http.Request, name string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errs.NewInvalidFieldError(name, "must be a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errs.NewInvalidFieldError(name, "must be a finite number")
	}
	return f, nil
}

func costFilter(r *http.Request) (database.CostFilter, error) {
	var (
		filter database.CostFilter
		err    error
	)
	if filter.Page, err = pageParams(r); err != nil {
		return filter, err
	}
	if filter.Start, err = dateQuery(r, "startDate"); err != nil {
		return filter, err
	}
	if filter.End, err = dateQuery(r, "endDate"); err != nil {
		return filter, err
	}
	filter.Search = r.URL.Query().Get("search")
	return filter, nil
}
