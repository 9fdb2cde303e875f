package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/webiquedev/opsboard-backend/access"
	"github.com/webiquedev/opsboard-backend/auth"
	"github.com/webiquedev/opsboard-backend/database"
	"github.com/webiquedev/opsboard-backend/errs"
	"github.com/webiquedev/opsboard-backend/finance"
	"github.com/webiquedev/opsboard-backend/models"
)

type Responder struct {
	logger   zerolog.Logger
	notifier *errorNotifier
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger: logger}
}

func (r Responder) withNotifier(n *errorNotifier) Responder {
	r.notifier = n
	return r
}

// WriteJSON writes data with the given status. Headers must be set before
// the status line goes out.
func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	// Check if response is too large (e.g., > 10MB)
	const maxResponseSize = 10 * 1024 * 1024 // 10MB
	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large, truncating")

		truncatedJSON, _ := json.Marshal(ErrorResponse{
			Error:   "Response too large",
			Details: "The requested data exceeds the maximum response size",
		})
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write(truncatedJSON)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteData wraps data in the success envelope.
func (r Responder) WriteData(w http.ResponseWriter, status int, data any) {
	r.WriteJSON(w, status, envelope{Success: true, Data: data})
}

// WritePage writes one page of a listing with its pagination block.
func (r Responder) WritePage(w http.ResponseWriter, data any, page database.Page, total int64) {
	current := page.Number
	if current < 1 {
		current = 1
	}
	r.WriteJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    data,
		Pagination: &pagination{
			Current: current,
			Pages:   page.Pages(total),
			Total:   total,
		},
	})
}

func (r Responder) WriteMessage(w http.ResponseWriter, message string) {
	r.WriteJSON(w, http.StatusOK, messageEnvelope{Success: true, Message: message})
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(toApiErr(err), &apiErr) {
		r.logger.Error().Msg(err.Error())
		r.notifier.notify(err.Error())
		r.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "Internal Server Error",
		})
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Str("error", apiErr.GetFullError()).Msg("request failed")
		r.notifier.notify(apiErr.GetFullError())
	}

	r.WriteJSON(w, apiErr.StatusCode, ErrorResponse{
		Error:   apiErr.Message(),
		Field:   apiErr.Field,
		Details: apiErr.Details,
	})
}

// toApiErr translates domain errors into their HTTP form. Errors that are
// already ApiErrs, or that have no mapping, pass through unchanged.
func toApiErr(err error) error {
	var (
		apiErr   *errs.ApiErr
		fieldErr *models.FieldError
		denied   *access.DeniedError
	)
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &fieldErr):
		return errs.NewBadRequestErrorWithField(fieldErr.Error(), fieldErr.Field, "")
	case errors.As(err, &denied):
		return errs.NewAccessDeniedError(denied.Reason)
	case errors.Is(err, access.ErrNoSession):
		return errs.NewMissingSessionError(access.LoginPath)
	case errors.Is(err, auth.ErrExpiredToken), errors.Is(err, auth.ErrRevokedToken), errors.Is(err, auth.ErrInvalidToken):
		return errs.NewExpiredSessionError()
	case errors.Is(err, auth.ErrInvalidCredentials):
		return errs.NewInvalidCredentialsError()
	case errors.Is(err, auth.ErrLoginDisabled):
		return errs.NewServiceUnavailableError("login", err)
	case errors.Is(err, finance.ErrInvalidPrice):
		return errs.NewInvalidFieldError("price", err.Error())
	case errors.Is(err, finance.ErrInvalidEconomics):
		return errs.NewBadRequestErrorWithField(err.Error(), "economics", "")
	case errors.Is(err, finance.ErrUnprofitable):
		return errs.NewBadRequestErrorWithField(err.Error(), "price", "")
	}
	return err
}

// storeError classifies an error from a repository write. Validation failures
// raised by the model hooks become 400s; the rest go through the database
// error classification.
func storeError(operation, entity string, err error) error {
	var fieldErr *models.FieldError
	if errors.As(err, &fieldErr) {
		return toApiErr(fieldErr)
	}
	return errs.NewDatabaseError(operation, entity, err)
}

// errorNotifier posts unexpected server errors to a webhook.
type errorNotifier struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

func newErrorNotifier(url string, logger zerolog.Logger) *errorNotifier {
	if url == "" {
		return nil
	}
	return &errorNotifier{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
		logger: logger,
	}
}

func (n *errorNotifier) notify(errMsg string) {
	if n == nil {
		return
	}
	go n.send(errMsg)
}

func (n *errorNotifier) send(errMsg string) {
	jsonData, err := json.Marshal(map[string]string{
		"errorMessage": errMsg,
		"service":      "opsboard",
	})
	if err != nil {
		n.logger.Error().Err(err).Msg("Error marshaling error notification request")
		return
	}

	resp, err := n.client.Post(n.url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		n.logger.Error().Err(err).Msg("Error sending error notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		n.logger.Error().Msgf("Error notification service returned status: %d", resp.StatusCode)
	}
}
