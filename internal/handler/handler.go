package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"aroma-kart/internal/model"

	"github.com/rs/zerolog"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// writeJSON writes the envelope with the given status code.
func writeJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Response{Message: message, Data: data}); err != nil {
		// The status line is already gone; nothing useful left to do.
		return
	}
}

// writeError maps a service error onto the right status code and envelope.
// Shortage reports carry the per-product lines as data so the storefront can
// render them.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var shortage *model.ShortageError
	if errors.As(err, &shortage) {
		logger.Warn().Int("lines", len(shortage.Lines)).Msg("order rejected on insufficient stock")
		writeJSON(w, http.StatusBadRequest, "Some products do not have enough stock.", shortage.Lines)
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := statusForCode(domainErr.Code)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("code", domainErr.Code).Msg("handler error")
		} else {
			logger.Warn().Str("code", domainErr.Code).Str("error", domainErr.Message).Msg("request rejected")
		}
		writeJSON(w, status, domainErr.Message, nil)
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, "Something went wrong. Please try again.", nil)
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON,
		model.ErrCodeMissingField,
		model.ErrCodeInvalidQuantity,
		model.ErrCodeInvalidRating,
		model.ErrCodeEmptyOrder,
		model.ErrCodeInsufficientStock,
		model.ErrCodeCouponExpired,
		model.ErrCodeCouponInactive,
		model.ErrCodeCouponExhausted,
		model.ErrCodeInvalidStatus:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeProductNotFound,
		model.ErrCodeOrderNotFound,
		model.ErrCodeReviewNotFound,
		model.ErrCodeCouponNotFound:
		return http.StatusNotFound
	case model.ErrCodeIllegalTransition:
		return http.StatusConflict
	case model.ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads the request body into dst, rejecting malformed payloads.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "Request body is not valid JSON.")
	}
	return nil
}
