package handler

import (
	"net/http"
	"strconv"

	"aroma-kart/internal/model"
	"aroma-kart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReviewHandler serves the storefront review endpoints.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// Add handles POST /api/products/{id}/reviews.
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "Product ID is not valid."), h.logger)
		return
	}

	var req model.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	review, err := h.service.Add(r.Context(), productID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Your review has been submitted for moderation.", review)
}

// ListApproved handles GET /api/products/{id}/reviews?page=.
func (h *ReviewHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "Product ID is not valid."), h.logger)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	reviews, err := h.service.ListApproved(r.Context(), productID, page)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Reviews retrieved.", reviews)
}
