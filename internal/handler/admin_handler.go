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

// AdminHandler serves the back-office endpoints.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

// ChangeOrderStatus handles PUT /api/admin/orders/{id}/status.
func (h *AdminHandler) ChangeOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "Order ID is not valid."), h.logger)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	status, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.ChangeOrderStatus(r.Context(), orderID, status)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Order status updated.", order)
}

// DeleteOrder handles DELETE /api/admin/orders/{id}.
func (h *AdminHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "Order ID is not valid."), h.logger)
		return
	}

	if err := h.service.DeleteOrder(r.Context(), orderID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Order deleted.", nil)
}

// GetOrder handles GET /api/admin/orders/{number}.
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "Order number is not valid."), h.logger)
		return
	}

	order, err := h.service.GetOrderByNumber(r.Context(), number)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Order retrieved.", order)
}

// ProductsOverview handles GET /api/admin/products.
func (h *AdminHandler) ProductsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.ProductsOverview(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Products overview retrieved.", overview)
}

// AddProduct handles POST /api/admin/products.
func (h *AdminHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := decodeJSON(r, &product); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.AddProduct(r.Context(), &product); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Product created.", product)
}

// UpdateProduct handles PUT /api/admin/products/{id}.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "Product ID is not valid."), h.logger)
		return
	}

	var upd model.ProductUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeError(w, err, h.logger)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), id, &upd)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Product updated.", product)
}

// DeleteProduct handles DELETE /api/admin/products/{id}.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "Product ID is not valid."), h.logger)
		return
	}

	product, err := h.service.DeleteProduct(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Product deleted.", product)
}

// RestoreProduct handles PUT /api/admin/products/{id}/restore.
func (h *AdminHandler) RestoreProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "Product ID is not valid."), h.logger)
		return
	}

	product, err := h.service.RestoreProduct(r.Context(), id)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Product restored.", product)
}

// ListReviews handles GET /api/admin/reviews?status=&page=.
func (h *AdminHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	status := model.ReviewPending
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := model.ParseReviewStatus(raw)
		if err != nil {
			writeError(w, err, h.logger)
			return
		}
		status = parsed
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	reviews, total, err := h.service.ReviewsByStatus(r.Context(), status, page)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Reviews retrieved.", map[string]interface{}{
		"reviews":    reviews,
		"totalCount": total,
	})
}

// ModerateReview handles PUT /api/admin/reviews/{id}/status.
func (h *AdminHandler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "Review ID is not valid."), h.logger)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	status, err := model.ParseReviewStatus(req.Status)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	review, err := h.service.ModerateReview(r.Context(), id, status)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Review moderated.", review)
}

// Overview handles GET /api/admin/dashboard.
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Dashboard retrieved.", overview)
}

// SalesByMonth handles GET /api/admin/dashboard/monthly-sales.
func (h *AdminHandler) SalesByMonth(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.SalesByMonth(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Monthly sales retrieved.", sales)
}

// RegisterDeviceToken handles POST /api/admin/admins/{id}/fcm-token.
func (h *AdminHandler) RegisterDeviceToken(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "Admin ID is not valid."), h.logger)
		return
	}

	var req struct {
		Token string `json:"fcmToken"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.RegisterDeviceToken(r.Context(), adminID, req.Token); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Device token registered.", nil)
}

// RecordActivity handles POST /api/admin/activities.
func (h *AdminHandler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminName string `json:"adminName"`
		Action    string `json:"action"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.RecordActivity(r.Context(), req.AdminName, req.Action); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Activity recorded.", nil)
}

// ListActivities handles GET /api/admin/activities?page=.
func (h *AdminHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	activities, err := h.service.ListActivities(r.Context(), page)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Activities retrieved.", activities)
}

// ListAdmins handles GET /api/admin/admins.
func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.service.ListAdmins(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Admins retrieved.", admins)
}

// AddAdmin handles POST /api/admin/admins.
func (h *AdminHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	var admin model.Admin
	if err := decodeJSON(r, &admin); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.AddAdmin(r.Context(), &admin); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Admin created.", admin)
}

// DeleteAdmin handles DELETE /api/admin/admins/{id}.
func (h *AdminHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.NewDomainError(model.ErrCodeMissingField, "Admin ID is not valid."), h.logger)
		return
	}

	if err := h.service.DeleteAdmin(r.Context(), id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Admin deleted.", nil)
}
