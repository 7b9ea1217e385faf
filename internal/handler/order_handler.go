package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"aroma-kart/internal/model"
	"aroma-kart/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler serves the storefront order endpoints.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Place handles POST /api/orders/add-order.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req model.PlaceOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	result, err := h.service.PlaceOrder(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK,
		fmt.Sprintf("Your order has been placed successfully with order number %d.", result.OrderNumber),
		map[string]interface{}{"orderId": result.OrderID, "orderNumber": result.OrderNumber})
}

// Track handles POST /api/orders/track-order.
func (h *OrderHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req model.TrackOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.service.TrackOrder(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Order found.", order)
}

// List handles GET /api/admin/orders with optional status, page and limit
// query parameters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *model.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := model.ParseOrderStatus(raw)
		if err != nil {
			writeError(w, err, h.logger)
			return
		}
		status = &parsed
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	orders, total, err := h.service.ListOrders(r.Context(), status, page, limit)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Orders retrieved.", map[string]interface{}{
		"orders":     orders,
		"totalCount": total,
	})
}
