package handler

import (
	"net/http"
	"time"

	"aroma-kart/internal/model"
	"aroma-kart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// StoreHandler serves the storefront settings and coupon endpoints.
type StoreHandler struct {
	storeService  service.StoreService
	couponService service.CouponService
	logger        zerolog.Logger
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(storeService service.StoreService, couponService service.CouponService, logger zerolog.Logger) *StoreHandler {
	return &StoreHandler{
		storeService:  storeService,
		couponService: couponService,
		logger:        logger.With().Str("handler", "store").Logger(),
	}
}

// Initials handles GET /api/store/initials.
func (h *StoreHandler) Initials(w http.ResponseWriter, r *http.Request) {
	initials, err := h.storeService.Initials(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Store settings retrieved.", initials)
}

// ApplyCoupon handles POST /api/store/apply-coupon.
func (h *StoreHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"couponCode"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	coupon, err := h.couponService.Apply(r.Context(), req.Code)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Coupon applied.", map[string]interface{}{
		"code":          coupon.Code,
		"discountValue": coupon.DiscountValue,
		"minPurchase":   coupon.MinPurchase,
	})
}

// UpdatePromoMessages handles PUT /api/admin/store/promo-messages.
func (h *StoreHandler) UpdatePromoMessages(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PromoMessages []string `json:"promoMessages"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	store, err := h.storeService.UpdatePromoMessages(r.Context(), req.PromoMessages)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Promo messages updated.", store)
}

// UpdateShipping handles PUT /api/admin/store/shipping.
func (h *StoreHandler) UpdateShipping(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShippingCharges   float64 `json:"shippingCharges"`
		FreeShippingAbove float64 `json:"freeShippingAbove"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	store, err := h.storeService.UpdateShipping(r.Context(), req.ShippingCharges, req.FreeShippingAbove)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Shipping settings updated.", store)
}

// ListCoupons handles GET /api/admin/store/coupons.
func (h *StoreHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.storeService.ListCoupons(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Coupons retrieved.", coupons)
}

// AddCoupon handles POST /api/admin/store/coupons.
func (h *StoreHandler) AddCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code          string    `json:"code"`
		DiscountValue float64   `json:"discountValue"`
		MinPurchase   float64   `json:"minPurchase"`
		ExpiresAt     time.Time `json:"expiresAt"`
		UsageLimit    int       `json:"usageLimit"`
		IsActive      *bool     `json:"isActive"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	coupon := &model.Coupon{
		Code:          req.Code,
		DiscountValue: req.DiscountValue,
		MinPurchase:   req.MinPurchase,
		ExpiresAt:     req.ExpiresAt,
		UsageLimit:    req.UsageLimit,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}

	if err := h.storeService.AddCoupon(r.Context(), coupon); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Coupon created.", coupon)
}

// DeleteCoupon handles DELETE /api/admin/store/coupons/{code}.
func (h *StoreHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	if err := h.storeService.DeleteCoupon(r.Context(), chi.URLParam(r, "code")); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, "Coupon deleted.", nil)
}
