package model

import (
	"time"

	"github.com/google/uuid"
)

// Store holds the storefront-wide settings. A deployment has exactly one
// store row; its id is injected through configuration.
type Store struct {
	ID                uuid.UUID `json:"id" db:"id"`
	PromoMessages     []string  `json:"promoMessages" db:"promo_messages"`
	ShippingCharges   float64   `json:"shippingCharges" db:"shipping_charges"`
	FreeShippingAbove float64   `json:"freeShippingAbove" db:"free_shipping_above"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// Coupon is a discount code owned by the store. UsedCount is only ever
// mutated through the atomic usage increment.
type Coupon struct {
	ID            uuid.UUID `json:"id" db:"id"`
	StoreID       uuid.UUID `json:"-" db:"store_id"`
	Code          string    `json:"code" db:"code"`
	DiscountValue float64   `json:"discountValue" db:"discount_value"`
	MinPurchase   float64   `json:"minPurchase" db:"min_purchase"`
	ExpiresAt     time.Time `json:"expiresAt" db:"expires_at"`
	UsageLimit    int       `json:"usageLimit" db:"usage_limit"`
	UsedCount     int       `json:"usedCount" db:"used_count"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	CreatedAt     time.Time `json:"-" db:"created_at"`
}

// Eligible checks expiry, the active flag and the usage cap at a point in
// time. This is the advisory read-path check; the usage increment itself is
// not conditioned on the cap.
func (c *Coupon) Eligible(now time.Time) error {
	if c.ExpiresAt.Before(now) {
		return ErrCouponExpired
	}
	if !c.IsActive {
		return ErrCouponInactive
	}
	if c.UsedCount >= c.UsageLimit {
		return ErrCouponExhausted
	}
	return nil
}

// StoreInitials is the public storefront bootstrap payload.
type StoreInitials struct {
	PromoMessages     []string `json:"promoMessages"`
	ShippingCharges   float64  `json:"shippingCharges"`
	FreeShippingAbove float64  `json:"freeShippingAbove"`
}
