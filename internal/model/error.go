package model

import "fmt"

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeEmptyOrder         = "EMPTY_ORDER"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeReviewNotFound     = "REVIEW_NOT_FOUND"
	ErrCodeCouponNotFound     = "COUPON_NOT_FOUND"
	ErrCodeCouponExpired      = "COUPON_EXPIRED"
	ErrCodeCouponInactive     = "COUPON_INACTIVE"
	ErrCodeCouponExhausted    = "COUPON_EXHAUSTED"
	ErrCodeInsufficientStock  = "INSUFFICIENT_STOCK"
	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeIllegalTransition  = "ILLEGAL_TRANSITION"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyOrder        = NewDomainError(ErrCodeEmptyOrder, "Order must contain at least one product")
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrReviewNotFound    = NewDomainError(ErrCodeReviewNotFound, "Review not found")
	ErrCouponNotFound    = NewDomainError(ErrCodeCouponNotFound, "Invalid coupon code")
	ErrCouponExpired     = NewDomainError(ErrCodeCouponExpired, "Coupon has expired")
	ErrCouponInactive    = NewDomainError(ErrCodeCouponInactive, "Coupon is not active")
	ErrCouponExhausted   = NewDomainError(ErrCodeCouponExhausted, "Coupon has reached its usage limit")
	ErrInvalidStatus     = NewDomainError(ErrCodeInvalidStatus, "Unknown order status")
	ErrIllegalTransition = NewDomainError(ErrCodeIllegalTransition, "Order status transition is not allowed")
)

// ShortageLine reports one cart line whose requested quantity exceeds the
// available stock.
type ShortageLine struct {
	Name      string `json:"name"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

// ShortageError rejects an order placement because one or more products are
// short on stock. No stock mutation has been applied when it is returned.
type ShortageError struct {
	Lines []ShortageLine
}

func (e *ShortageError) Error() string {
	return fmt.Sprintf("insufficient stock for %d product(s)", len(e.Lines))
}
