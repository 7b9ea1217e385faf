package service

import (
	"context"

	"aroma-kart/internal/model"

	"github.com/google/uuid"
)

// OrderService defines the customer-facing order operations, including the
// placement workflow.
type OrderService interface {
	// PlaceOrder runs one placement attempt: validate, reserve stock,
	// allocate an order number, persist, then apply the coupon and notify
	// admins best-effort.
	PlaceOrder(ctx context.Context, req *model.PlaceOrderRequest) (*model.PlacementResult, error)

	// TrackOrder looks an order up by number plus email or phone.
	TrackOrder(ctx context.Context, req *model.TrackOrderRequest) (*model.OrderWithItems, error)

	// ListOrders retrieves orders newest-first with an optional status
	// filter, returning the matching total alongside the page.
	ListOrders(ctx context.Context, status *model.OrderStatus, page, limit int) ([]model.Order, int, error)
}

// CouponService defines the read-path coupon evaluation.
type CouponService interface {
	// Apply evaluates a coupon's eligibility. It never mutates usage.
	Apply(ctx context.Context, code string) (*model.Coupon, error)
}

// ProductService defines storefront catalogue operations.
type ProductService interface {
	// GetAll retrieves the catalogue, excluding soft-deleted products.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetDetails retrieves a product together with its approved-review stats.
	GetDetails(ctx context.Context, id uuid.UUID) (*model.Product, *model.ProductReviewStats, error)

	// Search performs a prefix-priority name search.
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// ReviewService defines storefront review operations.
type ReviewService interface {
	// Add submits a review, derives the purchase-verified flag from order
	// history and notifies super admins.
	Add(ctx context.Context, productID uuid.UUID, req *model.ReviewRequest) (*model.Review, error)

	// ListApproved retrieves a page of approved reviews for a product.
	ListApproved(ctx context.Context, productID uuid.UUID, page int) ([]model.Review, error)
}

// StoreService defines storefront settings and coupon administration.
type StoreService interface {
	// Initials retrieves the public storefront bootstrap payload.
	Initials(ctx context.Context) (*model.StoreInitials, error)

	// UpdatePromoMessages replaces the storefront promo messages.
	UpdatePromoMessages(ctx context.Context, messages []string) (*model.Store, error)

	// UpdateShipping replaces the shipping settings.
	UpdateShipping(ctx context.Context, charges, freeAbove float64) (*model.Store, error)

	// AddCoupon creates a coupon for the store.
	AddCoupon(ctx context.Context, coupon *model.Coupon) error

	// DeleteCoupon removes a coupon by code.
	DeleteCoupon(ctx context.Context, code string) error

	// ListCoupons retrieves all coupons for the store.
	ListCoupons(ctx context.Context) ([]model.Coupon, error)
}

// AdminService defines the back-office operations.
type AdminService interface {
	// ChangeOrderStatus validates the transition and updates the order.
	ChangeOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error)

	// DeleteOrder removes an order.
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error

	// GetOrderByNumber retrieves an order by its number.
	GetOrderByNumber(ctx context.Context, number int64) (*model.OrderWithItems, error)

	// ProductsOverview aggregates the admin products page.
	ProductsOverview(ctx context.Context) (*model.ProductsOverview, error)

	// AddProduct creates a product.
	AddProduct(ctx context.Context, p *model.Product) error

	// UpdateProduct applies admin edits to a product.
	UpdateProduct(ctx context.Context, id uuid.UUID, upd *model.ProductUpdate) (*model.Product, error)

	// DeleteProduct soft-deletes a product.
	DeleteProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// RestoreProduct restores a soft-deleted product.
	RestoreProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// ReviewsByStatus retrieves a moderation page with the matching total.
	ReviewsByStatus(ctx context.Context, status model.ReviewStatus, page int) ([]model.Review, int, error)

	// ModerateReview moves a review to APPROVED or REJECTED.
	ModerateReview(ctx context.Context, id uuid.UUID, status model.ReviewStatus) (*model.Review, error)

	// Overview assembles the dashboard landing page.
	Overview(ctx context.Context) (*model.Overview, error)

	// SalesByMonth returns monthly shipped-or-delivered revenue for the
	// trailing year.
	SalesByMonth(ctx context.Context) ([]model.MonthlySales, error)

	// RegisterDeviceToken stores an admin push token.
	RegisterDeviceToken(ctx context.Context, adminID uuid.UUID, token string) error

	// RecordActivity appends an audit entry.
	RecordActivity(ctx context.Context, adminName, action string) error

	// ListActivities retrieves a page of audit entries.
	ListActivities(ctx context.Context, page int) ([]model.Activity, error)

	// ListAdmins retrieves all admins.
	ListAdmins(ctx context.Context) ([]model.Admin, error)

	// AddAdmin creates an admin.
	AddAdmin(ctx context.Context, admin *model.Admin) error

	// DeleteAdmin removes an admin.
	DeleteAdmin(ctx context.Context, id uuid.UUID) error
}
