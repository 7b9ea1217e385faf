package repository

import (
	"context"
	"time"

	"aroma-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines data access for the catalogue and doubles as the
// inventory ledger: stock is only ever decremented through ApplyStockDeltas.
type ProductRepository interface {
	// GetAll retrieves catalogue products. Soft-deleted products are
	// excluded unless includeDeleted is set.
	GetAll(ctx context.Context, includeDeleted bool) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Search performs a name search with prefix matches sorted first.
	Search(ctx context.Context, query string) ([]model.SearchResult, error)

	// Create inserts a new product and fills in its generated fields.
	Create(ctx context.Context, p *model.Product) error

	// Update applies the non-nil fields of upd. A stock value here is an
	// explicit admin override outside the ledger arithmetic.
	Update(ctx context.Context, id uuid.UUID, upd *model.ProductUpdate) (*model.Product, error)

	// SetDeleted flips the soft-delete flag.
	SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) (*model.Product, error)

	// Overview aggregates counts and lists for the admin products page.
	Overview(ctx context.Context, lowStockBelow int) (*model.ProductsOverview, error)

	// StockSnapshot reads (id, name, stock) for the given products in one
	// query, within the supplied transaction.
	StockSnapshot(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]model.StockLevel, error)

	// ApplyStockDeltas issues one conditional batch decrement: each
	// product's stock is reduced by its delta only while stock remains
	// sufficient. It returns the number of rows that passed the guard;
	// the caller must roll the transaction back when that count is short.
	ApplyStockDeltas(ctx context.Context, tx pgx.Tx, deltas []model.StockDelta) (int64, error)
}

// OrderRepository defines data access for orders and their line items.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's line items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order with its items. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderWithItems, error)

	// GetByNumber retrieves an order with its items by order number.
	GetByNumber(ctx context.Context, number int64) (*model.OrderWithItems, error)

	// FindForTracking matches an order by number plus the customer's email
	// or phone, for the public tracking endpoint.
	FindForTracking(ctx context.Context, number int64, email, phone string) (*model.OrderWithItems, error)

	// List retrieves orders newest-first, optionally filtered by status.
	List(ctx context.Context, status *model.OrderStatus, limit, offset int) ([]model.Order, error)

	// CountByStatus counts orders in the given status. A nil status counts all.
	CountByStatus(ctx context.Context, status *model.OrderStatus) (int, error)

	// GetStatus reads only the current status of an order.
	GetStatus(ctx context.Context, id uuid.UUID) (model.OrderStatus, error)

	// UpdateStatus writes a new status and returns the updated order.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)

	// Delete removes an order and its items.
	Delete(ctx context.Context, id uuid.UUID) error

	// HasPurchase reports whether the email has a placed order containing
	// the product. Used to mark reviews as purchase-verified.
	HasPurchase(ctx context.Context, email string, productID uuid.UUID) (bool, error)
}

// CounterRepository allocates values from named sequences.
type CounterRepository interface {
	// AllocateNext atomically increments the named counter and returns the
	// new value. Two concurrent calls never observe the same value.
	AllocateNext(ctx context.Context, name string) (int64, error)
}

// CouponRepository defines data access for the store's coupons.
type CouponRepository interface {
	// GetByCode retrieves a coupon by code for the store. Returns nil when absent.
	GetByCode(ctx context.Context, storeID uuid.UUID, code string) (*model.Coupon, error)

	// CommitUsage atomically increments the coupon's used count. Returns
	// model.ErrCouponNotFound when no coupon matches.
	CommitUsage(ctx context.Context, storeID uuid.UUID, code string) error

	// Create inserts a new coupon for the store.
	Create(ctx context.Context, c *model.Coupon) error

	// Delete removes a coupon by code.
	Delete(ctx context.Context, storeID uuid.UUID, code string) error

	// ListByStore retrieves all coupons for the store.
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]model.Coupon, error)
}

// StoreRepository defines data access for the storefront settings row.
type StoreRepository interface {
	// Get retrieves the store row. Returns nil when absent.
	Get(ctx context.Context, id uuid.UUID) (*model.Store, error)

	// UpdatePromoMessages replaces the storefront promo messages.
	UpdatePromoMessages(ctx context.Context, id uuid.UUID, messages []string) (*model.Store, error)

	// UpdateShipping replaces the shipping settings.
	UpdateShipping(ctx context.Context, id uuid.UUID, charges, freeAbove float64) (*model.Store, error)
}

// ReviewRepository defines data access for product reviews.
type ReviewRepository interface {
	// Create inserts a new review and fills in its generated fields.
	Create(ctx context.Context, review *model.Review) error

	// ListApproved retrieves approved reviews for a product, newest first.
	ListApproved(ctx context.Context, productID uuid.UUID, limit, offset int) ([]model.Review, error)

	// Stats returns the approved-review count and average rating for a product.
	Stats(ctx context.Context, productID uuid.UUID) (int, float64, error)

	// ListByStatus retrieves reviews in a moderation state, newest first.
	ListByStatus(ctx context.Context, status model.ReviewStatus, limit, offset int) ([]model.Review, error)

	// CountByStatus counts reviews in a moderation state.
	CountByStatus(ctx context.Context, status model.ReviewStatus) (int, error)

	// UpdateStatus moves a review to a new moderation state.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReviewStatus) (*model.Review, error)
}

// AdminRepository defines data access for back-office operators and their
// audit trail.
type AdminRepository interface {
	// List retrieves all admins.
	List(ctx context.Context) ([]model.Admin, error)

	// Create inserts a new admin.
	Create(ctx context.Context, admin *model.Admin) error

	// Delete removes an admin by id.
	Delete(ctx context.Context, id uuid.UUID) error

	// AllFCMTokens collects every registered device token, optionally
	// restricted to a role. Pass nil for all roles.
	AllFCMTokens(ctx context.Context, role *model.AdminRole) ([]string, error)

	// AddFCMToken registers a device token for an admin if not present.
	AddFCMToken(ctx context.Context, adminID uuid.UUID, token string) error

	// RecordActivity appends an audit entry.
	RecordActivity(ctx context.Context, adminName, action string) error

	// ListActivities retrieves audit entries, newest first.
	ListActivities(ctx context.Context, limit, offset int) ([]model.Activity, error)
}

// StatsRepository serves the admin dashboard aggregations.
type StatsRepository interface {
	// Overview assembles the dashboard landing-page numbers.
	Overview(ctx context.Context, lowStockBelow int) (*model.Overview, error)

	// MonthlySales groups shipped and delivered revenue by month since the
	// given time.
	MonthlySales(ctx context.Context, since time.Time) ([]model.MonthlySales, error)
}
