package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aroma-kart/internal/model"
	"aroma-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// lowStockThreshold drives the dashboard and products-page alerts.
	lowStockThreshold = 10

	// reviewModerationPerPage sizes the admin review moderation pages.
	reviewModerationPerPage = 10

	// activitiesPerPage sizes the audit log pages.
	activitiesPerPage = 20
)

// adminService implements AdminService.
type adminService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	adminRepo   repository.AdminRepository
	statsRepo   repository.StatsRepository
	logger      zerolog.Logger
}

// NewAdminService creates a new admin service.
func NewAdminService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	reviewRepo repository.ReviewRepository,
	adminRepo repository.AdminRepository,
	statsRepo repository.StatsRepository,
	logger zerolog.Logger,
) AdminService {
	return &adminService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		adminRepo:   adminRepo,
		statsRepo:   statsRepo,
		logger:      logger.With().Str("service", "admin").Logger(),
	}
}

// ChangeOrderStatus moves an order along its lifecycle. The current status
// is read first so an illegal jump is rejected before any write.
func (s *adminService) ChangeOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	current, err := s.orderRepo.GetStatus(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !current.CanTransitionTo(status) {
		return nil, model.NewDomainError(model.ErrCodeIllegalTransition,
			fmt.Sprintf("Order cannot move from %s to %s.", current, status))
	}

	order, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to change order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("from", string(current)).
		Str("to", string(status)).
		Msg("order status changed")

	return order, nil
}

// DeleteOrder removes an order and its items.
func (s *adminService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	s.logger.Info().Str("order_id", orderID.String()).Msg("order deleted")
	return nil
}

// GetOrderByNumber retrieves an order with its items by order number.
func (s *adminService) GetOrderByNumber(ctx context.Context, number int64) (*model.OrderWithItems, error) {
	order, err := s.orderRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// ProductsOverview aggregates the admin products page.
func (s *adminService) ProductsOverview(ctx context.Context) (*model.ProductsOverview, error) {
	overview, err := s.productRepo.Overview(ctx, lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to get products overview: %w", err)
	}
	return overview, nil
}

// AddProduct creates a product.
func (s *adminService) AddProduct(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	p.ID = uuid.New()
	if err := s.productRepo.Create(ctx, p); err != nil {
		return fmt.Errorf("failed to add product: %w", err)
	}

	s.logger.Info().Str("product_id", p.ID.String()).Str("name", p.Name).Msg("product created")
	return nil
}

// UpdateProduct applies admin edits to a product.
func (s *adminService) UpdateProduct(ctx context.Context, id uuid.UUID, upd *model.ProductUpdate) (*model.Product, error) {
	if upd.Category != nil && !model.ValidCategory(*upd.Category) {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Unknown product category.")
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Stock cannot be negative.")
	}

	product, err := s.productRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product updated")
	return product, nil
}

// DeleteProduct soft-deletes a product so past orders keep their reference.
func (s *adminService) DeleteProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.SetDeleted(ctx, id, true)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product soft-deleted")
	return product, nil
}

// RestoreProduct brings a soft-deleted product back into the catalogue.
func (s *adminService) RestoreProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.SetDeleted(ctx, id, false)
	if err != nil {
		return nil, fmt.Errorf("failed to restore product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product restored")
	return product, nil
}

// ReviewsByStatus retrieves a moderation page with the matching total.
func (s *adminService) ReviewsByStatus(ctx context.Context, status model.ReviewStatus, page int) ([]model.Review, int, error) {
	if page < 1 {
		page = 1
	}

	reviews, err := s.reviewRepo.ListByStatus(ctx, status, reviewModerationPerPage, (page-1)*reviewModerationPerPage)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	total, err := s.reviewRepo.CountByStatus(ctx, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, total, nil
}

// ModerateReview moves a review to APPROVED or REJECTED.
func (s *adminService) ModerateReview(ctx context.Context, id uuid.UUID, status model.ReviewStatus) (*model.Review, error) {
	if status != model.ReviewApproved && status != model.ReviewRejected {
		return nil, model.NewDomainError(model.ErrCodeInvalidStatus, "Reviews can only be moderated to APPROVED or REJECTED.")
	}

	review, err := s.reviewRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to moderate review: %w", err)
	}
	if review == nil {
		return nil, model.ErrReviewNotFound
	}

	s.logger.Info().
		Str("review_id", id.String()).
		Str("status", string(status)).
		Msg("review moderated")

	return review, nil
}

// Overview assembles the dashboard landing page.
func (s *adminService) Overview(ctx context.Context) (*model.Overview, error) {
	overview, err := s.statsRepo.Overview(ctx, lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard overview: %w", err)
	}
	return overview, nil
}

// SalesByMonth returns monthly shipped-or-delivered revenue for the
// trailing twelve months.
func (s *adminService) SalesByMonth(ctx context.Context) ([]model.MonthlySales, error) {
	since := time.Now().AddDate(-1, 0, 0)
	sales, err := s.statsRepo.MonthlySales(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly sales: %w", err)
	}
	return sales, nil
}

// RegisterDeviceToken stores an admin push token.
func (s *adminService) RegisterDeviceToken(ctx context.Context, adminID uuid.UUID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Device token is required.")
	}

	if err := s.adminRepo.AddFCMToken(ctx, adminID, token); err != nil {
		return fmt.Errorf("failed to register device token: %w", err)
	}
	return nil
}

// RecordActivity appends an audit entry.
func (s *adminService) RecordActivity(ctx context.Context, adminName, action string) error {
	if strings.TrimSpace(adminName) == "" || strings.TrimSpace(action) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Admin name and action are required.")
	}

	if err := s.adminRepo.RecordActivity(ctx, adminName, action); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// ListActivities retrieves a page of audit entries.
func (s *adminService) ListActivities(ctx context.Context, page int) ([]model.Activity, error) {
	if page < 1 {
		page = 1
	}

	activities, err := s.adminRepo.ListActivities(ctx, activitiesPerPage, (page-1)*activitiesPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// ListAdmins retrieves all admins.
func (s *adminService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return admins, nil
}

// AddAdmin creates an admin.
func (s *adminService) AddAdmin(ctx context.Context, admin *model.Admin) error {
	if admin.Name == "" || admin.Email == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Admin name and email are required.")
	}
	if admin.Role != model.RoleSuperAdmin && admin.Role != model.RoleAdmin {
		return model.NewDomainError(model.ErrCodeMissingField, "Admin role must be Super Admin or Admin.")
	}

	admin.ID = uuid.New()
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to add admin: %w", err)
	}

	s.logger.Info().Str("admin_id", admin.ID.String()).Str("role", string(admin.Role)).Msg("admin created")
	return nil
}

// DeleteAdmin removes an admin.
func (s *adminService) DeleteAdmin(ctx context.Context, id uuid.UUID) error {
	if err := s.adminRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("admin_id", id.String()).Msg("admin deleted")
	return nil
}

func validateProduct(p *model.Product) error {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Product name is required.")
	}
	if len(p.SizePrices) == 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "At least one size and price is required.")
	}
	for _, sp := range p.SizePrices {
		if sp.Size == "" || sp.Price <= 0 {
			return model.NewDomainError(model.ErrCodeMissingField, "Every size needs a name and a positive price.")
		}
	}
	if !model.ValidCategory(p.Category) {
		return model.NewDomainError(model.ErrCodeMissingField, "Unknown product category.")
	}
	if p.Stock < 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Stock cannot be negative.")
	}
	if p.Discount < 0 || p.Discount > 75 {
		return model.NewDomainError(model.ErrCodeMissingField, "Discount must be between 0 and 75.")
	}
	return nil
}
