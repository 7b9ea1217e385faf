package service

import (
	"context"
	"fmt"
	"strings"

	"aroma-kart/internal/model"
	"aroma-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// storeService implements StoreService.
type storeService struct {
	storeRepo  repository.StoreRepository
	couponRepo repository.CouponRepository
	storeID    uuid.UUID
	logger     zerolog.Logger
}

// NewStoreService creates a new store service.
func NewStoreService(storeRepo repository.StoreRepository, couponRepo repository.CouponRepository, storeID uuid.UUID, logger zerolog.Logger) StoreService {
	return &storeService{
		storeRepo:  storeRepo,
		couponRepo: couponRepo,
		storeID:    storeID,
		logger:     logger.With().Str("service", "store").Logger(),
	}
}

// Initials retrieves the public storefront bootstrap payload.
func (s *storeService) Initials(ctx context.Context) (*model.StoreInitials, error) {
	store, err := s.storeRepo.Get(ctx, s.storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get store initials: %w", err)
	}
	if store == nil {
		return nil, model.NewDomainError(model.ErrCodeInternalError, "Store is not configured.")
	}

	return &model.StoreInitials{
		PromoMessages:     store.PromoMessages,
		ShippingCharges:   store.ShippingCharges,
		FreeShippingAbove: store.FreeShippingAbove,
	}, nil
}

// UpdatePromoMessages replaces the storefront promo messages.
func (s *storeService) UpdatePromoMessages(ctx context.Context, messages []string) (*model.Store, error) {
	cleaned := make([]string, 0, len(messages))
	for _, m := range messages {
		if m = strings.TrimSpace(m); m != "" {
			cleaned = append(cleaned, m)
		}
	}

	store, err := s.storeRepo.UpdatePromoMessages(ctx, s.storeID, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to update promo messages: %w", err)
	}
	return store, nil
}

// UpdateShipping replaces the shipping settings.
func (s *storeService) UpdateShipping(ctx context.Context, charges, freeAbove float64) (*model.Store, error) {
	if charges < 0 || freeAbove < 0 {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Shipping amounts cannot be negative.")
	}

	store, err := s.storeRepo.UpdateShipping(ctx, s.storeID, charges, freeAbove)
	if err != nil {
		return nil, fmt.Errorf("failed to update shipping settings: %w", err)
	}
	return store, nil
}

// AddCoupon creates a coupon for the store.
func (s *storeService) AddCoupon(ctx context.Context, coupon *model.Coupon) error {
	coupon.Code = strings.ToUpper(strings.TrimSpace(coupon.Code))
	if coupon.Code == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Coupon code is required.")
	}
	if coupon.DiscountValue <= 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "Discount value must be positive.")
	}
	if coupon.UsageLimit < 1 {
		return model.NewDomainError(model.ErrCodeMissingField, "Usage limit must be at least 1.")
	}

	coupon.ID = uuid.New()
	coupon.StoreID = s.storeID
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return fmt.Errorf("failed to add coupon: %w", err)
	}

	s.logger.Info().Str("coupon_code", coupon.Code).Msg("coupon created")
	return nil
}

// DeleteCoupon removes a coupon by code.
func (s *storeService) DeleteCoupon(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Coupon code is required.")
	}

	if err := s.couponRepo.Delete(ctx, s.storeID, code); err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	s.logger.Info().Str("coupon_code", code).Msg("coupon deleted")
	return nil
}

// ListCoupons retrieves all coupons for the store.
func (s *storeService) ListCoupons(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.couponRepo.ListByStore(ctx, s.storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}
