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

// couponService implements CouponService.
type couponService struct {
	couponRepo repository.CouponRepository
	storeID    uuid.UUID
	logger     zerolog.Logger
	now        func() time.Time
}

// NewCouponService creates a new coupon service.
func NewCouponService(couponRepo repository.CouponRepository, storeID uuid.UUID, logger zerolog.Logger) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		storeID:    storeID,
		logger:     logger.With().Str("service", "coupon").Logger(),
		now:        time.Now,
	}
}

// Apply checks a coupon against expiry, activation and the usage cap. The
// used count only moves when an order carrying the coupon is placed.
func (s *couponService) Apply(ctx context.Context, code string) (*model.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Coupon code is required.")
	}

	coupon, err := s.couponRepo.GetByCode(ctx, s.storeID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to apply coupon: %w", err)
	}
	if coupon == nil {
		return nil, model.ErrCouponNotFound
	}

	if err := coupon.Eligible(s.now()); err != nil {
		return nil, err
	}

	return coupon, nil
}
