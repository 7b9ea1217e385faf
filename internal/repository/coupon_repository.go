package repository

import (
	"context"
	"fmt"

	"aroma-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const couponColumns = `id, store_id, code, discount_value, min_purchase, expires_at, usage_limit, used_count, is_active, created_at`

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

func scanCoupon(row pgx.Row, c *model.Coupon) error {
	return row.Scan(
		&c.ID,
		&c.StoreID,
		&c.Code,
		&c.DiscountValue,
		&c.MinPurchase,
		&c.ExpiresAt,
		&c.UsageLimit,
		&c.UsedCount,
		&c.IsActive,
		&c.CreatedAt,
	)
}

// GetByCode retrieves a coupon by code for the store.
func (r *couponRepository) GetByCode(ctx context.Context, storeID uuid.UUID, code string) (*model.Coupon, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM coupons
		WHERE store_id = $1 AND code = $2
	`, couponColumns)

	var c model.Coupon
	err := scanCoupon(r.pool.QueryRow(ctx, query, storeID, code), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return &c, nil
}

// CommitUsage atomically increments the coupon's used count. The filter only
// requires the coupon to exist for the store; the usage cap is enforced on
// the read path, not here.
func (r *couponRepository) CommitUsage(ctx context.Context, storeID uuid.UUID, code string) error {
	query := `
		UPDATE coupons
		SET used_count = used_count + 1
		WHERE store_id = $1 AND code = $2
	`

	tag, err := r.pool.Exec(ctx, query, storeID, code)
	if err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to commit coupon usage")
		return fmt.Errorf("failed to commit coupon usage: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("code", code).Msg("coupon not found for usage commit")
		return model.ErrCouponNotFound
	}

	r.logger.Debug().Str("code", code).Msg("coupon usage committed")

	return nil
}

// Create inserts a new coupon for the store.
func (r *couponRepository) Create(ctx context.Context, c *model.Coupon) error {
	query := `
		INSERT INTO coupons (store_id, code, discount_value, min_purchase, expires_at, usage_limit, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, used_count, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		c.StoreID,
		c.Code,
		c.DiscountValue,
		c.MinPurchase,
		c.ExpiresAt,
		c.UsageLimit,
		c.IsActive,
	).Scan(&c.ID, &c.UsedCount, &c.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("code", c.Code).Msg("failed to create coupon")
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	return nil
}

// Delete removes a coupon by code.
func (r *couponRepository) Delete(ctx context.Context, storeID uuid.UUID, code string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM coupons WHERE store_id = $1 AND code = $2`, storeID, code)
	if err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to delete coupon")
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrCouponNotFound
	}

	return nil
}

// ListByStore retrieves all coupons for the store.
func (r *couponRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]model.Coupon, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM coupons
		WHERE store_id = $1
		ORDER BY created_at DESC
	`, couponColumns)

	rows, err := r.pool.Query(ctx, query, storeID)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query coupons")
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []model.Coupon
	for rows.Next() {
		var c model.Coupon
		if err := scanCoupon(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan coupon row")
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating coupon rows")
		return nil, fmt.Errorf("error iterating coupons: %w", err)
	}

	return coupons, nil
}
