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

const storeColumns = `id, promo_messages, shipping_charges, free_shipping_above, created_at, updated_at`

// storeRepository implements the StoreRepository interface using PostgreSQL.
type storeRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewStoreRepository creates a new PostgreSQL-backed store repository.
func NewStoreRepository(pool *pgxpool.Pool, logger zerolog.Logger) StoreRepository {
	return &storeRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "store").Logger(),
	}
}

func scanStore(row pgx.Row, s *model.Store) error {
	return row.Scan(
		&s.ID,
		&s.PromoMessages,
		&s.ShippingCharges,
		&s.FreeShippingAbove,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

// Get retrieves the store row.
func (r *storeRepository) Get(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	query := fmt.Sprintf(`SELECT %s FROM stores WHERE id = $1`, storeColumns)

	var s model.Store
	err := scanStore(r.pool.QueryRow(ctx, query, id), &s)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("store_id", id.String()).Msg("store not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("store_id", id.String()).Msg("failed to query store")
		return nil, fmt.Errorf("failed to query store: %w", err)
	}

	return &s, nil
}

// UpdatePromoMessages replaces the storefront promo messages.
func (r *storeRepository) UpdatePromoMessages(ctx context.Context, id uuid.UUID, messages []string) (*model.Store, error) {
	query := fmt.Sprintf(`
		UPDATE stores
		SET promo_messages = $2, updated_at = now()
		WHERE id = $1
		RETURNING %s
	`, storeColumns)

	var s model.Store
	err := scanStore(r.pool.QueryRow(ctx, query, id, messages), &s)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("store_id", id.String()).Msg("failed to update promo messages")
		return nil, fmt.Errorf("failed to update promo messages: %w", err)
	}

	return &s, nil
}

// UpdateShipping replaces the shipping settings.
func (r *storeRepository) UpdateShipping(ctx context.Context, id uuid.UUID, charges, freeAbove float64) (*model.Store, error) {
	query := fmt.Sprintf(`
		UPDATE stores
		SET shipping_charges = $2, free_shipping_above = $3, updated_at = now()
		WHERE id = $1
		RETURNING %s
	`, storeColumns)

	var s model.Store
	err := scanStore(r.pool.QueryRow(ctx, query, id, charges, freeAbove), &s)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("store_id", id.String()).Msg("failed to update shipping settings")
		return nil, fmt.Errorf("failed to update shipping settings: %w", err)
	}

	return &s, nil
}
