package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// OrderNumberCounter is the sequence that issues order numbers.
const OrderNumberCounter = "orderId"

// counterSeed is the value a counter starts from; the first allocation
// returns counterSeed + 1.
const counterSeed = 1000

// counterRepository implements the CounterRepository interface using PostgreSQL.
type counterRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCounterRepository creates a new PostgreSQL-backed counter repository.
func NewCounterRepository(pool *pgxpool.Pool, logger zerolog.Logger) CounterRepository {
	return &counterRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "counter").Logger(),
	}
}

// AllocateNext finds-or-creates the named counter and atomically increments
// it. The whole operation is a single statement, so concurrent callers are
// serialised by the row lock and always receive distinct, increasing values.
func (r *counterRepository) AllocateNext(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO counters (name, value)
		VALUES ($1, $2 + 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value
	`

	var value int64
	if err := r.pool.QueryRow(ctx, query, name, counterSeed).Scan(&value); err != nil {
		r.logger.Error().Err(err).Str("counter", name).Msg("failed to allocate counter value")
		return 0, fmt.Errorf("failed to allocate counter value: %w", err)
	}

	r.logger.Debug().Str("counter", name).Int64("value", value).Msg("counter value allocated")

	return value, nil
}
