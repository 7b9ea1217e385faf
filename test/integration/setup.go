package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"aroma-kart/internal/database"
	"aroma-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB starts a PostgreSQL container, applies the migrations and
// returns a pool connected to it.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	if err := database.Migrate(connStr, "../../migrations", zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	poolConfig.MaxConns = 20

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedStore inserts the store row and returns its id.
func SeedStore(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	storeID := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO stores (id, promo_messages, shipping_charges, free_shipping_above)
		 VALUES ($1, $2, $3, $4)`,
		storeID, []string{"Free delivery this week"}, 5.0, 75.0)
	if err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	return storeID
}

// SeedProduct inserts one product with the given stock and returns its id.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, name string, stock int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO products (id, name, size_prices, category, stock)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, name, []model.SizePrice{{Size: "50ml", Price: 29.99}}, "UNISEX", stock)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", name, err)
	}
	return id
}

// SeedCoupon inserts a coupon for the store.
func SeedCoupon(t *testing.T, pool *pgxpool.Pool, storeID uuid.UUID, code string, usageLimit, usedCount int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO coupons (store_id, code, discount_value, min_purchase, expires_at, usage_limit, used_count, is_active)
		 VALUES ($1, $2, 10, 0, now() + interval '30 days', $3, $4, TRUE)`,
		storeID, code, usageLimit, usedCount)
	if err != nil {
		t.Fatalf("failed to seed coupon %s: %v", code, err)
	}
}

// fixedEligibilityTime pins coupon eligibility checks. It falls well before
// the seeded expiry dates.
func fixedEligibilityTime() time.Time {
	return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
}

// CleanupDB removes all rows and resets the order counter.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "reviews", "coupons", "admin_activities", "admins", "products", "stores"}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	if _, err := pool.Exec(ctx, "UPDATE counters SET value = 1000 WHERE name = 'orderId'"); err != nil {
		t.Logf("failed to reset counter: %v", err)
	}
}
