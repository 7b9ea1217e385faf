package repository

import (
	"context"
	"fmt"
	"time"

	"aroma-kart/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// statsRepository implements the StatsRepository interface using PostgreSQL.
type statsRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewStatsRepository creates a new PostgreSQL-backed stats repository.
func NewStatsRepository(pool *pgxpool.Pool, logger zerolog.Logger) StatsRepository {
	return &statsRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "stats").Logger(),
	}
}

// Overview assembles the dashboard landing-page numbers. Revenue counts
// shipped orders only; customers are distinct order emails.
func (r *statsRepository) Overview(ctx context.Context, lowStockBelow int) (*model.Overview, error) {
	var overview model.Overview

	summaryQuery := `
		SELECT
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(order_total), 0) FROM orders WHERE status = 'SHIPPED'),
			(SELECT COUNT(DISTINCT customer ->> 'email') FROM orders),
			(SELECT COUNT(*) FROM orders WHERE status = 'PENDING'),
			(SELECT COUNT(*) FROM products WHERE NOT is_deleted AND stock < $1),
			(SELECT COUNT(*) FROM reviews WHERE status = 'PENDING')
	`

	err := r.pool.QueryRow(ctx, summaryQuery, lowStockBelow).Scan(
		&overview.TotalOrders,
		&overview.TotalRevenue,
		&overview.TotalCustomers,
		&overview.Alerts.PendingOrders,
		&overview.Alerts.LowStockProducts,
		&overview.Alerts.PendingReviews,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query overview summary")
		return nil, fmt.Errorf("failed to query overview summary: %w", err)
	}

	recentQuery := fmt.Sprintf(`
		SELECT %s
		FROM orders
		ORDER BY created_at DESC
		LIMIT 5
	`, orderColumns)

	rows, err := r.pool.Query(ctx, recentQuery)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query recent orders")
		return nil, fmt.Errorf("failed to query recent orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan recent order row")
			return nil, fmt.Errorf("failed to scan recent order: %w", err)
		}
		overview.RecentOrders = append(overview.RecentOrders, o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating recent order rows")
		return nil, fmt.Errorf("error iterating recent orders: %w", err)
	}

	topQuery := `
		SELECT p.id, p.name, p.images, SUM(i.quantity) AS total_sold
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		GROUP BY p.id, p.name, p.images
		ORDER BY total_sold DESC
		LIMIT 5
	`

	topRows, err := r.pool.Query(ctx, topQuery)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query top products")
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer topRows.Close()

	for topRows.Next() {
		var tp model.TopProduct
		if err := topRows.Scan(&tp.ProductID, &tp.Name, &tp.Images, &tp.TotalSold); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan top product row")
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		overview.TopProducts = append(overview.TopProducts, tp)
	}
	if err := topRows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating top product rows")
		return nil, fmt.Errorf("error iterating top products: %w", err)
	}

	return &overview, nil
}

// MonthlySales groups shipped and delivered revenue by month since the given time.
func (r *statsRepository) MonthlySales(ctx context.Context, since time.Time) ([]model.MonthlySales, error) {
	query := `
		SELECT
			EXTRACT(YEAR FROM created_at)::int,
			EXTRACT(MONTH FROM created_at)::int,
			COALESCE(SUM(order_total), 0)
		FROM orders
		WHERE created_at >= $1 AND status IN ('SHIPPED', 'DELIVERED')
		GROUP BY 1, 2
		ORDER BY 1, 2
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query monthly sales")
		return nil, fmt.Errorf("failed to query monthly sales: %w", err)
	}
	defer rows.Close()

	var sales []model.MonthlySales
	for rows.Next() {
		var m model.MonthlySales
		if err := rows.Scan(&m.Year, &m.Month, &m.TotalSales); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan monthly sales row")
			return nil, fmt.Errorf("failed to scan monthly sales: %w", err)
		}
		sales = append(sales, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating monthly sales rows")
		return nil, fmt.Errorf("error iterating monthly sales: %w", err)
	}

	return sales, nil
}
