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

const productColumns = `id, name, images, size_prices, discount, ingredients, description, tags, category, stock, is_deleted, created_at, updated_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Images,
		&p.SizePrices,
		&p.Discount,
		&p.Ingredients,
		&p.Description,
		&p.Tags,
		&p.Category,
		&p.Stock,
		&p.IsDeleted,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *productRepository) collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetAll retrieves catalogue products.
func (r *productRepository) GetAll(ctx context.Context, includeDeleted bool) ([]model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE $1 OR NOT is_deleted
		ORDER BY name
	`, productColumns)

	rows, err := r.pool.Query(ctx, query, includeDeleted)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return r.collectProducts(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE id = $1
	`, productColumns)

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Search performs a case-insensitive name search. Names that start with the
// query sort before names that merely contain it.
func (r *productRepository) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	sql := `
		SELECT id, name, images
		FROM products
		WHERE name ILIKE '%' || $1 || '%' AND NOT is_deleted
		ORDER BY (name ILIKE $1 || '%') DESC, name
	`

	rows, err := r.pool.Query(ctx, sql, query)
	if err != nil {
		r.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	var results []model.SearchResult
	for rows.Next() {
		var res model.SearchResult
		if err := rows.Scan(&res.ID, &res.Name, &res.Images); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan search result row")
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating search result rows")
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return results, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (name, images, size_prices, discount, ingredients, description, tags, category, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, is_deleted, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		p.Name,
		p.Images,
		p.SizePrices,
		p.Discount,
		p.Ingredients,
		p.Description,
		p.Tags,
		p.Category,
		p.Stock,
	).Scan(&p.ID, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", p.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", p.ID.String()).Msg("product created successfully")

	return nil
}

// Update applies the non-nil fields of upd.
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, upd *model.ProductUpdate) (*model.Product, error) {
	query := fmt.Sprintf(`
		UPDATE products
		SET name        = COALESCE($2, name),
		    size_prices = COALESCE($3, size_prices),
		    discount    = COALESCE($4, discount),
		    ingredients = COALESCE($5, ingredients),
		    description = COALESCE($6, description),
		    tags        = COALESCE($7, tags),
		    category    = COALESCE($8, category),
		    stock       = COALESCE($9, stock),
		    updated_at  = now()
		WHERE id = $1
		RETURNING %s
	`, productColumns)

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query,
		id,
		upd.Name,
		upd.SizePrices,
		upd.Discount,
		upd.Ingredients,
		upd.Description,
		upd.Tags,
		upd.Category,
		upd.Stock,
	), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &p, nil
}

// SetDeleted flips the soft-delete flag.
func (r *productRepository) SetDeleted(ctx context.Context, id uuid.UUID, deleted bool) (*model.Product, error) {
	query := fmt.Sprintf(`
		UPDATE products
		SET is_deleted = $2, updated_at = now()
		WHERE id = $1
		RETURNING %s
	`, productColumns)

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id, deleted), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update soft-delete flag")
		return nil, fmt.Errorf("failed to update soft-delete flag: %w", err)
	}

	return &p, nil
}

// Overview aggregates the admin products page data.
func (r *productRepository) Overview(ctx context.Context, lowStockBelow int) (*model.ProductsOverview, error) {
	var overview model.ProductsOverview

	countsQuery := `
		SELECT
			COUNT(*) FILTER (WHERE NOT is_deleted),
			COUNT(*) FILTER (WHERE is_deleted),
			COUNT(*) FILTER (WHERE NOT is_deleted AND stock < $1)
		FROM products
	`

	err := r.pool.QueryRow(ctx, countsQuery, lowStockBelow).Scan(
		&overview.TotalCount,
		&overview.DeletedCount,
		&overview.LowStockCount,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query product counts")
		return nil, fmt.Errorf("failed to query product counts: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE is_deleted = $1
		ORDER BY name
	`, productColumns)

	rows, err := r.pool.Query(ctx, listQuery, false)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	if overview.Products, err = r.collectProducts(rows); err != nil {
		return nil, err
	}

	rows, err = r.pool.Query(ctx, listQuery, true)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query deleted products")
		return nil, fmt.Errorf("failed to query deleted products: %w", err)
	}
	if overview.DeletedProducts, err = r.collectProducts(rows); err != nil {
		return nil, err
	}

	return &overview, nil
}

// StockSnapshot reads the current stock for the given products in one query.
func (r *productRepository) StockSnapshot(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]model.StockLevel, error) {
	query := `
		SELECT id, name, stock
		FROM products
		WHERE id = ANY($1) AND NOT is_deleted
	`

	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query stock snapshot")
		return nil, fmt.Errorf("failed to query stock snapshot: %w", err)
	}
	defer rows.Close()

	var levels []model.StockLevel
	for rows.Next() {
		var level model.StockLevel
		if err := rows.Scan(&level.ProductID, &level.Name, &level.Stock); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan stock level row")
			return nil, fmt.Errorf("failed to scan stock level: %w", err)
		}
		levels = append(levels, level)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating stock level rows")
		return nil, fmt.Errorf("error iterating stock levels: %w", err)
	}

	return levels, nil
}

// ApplyStockDeltas issues one conditional batch decrement. Each row's guard
// re-checks sufficiency at write time, which closes the race between the
// snapshot read and this write.
func (r *productRepository) ApplyStockDeltas(ctx context.Context, tx pgx.Tx, deltas []model.StockDelta) (int64, error) {
	if len(deltas) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, len(deltas))
	quantities := make([]int, len(deltas))
	for i, d := range deltas {
		ids[i] = d.ProductID
		quantities[i] = d.Quantity
	}

	query := `
		UPDATE products AS p
		SET stock = p.stock - d.quantity, updated_at = now()
		FROM (SELECT unnest($1::uuid[]) AS id, unnest($2::int[]) AS quantity) AS d
		WHERE p.id = d.id AND p.stock >= d.quantity
	`

	tag, err := tx.Exec(ctx, query, ids, quantities)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(deltas)).Msg("failed to apply stock deltas")
		return 0, fmt.Errorf("failed to apply stock deltas: %w", err)
	}

	return tag.RowsAffected(), nil
}
