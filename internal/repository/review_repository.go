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

const reviewColumns = `id, product_id, rating, title, body, images, first_name, last_name, email, age_group, gender, is_recommended, is_purchase_verified, status, created_at`

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

func scanReview(row pgx.Row, rev *model.Review) error {
	return row.Scan(
		&rev.ID,
		&rev.ProductID,
		&rev.Rating,
		&rev.Title,
		&rev.Body,
		&rev.Images,
		&rev.FirstName,
		&rev.LastName,
		&rev.Email,
		&rev.AgeGroup,
		&rev.Gender,
		&rev.IsRecommended,
		&rev.IsPurchaseVerified,
		&rev.Status,
		&rev.CreatedAt,
	)
}

func (r *reviewRepository) collectReviews(rows pgx.Rows) ([]model.Review, error) {
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rev model.Review
		if err := scanReview(rows, &rev); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rev)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Create inserts a new review.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (product_id, rating, title, body, images, first_name, last_name, email, age_group, gender, is_recommended, is_purchase_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, status, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		review.ProductID,
		review.Rating,
		review.Title,
		review.Body,
		review.Images,
		review.FirstName,
		review.LastName,
		review.Email,
		review.AgeGroup,
		review.Gender,
		review.IsRecommended,
		review.IsPurchaseVerified,
	).Scan(&review.ID, &review.Status, &review.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", review.ProductID.String()).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	r.logger.Debug().Str("review_id", review.ID.String()).Msg("review created successfully")

	return nil
}

// ListApproved retrieves approved reviews for a product, newest first.
func (r *reviewRepository) ListApproved(ctx context.Context, productID uuid.UUID, limit, offset int) ([]model.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		WHERE product_id = $1 AND status = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, reviewColumns)

	rows, err := r.pool.Query(ctx, query, productID, model.ReviewApproved, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query approved reviews")
		return nil, fmt.Errorf("failed to query approved reviews: %w", err)
	}

	return r.collectReviews(rows)
}

// Stats returns the approved-review count and average rating for a product.
func (r *reviewRepository) Stats(ctx context.Context, productID uuid.UUID) (int, float64, error) {
	query := `
		SELECT COUNT(*), COALESCE(ROUND(AVG(rating), 1), 0)
		FROM reviews
		WHERE product_id = $1 AND status = $2
	`

	var count int
	var average float64
	err := r.pool.QueryRow(ctx, query, productID, model.ReviewApproved).Scan(&count, &average)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", productID.String()).Msg("failed to query review stats")
		return 0, 0, fmt.Errorf("failed to query review stats: %w", err)
	}

	return count, average, nil
}

// ListByStatus retrieves reviews in a moderation state, newest first.
func (r *reviewRepository) ListByStatus(ctx context.Context, status model.ReviewStatus, limit, offset int) ([]model.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, reviewColumns)

	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("status", string(status)).Msg("failed to query reviews by status")
		return nil, fmt.Errorf("failed to query reviews by status: %w", err)
	}

	return r.collectReviews(rows)
}

// CountByStatus counts reviews in a moderation state.
func (r *reviewRepository) CountByStatus(ctx context.Context, status model.ReviewStatus) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE status = $1`, status).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("status", string(status)).Msg("failed to count reviews")
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return count, nil
}

// UpdateStatus moves a review to a new moderation state.
func (r *reviewRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReviewStatus) (*model.Review, error) {
	query := fmt.Sprintf(`
		UPDATE reviews
		SET status = $2
		WHERE id = $1
		RETURNING %s
	`, reviewColumns)

	var rev model.Review
	err := scanReview(r.pool.QueryRow(ctx, query, id, status), &rev)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("review_id", id.String()).Msg("review not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("review_id", id.String()).Msg("failed to update review status")
		return nil, fmt.Errorf("failed to update review status: %w", err)
	}

	return &rev, nil
}
