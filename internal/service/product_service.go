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

// latestReviewsOnDetail is how many approved reviews ship with a product
// detail response.
const latestReviewsOnDetail = 5

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, reviewRepo repository.ReviewRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves the storefront catalogue.
func (s *productService) GetAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetDetails retrieves a product with its approved-review stats.
func (s *productService) GetDetails(ctx context.Context, id uuid.UUID) (*model.Product, *model.ProductReviewStats, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get product details: %w", err)
	}
	if product == nil || product.IsDeleted {
		return nil, nil, model.ErrProductNotFound
	}

	count, avg, err := s.reviewRepo.Stats(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get product details: %w", err)
	}

	latest, err := s.reviewRepo.ListApproved(ctx, id, latestReviewsOnDetail, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get product details: %w", err)
	}

	stats := &model.ProductReviewStats{
		Count:         count,
		AverageRating: avg,
		Latest:        latest,
	}
	return product, stats, nil
}

// Search performs a prefix-priority name search. Blank queries return an
// empty result instead of the whole catalogue.
func (s *productService) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.SearchResult{}, nil
	}

	results, err := s.productRepo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return results, nil
}
