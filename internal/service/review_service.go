package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"aroma-kart/internal/model"
	"aroma-kart/internal/notification"
	"aroma-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reviewsPerPage sizes the storefront review pagination.
const reviewsPerPage = 10

// reviewService implements ReviewService.
type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	adminRepo   repository.AdminRepository
	notifier    *notification.Notifier
	logger      zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	adminRepo repository.AdminRepository,
	notifier *notification.Notifier,
	logger zerolog.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		adminRepo:   adminRepo,
		notifier:    notifier,
		logger:      logger.With().Str("service", "review").Logger(),
	}
}

// Add submits a review. The purchase-verified flag comes from order history,
// never from the request.
func (s *reviewService) Add(ctx context.Context, productID uuid.UUID, req *model.ReviewRequest) (*model.Review, error) {
	if err := validateReview(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	verified, err := s.orderRepo.HasPurchase(ctx, req.Email, productID)
	if err != nil {
		// A failed lookup must not block the review. It just loses the badge.
		s.logger.Warn().Err(err).Str("product_id", productID.String()).Msg("failed to check purchase history for review")
		verified = false
	}

	review := &model.Review{
		ProductID:          productID,
		Rating:             req.Rating,
		Title:              req.Title,
		Body:               req.Body,
		Images:             req.Images,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		AgeGroup:           req.AgeGroup,
		Gender:             req.Gender,
		IsRecommended:      req.IsRecommended == nil || *req.IsRecommended,
		IsPurchaseVerified: verified,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to add review: %w", err)
	}

	s.notifySuperAdmins(ctx, "New Review Submitted",
		fmt.Sprintf("A new review has been submitted for %s.", product.Name))

	s.logger.Info().
		Str("review_id", review.ID.String()).
		Str("product_id", productID.String()).
		Int("rating", review.Rating).
		Msg("review submitted")

	return review, nil
}

// ListApproved retrieves a page of approved reviews for a product.
func (s *reviewService) ListApproved(ctx context.Context, productID uuid.UUID, page int) ([]model.Review, error) {
	if page < 1 {
		page = 1
	}

	reviews, err := s.reviewRepo.ListApproved(ctx, productID, reviewsPerPage, (page-1)*reviewsPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *reviewService) notifySuperAdmins(ctx context.Context, title, body string) {
	role := model.RoleSuperAdmin
	tokens, err := s.adminRepo.AllFCMTokens(ctx, &role)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to collect super admin device tokens")
		return
	}
	if len(tokens) == 0 {
		return
	}

	s.notifier.Enqueue(notification.Message{Tokens: tokens, Title: title, Body: body})
}

func validateReview(req *model.ReviewRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "Review body is required.")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return model.NewDomainError(model.ErrCodeInvalidRating, "Rating must be between 1 and 5.")
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Review title and body are required.")
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Reviewer name and email are required.")
	}
	if !slices.Contains(model.ReviewAgeGroups, req.AgeGroup) {
		return model.NewDomainError(model.ErrCodeMissingField, "Unknown age group.")
	}
	if !slices.Contains(model.ReviewGenders, req.Gender) {
		return model.NewDomainError(model.ErrCodeMissingField, "Unknown gender value.")
	}
	return nil
}
