package service

import (
	"context"
	"errors"
	"testing"

	"aroma-kart/internal/model"
	"aroma-kart/internal/notification"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewServiceWithMocks() (ReviewService, *MockReviewRepository, *MockProductRepository, *MockOrderRepository, *MockAdminRepository) {
	reviewRepo := new(MockReviewRepository)
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	adminRepo := new(MockAdminRepository)
	notifier := notification.NewNotifier(notification.NewNopSender(), 8, zerolog.Nop())

	svc := NewReviewService(reviewRepo, productRepo, orderRepo, adminRepo, notifier, zerolog.Nop())
	return svc, reviewRepo, productRepo, orderRepo, adminRepo
}

func validReviewRequest() *model.ReviewRequest {
	return &model.ReviewRequest{
		Rating:    4,
		Title:     "Lasts all day",
		Body:      "Warm opening, settles into something softer by the evening.",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		AgeGroup:  "20-29",
		Gender:    "Female",
	}
}

func TestAddReview_MarksVerifiedPurchase(t *testing.T) {
	svc, reviewRepo, productRepo, orderRepo, adminRepo := newReviewServiceWithMocks()
	productID := uuid.New()

	productRepo.On("GetByID", mock.Anything, productID).Return(&model.Product{ID: productID, Name: "Oud Royale"}, nil)
	orderRepo.On("HasPurchase", mock.Anything, "jane@example.com", productID).Return(true, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	adminRepo.On("AllFCMTokens", mock.Anything, mock.Anything).Return([]string{}, nil)

	review, err := svc.Add(context.Background(), productID, validReviewRequest())

	require.NoError(t, err)
	assert.True(t, review.IsPurchaseVerified)
	assert.True(t, review.IsRecommended)
	reviewRepo.AssertExpectations(t)
}

func TestAddReview_PurchaseLookupFailureLosesBadgeOnly(t *testing.T) {
	svc, reviewRepo, productRepo, orderRepo, adminRepo := newReviewServiceWithMocks()
	productID := uuid.New()

	productRepo.On("GetByID", mock.Anything, productID).Return(&model.Product{ID: productID, Name: "Oud Royale"}, nil)
	orderRepo.On("HasPurchase", mock.Anything, "jane@example.com", productID).Return(false, errors.New("timeout"))
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	adminRepo.On("AllFCMTokens", mock.Anything, mock.Anything).Return([]string{}, nil)

	review, err := svc.Add(context.Background(), productID, validReviewRequest())

	require.NoError(t, err)
	assert.False(t, review.IsPurchaseVerified)
}

func TestAddReview_UnknownProduct(t *testing.T) {
	svc, reviewRepo, productRepo, _, _ := newReviewServiceWithMocks()
	productID := uuid.New()

	productRepo.On("GetByID", mock.Anything, productID).Return(nil, nil)

	_, err := svc.Add(context.Background(), productID, validReviewRequest())

	assert.ErrorIs(t, err, model.ErrProductNotFound)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddReview_RecommendationFlagHonoured(t *testing.T) {
	svc, reviewRepo, productRepo, orderRepo, adminRepo := newReviewServiceWithMocks()
	productID := uuid.New()
	notRecommended := false

	req := validReviewRequest()
	req.IsRecommended = &notRecommended

	productRepo.On("GetByID", mock.Anything, productID).Return(&model.Product{ID: productID, Name: "Rose Veil"}, nil)
	orderRepo.On("HasPurchase", mock.Anything, mock.Anything, productID).Return(false, nil)
	reviewRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	adminRepo.On("AllFCMTokens", mock.Anything, mock.Anything).Return([]string{}, nil)

	review, err := svc.Add(context.Background(), productID, req)

	require.NoError(t, err)
	assert.False(t, review.IsRecommended)
}

func TestAddReview_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.ReviewRequest)
		code   string
	}{
		{"rating too low", func(r *model.ReviewRequest) { r.Rating = 0 }, model.ErrCodeInvalidRating},
		{"rating too high", func(r *model.ReviewRequest) { r.Rating = 6 }, model.ErrCodeInvalidRating},
		{"blank title", func(r *model.ReviewRequest) { r.Title = " " }, model.ErrCodeMissingField},
		{"blank body", func(r *model.ReviewRequest) { r.Body = "" }, model.ErrCodeMissingField},
		{"missing email", func(r *model.ReviewRequest) { r.Email = "" }, model.ErrCodeMissingField},
		{"unknown age group", func(r *model.ReviewRequest) { r.AgeGroup = "18ish" }, model.ErrCodeMissingField},
		{"empty age group", func(r *model.ReviewRequest) { r.AgeGroup = "" }, model.ErrCodeMissingField},
		{"unknown gender", func(r *model.ReviewRequest) { r.Gender = "N/A" }, model.ErrCodeMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, reviewRepo, productRepo, _, _ := newReviewServiceWithMocks()
			req := validReviewRequest()
			tt.mutate(req)

			_, err := svc.Add(context.Background(), uuid.New(), req)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.code, domainErr.Code)
			productRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestListApprovedReviews_ClampsPage(t *testing.T) {
	svc, reviewRepo, _, _, _ := newReviewServiceWithMocks()
	productID := uuid.New()

	reviewRepo.On("ListApproved", mock.Anything, productID, reviewsPerPage, 0).Return([]model.Review{}, nil)

	_, err := svc.ListApproved(context.Background(), productID, -3)

	require.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}
