package service

import (
	"context"
	"errors"
	"testing"

	"aroma-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAdminServiceWithMocks() (AdminService, *MockOrderRepository, *MockProductRepository, *MockReviewRepository, *MockAdminRepository, *MockStatsRepository) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	reviewRepo := new(MockReviewRepository)
	adminRepo := new(MockAdminRepository)
	statsRepo := new(MockStatsRepository)

	svc := NewAdminService(orderRepo, productRepo, reviewRepo, adminRepo, statsRepo, zerolog.Nop())
	return svc, orderRepo, productRepo, reviewRepo, adminRepo, statsRepo
}

func validProduct() *model.Product {
	return &model.Product{
		Name:       "Oud Royale",
		SizePrices: []model.SizePrice{{Size: "50ml", Price: 49.99}},
		Category:   "UNISEX",
		Stock:      25,
	}
}

func TestChangeOrderStatus_AllowsForwardStep(t *testing.T) {
	svc, orderRepo, _, _, _, _ := newAdminServiceWithMocks()
	orderID := uuid.New()
	updated := &model.Order{ID: orderID, Status: model.StatusConfirmed}

	orderRepo.On("GetStatus", mock.Anything, orderID).Return(model.StatusPending, nil)
	orderRepo.On("UpdateStatus", mock.Anything, orderID, model.StatusConfirmed).Return(updated, nil)

	order, err := svc.ChangeOrderStatus(context.Background(), orderID, model.StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, order.Status)
	orderRepo.AssertExpectations(t)
}

func TestChangeOrderStatus_RejectsSkippedState(t *testing.T) {
	svc, orderRepo, _, _, _, _ := newAdminServiceWithMocks()
	orderID := uuid.New()

	orderRepo.On("GetStatus", mock.Anything, orderID).Return(model.StatusPending, nil)

	_, err := svc.ChangeOrderStatus(context.Background(), orderID, model.StatusDelivered)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeIllegalTransition, domainErr.Code)
	assert.Contains(t, domainErr.Message, "PENDING")
	assert.Contains(t, domainErr.Message, "DELIVERED")
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeOrderStatus_RejectsLeavingTerminalState(t *testing.T) {
	svc, orderRepo, _, _, _, _ := newAdminServiceWithMocks()
	orderID := uuid.New()

	orderRepo.On("GetStatus", mock.Anything, orderID).Return(model.StatusCancelled, nil)

	_, err := svc.ChangeOrderStatus(context.Background(), orderID, model.StatusConfirmed)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeIllegalTransition, domainErr.Code)
	orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeOrderStatus_AllowsCancelFromActiveStates(t *testing.T) {
	for _, from := range []model.OrderStatus{model.StatusPending, model.StatusConfirmed, model.StatusPacked, model.StatusShipped} {
		t.Run(string(from), func(t *testing.T) {
			svc, orderRepo, _, _, _, _ := newAdminServiceWithMocks()
			orderID := uuid.New()

			orderRepo.On("GetStatus", mock.Anything, orderID).Return(from, nil)
			orderRepo.On("UpdateStatus", mock.Anything, orderID, model.StatusCancelled).
				Return(&model.Order{ID: orderID, Status: model.StatusCancelled}, nil)

			_, err := svc.ChangeOrderStatus(context.Background(), orderID, model.StatusCancelled)

			require.NoError(t, err)
			orderRepo.AssertExpectations(t)
		})
	}
}

func TestAddProduct_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *model.Product)
		message string
	}{
		{"blank name", func(p *model.Product) { p.Name = "  " }, "name is required"},
		{"no sizes", func(p *model.Product) { p.SizePrices = nil }, "size and price"},
		{"zero price", func(p *model.Product) { p.SizePrices[0].Price = 0 }, "positive price"},
		{"bad category", func(p *model.Product) { p.Category = "VINTAGE" }, "category"},
		{"negative stock", func(p *model.Product) { p.Stock = -1 }, "negative"},
		{"discount above cap", func(p *model.Product) { p.Discount = 80 }, "between 0 and 75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, productRepo, _, _, _ := newAdminServiceWithMocks()
			p := validProduct()
			tt.mutate(p)

			err := svc.AddProduct(context.Background(), p)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Contains(t, domainErr.Message, tt.message)
			productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAddProduct_AssignsID(t *testing.T) {
	svc, _, productRepo, _, _, _ := newAdminServiceWithMocks()
	p := validProduct()

	productRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, svc.AddProduct(context.Background(), p))
	assert.NotEqual(t, uuid.Nil, p.ID)
	productRepo.AssertExpectations(t)
}

func TestUpdateProduct_UnknownProduct(t *testing.T) {
	svc, _, productRepo, _, _, _ := newAdminServiceWithMocks()
	id := uuid.New()
	name := "Renamed"

	productRepo.On("Update", mock.Anything, id, mock.Anything).Return(nil, nil)

	_, err := svc.UpdateProduct(context.Background(), id, &model.ProductUpdate{Name: &name})

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestModerateReview_OnlyAcceptsFinalStates(t *testing.T) {
	svc, _, _, reviewRepo, _, _ := newAdminServiceWithMocks()

	_, err := svc.ModerateReview(context.Background(), uuid.New(), model.ReviewPending)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeInvalidStatus, domainErr.Code)
	reviewRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestModerateReview_Approves(t *testing.T) {
	svc, _, _, reviewRepo, _, _ := newAdminServiceWithMocks()
	id := uuid.New()

	reviewRepo.On("UpdateStatus", mock.Anything, id, model.ReviewApproved).
		Return(&model.Review{ID: id, Status: model.ReviewApproved}, nil)

	review, err := svc.ModerateReview(context.Background(), id, model.ReviewApproved)

	require.NoError(t, err)
	assert.Equal(t, model.ReviewApproved, review.Status)
}

func TestReviewsByStatus_PagesAndCounts(t *testing.T) {
	svc, _, _, reviewRepo, _, _ := newAdminServiceWithMocks()

	reviewRepo.On("ListByStatus", mock.Anything, model.ReviewPending, reviewModerationPerPage, reviewModerationPerPage).
		Return([]model.Review{{ID: uuid.New()}}, nil)
	reviewRepo.On("CountByStatus", mock.Anything, model.ReviewPending).Return(13, nil)

	reviews, total, err := svc.ReviewsByStatus(context.Background(), model.ReviewPending, 2)

	require.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, 13, total)
	reviewRepo.AssertExpectations(t)
}

func TestAddAdmin_RejectsUnknownRole(t *testing.T) {
	svc, _, _, _, adminRepo, _ := newAdminServiceWithMocks()

	err := svc.AddAdmin(context.Background(), &model.Admin{Name: "Sam", Email: "sam@example.com", Role: "ROOT"})

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	adminRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterDeviceToken_RequiresToken(t *testing.T) {
	svc, _, _, _, adminRepo, _ := newAdminServiceWithMocks()

	err := svc.RegisterDeviceToken(context.Background(), uuid.New(), "   ")

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	adminRepo.AssertNotCalled(t, "AddFCMToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestOverview_PropagatesStorageErrors(t *testing.T) {
	svc, _, _, _, _, statsRepo := newAdminServiceWithMocks()

	statsRepo.On("Overview", mock.Anything, lowStockThreshold).Return(nil, errors.New("connection reset"))

	_, err := svc.Overview(context.Background())

	assert.Error(t, err)
}
