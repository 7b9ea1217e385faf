package service

import (
	"context"
	"testing"

	"aroma-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductServiceWithMocks() (ProductService, *MockProductRepository, *MockReviewRepository) {
	productRepo := new(MockProductRepository)
	reviewRepo := new(MockReviewRepository)

	svc := NewProductService(productRepo, reviewRepo, zerolog.Nop())
	return svc, productRepo, reviewRepo
}

func TestGetAllProducts_ExcludesDeleted(t *testing.T) {
	svc, productRepo, _ := newProductServiceWithMocks()

	productRepo.On("GetAll", mock.Anything, false).Return([]model.Product{{Name: "Oud Royale"}}, nil)

	products, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 1)
	productRepo.AssertExpectations(t)
}

func TestGetProductDetails_BundlesReviewStats(t *testing.T) {
	svc, productRepo, reviewRepo := newProductServiceWithMocks()
	id := uuid.New()

	productRepo.On("GetByID", mock.Anything, id).Return(&model.Product{ID: id, Name: "Amber Noir"}, nil)
	reviewRepo.On("Stats", mock.Anything, id).Return(7, 4.3, nil)
	reviewRepo.On("ListApproved", mock.Anything, id, latestReviewsOnDetail, 0).
		Return([]model.Review{{ID: uuid.New()}}, nil)

	product, stats, err := svc.GetDetails(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "Amber Noir", product.Name)
	assert.Equal(t, 7, stats.Count)
	assert.Equal(t, 4.3, stats.AverageRating)
	assert.Len(t, stats.Latest, 1)
}

func TestGetProductDetails_SoftDeletedIsHidden(t *testing.T) {
	svc, productRepo, reviewRepo := newProductServiceWithMocks()
	id := uuid.New()

	productRepo.On("GetByID", mock.Anything, id).Return(&model.Product{ID: id, IsDeleted: true}, nil)

	_, _, err := svc.GetDetails(context.Background(), id)

	assert.ErrorIs(t, err, model.ErrProductNotFound)
	reviewRepo.AssertNotCalled(t, "Stats", mock.Anything, mock.Anything)
}

func TestSearchProducts_BlankQueryShortCircuits(t *testing.T) {
	svc, productRepo, _ := newProductServiceWithMocks()

	results, err := svc.Search(context.Background(), "   ")

	require.NoError(t, err)
	assert.Empty(t, results)
	productRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchProducts_TrimsQuery(t *testing.T) {
	svc, productRepo, _ := newProductServiceWithMocks()

	productRepo.On("Search", mock.Anything, "oud").Return([]model.SearchResult{{Name: "Oud Royale"}}, nil)

	results, err := svc.Search(context.Background(), "  oud ")

	require.NoError(t, err)
	assert.Len(t, results, 1)
	productRepo.AssertExpectations(t)
}
