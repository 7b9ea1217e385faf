package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aroma-kart/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetDetails(ctx context.Context, id uuid.UUID) (*model.Product, *model.ProductReviewStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Product), args.Get(1).(*model.ProductReviewStats), args.Error(2)
}

func (m *MockProductService) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SearchResult), args.Error(1)
}

func productTestRouter(h *ProductHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/products", h.GetAll)
	r.Get("/api/products/search", h.Search)
	r.Get("/api/products/{id}", h.GetDetails)
	return r
}

func TestProductHandler_GetAll(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandler(svc, zerolog.Nop())

	svc.On("GetAll", mock.Anything).Return([]model.Product{
		{ID: uuid.New(), Name: "Oud Royale", Stock: 12},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	productTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string          `json:"message"`
		Data    []model.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Oud Royale", resp.Data[0].Name)
}

func TestProductHandler_GetDetails_InvalidID(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	productTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetDetails")
}

func TestProductHandler_GetDetails_NotFound(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandler(svc, zerolog.Nop())

	id := uuid.New()
	svc.On("GetDetails", mock.Anything, id).Return(nil, nil, model.ErrProductNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+id.String(), nil)
	rec := httptest.NewRecorder()

	productTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_Search_PassesQuery(t *testing.T) {
	svc := new(MockProductService)
	h := NewProductHandler(svc, zerolog.Nop())

	svc.On("Search", mock.Anything, "oud").Return([]model.SearchResult{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products/search?q=oud", nil)
	rec := httptest.NewRecorder()

	productTestRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}
