package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"aroma-kart/internal/handler"
	"aroma-kart/internal/model"
	"aroma-kart/internal/notification"
	"aroma-kart/internal/repository"
	"aroma-kart/internal/router"
	"aroma-kart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func setupTestServer(t *testing.T, testDB *TestDB, storeID uuid.UUID) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	counterRepo := repository.NewCounterRepository(testDB.Pool, logger)
	couponRepo := repository.NewCouponRepository(testDB.Pool, logger)
	storeRepo := repository.NewStoreRepository(testDB.Pool, logger)
	reviewRepo := repository.NewReviewRepository(testDB.Pool, logger)
	adminRepo := repository.NewAdminRepository(testDB.Pool, logger)
	statsRepo := repository.NewStatsRepository(testDB.Pool, logger)

	notifier := notification.NewNotifier(notification.NewNopSender(), 16, logger)

	orderService := service.NewOrderService(orderRepo, productRepo, counterRepo, couponRepo, adminRepo, notifier, storeID, logger)
	couponService := service.NewCouponService(couponRepo, storeID, logger)
	productService := service.NewProductService(productRepo, reviewRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, productRepo, orderRepo, adminRepo, notifier, logger)
	storeService := service.NewStoreService(storeRepo, couponRepo, storeID, logger)
	adminService := service.NewAdminService(orderRepo, productRepo, reviewRepo, adminRepo, statsRepo, logger)

	return router.New(router.Handlers{
		Order:   handler.NewOrderHandler(orderService, logger),
		Product: handler.NewProductHandler(productService, logger),
		Review:  handler.NewReviewHandler(reviewService, logger),
		Store:   handler.NewStoreHandler(storeService, couponService, logger),
		Admin:   handler.NewAdminHandler(adminService, logger),
	}, testAPIKey, logger)
}

func postJSON(t *testing.T, server http.Handler, path string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func TestOrderAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	storeID := SeedStore(t, testDB.Pool)
	server := setupTestServer(t, testDB, storeID)

	t.Run("placement succeeds and reports the order number", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedStore(t, testDB.Pool)
		productID := SeedProduct(t, testDB.Pool, "Oud Royale", 10)

		rec := postJSON(t, server, "/api/orders/add-order", placementFor(productID, 2), nil)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			Message string `json:"message"`
			Data    struct {
				OrderNumber int64 `json:"orderNumber"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(1001), resp.Data.OrderNumber)
		assert.Contains(t, resp.Message, "1001")
	})

	t.Run("shortage returns 400 with the short lines", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedStore(t, testDB.Pool)
		productID := SeedProduct(t, testDB.Pool, "Rose Veil", 1)

		rec := postJSON(t, server, "/api/orders/add-order", placementFor(productID, 4), nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Data []model.ShortageLine `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, model.ShortageLine{Name: "Rose Veil", Available: 1, Requested: 4}, resp.Data[0])
	})

	t.Run("unknown product returns 404 naming the id", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedStore(t, testDB.Pool)
		missing := uuid.New()

		rec := postJSON(t, server, "/api/orders/add-order", placementFor(missing, 1), nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), missing.String())
	})

	t.Run("track order matches on email", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedStore(t, testDB.Pool)
		productID := SeedProduct(t, testDB.Pool, "Amber Noir", 5)

		rec := postJSON(t, server, "/api/orders/add-order", placementFor(productID, 1), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = postJSON(t, server, "/api/orders/track-order", map[string]interface{}{
			"orderNumber": 1001,
			"email":       "jane@example.com",
		}, nil)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp struct {
			Data model.OrderWithItems `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(1001), resp.Data.OrderNumber)
		require.Len(t, resp.Data.Items, 1)
		assert.Equal(t, productID, resp.Data.Items[0].ProductID)
	})

	t.Run("tracking with the wrong email finds nothing", func(t *testing.T) {
		rec := postJSON(t, server, "/api/orders/track-order", map[string]interface{}{
			"orderNumber": 1001,
			"email":       "someone-else@example.com",
		}, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	storeID := SeedStore(t, testDB.Pool)
	server := setupTestServer(t, testDB, storeID)

	t.Run("admin surface rejects missing API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("status transitions follow the lifecycle", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedStore(t, testDB.Pool)
		productID := SeedProduct(t, testDB.Pool, "Oud Royale", 5)

		rec := postJSON(t, server, "/api/orders/add-order", placementFor(productID, 1), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var placed struct {
			Data struct {
				OrderID uuid.UUID `json:"orderId"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))

		// PENDING to CONFIRMED is allowed.
		body, _ := json.Marshal(map[string]string{"status": "CONFIRMED"})
		req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/"+placed.Data.OrderID.String()+"/status", bytes.NewReader(body))
		req.Header.Set("X-API-Key", testAPIKey)
		rec = httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		// CONFIRMED to DELIVERED skips states and is rejected.
		body, _ = json.Marshal(map[string]string{"status": "DELIVERED"})
		req = httptest.NewRequest(http.MethodPut, "/api/admin/orders/"+placed.Data.OrderID.String()+"/status", bytes.NewReader(body))
		req.Header.Set("X-API-Key", testAPIKey)
		rec = httptest.NewRecorder()
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)

		// The stored status is unchanged by the rejected transition.
		var status string
		require.NoError(t, testDB.Pool.QueryRow(context.Background(), "SELECT status FROM orders WHERE id = $1", placed.Data.OrderID).Scan(&status))
		assert.Equal(t, "CONFIRMED", status)
	})

	t.Run("coupon lifecycle through the API", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		sid := SeedStore(t, testDB.Pool)
		SeedCoupon(t, testDB.Pool, sid, "SUMMER10", 5, 0)

		// Coupon lookups are scoped to the store the server was built with.
		server := setupTestServer(t, testDB, sid)

		rec := postJSON(t, server, "/api/store/apply-coupon", map[string]string{"couponCode": "SUMMER10"}, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = postJSON(t, server, "/api/store/apply-coupon", map[string]string{"couponCode": "NOPE"}, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/store/coupons", nil)
		req.Header.Set("X-API-Key", testAPIKey)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data []model.Coupon `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "SUMMER10", resp.Data[0].Code)
	})
}
