package router

import (
	"net/http"

	"aroma-kart/internal/handler"
	"aroma-kart/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Order   *handler.OrderHandler
	Product *handler.ProductHandler
	Review  *handler.ReviewHandler
	Store   *handler.StoreHandler
	Admin   *handler.AdminHandler
}

// New builds the HTTP routing tree. The storefront endpoints are public;
// everything under /api/admin requires the API key.
func New(h Handlers, apiKey string, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.GetAll)
			r.Get("/search", h.Product.Search)
			r.Get("/{id}", h.Product.GetDetails)
			r.Get("/{id}/reviews", h.Review.ListApproved)
			r.Post("/{id}/reviews", h.Review.Add)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/add-order", h.Order.Place)
			r.Post("/track-order", h.Order.Track)
		})

		r.Route("/store", func(r chi.Router) {
			r.Get("/initials", h.Store.Initials)
			r.Post("/apply-coupon", h.Store.ApplyCoupon)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(apiKey, logger))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", h.Order.List)
				r.Get("/number/{number}", h.Admin.GetOrder)
				r.Put("/{id}/status", h.Admin.ChangeOrderStatus)
				r.Delete("/{id}", h.Admin.DeleteOrder)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.Admin.ProductsOverview)
				r.Post("/", h.Admin.AddProduct)
				r.Put("/{id}", h.Admin.UpdateProduct)
				r.Delete("/{id}", h.Admin.DeleteProduct)
				r.Put("/{id}/restore", h.Admin.RestoreProduct)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", h.Admin.ListReviews)
				r.Put("/{id}/status", h.Admin.ModerateReview)
			})

			r.Route("/store", func(r chi.Router) {
				r.Put("/promo-messages", h.Store.UpdatePromoMessages)
				r.Put("/shipping", h.Store.UpdateShipping)
				r.Get("/coupons", h.Store.ListCoupons)
				r.Post("/coupons", h.Store.AddCoupon)
				r.Delete("/coupons/{code}", h.Store.DeleteCoupon)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", h.Admin.Overview)
				r.Get("/monthly-sales", h.Admin.SalesByMonth)
			})

			r.Route("/admins", func(r chi.Router) {
				r.Get("/", h.Admin.ListAdmins)
				r.Post("/", h.Admin.AddAdmin)
				r.Delete("/{id}", h.Admin.DeleteAdmin)
				r.Post("/{id}/fcm-token", h.Admin.RegisterDeviceToken)
			})

			r.Route("/activities", func(r chi.Router) {
				r.Get("/", h.Admin.ListActivities)
				r.Post("/", h.Admin.RecordActivity)
			})
		})
	})

	return r
}
