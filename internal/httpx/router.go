// Package httpx is the HTTP surface over the store: a chi router, request
// handlers, DTO mapping and the cart-identity cookie middleware.
package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shopx/nthcart/internal/pkg/metrics"
)

// NewRouter assembles the shop API. srvMetrics may be nil to run without
// instrumentation (tests do).
func NewRouter(handler *Handler, srvMetrics *metrics.ServerMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if srvMetrics != nil {
		r.Use(srvMetrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/products", handler.ListProducts)
	r.Get("/products/{id}", handler.GetProduct)

	r.Route("/cart", func(r chi.Router) {
		r.Use(CartIdentity)
		r.Get("/", handler.GetCart)
		r.Delete("/", handler.ClearCart)
		r.Post("/items", handler.AddCartItem)
		r.Put("/items/{productID}", handler.UpdateCartItem)
		r.Delete("/items/{productID}", handler.RemoveCartItem)
	})

	r.With(CartIdentity).Post("/checkout", handler.Checkout)

	r.Get("/discount", handler.AvailableDiscount)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/discounts", handler.ListDiscounts)
		r.Post("/discounts", handler.GenerateDiscount)
		r.Get("/analytics", handler.Analytics)
	})

	return r
}
