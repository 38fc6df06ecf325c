package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PAUpau912/maki-kape-pos-system/api/controllers"
	"github.com/PAUpau912/maki-kape-pos-system/api/middleware"
	"github.com/PAUpau912/maki-kape-pos-system/internal/catalog"
	checkoutsvc "github.com/PAUpau912/maki-kape-pos-system/internal/checkout"
	"github.com/PAUpau912/maki-kape-pos-system/internal/sales"
	"github.com/PAUpau912/maki-kape-pos-system/internal/supplies"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/config"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/db"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	metricsRegistry *prometheus.Registry,
	catalogService catalog.Service,
	checkoutService checkoutsvc.Service,
	salesService sales.Service,
	suppliesService supplies.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, logg))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.ListProducts(catalogService, logg))
			r.Get("/categories", controllers.ListCategories(catalogService, logg))
			r.Patch("/products/{id}", controllers.UpdateProduct(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(checkoutService, logg))
			r.Post("/open", controllers.OpenCart(checkoutService, logg))
			r.Post("/close", controllers.CloseCart(checkoutService, logg))
			r.Post("/items", controllers.AddCartItem(checkoutService, catalogService, logg))
			r.Put("/items/{productID}", controllers.SetCartItemQuantity(checkoutService, logg))
			r.Delete("/items/{productID}", controllers.RemoveCartItem(checkoutService, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/open", controllers.OpenCheckout(checkoutService, logg))
			r.Post("/cancel", controllers.CancelCheckout(checkoutService, logg))
			r.Post("/amount/digit", controllers.PressDigit(checkoutService, logg))
			r.Post("/amount/quick", controllers.QuickAmount(checkoutService, logg))
			r.Post("/amount/exact", controllers.ExactAmount(checkoutService, logg))
			r.Post("/amount/clear", controllers.ClearAmount(checkoutService, logg))
			r.Post("/confirm", controllers.ConfirmCheckout(checkoutService, logg))
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/metrics", controllers.DashboardMetrics(salesService, logg))
			r.Get("/recent-items", controllers.RecentSaleItems(salesService, logg))
		})

		r.Route("/supplies", func(r chi.Router) {
			r.Get("/", controllers.ListSupplies(suppliesService, logg))
			r.Post("/", controllers.CreateSupply(suppliesService, logg))
			r.Put("/{id}", controllers.UpdateSupply(suppliesService, logg))
			r.Delete("/{id}", controllers.DeleteSupply(suppliesService, logg))
		})
	})

	return r
}
