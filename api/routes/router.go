package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verto-labs/verto-inventory/api/controllers"
	"github.com/verto-labs/verto-inventory/api/middleware"
	products "github.com/verto-labs/verto-inventory/internal/products"
	users "github.com/verto-labs/verto-inventory/internal/users"
	"github.com/verto-labs/verto-inventory/pkg/config"
	"github.com/verto-labs/verto-inventory/pkg/db"
	"github.com/verto-labs/verto-inventory/pkg/enums"
	"github.com/verto-labs/verto-inventory/pkg/logger"
	"github.com/verto-labs/verto-inventory/pkg/metrics"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       db.Pinger
	ProductService products.Service
	UserService    users.Service
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsGateway prometheus.Gatherer
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.CORS(),
	)

	globalPolicy := middleware.NewRateLimitPolicy(
		"global",
		cfg.RateLimit.GlobalWindow,
		cfg.RateLimit.GlobalLimit,
	)
	authPolicy := middleware.NewRateLimitPolicy(
		"auth",
		cfg.RateLimit.AuthWindow,
		cfg.RateLimit.AuthLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger))
	})

	if deps.MetricsGateway != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGateway, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(globalPolicy, logg))

		r.Route("/users", func(r chi.Router) {
			r.With(middleware.RateLimit(authPolicy, logg)).Post("/register", controllers.UserRegister(deps.UserService, logg))
			r.With(middleware.RateLimit(authPolicy, logg)).Post("/login", controllers.UserLogin(deps.UserService, logg))
			r.Post("/logout", controllers.UserLogout())
		})

		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/", controllers.ListProducts(deps.ProductService, logg))
			r.Get("/low-stock", controllers.ListLowStockProducts(deps.ProductService, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.ProductService, logg))
			r.Get("/{productId}/stock-logs", controllers.ListStockLogs(deps.ProductService, logg))

			r.Put("/add-stock", controllers.AddStock(deps.ProductService, logg))
			r.Put("/remove-stock", controllers.RemoveStock(deps.ProductService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))

				r.Post("/", controllers.CreateProduct(deps.ProductService, logg))
				r.Post("/batch", controllers.CreateProductsBatch(deps.ProductService, logg))
				r.Patch("/{productId}", controllers.UpdateProduct(deps.ProductService, logg))
				r.Delete("/{productId}", controllers.DeleteProduct(deps.ProductService, logg))
				r.Delete("/", controllers.BulkDeleteProducts(deps.ProductService, logg))
			})
		})
	})

	return r
}
