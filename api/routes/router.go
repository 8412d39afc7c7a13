package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/calmate/storefront/api/controllers"
	"github.com/calmate/storefront/api/middleware"
	"github.com/calmate/storefront/internal/autocomplete"
	"github.com/calmate/storefront/internal/cart"
	checkoutsvc "github.com/calmate/storefront/internal/checkout"
	"github.com/calmate/storefront/internal/pricing"
	"github.com/calmate/storefront/pkg/config"
	"github.com/calmate/storefront/pkg/logger"
	"github.com/calmate/storefront/pkg/metrics"
	"github.com/calmate/storefront/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	Redis        *redis.Client
	CartManager  *cart.Manager
	Policy       pricing.Policy
	Autocomplete autocomplete.Service
	Checkout     checkoutsvc.Service
	CartStats    *metrics.CartMetrics
	Registry     *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Session(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/regions", func(r chi.Router) {
			r.Get("/", controllers.ListRegions())
			r.Get("/{region}/comunas", controllers.ListComunas(logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.CartManager, deps.Policy, logg))
			r.Delete("/", controllers.ClearCart(deps.CartManager, deps.Policy, deps.CartStats, logg))
			r.Post("/items", controllers.AddCartItem(deps.CartManager, deps.Policy, deps.CartStats, logg))
			r.Patch("/items/{itemID}", controllers.UpdateCartItem(deps.CartManager, deps.Policy, deps.CartStats, logg))
			r.Delete("/items/{itemID}", controllers.RemoveCartItem(deps.CartManager, deps.Policy, deps.CartStats, logg))
		})

		r.Get("/autocomplete", controllers.Autocomplete(deps.Autocomplete, logg))

		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/prefill", controllers.CheckoutPrefill(deps.Checkout, logg))
			r.Post("/", controllers.CheckoutSubmit(deps.Checkout, logg))
		})
	})

	return r
}
