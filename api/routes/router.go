package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/peasmarket/storefront/api/controllers"
	"github.com/peasmarket/storefront/api/middleware"
	cartsvc "github.com/peasmarket/storefront/internal/cart"
	"github.com/peasmarket/storefront/internal/catalog"
	checkoutclient "github.com/peasmarket/storefront/internal/checkout"
	"github.com/peasmarket/storefront/internal/contact"
	"github.com/peasmarket/storefront/internal/orders"
	"github.com/peasmarket/storefront/pkg/config"
	"github.com/peasmarket/storefront/pkg/logger"
	"github.com/peasmarket/storefront/pkg/metrics"
	pkgredis "github.com/peasmarket/storefront/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	redisPinger pkgredis.Pinger,
	catalogRepo *catalog.Repository,
	catalogClient *catalog.Client,
	cartService *cartsvc.Service,
	orderService *orders.Service,
	contactService *contact.Service,
	submitClient *checkoutclient.Client,
) http.Handler {
	r := chi.NewRouter()

	requestMetrics := metrics.NewRequestMetrics(registryOrNil(registry))

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(requestMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, redisPinger, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(catalogRepo, logg))
		r.Get("/products/{id}", controllers.GetProduct(catalogRepo, logg))
		r.Post("/contact", controllers.SubmitContact(contactService, logg))
		r.Post("/checkout", controllers.SubmitCheckout(orderService, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(cfg.Cart.SessionCookie, cfg.Cart.TTL, logg))

		r.Get("/", controllers.Home(catalogClient, cartService, logg))
		r.Get("/products/{id}", controllers.ProductDetailPage(catalogClient, cartService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartPage(cartService, logg))
			r.Get("/badge", controllers.CartBadge(cartService, logg))
			r.Post("/items/{id}", controllers.AddToCart(cartService, logg))
			r.Post("/items/{id}/quantity", controllers.UpdateQuantity(cartService, logg))
			r.Post("/items/{id}/adjust", controllers.AdjustQuantity(cartService, logg))
			r.Post("/items/{id}/remove", controllers.RemoveFromCart(cartService, logg))
		})

		r.Get("/checkout", controllers.CheckoutPage(cartService, logg))
		r.Post("/checkout", controllers.PlaceOrder(cartService, submitClient, logg))

		r.Get("/contact", controllers.ContactPage(cartService, logg))
		r.Post("/contact", controllers.SendContact(cartService, submitClient, logg))
	})

	if cfg.Static.Dir != "" {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.Static.Dir)))
		r.Get("/static/*", func(w http.ResponseWriter, r *http.Request) {
			fileServer.ServeHTTP(w, r)
		})
	}

	return r
}

// registryOrNil keeps a nil *prometheus.Registry from turning into a
// non-nil Registerer interface value.
func registryOrNil(registry *prometheus.Registry) prometheus.Registerer {
	if registry == nil {
		return nil
	}
	return registry
}
