package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/batoolapp/lenses-backend/api/controllers"
	"github.com/batoolapp/lenses-backend/api/middleware"
	internalauth "github.com/batoolapp/lenses-backend/internal/auth"
	"github.com/batoolapp/lenses-backend/internal/cart"
	"github.com/batoolapp/lenses-backend/internal/checkout"
	"github.com/batoolapp/lenses-backend/internal/customers"
	"github.com/batoolapp/lenses-backend/internal/invoice"
	"github.com/batoolapp/lenses-backend/internal/orders"
	"github.com/batoolapp/lenses-backend/internal/settings"
	"github.com/batoolapp/lenses-backend/pkg/config"
	"github.com/batoolapp/lenses-backend/pkg/db"
	"github.com/batoolapp/lenses-backend/pkg/logger"
	"github.com/batoolapp/lenses-backend/pkg/redis"
	"github.com/batoolapp/lenses-backend/pkg/storage/gcs"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        db.Pinger
	Redis     *redis.Client
	GCS       gcs.Pinger
	Carts     *cart.Registry
	Sessions  *checkout.Sessions
	Invoices  *invoice.Store
	Renderer  *invoice.Renderer
	Checkout  checkout.Service
	Orders    orders.Service
	Customers customers.Service
	Settings  settings.Service
	Auth      internalauth.Service
}

// NewRouter assembles the HTTP surface: public storefront routes keyed by the
// shopper session header, and JWT-protected back-office routes.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB, d.Redis, d.GCS))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/settings", controllers.GetSettings(d.Settings, logg))
		r.Get("/governorates", controllers.ListGovernorates())

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(d.Carts))
				r.Post("/items", controllers.AddCartItem(d.Carts, logg))
				r.Patch("/items/{itemId}", controllers.UpdateCartItem(d.Carts, logg))
				r.Delete("/items/{itemId}", controllers.RemoveCartItem(d.Carts, logg))
				r.Delete("/", controllers.ClearCart(d.Carts))
				r.Post("/open", controllers.OpenCart(d.Carts))
				r.Post("/close", controllers.CloseCart(d.Carts))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", controllers.GetCheckout(d.Carts, d.Sessions))
				r.Post("/advance", controllers.AdvanceCheckout(d.Carts, d.Sessions, logg))
				r.Post("/back", controllers.BackCheckout(d.Carts, d.Sessions, logg))
				r.Post("/reset", controllers.ResetCheckout(d.Carts, d.Sessions, logg))
				r.Post("/submit", controllers.SubmitCheckout(d.Carts, d.Sessions, d.Checkout, cfg.Checkout, logg))
				r.Get("/invoice", controllers.GetInvoice(d.Invoices, d.Renderer, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(d.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, logg))

			r.Get("/auth/me", controllers.AdminMe(d.Auth, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(d.Orders, logg))
				r.Get("/code/{orderCode}", controllers.AdminGetOrderByCode(d.Orders, logg))
				r.Get("/{orderId}", controllers.AdminGetOrder(d.Orders, logg))
				r.Post("/{orderId}/decision", controllers.AdminDecideOrder(d.Orders, logg))
			})
			r.Route("/customers", func(r chi.Router) {
				r.Get("/", controllers.AdminListCustomers(d.Customers, logg))
				r.Get("/{customerId}", controllers.AdminGetCustomer(d.Customers, logg))
			})
			r.Put("/settings", controllers.AdminUpdateSettings(d.Settings, logg))
		})
	})

	return r
}
