package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iceonwheels/storefront-backend/api/controllers"
	"github.com/iceonwheels/storefront-backend/api/middleware"
	"github.com/iceonwheels/storefront-backend/internal/auth"
	"github.com/iceonwheels/storefront-backend/internal/cart"
	checkoutsvc "github.com/iceonwheels/storefront-backend/internal/checkout"
	"github.com/iceonwheels/storefront-backend/internal/inventory"
	"github.com/iceonwheels/storefront-backend/internal/menu"
	"github.com/iceonwheels/storefront-backend/internal/orders"
	"github.com/iceonwheels/storefront-backend/internal/posters"
	"github.com/iceonwheels/storefront-backend/internal/promos"
	"github.com/iceonwheels/storefront-backend/internal/receipts"
	"github.com/iceonwheels/storefront-backend/internal/users"
	"github.com/iceonwheels/storefront-backend/pkg/auth/session"
	"github.com/iceonwheels/storefront-backend/pkg/config"
	"github.com/iceonwheels/storefront-backend/pkg/db"
	"github.com/iceonwheels/storefront-backend/pkg/enums"
	"github.com/iceonwheels/storefront-backend/pkg/logger"
	"github.com/iceonwheels/storefront-backend/pkg/metrics"
	"github.com/iceonwheels/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager session.AccessSessionChecker,
	storeMetrics *metrics.StoreMetrics,
	registry prometheus.Gatherer,
	authService auth.Service,
	userService users.Service,
	menuService menu.Service,
	inventoryService inventory.Service,
	promoService promos.Service,
	posterService posters.Service,
	cartService cart.Service,
	checkoutService checkoutsvc.Service,
	orderService orders.Service,
	receiptService receipts.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(storeMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.PublicMenu(menuService, logg))
		r.Get("/menu/toppings", controllers.PublicToppings(menuService, logg))
		r.Get("/posters", controllers.PublicPosters(posterService, logg))
		r.Post("/cart/quote", controllers.CartQuote(cartService, logg))
		r.Post("/promos/validate", controllers.PromoValidate(cartService, logg))
		r.Post("/checkout", controllers.Checkout(checkoutService, logg))
		r.Get("/orders/{orderId}", controllers.OrderLookup(orderService, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.RequireRole(logg,
			enums.UserRoleOwner, enums.UserRolePartner, enums.UserRoleManager, enums.UserRoleAdmin))

		r.Route("/menu", func(r chi.Router) {
			r.Route("/toppings", func(r chi.Router) {
				r.Get("/", controllers.AdminToppingList(menuService, logg))
				r.Post("/", controllers.AdminToppingCreate(menuService, logg))
				r.Put("/{toppingId}", controllers.AdminToppingUpdate(menuService, logg))
				r.Delete("/{toppingId}", controllers.AdminToppingDelete(menuService, logg))
			})
			r.Get("/", controllers.AdminMenuList(menuService, logg))
			r.Post("/", controllers.AdminMenuCreate(menuService, logg))
			r.Get("/{itemId}", controllers.AdminMenuGet(menuService, logg))
			r.Put("/{itemId}", controllers.AdminMenuUpdate(menuService, logg))
			r.Delete("/{itemId}", controllers.AdminMenuDelete(menuService, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.AdminInventoryList(inventoryService, logg))
			r.Put("/", controllers.AdminInventoryUpsert(inventoryService, logg))
			r.Post("/{menuItemId}/adjust", controllers.AdminInventoryAdjust(inventoryService, logg))
		})

		r.Route("/promos", func(r chi.Router) {
			r.Get("/", controllers.AdminPromoList(promoService, logg))
			r.Post("/", controllers.AdminPromoCreate(promoService, logg))
			r.Get("/{promoId}", controllers.AdminPromoGet(promoService, logg))
			r.Put("/{promoId}", controllers.AdminPromoUpdate(promoService, logg))
			r.Delete("/{promoId}", controllers.AdminPromoDelete(promoService, logg))
		})

		r.Route("/posters", func(r chi.Router) {
			r.Get("/", controllers.AdminPosterList(posterService, logg))
			r.Post("/", controllers.AdminPosterCreate(posterService, logg))
			r.Put("/{posterId}", controllers.AdminPosterUpdate(posterService, logg))
			r.Delete("/{posterId}", controllers.AdminPosterDelete(posterService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(orderService, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(orderService, logg))
			r.Post("/{orderId}/status", controllers.AdminOrderUpdateStatus(orderService, logg))
			r.Post("/{orderId}/payment-status", controllers.AdminOrderUpdatePaymentStatus(orderService, logg))
			r.Post("/{orderId}/print", controllers.PrintOrder(receiptService, orderService, logg))
			r.Delete("/{orderId}", controllers.AdminOrderDelete(orderService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUserList(userService, logg))
			r.With(middleware.RequireUserManager(logg)).Post("/", controllers.AdminUserCreate(userService, logg))
			r.Get("/{userId}", controllers.AdminUserGet(userService, logg))
			r.Put("/{userId}", controllers.AdminUserUpdate(userService, logg))
			r.With(middleware.RequireUserManager(logg)).Delete("/{userId}", controllers.AdminUserDelete(userService, logg))
		})

		r.Route("/printer", func(r chi.Router) {
			r.Get("/status", controllers.PrinterStatus(receiptService, logg))
			r.Post("/connect", controllers.PrinterConnect(receiptService, logg))
			r.Post("/disconnect", controllers.PrinterDisconnect(receiptService, logg))
			r.Post("/test", controllers.PrinterSelfTest(receiptService, logg))
		})
	})

	return r
}
