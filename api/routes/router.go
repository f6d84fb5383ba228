package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/restodeals/backend/api/controllers"
	"github.com/restodeals/backend/api/middleware"
	"github.com/restodeals/backend/internal/auth"
	"github.com/restodeals/backend/internal/cart"
	"github.com/restodeals/backend/internal/deals"
	"github.com/restodeals/backend/internal/favorites"
	"github.com/restodeals/backend/internal/notifications"
	"github.com/restodeals/backend/internal/orders"
	"github.com/restodeals/backend/pkg/config"
	"github.com/restodeals/backend/pkg/enums"
	"github.com/restodeals/backend/pkg/logger"
)

type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            controllers.Pinger
	Cache         controllers.Pinger
	Auth          auth.Service
	Deals         deals.Service
	Cart          cart.Service
	Orders        orders.Service
	Favorites     favorites.Service
	Notifications notifications.Service
	Metrics       prometheus.Gatherer
}

// NewRouter wires every HTTP surface. Anonymous traffic sees only health,
// metrics, auth, and the published catalog; everything else sits behind the
// token gate, with the owner and admin groups behind a role gate as well.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Cache))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.Register(deps.Auth, logg))
		r.Post("/login", controllers.Login(deps.Auth, logg))
	})

	r.Route("/api/v1/deals", func(r chi.Router) {
		r.Get("/", controllers.DealsList(deps.Deals, logg))
		r.Get("/{dealID}", controllers.DealsGet(deps.Deals, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/api/v1/favorites", func(r chi.Router) {
			r.Get("/", controllers.FavoritesList(deps.Favorites, logg))
			r.Post("/", controllers.FavoritesAdd(deps.Favorites, logg))
			r.Delete("/{dealID}", controllers.FavoritesRemove(deps.Favorites, logg))
		})

		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Cart, logg))
			r.Post("/items", controllers.CartAdd(deps.Cart, logg))
			r.Post("/items/{dealID}/decrement", controllers.CartDecrement(deps.Cart, logg))
			r.Delete("/items/{dealID}", controllers.CartRemove(deps.Cart, logg))
		})

		r.Route("/api/v1/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Orders, logg))
			r.Post("/", controllers.OrdersPlace(deps.Orders, logg))
			r.Get("/{orderID}", controllers.OrdersGet(deps.Orders, logg))
		})

		r.Route("/api/v1/notifications", func(r chi.Router) {
			r.Get("/", controllers.NotificationsList(deps.Notifications, logg))
			r.Post("/{notificationID}/read", controllers.NotificationsMarkRead(deps.Notifications, logg))
			r.Post("/read-all", controllers.NotificationsMarkAllRead(deps.Notifications, logg))
		})

		r.Route("/api/v1/owner/deals", func(r chi.Router) {
			r.Use(middleware.RequireRoles(logg, enums.RoleOwner, enums.RoleAdmin))

			r.Get("/", controllers.OwnerDealsList(deps.Deals, logg))
			r.Post("/", controllers.OwnerDealsCreate(deps.Deals, logg))
			r.Get("/{dealID}", controllers.OwnerDealsGet(deps.Deals, logg))
			r.Put("/{dealID}", controllers.OwnerDealsUpdate(deps.Deals, logg))
			r.Post("/{dealID}/submit", controllers.OwnerDealsSubmit(deps.Deals, logg))
			r.Delete("/{dealID}", controllers.OwnerDealsDelete(deps.Deals, logg))
		})

		r.Route("/api/v1/admin/deals", func(r chi.Router) {
			r.Use(middleware.RequireRoles(logg, enums.RoleAdmin))

			r.Get("/submitted", controllers.AdminDealsSubmitted(deps.Deals, logg))
			r.Post("/{dealID}/approve", controllers.AdminDealsApprove(deps.Deals, logg))
			r.Post("/{dealID}/reject", controllers.AdminDealsReject(deps.Deals, logg))
		})
	})

	return r
}
