package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plissemesh/production-backend/api/controllers"
	"github.com/plissemesh/production-backend/api/middleware"
	"github.com/plissemesh/production-backend/internal/auth"
	"github.com/plissemesh/production-backend/internal/orders"
	"github.com/plissemesh/production-backend/internal/reports"
	"github.com/plissemesh/production-backend/internal/shopify"
	"github.com/plissemesh/production-backend/internal/users"
	"github.com/plissemesh/production-backend/pkg/auth/session"
	"github.com/plissemesh/production-backend/pkg/bigquery"
	"github.com/plissemesh/production-backend/pkg/config"
	"github.com/plissemesh/production-backend/pkg/db"
	"github.com/plissemesh/production-backend/pkg/enums"
	"github.com/plissemesh/production-backend/pkg/logger"
	"github.com/plissemesh/production-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	bigqueryClient bigquery.Pinger,
	sessionChecker session.AccessSessionChecker,
	authService auth.Service,
	usersService users.Service,
	ordersService orders.Service,
	reportsService reports.Service,
	webhookService shopify.WebhookService,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient, bigqueryClient))
	})

	// Shopify calls this with its own HMAC, not a bearer token.
	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/shopify/{storeKey}", controllers.ShopifyWebhook(webhookService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.With(middleware.Auth(cfg.JWT, sessionChecker, logg)).Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Post("/account/change-password", controllers.AccountChangePassword(usersService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(ordersService, logg))
			r.Get("/{orderID}", controllers.OrderDetail(ordersService, logg))
			r.Get("/{orderID}/cutsheet", controllers.OrderCutSheet(reportsService, logg))

			r.With(middleware.RequireRole(logg,
				enums.UserRoleFrameCutting,
				enums.UserRoleMeshCutting,
				enums.UserRoleQuality,
			)).Patch("/{orderID}/items/{itemID}/status", controllers.ItemStatusUpdate(ordersService, logg))

			r.Route("/{orderID}/boxes", func(r chi.Router) {
				r.Use(middleware.RequireRole(logg, enums.UserRoleQuality))
				r.Post("/", controllers.BoxAdd(ordersService, logg))
				r.Delete("/{boxID}", controllers.BoxRemove(ordersService, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.RequireAdmin(logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.AdminOrderCreate(ordersService, logg))
			r.Delete("/{orderID}", controllers.AdminOrderDelete(ordersService, logg))
			r.Post("/{orderID}/status-override", controllers.AdminStatusOverride(ordersService, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", controllers.AdminUserCreate(usersService, logg))
			r.Get("/", controllers.AdminUserList(usersService, logg))
			r.Get("/{userID}", controllers.AdminUserGet(usersService, logg))
			r.Patch("/{userID}", controllers.AdminUserUpdate(usersService, logg))
			r.Post("/{userID}/reset-password", controllers.AdminUserResetPassword(usersService, logg))
		})
	})

	return r
}
