package api

import (
	"net/http"
	"stockmate_server/api/auth"
	"stockmate_server/api/categories"
	"stockmate_server/api/health"
	"stockmate_server/api/middleware"
	"stockmate_server/api/products"
	"stockmate_server/api/sales"
	"stockmate_server/api/stock"
	"stockmate_server/config"
	"stockmate_server/database"
	"stockmate_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

func App() chi.Router {
	r := chi.NewRouter()

	// create loggers
	logLevel := gecho.ParseLogLevel(config.GetLogLevel())
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(logLevel)))
	standardLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(logLevel)))

	db := database.GetInstance()
	cfg := config.GetConfig()

	sm := services.NewServiceManager(standardLogger, cfg, db)

	mw := middleware.NewMiddleware(cfg, mwLogger, sm.AuthService, sm.CacheService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(10 * 1024 * 1024))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(gecho.Handlers.CreateLoggingMiddleware(mwLogger))
	r.Use(middleware.MetricsMiddleware)

	// CORS (must be before auth / csrf)
	r.Use(mw.SetupCORS().Handler)

	// Rate limiting
	r.Use(mw.RateLimitMiddleware())

	NewRouterManager(
		categories.NewCategoryRoutesManager(standardLogger, sm.CategoryService, mw),
		products.NewProductRoutesManager(standardLogger, sm.ProductService, mw),
		stock.NewStockRoutesManager(standardLogger, sm.StockService, mw),
		sales.NewSalesRoutesManager(standardLogger, sm.SalesService, mw),
		auth.NewAuthRoutesManager(standardLogger, sm.AuthService, cfg, mw),
		health.NewHealthRoutesManager(sm.HealthService),
	).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the Stockmate API"),
			gecho.Send(),
		)
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
