package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	swagger "github.com/go-swagno/swagno-fiber/swagger"

	"github.com/imthegoodboy/veristamp/internal/api/docs"
	"github.com/imthegoodboy/veristamp/internal/api/handler"
	"github.com/imthegoodboy/veristamp/internal/api/middleware"
	"github.com/imthegoodboy/veristamp/internal/ratelimit"
	"github.com/imthegoodboy/veristamp/internal/service"
)

type Dependencies struct {
	ContentService *service.ContentService
	VerifyService  *service.VerifyService
	FeeService     *service.FeeService
	StatsService   *service.StatsService
	RateLimiter    *ratelimit.RateLimiter
	RateLimit      middleware.RateLimiterConfig
	DB             *pgxpool.Pool
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "VeriStamp API",
		BodyLimit:    64 * 1024 * 1024,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.WalletHeader,
	}))

	// Swagger documentation
	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	// Health check endpoints
	healthHandler := handler.NewHealthHandler()
	if r.deps != nil && r.deps.DB != nil {
		healthHandler = healthHandler.WithPing(r.deps.DB.Ping)
	}
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	if r.deps == nil {
		return
	}

	v1 := r.app.Group("/v1")
	v1.Use(middleware.Wallet())
	if r.deps.RateLimiter != nil {
		v1.Use(middleware.RateLimit(r.deps.RateLimiter, r.deps.RateLimit, r.logger))
	}

	contentHandler := handler.NewContentHandler(r.deps.ContentService, r.deps.VerifyService, r.logger)
	verifyHandler := handler.NewVerifyHandler(r.deps.VerifyService, r.logger)
	feeHandler := handler.NewFeeHandler(r.deps.FeeService)
	statsHandler := handler.NewStatsHandler(r.deps.StatsService)

	v1.Post("/contents", contentHandler.Record)
	v1.Get("/contents/:hash", contentHandler.Get)
	v1.Get("/contents/:hash/ledger", contentHandler.Ledger)

	v1.Post("/verify", verifyHandler.Verify)
	v1.Post("/verify/batch", verifyHandler.VerifyBatch)

	v1.Get("/fees/estimate", feeHandler.Estimate)
	v1.Get("/stats", statsHandler.Stats)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	return r.app.Shutdown()
}
