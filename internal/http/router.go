package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/midcare/pflegedoc/internal/auth"
	"github.com/midcare/pflegedoc/internal/config"
	"github.com/midcare/pflegedoc/internal/http/handlers"
	"github.com/midcare/pflegedoc/internal/http/middlewares"
	"github.com/midcare/pflegedoc/internal/observability"
	"github.com/midcare/pflegedoc/internal/redisclient"
	"github.com/midcare/pflegedoc/internal/repo/postgres"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func NewRouter(cfg config.Config, log *slog.Logger, pool *pgxpool.Pool, redis *redisclient.Client, prom *observability.Prom) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(otelgin.Middleware("pflegedoc"))
	r.Use(prom.GinHandleMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORS(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())

	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	health := handlers.NewHealthHandler(ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// wire up repositories
	clientsRepo := postgres.NewClientsRepo(pool)
	entriesRepo := postgres.NewEntriesRepo(pool)
	staffRepo := postgres.NewStaffRepo(pool)

	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL)
	authMW := middlewares.NewAuthMiddleware(jwtManager)

	authHandler := handlers.NewAuthHandler(staffRepo, staffRepo, jwtManager)
	staffHandler := handlers.NewStaffHandler(staffRepo)
	clientsHandler := handlers.NewClientsHandler(clientsRepo, entriesRepo)
	entriesHandler := handlers.NewEntriesHandler(entriesRepo)
	reportsHandler := handlers.NewReportsHandler(clientsRepo, entriesRepo, prom)
	dashboardHandler := handlers.NewDashboardHandler(clientsRepo, entriesRepo)

	// login and register share one tight window per IP
	loginLimiter := middlewares.NewRateLimiter(redis, 10, time.Minute)

	r.POST("/auth/register", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Register)
	r.POST("/auth/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Login)

	api := r.Group("/", authMW.RequireAuth())

	api.GET("/me", authHandler.Me)
	api.GET("/dashboard", dashboardHandler.Dashboard)

	api.GET("/clients", clientsHandler.ListClients)
	api.POST("/clients", clientsHandler.CreateClient)
	api.GET("/clients/:id", clientsHandler.GetClient)
	api.PUT("/clients/:id", clientsHandler.UpdateClient)
	api.DELETE("/clients/:id", authMW.RequireAdmin(), clientsHandler.DeleteClient)

	api.GET("/clients/:id/entries", entriesHandler.ListEntries)
	api.POST("/clients/:id/entries", entriesHandler.CreateEntry)
	api.DELETE("/entries/:id", entriesHandler.DeleteEntry)

	api.GET("/clients/:id/export", reportsHandler.ExportClientReport)

	api.PUT("/staff/:id/access", authMW.RequireAdmin(), staffHandler.UpdateAccess)

	return r
}
