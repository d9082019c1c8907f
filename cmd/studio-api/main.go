package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/fitstudio/studio-api/internal/cache"
	"github.com/fitstudio/studio-api/internal/handler"
	"github.com/fitstudio/studio-api/internal/service"
	"github.com/fitstudio/studio-api/internal/store"
	"github.com/fitstudio/studio-api/internal/suggest"
	"github.com/fitstudio/studio-api/pkg/config"
	"github.com/fitstudio/studio-api/pkg/database"
	"github.com/fitstudio/studio-api/pkg/logger"
	corsmiddleware "github.com/fitstudio/studio-api/pkg/middleware/cors"
	metricsmiddleware "github.com/fitstudio/studio-api/pkg/middleware/metrics"
	reqidmiddleware "github.com/fitstudio/studio-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx := context.Background()

	db, err := openStore(cfg, logr)
	if err != nil {
		logr.Fatal("store unavailable", zap.Error(err))
	}
	defer db.Close()

	st := store.New(db)
	if err := st.EnsureSchema(ctx); err != nil {
		logr.Fatal("failed to prepare schema", zap.Error(err))
	}
	if cfg.Seed.Enabled {
		if err := store.SeedIfEmpty(ctx, st); err != nil {
			logr.Fatal("failed to seed store", zap.Error(err))
		}
	}

	viewCache := cache.New()
	if err := viewCache.Load(ctx, st); err != nil {
		logr.Fatal("failed to warm view cache", zap.Error(err))
	}

	validate := validator.New()
	alloc := store.NewAllocator(st)
	suggester := suggest.New(cfg.Suggestion)

	metricsSvc := service.NewMetricsService()
	st.SetObserver(metricsSvc)
	router := &handler.Router{
		Students:     handler.NewStudentHandler(service.NewStudentService(st, alloc, viewCache, validate, logr)),
		Appointments: handler.NewAppointmentHandler(service.NewAppointmentService(st, alloc, viewCache, validate, logr)),
		Waitlist:     handler.NewWaitlistHandler(service.NewWaitlistService(st, alloc, viewCache, validate, logr)),
		Catalog:      handler.NewCatalogHandler(service.NewCatalogService(st, alloc, viewCache, suggester, validate, logr)),
		Profile:      handler.NewProfileHandler(service.NewProfileService(st, viewCache, validate, logr)),
		Dashboard:    handler.NewDashboardHandler(service.NewDashboardService(viewCache, logr)),
		Reports:      handler.NewReportHandler(service.NewReportService(viewCache, cfg.Reports, logr)),
		Metrics:      handler.NewMetricsHandler(metricsSvc),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(metricsmiddleware.Middleware(metricsSvc))

	r.GET("/health", router.Metrics.Health)
	r.GET("/metrics", router.Metrics.Prometheus)
	router.Register(r.Group(cfg.APIPrefix))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// openStore opens the configured database file, falling back to a volatile
// in-memory store so the application still starts when the file is
// unreadable. The fallback is loud: everything written to it is lost on
// shutdown.
func openStore(cfg *config.Config, logr *zap.Logger) (*sqlx.DB, error) {
	db, err := database.OpenSQLite(cfg.Database)
	if err == nil {
		return db, nil
	}
	logr.Warn("could not open store file, falling back to in-memory store",
		zap.String("path", cfg.Database.Path),
		zap.Error(err),
	)
	return database.OpenMemory()
}
