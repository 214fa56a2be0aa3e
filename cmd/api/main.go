package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/academic-quality-api/api/swagger"
	"github.com/noah-isme/academic-quality-api/internal/handler"
	"github.com/noah-isme/academic-quality-api/internal/middleware"
	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/internal/quality"
	"github.com/noah-isme/academic-quality-api/internal/repository"
	"github.com/noah-isme/academic-quality-api/internal/service"
	"github.com/noah-isme/academic-quality-api/pkg/cache"
	"github.com/noah-isme/academic-quality-api/pkg/config"
	"github.com/noah-isme/academic-quality-api/pkg/database"
	"github.com/noah-isme/academic-quality-api/pkg/jobs"
	"github.com/noah-isme/academic-quality-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/academic-quality-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/academic-quality-api/pkg/middleware/requestid"
	"github.com/noah-isme/academic-quality-api/pkg/storage"
)

// @title Academic Quality API
// @version 1.0.0
// @description Institutional quality analytics over students, teachers and courses.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const housekeepingInterval = time.Hour

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metrics := service.NewMetricsService()
	store := repository.NewStore()
	users := repository.NewUserRepository()
	etlJobs := repository.NewETLJobRepository()
	checks := map[string]handler.ReadinessCheck{}

	var db *sqlx.DB
	if cfg.SeedSource == config.SeedSourcePostgres {
		conn, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer conn.Close()
		db = conn
		checks["postgres"] = db.PingContext
	}

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		repo := repository.NewCacheRepository(client, "analytics", logr)
		cacheRepo = repo
		checks["redis"] = repo.Ping
	} else {
		logr.Info("analytics cache mirror disabled")
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Analytics.CacheTTL, logr, cfg.Analytics.CacheEnabled)

	qualitySvc := service.NewQualityService(store, cacheSvc, metrics, logr, service.QualityConfig{
		Thresholds: quality.RiskThresholds{
			LowGPA:         cfg.Analytics.LowGPAThreshold,
			LowRetention:   cfg.Analytics.LowRetentionThreshold,
			HighRatio:      cfg.Analytics.HighRatioThreshold,
			LowUtilization: cfg.Analytics.LowUtilizationThreshold,
		},
		TrendSeed:      cfg.Analytics.TrendSeed,
		TrendAmplitude: cfg.Analytics.TrendJitter,
		CacheTTL:       cfg.Analytics.CacheTTL,
	})

	authSvc := service.NewAuthService(users, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	if _, err := authSvc.SeedUser(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.FullName, models.RoleSuperAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	files, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		return fmt.Errorf("init report storage: %w", err)
	}
	exporter := service.NewExportService(files, storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL),
		service.ExportConfig{APIPrefix: cfg.APIPrefix, ResultTTL: cfg.Reports.SignedURLTTL}, logr)

	worker := service.NewETLWorker(etlJobs, syncSourceFor(db), store, qualitySvc, exporter, metrics, logr)
	queue := jobs.NewQueue("etl", worker.Handle, jobs.QueueConfig{
		Workers:    cfg.ETL.Workers,
		MaxRetries: cfg.ETL.MaxRetries,
		RetryDelay: cfg.ETL.RetryDelay,
		OnFailure:  worker.Fail,
		Logger:     logr,
	})
	queue.Start(ctx)
	defer queue.Stop()

	etlSvc := service.NewETLService(etlJobs, queue, exporter, metrics, logr, db != nil)
	if db != nil {
		if _, err := etlSvc.TriggerSync(ctx, "system"); err != nil {
			return fmt.Errorf("schedule initial sync: %w", err)
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Students:  handler.NewStudentHandler(service.NewStudentService(store.Students, validate, logr)),
		Teachers:  handler.NewTeacherHandler(service.NewTeacherService(store.Teachers, validate, logr)),
		Courses:   handler.NewCourseHandler(service.NewCourseService(store.Courses, store.Teachers, validate, logr)),
		Analytics: handler.NewAnalyticsHandler(qualitySvc, metrics),
		ETL:       handler.NewETLHandler(etlSvc),
		Ops:       handler.NewMetricsHandler(metrics, checks),
	}, authSvc)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	go housekeeping(ctx, logr, exporter, etlJobs, users, cfg.Reports.SignedURLTTL)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// syncSourceFor keeps the worker's source nil when no database is configured.
func syncSourceFor(db *sqlx.DB) service.SyncSource {
	if db == nil {
		return nil
	}
	return repository.NewSQLSource(db)
}

func housekeeping(ctx context.Context, logr *zap.Logger, exporter *service.ExportService, etlJobs *repository.ETLJobRepository, users *repository.UserRepository, ttl time.Duration) {
	ticker := time.NewTicker(housekeepingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := exporter.Cleanup(ttl)
			if err != nil {
				logr.Warn("report cleanup failed", zap.Error(err))
			}
			pruned := etlJobs.PruneFinished(ctx, now.Add(-ttl))
			purged := users.PurgeExpired(ctx, now)
			logr.Debug("housekeeping done",
				zap.Int("reports_removed", len(removed)),
				zap.Int("jobs_pruned", pruned),
				zap.Int("tokens_purged", purged))
		}
	}
}
