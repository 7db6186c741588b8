package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"reportapi/docs"
	"reportapi/internal/cache"
	"reportapi/internal/config"
	"reportapi/internal/curriculum"
	"reportapi/internal/database"
	"reportapi/internal/database/migration"
	handlers "reportapi/internal/http/handler"
	"reportapi/internal/http/middleware"
	"reportapi/internal/logger"
	"reportapi/internal/otel"
	"reportapi/internal/repository/postgres"
	"reportapi/internal/scheduler"
	"reportapi/internal/service"
	"reportapi/internal/source"
	"reportapi/internal/storage"
)

const (
	shutdownTimeout = 10 * time.Second
	refreshTimeout  = 2 * time.Minute
	bodyLimit       = service.MaxRecordFileSize + 1<<20
)

// @title Curriculum Report API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		log = zap.Must(zap.NewProduction())
		log.Warn("invalid LOG_LEVEL, using info", zap.String("log_level", cfg.LogLevel), zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server_stopped", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Record source: a local directory, or the record bucket in object storage.
	var (
		src      source.Source
		objStore storage.Storage
	)
	if cfg.Source.Dir != "" {
		src = source.NewDirSource(cfg.Source.Dir)
		log.Info("record_source", zap.String("kind", "dir"), zap.String("dir", cfg.Source.Dir))
	} else {
		objStore, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return err
		}
		src = source.NewObjectSource(objStore, cfg.Source.Prefix)
		log.Info("record_source", zap.String("kind", "object_store"),
			zap.String("bucket", cfg.MinIO.Bucket), zap.String("prefix", cfg.Source.Prefix))
	}

	cacheMetrics, err := cache.NewMetrics(reg)
	if err != nil {
		return err
	}
	dataset := cache.New(func(ctx context.Context) (*curriculum.Dataset, error) {
		return source.LoadDataset(ctx, src)
	}, cfg.Cache.TTL, cache.WithMetrics(cacheMetrics), cache.WithLoadTimeout(cfg.Cache.LoadTimeout))

	reportSvc := service.NewReportService(dataset, cfg.Reports.Format, log)

	// Record file management needs both the object store and the index database.
	var (
		fileSvc service.RecordFileService
		db      *sql.DB
	)
	if objStore != nil && cfg.Database.Host != "" {
		pg, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pg.Close()
		if err := migration.EnsureMigrated(ctx, pg, log, cfg.Database.Host); err != nil {
			return err
		}
		db = pg
		fileSvc = service.NewRecordFileService(objStore, postgres.NewRecordFilePostgres(pg), dataset, cfg.Source.Prefix, log)
	}

	if cfg.Source.Dir != "" && cfg.Source.Watch {
		go func() {
			err := source.Watch(ctx, cfg.Source.Dir, func(name string) {
				dataset.Invalidate()
				log.Info("record_file_changed", zap.String("file", name))
			}, func(err error) {
				// Events may have been lost; reload on the next request.
				dataset.Invalidate()
				log.Warn("record_watch_error", zap.Error(err))
			})
			if err != nil {
				log.Error("record_watch_stopped", zap.Error(err))
			}
		}()
	}

	sched := scheduler.New(log)
	if cfg.Cache.RefreshCron != "" {
		err := sched.AddFunc("dataset_refresh", cfg.Cache.RefreshCron, refreshTimeout, func(ctx context.Context) error {
			_, err := dataset.Refresh(ctx)
			return err
		})
		if err != nil {
			return err
		}
	}
	sched.Start()
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = sched.Stop(sctx)
	}()

	// Warm the cache; a failure here is reported per request later.
	if _, err := dataset.Get(ctx); err != nil {
		log.Warn("dataset_warmup_failed", zap.Error(err))
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	handlers.RegisterRoutes(app, db, reportSvc, fileSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_listening", zap.String("addr", ":"+cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("server_shutting_down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
