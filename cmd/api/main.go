package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/printshophq/printshop-backend/internal/config"
	"github.com/printshophq/printshop-backend/internal/metrics"
	"github.com/printshophq/printshop-backend/internal/modules/analytics"
	"github.com/printshophq/printshop-backend/internal/modules/auth"
	"github.com/printshophq/printshop-backend/internal/modules/catalog"
	"github.com/printshophq/printshop-backend/internal/modules/customer"
	"github.com/printshophq/printshop-backend/internal/modules/delivery"
	"github.com/printshophq/printshop-backend/internal/modules/document"
	"github.com/printshophq/printshop-backend/internal/modules/invoice"
	"github.com/printshophq/printshop-backend/internal/modules/job"
	"github.com/printshophq/printshop-backend/internal/modules/notification"
	"github.com/printshophq/printshop-backend/internal/modules/payroll"
	"github.com/printshophq/printshop-backend/internal/modules/quote"
	"github.com/printshophq/printshop-backend/internal/modules/settings"
	"github.com/printshophq/printshop-backend/internal/modules/showcase"
	"github.com/printshophq/printshop-backend/internal/modules/user"
	"github.com/printshophq/printshop-backend/internal/offline"
	"github.com/printshophq/printshop-backend/internal/realtime"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	metrics.Init()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		// The offline cache keeps reads alive; start anyway and let the
		// replayer catch up when the database comes back.
		logger.Warn("database unreachable at startup", zap.Error(err))
	} else {
		logger.Info("connected to database")
	}

	cache, err := offline.Open(cfg.OfflineCachePath)
	if err != nil {
		logger.Fatal("open offline cache", zap.Error(err))
	}
	defer cache.Close()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	guard := auth.NewGuard(cfg.JWTSecret)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router, guard.Authenticate, guard.Require(auth.PermManageUsers))

	authService := auth.NewService(userRepo, cfg.JWTSecret,
		cfg.LoginMaxFailures, time.Duration(cfg.LoginCooldownSec)*time.Second)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Shop configuration ──────────────────────────────────
	settingsRepo := settings.NewPostgresRepository(db)
	settingsService := settings.NewService(settingsRepo)
	settings.NewHandler(settingsService).RegisterRoutes(router, guard)

	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo, cache)
	catalog.NewHandler(catalogService).RegisterRoutes(router, guard)

	// ── Customers & jobs ────────────────────────────────────
	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo, cache)
	customer.NewHandler(customerService).RegisterRoutes(router, guard)

	jobRepo := job.NewPostgresRepository(db)
	jobService := job.NewService(jobRepo, cache)
	job.NewHandler(jobService).RegisterRoutes(router, guard)

	quoteRepo := quote.NewPostgresRepository(db)
	quoteService := quote.NewService(quoteRepo)
	quote.NewHandler(quoteService).RegisterRoutes(router, guard)

	invoiceRepo := invoice.NewPostgresRepository(db)
	invoiceService := invoice.NewService(invoiceRepo, settingsService)
	invoice.NewHandler(invoiceService).RegisterRoutes(router, guard)

	deliveryRepo := delivery.NewPostgresRepository(db)
	deliveryService := delivery.NewService(deliveryRepo, jobRepo)
	delivery.NewHandler(deliveryService).RegisterRoutes(router, guard)

	// ── Documents & reporting ───────────────────────────────
	document.NewHandler(invoiceService, quoteService, customerService,
		catalogService, settingsService).RegisterRoutes(router, guard)

	analyticsService := analytics.NewService(analytics.NewPostgresRepository(db))
	analytics.NewHandler(analyticsService).RegisterRoutes(router, guard)

	payrollService := payroll.NewService(payroll.NewPostgresRepository(db))
	payroll.NewHandler(payrollService).RegisterRoutes(router, guard)

	// ── Showcase ────────────────────────────────────────────
	imageStore, err := showcase.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		logger.Fatal("init image store", zap.Error(err))
	}
	showcaseService := showcase.NewService(showcase.NewPostgresRepository(db), imageStore, logger)
	showcase.NewHandler(showcaseService).RegisterRoutes(router, guard)
	router.Handle("/uploads/*",
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(imageStore.Dir()))))

	// ── Notifications ───────────────────────────────────────
	emailSender := &notification.EmailSender{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	}
	smsGateway := notification.NewHTTPSMSGateway(
		cfg.SMSAPIKey, cfg.SMSAPISecret, cfg.SMSBaseURL, cfg.SMSSenderID)

	notificationRepo := notification.NewPostgresRepository(db)
	notificationService := notification.NewService(notificationRepo, customerRepo,
		emailSender, smsGateway, cfg.RetryAttempts, logger)
	notification.NewHandler(notificationService).RegisterRoutes(router, guard)

	// ── Background workers ──────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	var wg sync.WaitGroup

	outboxWorker := notification.NewOutboxWorker(notificationRepo, notificationService,
		logger, cfg.OutboxWorkers, cfg.OutboxRate, cfg.OutboxBatchMax,
		cfg.RetryAttempts, time.Duration(cfg.OutboxPollSec)*time.Second)
	outboxWorker.Run(ctx, &wg)

	replayer := offline.NewReplayer(cache, db, logger,
		time.Duration(cfg.ReplayPollSec)*time.Second)
	job.RegisterReplay(replayer, jobService)
	replayer.Run(ctx, &wg)

	hub := realtime.NewHub(cfg.DatabaseURL, logger)
	if err := hub.Run(ctx, &wg); err != nil {
		logger.Warn("realtime listener disabled", zap.Error(err))
	}
	realtime.NewHandler(hub).RegisterRoutes(router, guard)

	// ── Servers ─────────────────────────────────────────────
	metricsServer := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: promhttp.Handler()}
	go func() {
		logger.Info("metrics server starting", zap.String("port", cfg.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server", zap.Error(err))
		}
	}()

	apiServer := &http.Server{Addr: ":" + cfg.AppPort, Handler: router}
	go func() {
		logger.Info("api server starting", zap.String("port", cfg.AppPort))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("api server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics shutdown", zap.Error(err))
	}

	wg.Wait()
	logger.Info("stopped")
}
