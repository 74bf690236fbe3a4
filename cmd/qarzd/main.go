package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/application/usecase"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/model"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/port"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/domain/service"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/cache"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/config"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/kafka"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/messaging"
	pgRepo "github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/persistence/postgres"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/qrcode"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/storage"
	grpcPresentation "github.com/Farhan-176/Mcrofinance-Loan-App/internal/presentation/grpc"
	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/presentation/rest"
	"github.com/Farhan-176/Mcrofinance-Loan-App/pkg/auth"
	pkgkafka "github.com/Farhan-176/Mcrofinance-Loan-App/pkg/kafka"
	"github.com/Farhan-176/Mcrofinance-Loan-App/pkg/observability"
	pkgpostgres "github.com/Farhan-176/Mcrofinance-Loan-App/pkg/postgres"
)

const limiterIdle = 10 * time.Minute

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: cfg.App.Name,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("qarzd stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("qarzd stopped")
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	logger.Info("starting qarzd",
		zap.String("environment", cfg.App.Environment),
		zap.Int("http_port", cfg.App.HTTPPort),
		zap.Int("grpc_port", cfg.App.GRPCPort),
	)

	if cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.App.Name,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", zap.Error(err))
		} else {
			defer func() { _ = shutdown(context.Background()) }()
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.App.Name})
	if err != nil {
		return err
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	// Database.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	pgCfg := cfg.Database.Postgres()
	pgCfg.ApplicationName = cfg.App.Name
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	dbCancel()
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if cfg.App.AutoMigrate {
		if err := pkgpostgres.RunMigrations(cfg.Database.DSN(), cfg.App.MigrationsDir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations applied", zap.String("dir", cfg.App.MigrationsDir))
	}

	readiness := map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
	}

	// Adapters.
	loanRepo := pgRepo.NewLoanRequestRepo(pool)
	guarantorRepo := pgRepo.NewGuarantorRepo(pool)
	applicantRepo := pgRepo.NewApplicantRepo(pool)

	publisher, closePublisher, err := newPublisher(cfg.Kafka, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	var slipCache port.SlipCache = cache.NopSlipCache{}
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		slipCache = cache.NewRedisSlipCache(client, cfg.Redis.SlipTTL)
		readiness["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		logger.Info("slip cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	documents, err := storage.NewDiskStore(cfg.App.UploadsDir)
	if err != nil {
		return err
	}
	encoder := qrcode.NewEncoder(0)
	calculator := service.NewLoanCalculator(model.DefaultCatalog())
	tokens := service.NewTokenIssuer()

	jwtCfg, err := cfg.Auth.JWT()
	if err != nil {
		return err
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		return fmt.Errorf("init jwt service: %w", err)
	}

	// Use cases.
	calculateUC := usecase.NewCalculateLoanUseCase(calculator)
	lookupUC := usecase.NewLookupByTokenUseCase(loanRepo, applicantRepo, guarantorRepo)
	slipUC := usecase.NewGenerateSlipUseCase(loanRepo, applicantRepo, encoder, slipCache, logger)

	loans := rest.NewLoanHandler(rest.LoanUseCases{
		ListCategories:   usecase.NewListCategoriesUseCase(calculator),
		Calculate:        calculateUC,
		Create:           usecase.NewCreateLoanRequestUseCase(loanRepo, calculator, publisher, logger),
		AttachGuarantors: usecase.NewAttachGuarantorsUseCase(loanRepo, publisher, logger),
		UploadDocuments:  usecase.NewUploadDocumentsUseCase(loanRepo, documents, publisher, logger),
		ListMine:         usecase.NewListMyRequestsUseCase(loanRepo, applicantRepo, guarantorRepo),
		Get:              usecase.NewGetLoanRequestUseCase(loanRepo, applicantRepo, guarantorRepo),
		GenerateSlip:     slipUC,
	}, cfg.App.MaxUploadBytes, logger)

	admin := rest.NewAdminHandler(rest.AdminUseCases{
		List:         usecase.NewListApplicationsUseCase(loanRepo, applicantRepo, guarantorRepo),
		Stats:        usecase.NewApplicationStatsUseCase(loanRepo),
		UpdateStatus: usecase.NewUpdateStatusUseCase(loanRepo, publisher, logger),
		AssignToken:  usecase.NewAssignTokenUseCase(loanRepo, tokens, slipCache, publisher, logger),
		LookupToken:  lookupUC,
	}, logger)

	// HTTP server.
	metricsMW, err := rest.Metrics(cfg.App.Name)
	if err != nil {
		return err
	}
	routerCfg := rest.RouterConfig{
		Tokens:     jwtSvc,
		Middleware: []mux.MiddlewareFunc{rest.Tracing(cfg.App.Name), metricsMW, rest.Logging(logger)},
		Metrics:    metricsHandler,
		UploadsDir: documents.Dir(),
	}
	if cfg.RateLimit.Enabled {
		limiter := rest.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		routerCfg.Limiter = limiter
		go pruneLimiter(ctx, limiter)
	}
	health := rest.NewHealthHandler(cfg.App.Name, readiness, logger)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           rest.NewRouter(routerCfg, loans, admin, health),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	var grpcServer *grpcPresentation.Server
	if cfg.GRPC.Enabled {
		desk := grpcPresentation.NewDeskHandler(lookupUC, slipUC, calculateUC, logger)
		grpcServer, err = grpcPresentation.NewServer(desk, jwtSvc, grpcPresentation.ServerOptions{
			TLSCertFile: cfg.GRPC.TLSCert,
			TLSKeyFile:  cfg.GRPC.TLSKey,
			Reflection:  cfg.GRPC.Reflection,
		}, logger)
		if err != nil {
			return err
		}
		go func() {
			if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
				errCh <- fmt.Errorf("gRPC server error: %w", err)
			}
		}()
	}

	go func() {
		logger.Info("HTTP server starting", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
	}

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	return serveErr
}

// newPublisher returns the Kafka publisher when enabled and a log-only one
// otherwise. Both report delivery counts to Prometheus.
func newPublisher(cfg config.KafkaConfig, logger *zap.Logger) (port.EventPublisher, func(), error) {
	metrics := messaging.NewPublisherMetrics(prometheus.DefaultRegisterer)

	if !cfg.Enabled {
		logger.Info("kafka disabled, events are logged only")
		return messaging.NewInstrumentedPublisher(messaging.NewLogPublisher(logger), metrics), func() {}, nil
	}

	producer, err := pkgkafka.NewProducer(cfg.Producer())
	if err != nil {
		return nil, nil, fmt.Errorf("create kafka producer: %w", err)
	}
	publisher := kafka.NewEventPublisher(producer, cfg.Topic, logger)
	logger.Info("publishing events to kafka", zap.Strings("brokers", cfg.Brokers), zap.String("topic", cfg.Topic))

	closeFn := func() {
		if err := producer.Close(); err != nil {
			logger.Warn("close kafka producer", zap.Error(err))
		}
	}
	return messaging.NewInstrumentedPublisher(publisher, metrics), closeFn, nil
}

func pruneLimiter(ctx context.Context, limiter *rest.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Prune(limiterIdle)
		}
	}
}
