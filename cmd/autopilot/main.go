package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/buckeye-it/ticket-autopilot/internal/api/http"
	"github.com/buckeye-it/ticket-autopilot/internal/api/http/handlers"
	"github.com/buckeye-it/ticket-autopilot/internal/auth"
	"github.com/buckeye-it/ticket-autopilot/internal/config"
	"github.com/buckeye-it/ticket-autopilot/internal/connectwise"
	"github.com/buckeye-it/ticket-autopilot/internal/events"
	"github.com/buckeye-it/ticket-autopilot/internal/guard"
	"github.com/buckeye-it/ticket-autopilot/internal/identity"
	"github.com/buckeye-it/ticket-autopilot/internal/observability"
	"github.com/buckeye-it/ticket-autopilot/internal/persistence"
	"github.com/buckeye-it/ticket-autopilot/internal/service"
	"github.com/buckeye-it/ticket-autopilot/internal/vip"
	"github.com/buckeye-it/ticket-autopilot/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		logger.Fatal("failed to load rules", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	client := connectwise.NewClient(cfg.ConnectWise, logger)
	dispatcher := events.NewInMemoryDispatcher(logger)
	metrics := observability.NewMetrics()
	service.NewMetricsService(dispatcher, metrics, logger).RegisterHandlers()

	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		Client:     client,
		Rules:      rules,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	directory := identity.NewLoggingDirectory(logger)
	executor := vip.NewExecutor(directory, client, rules.PasswordPolicy, logger)
	limiter := guard.NewDailyLimiter(redis.Client, rules.MaxDailyAutomations, logger)
	vipService := service.NewVIPAutomationService(service.VIPDependencies{
		Client:     client,
		Rules:      rules,
		Executor:   executor,
		Limiter:    limiter,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	worker.StartScheduler(ctx, cfg.Scheduler,
		func(ctx context.Context) error {
			metrics.RecordRun("assignment")
			_, err := assignmentService.Run(ctx)
			return err
		},
		func(ctx context.Context) error {
			metrics.RecordRun("vip_automation")
			_, err := vipService.Run(ctx)
			return err
		},
		logger)

	tokens := auth.NewTokenManager(cfg.Trigger.JWTSecret, cfg.Trigger.TokenTTLMinutes)
	triggerMiddleware := auth.NewTriggerMiddleware(tokens)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis, metrics)
	runHandler := handlers.NewRunHandler(assignmentService, vipService, metrics, logger)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            healthHandler,
		Run:               runHandler,
		TriggerMiddleware: triggerMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
