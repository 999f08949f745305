package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	httptransport "github.com/cuencos-cuarzo/boletos/internal/api/http"
	"github.com/cuencos-cuarzo/boletos/internal/api/http/handlers"
	"github.com/cuencos-cuarzo/boletos/internal/config"
	"github.com/cuencos-cuarzo/boletos/internal/domain"
	"github.com/cuencos-cuarzo/boletos/internal/events"
	"github.com/cuencos-cuarzo/boletos/internal/mail"
	"github.com/cuencos-cuarzo/boletos/internal/observability"
	"github.com/cuencos-cuarzo/boletos/internal/payment"
	"github.com/cuencos-cuarzo/boletos/internal/persistence"
	"github.com/cuencos-cuarzo/boletos/internal/render"
	"github.com/cuencos-cuarzo/boletos/internal/repository"
	"github.com/cuencos-cuarzo/boletos/internal/service"
	"github.com/cuencos-cuarzo/boletos/internal/worker"
)

const issuanceCounterTTL = 30 * 24 * time.Hour

func main() {
	envFile := pflag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	pflag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	auditDeps := service.AuditDependencies{Dispatcher: dispatcher, Logger: logger}
	if pg.Enabled() {
		auditDeps.Issuances = repository.NewIssuanceRepository(pg.PoolHandle())
	}
	if redis.Enabled() {
		auditDeps.Counter = repository.NewIssuanceCounter(redis.Client, issuanceCounterTTL)
	}
	worker.StartAuditWorker(service.NewAuditService(auditDeps))

	event := domain.Event{
		Name:        cfg.Event.Name,
		ProductName: cfg.Event.ProductName,
		DateTime:    cfg.Event.DateTime,
		Venue:       cfg.Event.Venue,
		UnitAmount:  cfg.Event.UnitAmount,
		Currency:    cfg.Event.Currency,
	}
	processor := payment.NewStripeProcessor(cfg.Stripe.SecretKey, nil)

	checkoutService := service.NewCheckoutService(service.CheckoutDependencies{
		Processor:  processor,
		Dispatcher: dispatcher,
		Logger:     logger,
		Event:      event,
		Domain:     cfg.App.Domain,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		Processor:  processor,
		Renderer:   render.NewPDFRenderer(),
		Mailer:     mail.NewSMTPSender(cfg.Mail),
		Dispatcher: dispatcher,
		Logger:     logger,
		Event:      event,
		Ticket:     cfg.Ticket,
		MailFrom:   cfg.Mail.From,
	})

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Checkout:  handlers.NewCheckoutHandler(checkoutService),
		Tickets:   handlers.NewTicketHandler(ticketService),
		PublicDir: cfg.App.PublicDir,
	})

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.App.Addr()), zap.String("domain", cfg.App.Domain))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
