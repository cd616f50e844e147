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

	"salesdesk_backend/internal/adapters"
	"salesdesk_backend/internal/appointments"
	apptrepo "salesdesk_backend/internal/appointments/repository"
	"salesdesk_backend/internal/buyout"
	"salesdesk_backend/internal/catalog"
	"salesdesk_backend/internal/email"
	"salesdesk_backend/internal/events"
	apphttp "salesdesk_backend/internal/http"
	"salesdesk_backend/internal/http/router"
	"salesdesk_backend/internal/intake"
	intakerepo "salesdesk_backend/internal/intake/repository"
	"salesdesk_backend/internal/notification"
	"salesdesk_backend/internal/pricebook"
	"salesdesk_backend/internal/scheduler"
	"salesdesk_backend/internal/temperature"
	"salesdesk_backend/platform/config"
	"salesdesk_backend/platform/db"
	"salesdesk_backend/platform/logger"
	"salesdesk_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var (
		pool   *pgxpool.Pool
		health apphttp.HealthChecker
		repo   apptrepo.Repository = apptrepo.NewMemory()
	)
	if cfg.IsDatabaseEnabled() {
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg)
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		defer pool.Close()

		repo = apptrepo.New(pool)
		health = db.NewPoolAdapter(pool)
	} else {
		log.Warn("DATABASE_URL not configured; appointments are kept in memory")
	}

	store, closeStore := initSessionStore(cfg, log)
	if closeStore != nil {
		defer closeStore()
	}

	book, err := pricebook.LoadFile(cfg.GetTariffsFile())
	if err != nil {
		log.Error("failed to load pricebook", "error", err, "file", cfg.GetTariffsFile())
		panic("failed to load pricebook: " + err.Error())
	}

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}
	notification.New(sender, log).RegisterHandlers(eventBus)

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}
	if reminderScheduler != nil {
		scheduler.NewReminderEnqueuer(reminderScheduler, cfg.GetReminderLeadTime(), log).Subscribe(eventBus)
	}

	// ========================================================================
	// Domain Modules
	// ========================================================================

	buyoutModule := buyout.NewModule(cfg, book.Tariffs, val)
	catalogModule := catalog.NewModule(book.Catalog, val)
	temperatureModule := temperature.NewModule(book.Catalog, val)
	appointmentsModule := appointments.NewModule(repo, val, eventBus)

	// Anti-Corruption Layer: intake books through its own Booker port.
	booker := adapters.NewAppointmentsAdapter(appointmentsModule.Service)
	intakeModule := intake.NewModule(store, book.Catalog, booker, val, cfg, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			buyoutModule,
			catalogModule,
			temperatureModule,
			intakeModule,
			appointmentsModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		eventBus.Wait()
		panic("server error: " + err.Error())
	}
	eventBus.Wait()
	log.Info("server stopped")
}

func initSessionStore(cfg *config.Config, log *logger.Logger) (intakerepo.Store, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; intake sessions are kept in memory")
		return intakerepo.NewMemoryStore(cfg.GetIntakeSessionTTL()), nil
	}

	client, err := intakerepo.NewRedisClient(cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to initialize redis session store", "error", err)
		panic("failed to initialize redis session store: " + err.Error())
	}
	return intakerepo.NewRedisStore(client, cfg.GetIntakeSessionTTL()), func() {
		_ = client.Close()
	}
}

func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ReminderScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; appointment reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
