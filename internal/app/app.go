package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"newsease/internal/config"
	"newsease/internal/domain"
	"newsease/internal/infrastructure/location"
	"newsease/internal/infrastructure/parser"
	"newsease/internal/infrastructure/scheduler"
	"newsease/internal/infrastructure/storage"
	"newsease/internal/logging"
	"newsease/internal/ports"
	"newsease/internal/scanner"
	"newsease/internal/trending"
	"newsease/internal/usecase"
)

// Application wires configs to the session and its auto-refresh lifecycle.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	closer    io.Closer
	session   *usecase.Session
	scheduler *scheduler.CronScheduler
	auto      *usecase.AutoRefresh
}

// New builds the application, opening the configured store.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	store, closer, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	baseLogger.Debug("store ready", "driver", cfg.Store.Driver)

	registry := scanner.NewRegistry()
	registry.Register(parser.NewMockScanner(nil, nil))
	registry.Register(parser.NewHTMLScanner(nil, nil))

	source := parser.NewStrategySource(registry, cfg.Sites, cfg.Refresh.MockLatency, baseLogger.With("component", "source"))

	engine := trending.NewEngine(trending.WithTopicBaseline(cfg.Trending.TopicBaseline))

	session := usecase.NewSession(usecase.SessionDeps{
		Source:   source,
		Store:    store,
		Location: location.NewStaticProvider(cfg.Location),
		Engine:   engine,
		Logger:   baseLogger.With("component", "session"),
		CacheTTL: cfg.Refresh.CacheTTL,
		Zone:     cfg.Zone(),
	})

	sched := scheduler.NewCronScheduler(cfg.Refresh.Interval, cfg.Zone())

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		closer:    closer,
		session:   session,
		scheduler: sched,
		auto:      usecase.NewAutoRefresh(sched, session, 2*cfg.Refresh.MockLatency+time.Minute),
	}, nil
}

// Session exposes the wired session.
func (a *Application) Session() *usecase.Session {
	return a.session
}

// Load restores persisted state, fetching when the cache is empty. It
// reports whether a fetch happened.
func (a *Application) Load(ctx context.Context) (bool, error) {
	fetched, err := a.session.LoadInitial(ctx)
	if err != nil {
		return fetched, fmt.Errorf("load session: %w", err)
	}
	return fetched, nil
}

// Watch starts auto-refresh with the preferred period and blocks until ctx
// is done.
func (a *Application) Watch(ctx context.Context) error {
	period := refreshPeriod(a.session.Preferences().RefreshInterval, a.cfg.Refresh.Interval)
	if period <= 0 {
		a.logger.Info("auto refresh disabled", "interval", domain.RefreshManual)
		<-ctx.Done()
		return nil
	}

	if err := a.scheduler.SetInterval(ctx, period); err != nil {
		return fmt.Errorf("configure scheduler: %w", err)
	}
	if err := a.auto.Start(ctx); err != nil {
		return fmt.Errorf("start auto refresh: %w", err)
	}
	a.logger.Info("auto refresh started", "every", period.String())

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.auto.Stop(stopCtx)
}

// Close stops the scheduler and releases the store.
func (a *Application) Close() error {
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.auto.Stop(stopCtx); err != nil {
		a.logger.Warn("stop auto refresh", "error", err)
	}
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// refreshPeriod maps the preference to a period. Manual disables refresh;
// an unrecognised value uses fallback.
func refreshPeriod(pref domain.RefreshInterval, fallback time.Duration) time.Duration {
	if pref == domain.RefreshManual {
		return 0
	}
	if d := pref.Duration(); d > 0 {
		return d
	}
	return fallback
}

func openStore(ctx context.Context, cfg config.StoreConfig) (ports.KeyValueStore, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		store, err := storage.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case config.DriverRedis:
		store, err := storage.DialRedis(ctx, cfg.RedisAddr, cfg.KeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case config.DriverMemory:
		return storage.NewMemoryStore(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
