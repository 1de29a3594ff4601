package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"newsease/internal/config"
	"newsease/internal/domain"
	"newsease/internal/logging"
)

func TestRefreshPeriod(t *testing.T) {
	t.Parallel()

	if got := refreshPeriod(domain.RefreshManual, time.Minute); got != 0 {
		t.Fatalf("manual should disable refresh, got %s", got)
	}
	if got := refreshPeriod(domain.RefreshOneHour, time.Minute); got != time.Hour {
		t.Fatalf("unexpected period %s", got)
	}
	if got := refreshPeriod("weekly", time.Minute); got != time.Minute {
		t.Fatalf("unknown preference should use fallback, got %s", got)
	}
}

func TestApplicationLoadsFromMockSource(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Store.Driver = config.DriverSQLite
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "newsease.db")
	cfg.Refresh.MockLatency = time.Millisecond

	ctx := context.Background()
	application, err := New(ctx, cfg, logging.Discard())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer application.Close()

	fetched, err := application.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !fetched {
		t.Fatalf("empty store should trigger a fetch")
	}

	session := application.Session()
	if len(session.Articles()) == 0 {
		t.Fatalf("expected mock articles")
	}
	if len(session.LocalArticles()) == 0 {
		t.Fatalf("default location should produce local articles")
	}
	if got := len(session.Trending().Topics); got == 0 || got > 10 {
		t.Fatalf("unexpected topic count %d", got)
	}
}

func TestApplicationWatchStopsWithContext(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Store.Driver = config.DriverMemory
	cfg.Refresh.MockLatency = 0

	application, err := New(context.Background(), cfg, logging.Discard())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer application.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := application.Watch(ctx); err != nil {
		t.Fatalf("watch: %v", err)
	}
	if application.scheduler.Running() {
		t.Fatalf("scheduler should stop when watch returns")
	}
}

func TestUnknownStoreDriver(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Store.Driver = "etcd"
	if _, err := New(context.Background(), cfg, logging.Discard()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
