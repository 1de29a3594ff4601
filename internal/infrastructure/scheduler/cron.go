package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"newsease/internal/ports"
)

// CronScheduler runs a job on a fixed "@every" cadence. A zero interval
// means manual refresh: Start does nothing.
type CronScheduler struct {
	mu       sync.Mutex
	interval time.Duration
	location *time.Location
	cron     *cron.Cron
	job      func(time.Time)
	ctx      context.Context
	quit     chan struct{}
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler firing every interval in loc.
func NewCronScheduler(interval time.Duration, loc *time.Location) *CronScheduler {
	if loc == nil {
		loc = time.Local
	}
	return &CronScheduler{interval: interval, location: loc}
}

// Start schedules job. Calling it while already running is a no-op.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cron != nil || c.interval <= 0 {
		return nil
	}

	return c.startLocked(ctx, job)
}

// Stop halts the cron runner and waits for a running job to finish or ctx
// to expire. Stopping a stopped scheduler is a no-op.
func (c *CronScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopLocked(ctx)
}

// Running reports whether a job is scheduled.
func (c *CronScheduler) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cron != nil
}

// SetInterval changes the cadence, rescheduling a running job. A zero
// interval stops it.
func (c *CronScheduler) SetInterval(ctx context.Context, interval time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if interval == c.interval {
		return nil
	}
	c.interval = interval

	if c.cron == nil {
		return nil
	}
	job, runCtx := c.job, c.ctx
	if err := c.stopLocked(ctx); err != nil {
		return err
	}
	if interval <= 0 {
		return nil
	}
	return c.startLocked(runCtx, job)
}

func (c *CronScheduler) startLocked(ctx context.Context, job func(time.Time)) error {
	runner := cron.New(cron.WithLocation(c.location))
	spec := fmt.Sprintf("@every %s", c.interval)
	if _, err := runner.AddFunc(spec, func() { job(time.Now().In(c.location)) }); err != nil {
		return fmt.Errorf("add cron %s: %w", spec, err)
	}
	runner.Start()

	quit := make(chan struct{})
	c.cron, c.job, c.ctx, c.quit = runner, job, ctx, quit

	go func() {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.quit == quit {
				_ = c.stopLocked(context.Background())
			}
		case <-quit:
		}
	}()
	return nil
}

func (c *CronScheduler) stopLocked(ctx context.Context) error {
	if c.cron == nil {
		return nil
	}
	done := c.cron.Stop()
	close(c.quit)
	c.cron, c.quit = nil, nil
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
