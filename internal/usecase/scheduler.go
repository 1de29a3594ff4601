package usecase

import (
	"context"
	"time"

	"newsease/internal/ports"
)

// AutoRefresh wires the scheduler driver with Session.Refresh.
type AutoRefresh struct {
	driver  ports.Scheduler
	session *Session
	timeout time.Duration
}

// NewAutoRefresh returns a helper to start/stop periodic refreshes. Each run
// is bounded by timeout when it is positive.
func NewAutoRefresh(driver ports.Scheduler, session *Session, timeout time.Duration) *AutoRefresh {
	return &AutoRefresh{driver: driver, session: session, timeout: timeout}
}

// Start registers the refresh job with the scheduler.
func (a *AutoRefresh) Start(ctx context.Context) error {
	if a.driver == nil || a.session == nil {
		return nil
	}

	job := func(trigger time.Time) {
		runCtx, cancel := ctx, context.CancelFunc(func() {})
		if a.timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, a.timeout)
		}
		defer cancel()

		if err := a.session.Refresh(runCtx); err != nil {
			a.session.warn("auto refresh", err)
			return
		}
		a.session.debug("auto refresh done", "trigger", trigger)
	}

	return a.driver.Start(ctx, job)
}

// Stop tears down the underlying scheduler. It is safe to call repeatedly.
func (a *AutoRefresh) Stop(ctx context.Context) error {
	if a.driver == nil {
		return nil
	}

	return a.driver.Stop(ctx)
}
