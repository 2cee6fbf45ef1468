package services

import (
	"context"
	"time"

	"salescrm/logs"
)

const overdueLockKey = "salescrm:overdue-notifier:lock"

// noopLocker is used when no shared lock backend is configured; every
// replica runs every tick.
type noopLocker struct{}

func (noopLocker) Acquire(context.Context, string, time.Duration) (bool, error) {
	return true, nil
}

// StartScheduler runs the overdue notifier every interval until ctx is
// cancelled. Failed runs are logged and left to the next tick.
func StartScheduler(ctx context.Context, notifier *OverdueNotifier, locker RunLocker, interval time.Duration) {
	if interval <= 0 {
		logs.Log.Info("overdue scheduler disabled")
		return
	}
	if locker == nil {
		locker = noopLocker{}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logs.Log.WithField("interval", interval.String()).Info("overdue scheduler started")
	for {
		select {
		case <-ctx.Done():
			logs.Log.Info("overdue scheduler stopped")
			return
		case <-ticker.C:
			runScheduledTick(ctx, notifier, locker, interval)
		}
	}
}

func runScheduledTick(ctx context.Context, notifier *OverdueNotifier, locker RunLocker, interval time.Duration) {
	ok, err := locker.Acquire(ctx, overdueLockKey, interval)
	if err != nil {
		logs.Log.WithError(err).Warn("overdue scheduler lock unavailable")
		return
	}
	if !ok {
		logs.Log.Debug("overdue run held by another instance")
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, interval)
	defer cancel()
	if _, err := notifier.Run(runCtx, time.Now()); err != nil {
		logs.Log.WithError(err).Error("scheduled overdue run failed")
	}
}
