// internal/app/system/workers/notificationsweep.go
package workers

import (
	"context"
	"sync"
	"time"

	notificationstore "github.com/dalemusser/campushub/internal/app/store/notifications"
	"go.uber.org/zap"
)

// NotificationSweep is a background worker that removes notifications whose
// posting no longer exists. Posting deletion cascades synchronously, so under
// normal operation this finds nothing; it exists to close the crash window
// between the cascade's two steps on deployments without transactions.
type NotificationSweep struct {
	notifications *notificationstore.Store
	log           *zap.Logger
	interval      time.Duration
	stopCh        chan struct{}
	wg            sync.WaitGroup
}

// NewNotificationSweep creates a new reconciliation worker.
//
// Parameters:
//   - notifStore: the notifications store
//   - logger: zap logger for logging
//   - interval: how often to sweep (configured, e.g., 1 hour)
func NewNotificationSweep(notifStore *notificationstore.Store, logger *zap.Logger, interval time.Duration) *NotificationSweep {
	return &NotificationSweep{
		notifications: notifStore,
		log:           logger,
		interval:      interval,
		stopCh:        make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *NotificationSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("notification sweep worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *NotificationSweep) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("notification sweep worker stopped")
}

func (w *NotificationSweep) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *NotificationSweep) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.notifications.DeleteOrphans(ctx)
	if err != nil {
		w.log.Error("notification sweep failed", zap.Error(err))
		return
	}

	// Orphans are an integrity warning, not a failure: they mean a fan-out
	// raced a posting delete since the last sweep.
	if count > 0 {
		w.log.Warn("removed orphaned notifications", zap.Int64("count", count))
	}
}
