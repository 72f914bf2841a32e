// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	notificationstore "github.com/dalemusser/campushub/internal/app/store/notifications"
	"github.com/dalemusser/campushub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// sweeper is the background notification reconciliation worker. Created in
// Startup, stopped in Shutdown.
var sweeper *workers.NotificationSweep

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. CampusHub
// uses it to launch the notification reconciliation worker, which removes
// ledger entries stranded by a fan-out racing a posting delete.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	notifStore := notificationstore.New(deps.CampusHubMongoDatabase)
	sweeper = workers.NewNotificationSweep(notifStore, logger, appCfg.NotificationSweepInterval)
	sweeper.Start()
	return nil
}
