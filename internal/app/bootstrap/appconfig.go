// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging level, request limits);
// AppConfig is everything specific to CampusHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: campushub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// NotificationSweepInterval is how often the reconciliation worker removes
	// notifications whose posting no longer exists. Clients also use it as
	// the suggested polling cadence for unread counts.
	NotificationSweepInterval time.Duration
}
