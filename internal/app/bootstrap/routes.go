// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/campushub/internal/app/features/errors"
	formsfeature "github.com/dalemusser/campushub/internal/app/features/forms"
	healthfeature "github.com/dalemusser/campushub/internal/app/features/health"
	loginfeature "github.com/dalemusser/campushub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/campushub/internal/app/features/logout"
	notificationsfeature "github.com/dalemusser/campushub/internal/app/features/notifications"
	organizationsfeature "github.com/dalemusser/campushub/internal/app/features/organizations"
	postingsfeature "github.com/dalemusser/campushub/internal/app/features/postings"
	profilefeature "github.com/dalemusser/campushub/internal/app/features/profile"
	userstore "github.com/dalemusser/campushub/internal/app/store/users"
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. CampusHub mounts a JSON API: the session
// middleware loads the current user (with role and stream) into context, and
// each feature package mounts its own subrouter.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on
	// each request. This ensures role and stream changes take effect
	// immediately, which the targeting policy depends on.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.CampusHubMongoDatabase))

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CampusHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.CampusHubMongoDatabase, sessionMgr, errLog, logger)
	r.Mount("/api/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/api/logout", logoutfeature.Routes(logoutHandler))

	// Organizations: distinct offer sessions and the stream-filtered listing
	orgHandler := organizationsfeature.NewHandler(deps.CampusHubMongoDatabase, errLog, logger)
	r.Mount("/api/organizations", organizationsfeature.Routes(orgHandler, sessionMgr))

	// Postings: feed, create, edit, delete (with notification cascade)
	postingHandler := postingsfeature.NewHandler(deps.CampusHubMongoClient, deps.CampusHubMongoDatabase, errLog, logger)
	r.Mount("/api/postings", postingsfeature.Routes(postingHandler, sessionMgr))

	// Notification ledger
	notifHandler := notificationsfeature.NewHandler(deps.CampusHubMongoDatabase, errLog, logger)
	r.Mount("/api/notifications", notificationsfeature.Routes(notifHandler, sessionMgr))

	// Form submissions
	formsHandler := formsfeature.NewHandler(deps.CampusHubMongoDatabase, errLog, logger)
	r.Mount("/api/forms", formsfeature.Routes(formsHandler, sessionMgr))

	// Own profile (academic fields feeding submission snapshots)
	profileHandler := profilefeature.NewHandler(deps.CampusHubMongoDatabase, errLog, logger)
	r.Mount("/api/profile", profilefeature.Routes(profileHandler, sessionMgr))

	return r, nil
}
