// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the organization routes. All routes require a signed-in
// user; creation and deletion are admin-only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)

	// Distinct offer sessions across all organizations
	r.Get("/sessions", h.ListSessions)

	// Stream-filtered organization listing for one session
	r.Get("/", h.ListBySession)

	// LIFECYCLE (admin)
	admin := r.With(auth.RequireRole("admin"))
	admin.Post("/", h.Create)
	admin.Delete("/{id}", h.Delete)

	return r
}
