// internal/app/features/postings/routes.go
package postings

import (
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the posting routes. Reading requires a signed-in user; the
// posting lifecycle (create, edit, delete) is admin-only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)

	// FEED - stream-filtered postings for one organization and session
	r.Get("/", h.Feed)
	r.Get("/{id}", h.Get)

	// LIFECYCLE (admin)
	admin := r.With(auth.RequireRole("admin"))
	admin.Get("/recent", h.Recent)
	admin.Post("/", h.Create)
	admin.Patch("/{id}", h.Edit)
	admin.Delete("/{id}", h.Delete)

	return r
}
