// internal/app/features/profile/routes.go
package profile

import (
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the profile routes. Every route is scoped to the signed-in
// user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)

	r.Get("/", h.Get)
	r.Patch("/", h.Update)

	return r
}
