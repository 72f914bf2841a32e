// internal/app/features/forms/routes.go
package forms

import (
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the form submission routes. Submitting and reading one's own
// submissions requires a signed-in user; the per-posting roster is
// admin-only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)

	r.Post("/postings/{postingID}", h.Submit)
	r.Get("/mine", h.ListMine)

	r.With(auth.RequireRole("admin")).Get("/postings/{postingID}/responses", h.ListByPosting)

	return r
}
