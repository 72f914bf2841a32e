// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the login endpoint.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Login) // mounted under /api/login
	return r
}
