// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the notification ledger routes. Everything is scoped to the
// signed-in user.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Use(sm.RequireSignedIn)

	r.Get("/", h.List)
	r.Get("/unread_count", h.UnreadCount)
	r.Post("/read_all", h.MarkAllRead)
	r.Post("/{id}/read", h.MarkRead)

	return r
}
