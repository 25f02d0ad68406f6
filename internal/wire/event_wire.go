package wire

import (
	"chakai-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireEvent(r chi.Router, eventHandler *adaptor.EventHandler, admin chi.Middlewares) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/events", eventHandler.GetEvents)
	r.Get("/api/events/{id}", eventHandler.GetEventByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(admin...)

		r.Get("/api/admin/events", eventHandler.GetEvents)
		r.Post("/api/admin/events", eventHandler.CreateEvent)
		r.Get("/api/admin/events/{id}", eventHandler.GetEventByID)
		r.Put("/api/admin/events/{id}", eventHandler.UpdateEvent)
		r.Delete("/api/admin/events/{id}", eventHandler.DeleteEvent)
		r.Post("/api/admin/events/{id}/recompute", eventHandler.RecomputeSeats)
	})
}
