package wire

import (
	"net/http"

	"chakai-booking/internal/adaptor"
	"chakai-booking/pkg/middleware"
	"chakai-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	admin chi.Middlewares,
	limit func(http.Handler) http.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.With(limit).Post("/api/events/{id}/reservations", reservationHandler.CreateReservation)
	r.With(limit).Post("/api/reservations/lookup", reservationHandler.Lookup)

	// ==================== GUEST ROUTES (lookup token) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.ReservationToken(config.Reservation.TokenSecret, log))

		r.Put("/api/reservations/{id}", reservationHandler.UpdateOwnReservation)
		r.Delete("/api/reservations/{id}", reservationHandler.DeleteOwnReservation)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(admin...)

		r.Get("/api/admin/events/{id}/reservations", reservationHandler.ListByEvent)
		r.Post("/api/admin/reservations", reservationHandler.AdminCreateReservation)
		r.Get("/api/admin/reservations/{id}", reservationHandler.GetReservation)
		r.Put("/api/admin/reservations/{id}", reservationHandler.AdminUpdateReservation)
		r.Delete("/api/admin/reservations/{id}", reservationHandler.AdminDeleteReservation)
	})
}
