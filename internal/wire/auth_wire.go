package wire

import (
	"chakai-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, admin chi.Middlewares) {
	r.Post("/api/admin/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(admin...)
		r.Post("/api/admin/logout", authHandler.Logout)
	})
}
