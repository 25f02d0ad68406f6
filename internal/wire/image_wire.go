package wire

import (
	"chakai-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireImage(r chi.Router, imageHandler *adaptor.ImageHandler, admin chi.Middlewares) {
	r.Group(func(r chi.Router) {
		r.Use(admin...)

		r.Get("/api/admin/images", imageHandler.ListImages)
		r.Post("/api/admin/images", imageHandler.UploadImage)
		r.Delete("/api/admin/images", imageHandler.DeleteImage)
	})
}
