package wire

import (
	"chakai-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePost(r chi.Router, postHandler *adaptor.PostHandler, admin chi.Middlewares) {
	// published posts only
	r.Get("/api/posts", postHandler.GetPosts)
	r.Get("/api/posts/{id}", postHandler.GetPostByID)

	r.Group(func(r chi.Router) {
		r.Use(admin...)

		r.Get("/api/admin/posts", postHandler.AdminGetPosts)
		r.Post("/api/admin/posts", postHandler.CreatePost)
		r.Get("/api/admin/posts/{id}", postHandler.AdminGetPostByID)
		r.Put("/api/admin/posts/{id}", postHandler.UpdatePost)
		r.Delete("/api/admin/posts/{id}", postHandler.DeletePost)
	})
}
