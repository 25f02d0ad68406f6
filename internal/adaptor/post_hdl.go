package adaptor

import (
	"net/http"

	"chakai-booking/internal/dto/request"
	"chakai-booking/internal/usecase"
	"chakai-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PostHandler struct {
	service usecase.PostService
	log     *zap.Logger
}

func NewPostHandler(service usecase.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{
		service: service,
		log:     log.With(zap.String("handler", "post")),
	}
}

func postListRequest(r *http.Request) *request.PostListRequest {
	return &request.PostListRequest{
		PaginatedRequest: request.PageFromQuery(r.URL.Query()),
		Kind:             r.URL.Query().Get("kind"),
	}
}

// GetPosts handles GET /api/posts?kind=
func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// GetPostByID handles GET /api/posts/{id}
func (h *PostHandler) GetPostByID(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, true)
}

// AdminGetPosts handles GET /api/admin/posts, drafts included
func (h *PostHandler) AdminGetPosts(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// AdminGetPostByID handles GET /api/admin/posts/{id}
func (h *PostHandler) AdminGetPostByID(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, false)
}

func (h *PostHandler) list(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	posts, err := h.service.GetPosts(r.Context(), postListRequest(r), publishedOnly)
	if err != nil {
		handleServiceError(w, h.log, err, "get posts")
		return
	}

	utils.ResponseSuccess(w, "success", posts)
}

func (h *PostHandler) get(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	post, err := h.service.GetPostByID(r.Context(), chi.URLParam(r, "id"), publishedOnly)
	if err != nil {
		handleServiceError(w, h.log, err, "get post")
		return
	}

	utils.ResponseSuccess(w, "success", post)
}

// CreatePost handles POST /api/admin/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req request.PostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.CreatePost(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create post")
		return
	}

	utils.ResponseCreated(w, "Post created", post)
}

// UpdatePost handles PUT /api/admin/posts/{id}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req request.PostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.UpdatePost(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update post")
		return
	}

	utils.ResponseSuccess(w, "Post updated", post)
}

// DeletePost handles DELETE /api/admin/posts/{id}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete post")
		return
	}

	utils.ResponseSuccess(w, "Post deleted", nil)
}
