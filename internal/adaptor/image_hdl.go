package adaptor

import (
	"errors"
	"net/http"

	"chakai-booking/internal/usecase"
	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

type ImageHandler struct {
	service  usecase.ImageService
	maxBytes int64
	log      *zap.Logger
}

func NewImageHandler(service usecase.ImageService, maxUploadMB int64, log *zap.Logger) *ImageHandler {
	return &ImageHandler{
		service:  service,
		maxBytes: maxUploadMB << 20,
		log:      log.With(zap.String("handler", "image")),
	}
}

// ListImages handles GET /api/admin/images?prefix=
func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.List(r.Context(), r.URL.Query().Get("prefix"))
	if err != nil {
		handleServiceError(w, h.log, err, "list images")
		return
	}

	utils.ResponseSuccess(w, "success", images)
}

// UploadImage handles POST /api/admin/images (multipart field "file")
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	// leave room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseTooLarge(w, "Upload is too large")
			return
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.ResponseBadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer file.Close()

	image, err := h.service.Upload(r.Context(), r.FormValue("prefix"), header.Filename, file)
	if err != nil {
		handleServiceError(w, h.log, err, "upload image")
		return
	}

	utils.ResponseCreated(w, "Image uploaded", image)
}

// DeleteImage handles DELETE /api/admin/images?path=
func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.URL.Query().Get("path")); err != nil {
		handleServiceError(w, h.log, err, "delete image")
		return
	}

	utils.ResponseSuccess(w, "Image deleted", nil)
}
