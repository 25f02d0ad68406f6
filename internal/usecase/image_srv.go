package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"chakai-booking/internal/dto/response"
	"chakai-booking/pkg/storage"
	"chakai-booking/pkg/utils"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

type ImageService interface {
	List(ctx context.Context, prefix string) ([]response.ImageResponse, error)
	Upload(ctx context.Context, prefix, fileName string, r io.Reader) (*response.ImageResponse, error)
	Delete(ctx context.Context, path string) error
}

type imageService struct {
	store    storage.Gateway
	maxBytes int64
	log      *zap.Logger
}

func NewImageService(store storage.Gateway, config *utils.Config, log *zap.Logger) ImageService {
	return &imageService{
		store:    store,
		maxBytes: config.Storage.MaxUploadMB << 20,
		log:      log.With(zap.String("service", "image")),
	}
}

func toImageResponse(object storage.Object) response.ImageResponse {
	return response.ImageResponse{
		Path:        object.Path,
		URL:         object.URL,
		Size:        object.Size,
		ContentType: object.ContentType,
		UpdatedAt:   object.Updated,
	}
}

func (s *imageService) List(ctx context.Context, prefix string) ([]response.ImageResponse, error) {
	objects, err := s.store.List(ctx, strings.TrimPrefix(prefix, "/"))
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	images := make([]response.ImageResponse, 0, len(objects))
	for _, object := range objects {
		if object.URL == "" {
			url, err := s.store.DownloadURL(ctx, object.Path)
			if err != nil {
				s.log.Warn("Skipping image without download URL",
					zap.Error(err),
					zap.String("path", object.Path),
				)
				continue
			}
			object.URL = url
		}
		images = append(images, toImageResponse(object))
	}

	return images, nil
}

// Upload sniffs the content instead of trusting the client's declared type
// and accepts images only.
func (s *imageService) Upload(ctx context.Context, prefix, fileName string, r io.Reader) (*response.ImageResponse, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, fieldError("file", fmt.Sprintf("must be at most %d bytes", s.maxBytes))
	}
	if len(data) == 0 {
		return nil, fieldError("file", "is empty")
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		s.log.Warn("Rejected non-image upload",
			zap.String("file_name", fileName),
			zap.String("detected", mime.String()),
		)
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mime.String())
	}

	// the stored name keeps the sniffed extension, not the client's
	path := utils.GenerateObjectPath(prefix, "upload"+mime.Extension())

	object, err := s.store.Put(ctx, bytes.NewReader(data), int64(len(data)), mime.String(), path)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	s.log.Info("Image uploaded",
		zap.String("path", object.Path),
		zap.Int64("size", object.Size),
	)

	resp := toImageResponse(*object)
	return &resp, nil
}

func (s *imageService) Delete(ctx context.Context, path string) error {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return fieldError("path", "is required")
	}

	if err := s.store.Delete(ctx, path); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return ErrImageNotFound
		}
		return fmt.Errorf("delete image: %w", err)
	}

	s.log.Info("Image deleted", zap.String("path", path))
	return nil
}
