package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"chakai-booking/pkg/utils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const presignExpiry = 7 * 24 * time.Hour

type minioGateway struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	retry         RetryPolicy
	log           *zap.Logger
}

// NewMinioGateway connects to an S3 compatible endpoint and creates the
// bucket when it does not exist yet.
func NewMinioGateway(ctx context.Context, config utils.StorageConfig, log *zap.Logger) (Gateway, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", config.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", config.Bucket, err)
		}
	}

	return &minioGateway{
		client:        client,
		bucket:        config.Bucket,
		publicBaseURL: strings.TrimRight(config.PublicBaseURL, "/"),
		retry:         DefaultRetryPolicy,
		log:           log.With(zap.String("component", "storage")),
	}, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return ErrObjectNotFound
	}
	return err
}

func (g *minioGateway) publicURL(path string) string {
	return g.publicBaseURL + "/" + g.bucket + "/" + path
}

func (g *minioGateway) Put(ctx context.Context, r io.Reader, size int64, contentType, path string) (*Object, error) {
	info, err := g.client.PutObject(ctx, g.bucket, path, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000",
	})
	if err != nil {
		g.log.Error("Failed to upload object", zap.Error(err), zap.String("path", path))
		return nil, fmt.Errorf("put object %s: %w", path, err)
	}

	downloadURL, err := g.DownloadURL(ctx, path)
	if err != nil {
		return nil, err
	}

	return &Object{
		Path:        path,
		URL:         downloadURL,
		Size:        info.Size,
		ContentType: contentType,
		Updated:     info.LastModified,
	}, nil
}

func (g *minioGateway) Delete(ctx context.Context, path string) error {
	if _, err := g.Stat(ctx, path); err != nil {
		return err
	}
	if err := g.client.RemoveObject(ctx, g.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object %s: %w", path, mapError(err))
	}
	return nil
}

func (g *minioGateway) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	for info := range g.client.ListObjects(ctx, g.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("list objects %s: %w", prefix, info.Err)
		}
		objects = append(objects, Object{
			Path:        info.Key,
			Size:        info.Size,
			ContentType: info.ContentType,
			Updated:     info.LastModified,
		})
	}

	for i := range objects {
		if g.publicBaseURL != "" {
			objects[i].URL = g.publicURL(objects[i].Path)
		}
	}

	return objects, nil
}

func (g *minioGateway) Stat(ctx context.Context, path string) (*Object, error) {
	info, err := g.client.StatObject(ctx, g.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("stat object %s: %w", path, mapError(err))
	}

	return &Object{
		Path:        info.Key,
		Size:        info.Size,
		ContentType: info.ContentType,
		Updated:     info.LastModified,
	}, nil
}

func (g *minioGateway) DownloadURL(ctx context.Context, path string) (string, error) {
	attempt := 0
	return retry(ctx, g.retry, func() (string, error) {
		attempt++
		if _, err := g.Stat(ctx, path); err != nil {
			g.log.Debug("Object not resolvable yet",
				zap.Error(err),
				zap.String("path", path),
				zap.Int("attempt", attempt),
			)
			return "", err
		}

		if g.publicBaseURL != "" {
			return g.publicURL(path), nil
		}

		signed, err := g.client.PresignedGetObject(ctx, g.bucket, path, presignExpiry, url.Values{})
		if err != nil {
			return "", fmt.Errorf("presign %s: %w", path, err)
		}
		return signed.String(), nil
	})
}
