package imagestore

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"estate_search/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client — хранилище изображений листингов (S3-совместимое).
type Client interface {
	// Upload stores an image and returns its public URL.
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	IsEnabled() bool
}

type client struct {
	mc     *minio.Client
	bucket string
	log    *slog.Logger
}

// NewClient создаёт клиент хранилища изображений.
func NewClient(cfg config.ImageStoreConfig, log *slog.Logger) (Client, error) {
	if !cfg.Enabled {
		return &noopClient{log: log}, nil
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("imagestore: failed to create client: %w", err)
	}

	return &client{mc: mc, bucket: cfg.Bucket, log: log}, nil
}

func (c *client) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	const op = "imagestore.Client.Upload"

	info, err := c.mc.PutObject(ctx, c.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	c.log.Debug("image uploaded",
		slog.String("object", info.Key),
		slog.Int64("size", info.Size),
	)

	url := fmt.Sprintf("%s/%s/%s", c.mc.EndpointURL().String(), c.bucket, objectName)
	return url, nil
}

func (c *client) IsEnabled() bool { return true }

// noopClient используется, когда хранилище изображений отключено.
type noopClient struct {
	log *slog.Logger
}

func (c *noopClient) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	c.log.Warn("image upload requested but image store is disabled", slog.String("object", objectName))
	return "", fmt.Errorf("imagestore: disabled")
}

func (c *noopClient) IsEnabled() bool { return false }
