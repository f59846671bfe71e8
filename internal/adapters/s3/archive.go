// Package s3 archives rendered images in S3-compatible object storage.
package s3

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bft-labs/bananascale/internal/ports"
)

// Config holds the object storage settings.
type Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// Enabled reports whether enough settings are present to archive.
func (c Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// Archive implements ports.ImageArchive with minio-go.
type Archive struct {
	client *minio.Client
	bucket string
	now    func() time.Time
	logger ports.Logger
}

// New creates an Archive for cfg.
func New(cfg Config, logger ports.Logger) (*Archive, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	return &Archive{
		client: client,
		bucket: cfg.Bucket,
		now:    time.Now,
		logger: logger,
	}, nil
}

// ObjectKey returns the key an image is stored under: <UTC year>/<file name>.
func ObjectKey(path string, at time.Time) string {
	return fmt.Sprintf("%d/%s", at.UTC().Year(), filepath.Base(path))
}

// Store uploads the file at path and returns s3://bucket/key.
func (a *Archive) Store(ctx context.Context, path string) (string, error) {
	key := ObjectKey(path, a.now())

	info, err := a.client.FPutObject(ctx, a.bucket, key, path, minio.PutObjectOptions{
		ContentType: contentType(path),
	})
	if err != nil {
		return "", fmt.Errorf("put %s/%s: %w", a.bucket, key, err)
	}

	a.logger.Debug("stored object",
		ports.String("bucket", info.Bucket),
		ports.String("key", info.Key),
		ports.Int64("size", info.Size),
	)
	return "s3://" + a.bucket + "/" + key, nil
}

func contentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}
