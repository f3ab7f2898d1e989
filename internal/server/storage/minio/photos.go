// Package minio хранит байты фото в S3 совместимом объектном хранилище.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/iudanet/geocheckin/internal/server/storage"
)

// Config параметры подключения
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// PhotoStore implements storage.PhotoStore on top of a MinIO bucket
type PhotoStore struct {
	client *minio.Client
	logger *slog.Logger
	bucket string
}

// New connects to MinIO and creates the bucket if it does not exist
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*PhotoStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info("Created photo bucket", "bucket", cfg.Bucket)
	}

	return &PhotoStore{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

// ObjectName returns the object key of a photo
func ObjectName(id string) string {
	return "photos/" + id
}

// PutPhoto uploads photo bytes
func (p *PhotoStore) PutPhoto(ctx context.Context, id, mimeType string, data []byte) error {
	_, err := p.client.PutObject(ctx, p.bucket, ObjectName(id), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: mimeType})
	if err != nil {
		return fmt.Errorf("failed to upload photo %s: %w", id, err)
	}
	return nil
}

// GetPhoto downloads photo bytes
func (p *PhotoStore) GetPhoto(ctx context.Context, id string) ([]byte, error) {
	obj, err := p.client.GetObject(ctx, p.bucket, ObjectName(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get photo %s: %w", id, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, storage.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to read photo %s: %w", id, err)
	}
	return data, nil
}

// DeletePhoto removes photo bytes
func (p *PhotoStore) DeletePhoto(ctx context.Context, id string) error {
	if err := p.client.RemoveObject(ctx, p.bucket, ObjectName(id), minio.RemoveObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("failed to delete photo %s: %w", id, err)
	}
	return nil
}

var _ storage.PhotoStore = (*PhotoStore)(nil)
