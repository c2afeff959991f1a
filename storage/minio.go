// Package storage keeps uploaded sidecar files (subtitles, captions) in an
// S3-compatible object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"trackbase/config"
	"trackbase/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	minioClient *minio.Client
	bucket      string
)

// InitMinio initializes the MinIO client and ensures the bucket exists.
func InitMinio(cfg *config.Config) error {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		Region: cfg.MinioRegion,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{Region: cfg.MinioRegion}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
		logger.Info("Created bucket", logger.String("bucket", cfg.MinioBucket))
	}

	minioClient = client
	bucket = cfg.MinioBucket
	logger.Info("Connected to MinIO", logger.String("endpoint", cfg.MinioEndpoint), logger.String("bucket", bucket))
	return nil
}

// SidecarKey builds the object key for a track's sidecar file.
func SidecarKey(trackID int64, filename string) string {
	return fmt.Sprintf("sidecars/%d/%s", trackID, filename)
}

// UploadSidecar stores a sidecar file and returns its object key.
func UploadSidecar(ctx context.Context, trackID int64, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if minioClient == nil {
		return "", fmt.Errorf("MinIO client not initialized")
	}

	key := SidecarKey(trackID, filename)
	_, err := minioClient.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload sidecar %s: %w", key, err)
	}

	logger.Info("Sidecar uploaded", logger.Int64("trackID", trackID), logger.String("key", key))
	return key, nil
}

// GetSidecar opens a stored sidecar file for reading. The caller closes it.
func GetSidecar(ctx context.Context, key string) (io.ReadCloser, error) {
	if minioClient == nil {
		return nil, fmt.Errorf("MinIO client not initialized")
	}
	obj, err := minioClient.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get sidecar %s: %w", key, err)
	}
	return obj, nil
}

// DeleteSidecar removes a stored sidecar file.
func DeleteSidecar(ctx context.Context, key string) error {
	if minioClient == nil {
		return fmt.Errorf("MinIO client not initialized")
	}
	if err := minioClient.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete sidecar %s: %w", key, err)
	}
	return nil
}
