package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/loiht2/chess-trainer/config"
)

// S3Scheme prefixes dataset locations stored in MinIO/S3
const S3Scheme = "s3://"

// ObjectGetter is the subset of the MinIO client used to fetch datasets
type ObjectGetter interface {
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
}

// DatasetSource opens puzzle dataset files from local disk or MinIO
type DatasetSource struct {
	client ObjectGetter
	logger *zap.Logger
}

// NewDatasetSource creates a source. client may be nil when only local files are read.
func NewDatasetSource(client ObjectGetter, logger *zap.Logger) *DatasetSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetSource{client: client, logger: logger}
}

// NewMinIOClient creates a MinIO client with explicit configuration
func NewMinIOClient(cfg config.MinIOConfig) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is not configured")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}
	return client, nil
}

// ParseS3Location splits s3://bucket/key into bucket and object key
func ParseS3Location(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, S3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 location: %q", location)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location must be s3://bucket/key, got %q", location)
	}
	return bucket, key, nil
}

// Open returns a reader over the dataset at location, either a local path
// or an s3://bucket/key object.
func (s *DatasetSource) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !strings.HasPrefix(location, S3Scheme) {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset: %w", err)
		}
		return f, nil
	}

	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}
	if s.client == nil {
		return nil, fmt.Errorf("minio is not configured, cannot read %s", location)
	}
	object, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	s.logger.Info("Reading dataset from MinIO", zap.String("bucket", bucket), zap.String("key", key))
	return object, nil
}
