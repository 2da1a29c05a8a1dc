// internal/services/storage_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/javajoker/catalog-importer/internal/config"
)

var ErrS3NotConfigured = errors.New("S3 client not configured")

// SourceOpener opens the bulk import document at location.
type SourceOpener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// StorageService reads import sources from the local filesystem or, for
// s3://bucket/key locations, from S3.
type StorageService struct {
	s3Client s3iface.S3API
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Local files only
		return &StorageService{}, nil
	}

	// Create AWS session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{s3Client: s3.New(sess)}, nil
}

func NewStorageServiceWithClient(client s3iface.S3API) *StorageService {
	return &StorageService{s3Client: client}
}

func (s *StorageService) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !strings.HasPrefix(location, "s3://") {
		file, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", location, err)
		}
		return file, nil
	}

	bucket, key, err := parseS3URI(location)
	if err != nil {
		return nil, err
	}
	if s.s3Client == nil {
		return nil, fmt.Errorf("cannot read %s: %w", location, ErrS3NotConfigured)
	}

	out, err := s.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s from S3: %w", location, err)
	}
	return out.Body, nil
}

func parseS3URI(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("invalid S3 location %q: %w", location, err)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 location %q: expected s3://bucket/key", location)
	}
	return u.Host, key, nil
}
