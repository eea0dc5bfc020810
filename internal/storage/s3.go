// internal/storage/s3.go

// Package storage persists generated artifacts to S3. Each Save stages the
// payload through a scoped temporary file; the local copy is removed on every
// path, upload failure included.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/closedai-agentic-ai/testpromptgen/internal/common/config"
	"github.com/closedai-agentic-ai/testpromptgen/internal/common/logger"
)

// ObjectAPI is the slice of the S3 client we use, narrowed so tests can
// inject a fake.
type ObjectAPI interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PresignAPI mints time-limited GET links for uploaded keys.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, input *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Store struct {
	objects ObjectAPI
	presign PresignAPI
	cfg     config.StorageConfig
	logger  logger.Logger
}

func NewStore(objects ObjectAPI, presign PresignAPI, cfg config.StorageConfig, log logger.Logger) *Store {
	return &Store{
		objects: objects,
		presign: presign,
		cfg:     cfg,
		logger:  log.With(map[string]interface{}{"component": "storage"}),
	}
}

// Save writes the payload to a timestamp-qualified temp file, reads it back,
// uploads it under key with the given metadata tags, and returns the
// s3://bucket/key location. The temp file never outlives the call.
func (s *Store) Save(ctx context.Context, key string, payload []byte, tags map[string]string) (string, error) {
	tmpPath := filepath.Join(s.cfg.TempDir, tempName(key))
	if err := os.WriteFile(tmpPath, payload, 0o600); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			s.logger.Warn("failed to remove temp file", map[string]interface{}{
				"path":  tmpPath,
				"error": err.Error(),
			})
		}
	}()

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("read temp file: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(s.cfg.ContentType),
	}
	if len(tags) > 0 {
		input.Metadata = tags
	}

	if _, err := s.objects.PutObject(ctx, input); err != nil {
		return "", err
	}

	location := fmt.Sprintf("s3://%s/%s", s.cfg.Bucket, key)
	s.logger.Info("artifact uploaded", map[string]interface{}{
		"location":  location,
		"sizeBytes": len(data),
	})
	return location, nil
}

// PresignedURL mints a time-limited GET link for an uploaded key.
func (s *Store) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// tempName flattens the object key into a local file name. Keys embed a
// timestamp, so concurrent invocations only collide on clock collision.
func tempName(key string) string {
	return strings.ReplaceAll(key, "/", "-")
}
