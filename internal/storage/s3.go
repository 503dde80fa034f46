package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/metsukeai/metsuke-api/internal/config"
)

// Upload prefixes, one per asset kind.
const (
	PrefixArticleAssets = "articles"
	PrefixAvatars       = "avatars"
)

// ObjectStorage uploads binary attachments and returns their public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, prefix, fileName string, body io.Reader, size int64) (string, error)
}

// S3Storage talks to an S3-compatible bucket (CloudFlare R2 in production).
type S3Storage struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

func NewS3Storage(ctx context.Context, cfg *config.Config) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load object storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		// R2 and most S3 clones want path-style addressing.
		o.UsePathStyle = true
	})

	publicBase := strings.TrimSuffix(cfg.S3PublicBase, "/")
	if publicBase == "" {
		publicBase = strings.TrimSuffix(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}

	return &S3Storage{
		client:     client,
		bucket:     cfg.S3Bucket,
		publicBase: publicBase,
	}, nil
}

// Upload stores the object under a dated, collision-free key and returns the
// public URL.
func (s *S3Storage) Upload(ctx context.Context, prefix, fileName string, body io.Reader, size int64) (string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now()
	objectKey := fmt.Sprintf("%s/%d/%02d/%s%s",
		prefix, now.Year(), now.Month(), uuid.New().String(), fileExt)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		Metadata: map[string]string{
			"original-filename": fileName,
			"uploaded-at":       now.Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", fileName, err)
	}

	return s.publicBase + "/" + objectKey, nil
}
