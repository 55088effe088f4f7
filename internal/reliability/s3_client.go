// Package reliability provides database maintenance jobs and off-site
// backups for the ledger database.
package reliability

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"github.com/rocketfin/rocketfin/internal/config"
)

// S3Client wraps an S3-compatible object store for backup archives.
// Works against AWS S3 and compatible services like Cloudflare R2.
type S3Client struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
	log      zerolog.Logger
}

// NewS3Client creates an S3 client from backup configuration.
// Static credentials take precedence; otherwise the default AWS chain applies.
func NewS3Client(ctx context.Context, cfg config.BackupConfig, log zerolog.Logger) (*S3Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Client{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
		log:      log.With().Str("component", "s3_client").Logger(),
	}, nil
}

// Upload streams an object to the bucket under the configured prefix.
func (c *S3Client) Upload(ctx context.Context, key string, body io.Reader) error {
	fullKey := c.objectKey(key)

	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(fullKey),
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", fullKey, err)
	}

	c.log.Debug().Str("key", fullKey).Msg("Object uploaded")
	return nil
}

// List returns objects under the configured prefix whose key starts with
// keyPrefix.
func (c *S3Client) List(ctx context.Context, keyPrefix string) ([]types.Object, error) {
	var objects []types.Object

	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(c.objectKey(keyPrefix)),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		objects = append(objects, page.Contents...)
	}

	return objects, nil
}

// Delete removes an object from the bucket.
func (c *S3Client) Delete(ctx context.Context, key string) error {
	fullKey := c.objectKey(key)

	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", fullKey, err)
	}

	c.log.Debug().Str("key", fullKey).Msg("Object deleted")
	return nil
}

func (c *S3Client) objectKey(key string) string {
	if c.prefix == "" {
		return key
	}
	return path.Join(c.prefix, key)
}
