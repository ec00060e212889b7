package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/aegislabs/aegis-backend/internal/common"
	sc "github.com/aegislabs/aegis-backend/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// S3Store writes images to an S3-compatible backend (MinIO in development).
// Selected when an S3 base endpoint is configured.
type S3Store struct {
	bucket   string
	region   string
	endpoint string
	user     string
	password string
}

func NewS3Store(cfg *sc.Config) *S3Store {
	return &S3Store{
		bucket:   cfg.S3Bucket,
		region:   cfg.S3Region,
		endpoint: cfg.S3BaseEndpoint,
		user:     cfg.S3RootUser,
		password: cfg.S3RootPassword,
	}
}

func (s *S3Store) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.user,     // MINIO_ROOT_USER
			s.password, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.endpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

func (s *S3Store) Save(ctx context.Context, key string, data []byte) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: s3 client: %v", common.ErrorUnavailable, err)
	}

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("%w: s3 put: %v", common.ErrorUnavailable, err)
	}

	return key, nil
}
