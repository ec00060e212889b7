package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/aegislabs/aegis-backend/internal/server/config"
	"github.com/aegislabs/aegis-backend/internal/common"
)

func testS3Store() *S3Store {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	cfg.S3BaseEndpoint = "http://127.0.0.1:9000/"
	return NewS3Store(cfg)
}

func TestS3Store_Save_Success(t *testing.T) {
	origPut := putObject
	defer func() { putObject = origPut }()

	var gotBucket, gotKey string
	var gotBody []byte
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		gotBucket = aws.ToString(in.Bucket)
		gotKey = aws.ToString(in.Key)
		b, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		gotBody = b
		return &s3.PutObjectOutput{}, nil
	}

	store := testS3Store()
	key, err := store.Save(context.Background(), "users/patient-7/wound.jpg", []byte("img"))
	require.NoError(t, err)

	assert.Equal(t, "users/patient-7/wound.jpg", key)
	assert.Equal(t, "wounds", gotBucket)
	assert.Equal(t, "users/patient-7/wound.jpg", gotKey)
	assert.Equal(t, []byte("img"), gotBody)
}

func TestS3Store_Save_PutErrorIsUnavailable(t *testing.T) {
	origPut := putObject
	defer func() { putObject = origPut }()

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return nil, errors.New("connection refused")
	}

	store := testS3Store()
	_, err := store.Save(context.Background(), "k", []byte("img"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorUnavailable))
}

func TestS3Store_Save_ConfigErrorIsUnavailable(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	defer func() { loadDefaultAWSConfig = origLoad }()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("bad credentials")
	}

	store := testS3Store()
	_, err := store.Save(context.Background(), "k", []byte("img"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrorUnavailable))
}
