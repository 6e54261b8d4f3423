package iostorage

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/inslake/inslake/pkg/config"
	"github.com/inslake/inslake/pkg/storage"
	"github.com/inslake/inslake/pkg/table"
)

// s3Store persists tables as bucket objects keyed "{stage}/{table}.gob".
// The SDK's own retries are disabled; the retry decorator at this boundary
// is the single place transient failures are handled.
type s3Store struct {
	client *s3.Client
	bucket string
}

func newS3(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Storage.Region),
		awsconfig.WithRetryMaxAttempts(1),
	}
	if cfg.Storage.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.Storage.AccessKey, cfg.Storage.SecretKey, "",
			),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, ConnectError("s3", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			// S3-compatible stores rarely support virtual-host buckets.
			o.UsePathStyle = true
		}
	})

	return &s3Store{client: client, bucket: cfg.Storage.Bucket}, nil
}

func key(name string) string {
	return name + ".gob"
}

func (s *s3Store) Load(
	ctx context.Context, name string,
) (*table.Table, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(name)),
	})
	if err != nil {
		return nil, mapS3Error(name, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, TransientError(name, err)
	}
	return decodeTable(data, name)
}

func (s *s3Store) Store(
	ctx context.Context, t *table.Table, name string,
) error {
	data, err := encodeTable(t)
	if err != nil {
		return CorruptError(name, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(name)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return mapS3Error(name, err)
	}
	return nil
}

// mapS3Error translates SDK failures into the storage error taxonomy.
func mapS3Error(name string, err error) error {
	var noKey *s3types.NoSuchKey
	if errors.As(err, &noKey) {
		return NotFoundError(name)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return NotFoundError(name)
		case "AccessDenied", "InvalidAccessKeyId",
			"SignatureDoesNotMatch":
			return DeniedError(name, err)
		}
	}
	return TransientError(name, err)
}
