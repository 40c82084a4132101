// Package s3 hands out presigned URLs against an S3-compatible backend
// (AWS S3 or MinIO) so file payloads never pass through the API server.
package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/knowtasks/knowtasks/core"
)

const presignExpiry = 15 * time.Minute

type Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string // non-empty for MinIO and other S3-compatible stores
	AccessKey    string
	SecretKey    string
}

type UploadStore struct {
	presign *s3.PresignClient
	bucket  string
}

var _ core.UploadStore = (*UploadStore)(nil)

func New(ctx context.Context, cfg Config) (*UploadStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &UploadStore{
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

// PresignPut returns a storage key and a URL the client PUTs the file to.
// Keys are sharded by owner and date so buckets stay browsable.
func (u *UploadStore) PresignPut(ctx context.Context, ownerID string) (string, string, error) {
	d := time.Now()
	key := fmt.Sprintf("uploads/%s/%d/%02d/%v", ownerID, d.Year(), d.Month(), uuid.New())

	req, err := u.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &u.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", fmt.Errorf("failed to presign put: %w", err)
	}

	return key, req.URL, nil
}

// PresignGet returns a short-lived download URL for a stored object.
func (u *UploadStore) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := u.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &u.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign get: %w", err)
	}

	return req.URL, nil
}
