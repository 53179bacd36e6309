package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store uploads objects to a bucket. PublicURL, when set, replaces the
// default virtual-hosted bucket URL (useful for MinIO or a CDN).
type S3Store struct {
	client    *s3.Client
	bucket    string
	region    string
	publicURL string
}

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

func NewS3(o S3Options) (*S3Store, error) {
	if o.Bucket == "" {
		return nil, fmt.Errorf("blob: S3 bucket is required")
	}
	opts := s3.Options{
		Region: o.Region,
	}
	if o.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")
	}
	if o.Endpoint != "" {
		opts.BaseEndpoint = aws.String(o.Endpoint)
		opts.UsePathStyle = true
	}
	return &S3Store{
		client:    s3.New(opts),
		bucket:    o.Bucket,
		region:    o.Region,
		publicURL: o.PublicURL,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, r io.Reader, size int64, contentType, folder string) (string, error) {
	key, err := objectKey(contentType, folder)
	if err != nil {
		return "", err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return s.URL(key), nil
}

// URL is the public address of an uploaded key.
func (s *S3Store) URL(key string) string {
	if s.publicURL != "" {
		return strings.TrimRight(s.publicURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
