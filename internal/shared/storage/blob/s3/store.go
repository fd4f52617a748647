package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/karaksak1338/ChaosOrganizer/internal/shared/storage/blob"
)

// Store implements blob.Store using Amazon S3.
type Store struct {
	client        *s3.Client
	bucket        string
	region        string
	prefix        string
	publicBaseURL string
	kmsKeyID      string
}

// Options configures the S3-backed store.
type Options struct {
	Region        string
	Bucket        string
	Prefix        string
	PublicBaseURL string
	KMSKeyID      string
}

// New creates a new S3-backed blob store.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	region := opts.Region
	if region == "" {
		region = cfg.Region
	}

	return &Store{
		client:        s3.NewFromConfig(cfg),
		bucket:        opts.Bucket,
		region:        region,
		prefix:        strings.Trim(strings.TrimSpace(opts.Prefix), "/"),
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
		kmsKeyID:      strings.TrimSpace(opts.KMSKeyID),
	}, nil
}

// Put uploads the reader contents to the given path. IfNoneMatch guards
// against overwriting an occupied key.
func (s *Store) Put(ctx context.Context, path string, r io.Reader, contentType string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	objectKey := applyPrefix(s.prefix, path)
	counter := &countingReader{r: r}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        counter,
		ContentType: aws.String(contentType),
		IfNoneMatch: aws.String("*"),
	}
	if s.kmsKeyID != "" {
		input.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		input.SSEKMSKeyId = aws.String(s.kmsKeyID)
	} else {
		input.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		if isPreconditionFailed(err) {
			return 0, blob.ErrAlreadyExists
		}
		return 0, fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return counter.n, nil
}

// PublicURL derives the public locator for a stored path.
func (s *Store) PublicURL(path string) string {
	objectKey := applyPrefix(s.prefix, path)
	escaped := escapeKey(objectKey)
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}

// Delete removes the object at path. S3 treats a missing key as success,
// which matches the tolerance this layer promises.
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	objectKey := applyPrefix(s.prefix, path)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("s3 delete object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

func isPreconditionFailed(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed"
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func applyPrefix(prefix, key string) string {
	cleanKey := strings.TrimLeft(key, "/")
	if prefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return prefix
	}
	return prefix + "/" + cleanKey
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

var _ blob.Store = (*Store)(nil)
