package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"srtm-backend/internal/shared/storage/object"
)

// Options locates the bucket and key prefix that back the store.
type Options struct {
	Region   string
	Bucket   string
	Prefix   string
	KMSKeyID string
}

// client is the subset of *s3.Client the store calls.
type client interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Store keeps workflow exports and STIG documents in Amazon S3.
type Store struct {
	api      client
	bucket   string
	prefix   string
	kmsKeyID string
}

// New loads the default AWS config chain and returns an S3-backed store.
func New(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newWithClient(s3.NewFromConfig(cfg), opts), nil
}

func newWithClient(api client, opts Options) *Store {
	return &Store{
		api:      api,
		bucket:   strings.TrimSpace(opts.Bucket),
		prefix:   normalizePrefix(opts.Prefix),
		kmsKeyID: strings.TrimSpace(opts.KMSKeyID),
	}
}

// Put uploads r under key. Objects are encrypted with the configured KMS key,
// or with S3-managed AES256 keys when none is set.
func (s *Store) Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	objectKey := applyPrefix(s.prefix, key)
	body := &countingReader{r: r}
	in := &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(objectKey),
		Body:                 body,
		ContentType:          aws.String(contentType),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	}
	if s.kmsKeyID != "" {
		in.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		in.SSEKMSKeyId = aws.String(s.kmsKeyID)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return 0, fmt.Errorf("s3 put %s/%s: %w", s.bucket, objectKey, err)
	}
	return body.n, nil
}

// Open streams the object stored under key. A missing key yields object.ErrNotFound.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	objectKey := applyPrefix(s.prefix, key)
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: %s", object.ErrNotFound, key)
		}
		return nil, fmt.Errorf("s3 get %s/%s: %w", s.bucket, objectKey, err)
	}
	return out.Body, nil
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

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func applyPrefix(prefix, key string) string {
	parts := make([]string, 0, 2)
	if p := strings.Trim(prefix, "/"); p != "" {
		parts = append(parts, p)
	}
	if k := strings.TrimLeft(key, "/"); k != "" {
		parts = append(parts, k)
	}
	return strings.Join(parts, "/")
}

var _ object.ObjectStore = (*Store)(nil)
