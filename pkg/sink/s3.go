package sink

import (
	"bytes"
	"context"
	"path"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configure an S3Sink. Endpoint points at an S3-compatible store
// such as MinIO and switches the client to path-style addressing.
type S3Options struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// objectPutter is the slice of the S3 client the sink needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads each table as a CSV object.
type S3Sink struct {
	client objectPutter
	bucket string
	prefix string

	mu     sync.Mutex
	closed bool
}

// NewS3Sink builds an S3 client from the default AWS credential chain,
// overridden by any static keys, region or endpoint in opts.
func NewS3Sink(ctx context.Context, opts S3Options) (*S3Sink, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, writeErr("s3", "", "load aws config", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Sink(client, opts.Bucket, opts.Prefix), nil
}

func newS3Sink(client objectPutter, bucket, prefix string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, prefix: prefix}
}

// Name returns "s3".
func (s *S3Sink) Name() string { return "s3" }

// Key returns the object key a table is uploaded under.
func (s *S3Sink) Key(table string) string {
	return path.Join(s.prefix, FileName(table, false))
}

// Write renders the table to memory and puts it as text/csv.
func (s *S3Sink) Write(ctx context.Context, t Table) error {
	if err := t.Validate(); err != nil {
		return writeErr(s.Name(), t.Name, "validate", err)
	}
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return writeErr(s.Name(), t.Name, "put", ErrSinkClosed)
	}

	var buf bytes.Buffer
	if err := EncodeCSV(&buf, t); err != nil {
		return writeErr(s.Name(), t.Name, "encode", err)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.Key(t.Name)),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
		ContentType:   aws.String("text/csv"),
	})
	if err != nil {
		return writeErr(s.Name(), t.Name, "put", err)
	}
	return nil
}

// Close marks the sink closed. The S3 client holds no resources to release.
func (s *S3Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
