package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Options holds connection settings for the S3 poster backend.
type S3Options struct {
	// Endpoint overrides the S3 endpoint (for MinIO and compatible stores).
	// Empty uses the default AWS endpoint for the region.
	Endpoint string

	// Region is the bucket region.
	Region string

	// Bucket is the bucket holding poster objects.
	Bucket string

	// KeyPrefix is prepended to every object key (e.g. "posters/").
	KeyPrefix string

	// AccessKeyID / SecretAccessKey are static credentials. When empty,
	// the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string

	// UsePathStyle forces path-style addressing (required by most
	// S3-compatible stores).
	UsePathStyle bool
}

// S3Backend stores posters as objects in an S3 bucket.
type S3Backend struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Backend creates an S3-backed poster store.
func NewS3Backend(ctx context.Context, opts S3Options) (*S3Backend, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return &S3Backend{
		client: client,
		bucket: opts.Bucket,
		prefix: opts.KeyPrefix,
	}, nil
}

// key resolves a sanitized name to an object key.
func (b *S3Backend) key(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyFilename
	}
	return b.prefix + name, nil
}

// Store uploads the content, overwriting any object under the same key.
func (b *S3Backend) Store(ctx context.Context, name string, reader io.Reader) error {
	key, err := b.key(name)
	if err != nil {
		return err
	}

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   reader,
	})
	if err != nil {
		return fmt.Errorf("put poster object: %w", err)
	}
	return nil
}

// Open returns a reader over the stored object.
func (b *S3Backend) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key, err := b.key(name)
	if err != nil {
		return nil, err
	}

	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrPosterNotFound
		}
		return nil, fmt.Errorf("get poster object: %w", err)
	}
	return out.Body, nil
}

// Exists reports whether an object is stored under the name.
func (b *S3Backend) Exists(ctx context.Context, name string) (bool, error) {
	key, err := b.key(name)
	if err != nil {
		return false, err
	}

	_, err = b.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head poster object: %w", err)
	}
	return true, nil
}

// Delete removes the object stored under the name.
func (b *S3Backend) Delete(ctx context.Context, name string) error {
	key, err := b.key(name)
	if err != nil {
		return err
	}

	// DeleteObject is idempotent in S3; check first so missing posters
	// surface the same way as on the filesystem backend.
	exists, err := b.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPosterNotFound
	}

	_, err = b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete poster object: %w", err)
	}
	return nil
}

// Ensure S3Backend implements Backend.
var _ Backend = (*S3Backend)(nil)
