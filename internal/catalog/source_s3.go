package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sony/gobreaker/v2"

	"fairweather/internal/types"
)

// maxCatalogBytes bounds the object size read from S3.
const maxCatalogBytes = 8 << 20

// S3API is the subset of the S3 client used by S3Source.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a catalog document from S3. Reads go through a circuit
// breaker so a failing bucket does not stall every cold start that shares it.
type S3Source struct {
	client  S3API
	bucket  string
	key     string
	breaker *gobreaker.CircuitBreaker[[]byte]
}

// NewS3Source creates an S3Source for s3://bucket/key.
func NewS3Source(client S3API, bucket, key string) *S3Source {
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "catalog-s3",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &S3Source{client: client, bucket: bucket, key: key, breaker: cb}
}

// Name implements Source.
func (s *S3Source) Name() string { return "s3" }

// Load implements Source.
func (s *S3Source) Load(ctx context.Context) ([]types.ActivityDefinition, error) {
	body, err := s.breaker.Execute(func() ([]byte, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, types.NewAppError(types.ErrCodeUpstreamStorage, "catalog storage circuit open", err)
		}
		return nil, err
	}
	return decodeBlob(s.key, bytes.NewReader(body))
}

func (s *S3Source) fetch(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamStorage,
			fmt.Sprintf("failed to fetch catalog s3://%s/%s", s.bucket, s.key), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxCatalogBytes+1))
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamStorage, "failed to read catalog object body", err)
	}
	if len(data) > maxCatalogBytes {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidCatalog,
			fmt.Sprintf("catalog object exceeds %d bytes", maxCatalogBytes), nil)
	}
	return data, nil
}
