// Package objectstore provides a Sink which uploads an encoded Table to S3-compatible
// object storage. Keys ending in .lz4 are compressed.
package objectstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/compress"
	"github.com/flowsome/flowsome/internal/objectstore"
	"github.com/rs/zerolog/log"
)

// PutObjectAPI is the subset of the S3 client used by Sink
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Sink writes Tables to a single object, replacing it if it exists
type Sink struct {
	client  PutObjectAPI
	bucket  string
	key     string
	encoder flowsome.TableEncoder
}

// CreateSink is a factory for object store Sinks. url has the form s3://bucket/key.
func CreateSink(client PutObjectAPI, url string, encoder flowsome.TableEncoder) (*Sink, error) {
	bucket, key, err := objectstore.ParseS3Path(url)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("S3 path %q has no key", url)
	}
	return &Sink{client: client, bucket: bucket, key: key, encoder: encoder}, nil
}

// ToString returns a string representation of this Sink
func (s *Sink) ToString() string {
	return fmt.Sprintf("Object store sink: s3://%s/%s", s.bucket, s.key)
}

// Write encodes table in memory and uploads it
func (s *Sink) Write(ctx context.Context, table flowsome.Table) error {
	var buf bytes.Buffer
	w := compress.NewWriter(s.key, &buf)
	if err := s.encoder.Encode(w, table); err != nil {
		return fmt.Errorf("Unable to encode s3://%s/%s: %w", s.bucket, s.key, err)
	}
	if err := w.Close(); err != nil {
		return err
	}
	size := buf.Len()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(size)),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("Unable to upload s3://%s/%s: %w", s.bucket, s.key, err)
	}
	log.Debug().Str("bucket", s.bucket).Str("key", s.key).Int("bytes", size).Msg("uploaded object")
	return nil
}
