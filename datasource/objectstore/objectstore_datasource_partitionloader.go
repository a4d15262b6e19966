package objectstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/internal/compress"
	"github.com/rs/zerolog/log"
)

// PartitionLoader is capable of loading partitions of data from an object
type PartitionLoader struct {
	key    string
	source *DataSource
}

// ToString returns a string representation of this PartitionLoader
func (pl *PartitionLoader) ToString() string {
	return fmt.Sprintf("Object loader: s3://%s/%s", pl.source.bucket, pl.key)
}

// Load streams an object through parser. The object body is closed once the returned
// iterator runs out of Partitions.
func (pl *PartitionLoader) Load(parser flowsome.DataSourceParser, schema flowsome.Schema) (flowsome.PartitionIterator, error) {
	if parser == nil {
		return nil, fmt.Errorf("Object store DataSource requires a DataSourceParser")
	}
	out, err := pl.source.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(pl.source.bucket),
		Key:    aws.String(pl.key),
	})
	if err != nil {
		return nil, fmt.Errorf("Unable to get s3://%s/%s: %w", pl.source.bucket, pl.key, err)
	}
	log.Debug().Str("bucket", pl.source.bucket).Str("key", pl.key).Msg("loading object")
	pi, err := parser.Parse(compress.NewReader(pl.key, out.Body), pl.source, schema, func() {
		if err := out.Body.Close(); err != nil {
			log.Warn().Err(err).Str("key", pl.key).Msg("couldn't close object")
		}
	})
	if err != nil {
		out.Body.Close()
		return nil, fmt.Errorf("Unable to parse s3://%s/%s: %w", pl.source.bucket, pl.key, err)
	}
	return pi, nil
}
