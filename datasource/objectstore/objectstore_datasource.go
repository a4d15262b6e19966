// Package objectstore provides a DataSource which reads objects from S3-compatible
// object storage. A URL of the form s3://bucket/prefix/*.csv selects every object whose
// key matches the pattern. Objects are loaded lazily and parsed in their entirety, in
// lexical key order. Keys ending in .lz4 are decompressed as they are read.
package objectstore

import (
	"context"
	"fmt"
	"path"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/datasource"
	"github.com/flowsome/flowsome/internal/objectstore"
)

// API is the subset of the S3 client used by DataSource
type API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// DataSource is a set of objects containing data which will be manipulated according to a DataFrame
type DataSource struct {
	client API
	bucket string
	key    string
	schema flowsome.Schema
}

// CreateDataFrame is a factory for DataSources
func CreateDataFrame(client API, url string, parser flowsome.DataSourceParser, schema flowsome.Schema) (flowsome.DataFrame, error) {
	bucket, key, err := objectstore.ParseS3Path(url)
	if err != nil {
		return nil, err
	}
	source := &DataSource{client: client, bucket: bucket, key: key, schema: schema}
	return datasource.CreateDataFrame(source, parser, schema), nil
}

// Analyze lists the matching objects, returning a PartitionMap with one PartitionLoader per object
func (ds *DataSource) Analyze() (flowsome.PartitionMap, error) {
	keys, err := ds.list(context.Background())
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("s3://%s/%s matched 0 objects", ds.bucket, ds.key)
	}
	sort.Strings(keys)
	return &PartitionMap{keys: keys, source: ds}, nil
}

func (ds *DataSource) list(ctx context.Context) ([]string, error) {
	prefix, pattern := objectstore.SplitPattern(ds.key)
	paginator := s3.NewListObjectsV2Paginator(ds.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(ds.bucket),
		Prefix: aws.String(prefix),
	})
	keys := []string{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("Unable to list s3://%s/%s: %w", ds.bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if pattern == "" {
				// a plain key selects itself, or everything beneath it
				if key == prefix || prefix == "" || prefix[len(prefix)-1] == '/' || key[len(prefix)] == '/' {
					keys = append(keys, key)
				}
				continue
			}
			matched, err := path.Match(pattern, key)
			if err != nil {
				return nil, err
			}
			if matched {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}
