package testing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// MemoryObjectStore is an in-memory stand-in for the S3 client, supporting the
// calls made by the object store DataSource and Sink
type MemoryObjectStore struct {
	lock     sync.Mutex
	objects  map[string][]byte // keyed by bucket/key
	PageSize int               // the maximum number of keys per ListObjectsV2 page. Defaults to 1000.
}

// CreateMemoryObjectStore returns an empty MemoryObjectStore
func CreateMemoryObjectStore() *MemoryObjectStore {
	return &MemoryObjectStore{objects: make(map[string][]byte)}
}

// Put stores an object
func (m *MemoryObjectStore) Put(bucket string, key string, data []byte) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.objects[bucket+"/"+key] = append([]byte(nil), data...)
}

// Get returns a stored object
func (m *MemoryObjectStore) Get(bucket string, key string) ([]byte, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	data, ok := m.objects[bucket+"/"+key]
	return data, ok
}

// ListObjectsV2 lists the keys in a bucket beginning with a prefix, in lexical order
func (m *MemoryObjectStore) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	bucket := aws.ToString(params.Bucket) + "/"
	prefix := aws.ToString(params.Prefix)
	start := aws.ToString(params.ContinuationToken)
	keys := []string{}
	for k := range m.objects {
		if !strings.HasPrefix(k, bucket) {
			continue
		}
		key := strings.TrimPrefix(k, bucket)
		if strings.HasPrefix(key, prefix) && key > start {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	pageSize := m.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	if len(keys) > pageSize {
		keys = keys[:pageSize]
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(keys[len(keys)-1])
	}
	for _, key := range keys {
		out.Contents = append(out.Contents, types.Object{
			Key:  aws.String(key),
			Size: aws.Int64(int64(len(m.objects[bucket+key]))),
		})
	}
	out.KeyCount = aws.Int32(int32(len(out.Contents)))
	return out, nil
}

// GetObject returns the body of a stored object
func (m *MemoryObjectStore) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := m.Get(aws.ToString(params.Bucket), aws.ToString(params.Key))
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String(fmt.Sprintf("%s does not exist", aws.ToString(params.Key)))}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

// PutObject stores the body of an object
func (m *MemoryObjectStore) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.Put(aws.ToString(params.Bucket), aws.ToString(params.Key), data)
	return &s3.PutObjectOutput{}, nil
}
