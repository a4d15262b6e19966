// Package objectstore builds S3 clients for S3-compatible object storage.
package objectstore

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Conf configures a connection to an S3-compatible object store
type Conf struct {
	Region          string `yaml:"region" mapstructure:"region"`
	Endpoint        string `yaml:"endpoint" mapstructure:"endpoint"` // e.g. https://minio.local:9000. Defaults to AWS.
	AccessKeyID     string `yaml:"access_key_id" mapstructure:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" mapstructure:"secret_access_key"`
	SessionToken    string `yaml:"session_token" mapstructure:"session_token"`
	URLStyle        string `yaml:"url_style" mapstructure:"url_style"` // "path" (default) or "vhost"
}

// NewClient creates an S3 client. Requests are anonymous when no access key is configured.
func NewClient(conf *Conf) *s3.Client {
	region := conf.Region
	if region == "" {
		region = "us-east-1"
	}
	opts := s3.Options{
		Region:                     region,
		UsePathStyle:               conf.URLStyle != "vhost",
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	}
	if conf.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, conf.SessionToken)
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}
	if conf.Endpoint != "" {
		endpoint := conf.Endpoint
		if !strings.Contains(endpoint, "://") {
			endpoint = "https://" + endpoint
		}
		opts.BaseEndpoint = aws.String(endpoint)
	}
	return s3.New(opts)
}

// ParseS3Path extracts bucket and key from an "s3://bucket/path/to/file" URI
func ParseS3Path(s3Path string) (bucket, key string, err error) {
	u, err := url.Parse(s3Path)
	if err != nil {
		return "", "", fmt.Errorf("Unable to parse S3 path %q: %w", s3Path, err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("Expected s3:// scheme, got %q in %q", u.Scheme, s3Path)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("S3 path %q has no bucket", s3Path)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// SplitPattern splits a key which may contain glob metacharacters into the literal
// prefix used for listing, and the pattern keys must match. The pattern is empty when
// the key contains no metacharacters.
func SplitPattern(key string) (prefix string, pattern string) {
	idx := strings.IndexAny(key, "*?[")
	if idx < 0 {
		return key, ""
	}
	return key[:idx], key
}
