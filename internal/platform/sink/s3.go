package sink

import (
	"bytes"
	"context"
	"path"
	"strings"

	"chatter/internal/platform/config"
	perr "chatter/internal/platform/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures an S3-compatible destination
type S3Options struct {
	Bucket    string
	Key       string
	Prefix    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3FromConfig reads SINK_S3_* settings
//
//	SINK_S3_BUCKET, SINK_S3_PREFIX, SINK_S3_REGION (us-east-1),
//	SINK_S3_ENDPOINT (MinIO and friends), SINK_S3_ACCESS_KEY, SINK_S3_SECRET_KEY
func S3FromConfig(cfg config.Conf) S3Options {
	c := cfg.Prefix("SINK_S3_")
	return S3Options{
		Bucket:    c.MayString("BUCKET", ""),
		Prefix:    c.MayString("PREFIX", ""),
		Region:    c.MayString("REGION", "us-east-1"),
		Endpoint:  c.MayString("ENDPOINT", ""),
		AccessKey: c.MayString("ACCESS_KEY", ""),
		SecretKey: c.MayString("SECRET_KEY", ""),
	}
}

type putter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 uploads each document to a fixed object key
type S3 struct {
	client putter
	bucket string
	key    string
}

// NewS3 builds the client; static credentials are used when both keys are set,
// otherwise the default AWS chain applies
func NewS3(ctx context.Context, o S3Options) (*S3, error) {
	if o.Bucket == "" || o.Key == "" {
		return nil, perr.InvalidArgf("s3 sink needs bucket and key")
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(o.Region)}
	if o.AccessKey != "" && o.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "load aws config")
	}
	client := s3.NewFromConfig(awsCfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})
	return &S3{client: client, bucket: o.Bucket, key: objectKey(o.Prefix, o.Key)}, nil
}

func objectKey(prefix, key string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}

// Put uploads body, overwriting the previous object
func (s *S3) Put(ctx context.Context, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "put s3://%s/%s", s.bucket, s.key)
	}
	return nil
}

// Describe names the destination for logs
func (s *S3) Describe() string { return "s3://" + s.bucket + "/" + s.key }
