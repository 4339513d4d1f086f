// Package s3 publishes packaged datasets to an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/fwojciec/wikicollect"
)

// ContentType is the media type of published split files.
const ContentType = "application/x-ndjson"

// Ensure Publisher implements wikicollect.DatasetPublisher at compile time.
var _ wikicollect.DatasetPublisher = (*Publisher)(nil)

// Publisher uploads datasets as <prefix><name>/train.jsonl objects.
type Publisher struct {
	client *awss3.Client
	bucket string
	prefix string
}

// NewPublisher creates a Publisher. A non-empty prefix without a trailing
// slash gets one.
func NewPublisher(client *awss3.Client, bucket, prefix string) *Publisher {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Publisher{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key the dataset is published under.
func (p *Publisher) Key(ds *wikicollect.Dataset) string {
	return p.prefix + ds.SplitKey()
}

// Publish uploads the dataset and returns its s3:// location.
func (p *Publisher) Publish(ctx context.Context, ds *wikicollect.Dataset) (string, error) {
	if p.bucket == "" {
		return "", wikicollect.Errorf(wikicollect.ECONFIG, "S3 bucket required")
	}
	if err := ds.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := wikicollect.NewRecordEncoder(&buf)
	for _, rec := range ds.Records {
		if err := enc.Encode(rec); err != nil {
			return "", err
		}
	}

	key := p.Key(ds)
	_, err := p.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(ContentType),
	})
	if err != nil {
		return "", wikicollect.WrapError(wikicollect.EREMOTE, err, "upload dataset %q", ds.Name)
	}

	return "s3://" + p.bucket + "/" + key, nil
}

// NewClient builds an S3 client from the default AWS credential chain.
// A non-empty endpoint selects an S3-compatible service with path-style
// addressing.
func NewClient(ctx context.Context, region, endpoint string) (*awss3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, wikicollect.WrapError(wikicollect.ECONFIG, err, "load AWS config")
	}

	return awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
