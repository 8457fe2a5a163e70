package storage

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// AWSAdapter adapts the AWS S3 client to S3ClientInterface.
type AWSAdapter struct {
	client *s3.Client
	bucket string
}

// NewAWSAdapter creates an adapter for the given bucket.
func NewAWSAdapter(client *s3.Client, bucket string) *AWSAdapter {
	return &AWSAdapter{
		client: client,
		bucket: bucket,
	}
}

func (a *AWSAdapter) GetObject(key string) ([]byte, error) {
	output, err := a.client.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, &NotFoundError{Key: key}
		}
		return nil, err
	}
	defer output.Body.Close()

	return io.ReadAll(output.Body)
}

func (a *AWSAdapter) PutObject(key string, data []byte) error {
	_, err := a.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: &a.bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	return err
}

func (a *AWSAdapter) ListObjects(prefix string) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: &a.bucket,
		Prefix: &prefix,
	})

	keys := make([]string, 0)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(context.TODO())
		if err != nil {
			return nil, err
		}
		for _, obj := range output.Contents {
			keys = append(keys, *obj.Key)
		}
	}
	return keys, nil
}
