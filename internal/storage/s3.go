// Package storage provides S3 storage integration.
package storage

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// S3ClientInterface defines the interface for S3 operations.
type S3ClientInterface interface {
	GetObject(key string) ([]byte, error)
	PutObject(key string, data []byte) error
	ListObjects(prefix string) ([]string, error)
}

// NotFoundError is returned by adapters when a key does not exist.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return "object not found: " + e.Key
}

// NotFound marks the error as a missing-object error.
func (e *NotFoundError) NotFound() bool {
	return true
}

// IsNotFound reports whether err (or anything it wraps) is a missing-object error.
func IsNotFound(err error) bool {
	var nf interface{ NotFound() bool }
	return errors.As(err, &nf) && nf.NotFound()
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImageKey reports whether name has an extension of a decodable image format.
func IsImageKey(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}

// S3Client wraps S3 operations for captcha assets and images.
type S3Client struct {
	client        S3ClientInterface
	bucket        string
	cloudfrontURL string
}

// NewS3Client creates a new S3Client.
func NewS3Client(client S3ClientInterface, bucket string, cloudfrontURL string) *S3Client {
	return &S3Client{
		client:        client,
		bucket:        bucket,
		cloudfrontURL: strings.TrimSuffix(cloudfrontURL, "/"),
	}
}

// Bucket returns the bucket name.
func (c *S3Client) Bucket() string {
	return c.bucket
}

// GetObject returns the raw bytes stored under key.
func (c *S3Client) GetObject(key string) ([]byte, error) {
	data, err := c.client.GetObject(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	return data, nil
}

// ListBackgrounds returns the keys of background images under prefix, sorted.
// Keys without an image extension are skipped.
func (c *S3Client) ListBackgrounds(prefix string) ([]string, error) {
	keys, err := c.client.ListObjects(prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list background images: %w", err)
	}

	backgrounds := make([]string, 0, len(keys))
	for _, key := range keys {
		if IsImageKey(key) {
			backgrounds = append(backgrounds, key)
		}
	}
	sort.Strings(backgrounds)

	return backgrounds, nil
}

// UploadChallenge uploads an encoded challenge image and returns its CloudFront URL.
// kind is used as the key folder, e.g. "slider/background".
func (c *S3Client) UploadChallenge(kind string, data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty challenge image")
	}

	key := path.Join("captcha", kind, uuid.New().String()+"."+strings.TrimPrefix(ext, "."))

	if err := c.client.PutObject(key, data); err != nil {
		return "", fmt.Errorf("failed to upload challenge image: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.cloudfrontURL, key)
	return url, nil
}
