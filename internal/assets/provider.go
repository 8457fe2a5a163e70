// Package assets resolves the font and template resources used by the
// captcha renderers by logical name.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/kyiku/captcha-engine/internal/storage"
)

// Logical resource names.
const (
	FontName   = "font/captcha.ttf"
	MaskName   = "template/template.png"
	BorderName = "template/border.png"
)

// ErrNotFound is returned when a provider has no resource under the requested name.
var ErrNotFound = errors.New("asset not found")

// Provider resolves a logical resource name to raw bytes.
// Returned slices may be shared and must not be modified.
type Provider interface {
	Bytes(name string) ([]byte, error)
}

// IsNotFound reports whether err means the resource does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || storage.IsNotFound(err)
}

type dirProvider struct {
	fsys fs.FS
}

// Dir returns a provider reading files below root.
func Dir(root string) Provider {
	return &dirProvider{fsys: os.DirFS(root)}
}

func (p *dirProvider) Bytes(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: invalid name %q", ErrNotFound, name)
	}

	data, err := fs.ReadFile(p.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read asset %s: %w", name, err)
	}
	return data, nil
}

// ObjectGetter is the subset of storage.S3Client used for assets.
type ObjectGetter interface {
	GetObject(key string) ([]byte, error)
}

type s3Provider struct {
	client ObjectGetter
	prefix string
}

// S3 returns a provider reading objects stored under prefix.
func S3(client ObjectGetter, prefix string) Provider {
	return &s3Provider{
		client: client,
		prefix: strings.TrimSuffix(prefix, "/"),
	}
}

func (p *s3Provider) Bytes(name string) ([]byte, error) {
	key := name
	if p.prefix != "" {
		key = path.Join(p.prefix, name)
	}

	data, err := p.client.GetObject(key)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to get asset %s: %w", key, err)
	}
	return data, nil
}

type chainProvider []Provider

// Chain returns a provider that asks each provider in order and returns the
// first answer that is not a not-found error.
func Chain(providers ...Provider) Provider {
	return chainProvider(providers)
}

func (c chainProvider) Bytes(name string) ([]byte, error) {
	for _, p := range c {
		data, err := p.Bytes(name)
		if err == nil {
			return data, nil
		}
		if !IsNotFound(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

type cacheEntry struct {
	once sync.Once
	data []byte
	err  error
}

type cachedProvider struct {
	next    Provider
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

// Cached wraps p so that each name is resolved at most once. Results,
// including errors, are shared by all later callers.
func Cached(p Provider) Provider {
	return &cachedProvider{
		next:    p,
		entries: make(map[string]*cacheEntry),
	}
}

func (c *cachedProvider) Bytes(name string) ([]byte, error) {
	c.mu.Lock()
	entry, ok := c.entries[name]
	if !ok {
		entry = &cacheEntry{}
		c.entries[name] = entry
	}
	c.mu.Unlock()

	entry.once.Do(func() {
		entry.data, entry.err = c.next.Bytes(name)
	})
	return entry.data, entry.err
}
