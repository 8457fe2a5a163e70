package bridge

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/kyiku/captcha-engine/internal/random"
	"github.com/kyiku/captcha-engine/internal/storage"
)

// ErrEmptyPool is returned when a slider is requested from a pool without images.
var ErrEmptyPool = errors.New("background pool is empty")

// BackgroundSource lists and fetches background images from object storage.
type BackgroundSource interface {
	ListBackgrounds(prefix string) ([]string, error)
	GetObject(key string) ([]byte, error)
}

// Pool holds encoded background images for slider challenges.
type Pool struct {
	mu     sync.RWMutex
	images [][]byte
	rng    *random.Generator
}

// NewPool creates an empty pool. A nil rng uses a time-seeded generator.
func NewPool(rng *random.Generator) *Pool {
	if rng == nil {
		rng = random.NewDefault()
	}
	return &Pool{rng: rng}
}

// Load adds one encoded image. Empty images are ignored.
func (p *Pool) Load(image []byte) {
	if len(image) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.images = append(p.images, image)
}

// Len returns the number of images in the pool.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.images)
}

// Random returns a uniformly chosen image, or false when the pool is empty.
func (p *Pool) Random() ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if len(p.images) == 0 {
		return nil, false
	}
	return p.images[p.rng.Intn(len(p.images))], true
}

// LoadFromStorage loads every background image under prefix and returns
// how many were added.
func (p *Pool) LoadFromStorage(src BackgroundSource, prefix string) (int, error) {
	keys, err := src.ListBackgrounds(prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list backgrounds: %w", err)
	}

	loaded := 0
	for _, key := range keys {
		data, err := src.GetObject(key)
		if err != nil {
			return loaded, fmt.Errorf("failed to load background %s: %w", key, err)
		}
		if len(data) == 0 {
			log.Printf("Skipping empty background: %s", key)
			continue
		}
		p.Load(data)
		loaded++
	}
	return loaded, nil
}

// LoadFromDir loads every image file directly inside dir and returns how
// many were added. Subdirectories are not visited.
func (p *Pool) LoadFromDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read background dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !storage.IsImageKey(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	loaded := 0
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return loaded, fmt.Errorf("failed to read background %s: %w", name, err)
		}
		if len(data) == 0 {
			log.Printf("Skipping empty background: %s", name)
			continue
		}
		p.Load(data)
		loaded++
	}
	return loaded, nil
}
