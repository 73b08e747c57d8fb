package resource

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"
)

// Cache provides file-based caching of URL resource bodies.
//
// Each entry is stored as a file in the cache directory, with the filename
// derived from a SHA-256 hash of the URL. This keeps filenames safe
// regardless of URL characters and makes long keys acceptable.
//
// Entries expire based on file modification time. A TTL of 0 means entries
// never expire. Cache operations on a single instance are not
// goroutine-safe; multiple instances may share a directory, as the
// filesystem provides atomic file operations.
type Cache struct {
	dir string
	ttl time.Duration
}

// NewCache creates a Cache that stores entries in dir with the given TTL.
//
// If dir is empty, the default directory ~/.cache/depsketch/ is used. The
// directory is created with mode 0755 if it doesn't exist.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "depsketch")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the absolute path to the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the time-to-live duration for cache entries.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get retrieves a cached body by key.
//
// Return values indicate three outcomes:
//   - (data, true, nil): cache hit, entry is fresh
//   - (nil, false, nil): cache miss or expired entry (expired entries are removed)
//   - (nil, false, err): I/O error reading the entry
func (c *Cache) Get(key string) ([]byte, bool, error) {
	path := c.path(key)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		_ = os.Remove(path)
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a body under key, overwriting any existing entry.
func (c *Cache) Set(key string, data []byte) error {
	return os.WriteFile(c.path(key), data, 0o644)
}

// Delete removes the entry for key. Deleting a missing entry is not an error.
func (c *Cache) Delete(key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (c *Cache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}
