package cache

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"time"
)

// entryHeaderLen is the fixed prefix of every cache file: the expiry as
// big-endian unix nanoseconds, zero meaning the entry never expires.
const entryHeaderLen = 8

// FileCache stores rendered artifacts on disk, one file per key. Artifacts
// are raw bytes behind a small expiry header, so a cached SVG or PNG stays
// inspectable with standard tools after stripping the first eight bytes.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir.
// The directory is created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves an artifact. Expired and corrupt entries are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(raw) < entryHeaderLen {
		_ = os.Remove(path)
		return nil, false, nil
	}

	if expiry := int64(binary.BigEndian.Uint64(raw[:entryHeaderLen])); expiry != 0 {
		if time.Now().UnixNano() > expiry {
			_ = os.Remove(path)
			return nil, false, nil
		}
	}

	return raw[entryHeaderLen:], true, nil
}

// Set stores an artifact. A zero ttl stores it without expiry; a negative
// ttl writes an entry that is already expired.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expiry int64
	if ttl != 0 {
		expiry = time.Now().Add(ttl).UnixNano()
	}

	buf := make([]byte, entryHeaderLen+len(data))
	binary.BigEndian.PutUint64(buf[:entryHeaderLen], uint64(expiry))
	copy(buf[entryHeaderLen:], data)

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// Delete removes an artifact. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to a file path, fanned out over two-character
// subdirectories to keep directory listings small.
func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+".entry")
}

var _ Cache = (*FileCache)(nil)
