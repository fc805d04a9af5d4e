package gh

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"folder-pack/helpers"
)

// FileCache keeps downloaded files keyed by their git blob SHA so unchanged
// files can be restored without another download.
type FileCache struct {
	cacheDir string
	enabled  bool
}

// NewFileCache opens a cache rooted at dir, or at the per-user cache
// directory when dir is empty. A cache that cannot be created is returned
// disabled, every lookup is then a miss.
func NewFileCache(dir string) *FileCache {
	if dir == "" {
		var err error
		if dir, err = defaultCacheDir(); err != nil {
			return &FileCache{enabled: false}
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &FileCache{enabled: false}
	}

	return &FileCache{
		cacheDir: dir,
		enabled:  true,
	}
}

func defaultCacheDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Caches")
	case "windows":
		baseDir = os.Getenv("LOCALAPPDATA")
		if baseDir == "" {
			return "", fmt.Errorf("LOCALAPPDATA not set")
		}
	default:
		baseDir = os.Getenv("XDG_CACHE_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".cache")
		}
	}

	return filepath.Join(baseDir, "folder-pack", "blobs"), nil
}

func (c *FileCache) Enabled() bool { return c.enabled }

// Get copies the cached blob sha to destPath. It reports false when the blob
// is not cached or the cached copy no longer hashes to sha.
func (c *FileCache) Get(sha string, destPath string) (bool, error) {
	if !c.usable(sha) {
		return false, nil
	}

	cachePath := c.cachePath(sha)
	if _, err := os.Stat(cachePath); err != nil {
		return false, nil
	}

	got, err := ComputeBlobSHA(cachePath)
	if err != nil || got != sha {
		os.Remove(cachePath)
		return false, nil
	}

	if err := copyFile(cachePath, destPath); err != nil {
		return false, err
	}
	return true, nil
}

// Put stores sourcePath under sha. Existing entries are left alone.
func (c *FileCache) Put(sha string, sourcePath string) error {
	if !c.usable(sha) {
		return nil
	}

	cachePath := c.cachePath(sha)
	if _, err := os.Stat(cachePath); err == nil {
		return nil
	}

	return copyFile(sourcePath, cachePath)
}

func (c *FileCache) usable(sha string) bool {
	return c.enabled && len(sha) > 4
}

func (c *FileCache) cachePath(sha string) string {
	return filepath.Join(c.cacheDir, sha[:2], sha[2:4], sha)
}

// copyFile never hard links, downloads truncate destination files in place.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	if _, err := helpers.SaveFile(dst, srcFile); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}

// ComputeBlobSHA returns the git blob object id of the file at path, the
// same value the contents API reports as "sha".
func ComputeBlobSHA(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	h := sha1.New()
	fmt.Fprintf(h, "blob %d\x00", info.Size())
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
