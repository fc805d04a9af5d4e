package helpers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ChunkSize is the read size used when streaming downloads to disk.
const ChunkSize = 8192

// EnsureDir creates dir and any missing parents. Existing directories are fine.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil && !os.IsExist(err) {
		return fmt.Errorf("error creating directory %s: %w", dir, err)
	}
	return nil
}

// SaveFile streams content into fullPath, creating its parent directory
// first. An existing file is truncated. Nothing is removed on failure, so an
// interrupted copy leaves a partial file behind.
func SaveFile(fullPath string, content io.Reader) (int64, error) {
	if err := EnsureDir(filepath.Dir(fullPath)); err != nil {
		return 0, err
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return 0, fmt.Errorf("error creating file %s: %w", fullPath, err)
	}
	defer f.Close()

	n, err := CopyChunks(f, content)
	if err != nil {
		return n, fmt.Errorf("error saving file %s: %w", fullPath, err)
	}
	return n, f.Close()
}

// CopyChunks copies src to dst ChunkSize bytes at a time, skipping empty reads.
func CopyChunks(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, ChunkSize)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			w, werr := dst.Write(buf[:n])
			written += int64(w)
			if werr != nil {
				return written, werr
			}
			if w != n {
				return written, io.ErrShortWrite
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
