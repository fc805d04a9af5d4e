package helpers_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folder-pack/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkRecorder records the size of every write it receives.
type chunkRecorder struct {
	bytes.Buffer
	sizes []int
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	c.sizes = append(c.sizes, len(p))
	return c.Buffer.Write(p)
}

// stutterReader returns empty reads between the real ones.
type stutterReader struct {
	r     io.Reader
	empty bool
}

func (s *stutterReader) Read(p []byte) (int, error) {
	s.empty = !s.empty
	if s.empty {
		return 0, nil
	}
	return s.r.Read(p)
}

type failingReader struct {
	data []byte
	sent bool
}

func (f *failingReader) Read(p []byte) (int, error) {
	if !f.sent {
		f.sent = true
		return copy(p, f.data), nil
	}
	return 0, errors.New("connection reset")
}

func TestCopyChunksSizes(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 3*helpers.ChunkSize+100)
	dst := &chunkRecorder{}

	n, err := helpers.CopyChunks(dst, &stutterReader{r: bytes.NewReader(data)})
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, data, dst.Bytes())
	assert.Equal(t, []int{helpers.ChunkSize, helpers.ChunkSize, helpers.ChunkSize, 100}, dst.sizes)
}

func TestSaveFileCreatesParents(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "a", "b", "c.txt")

	n, err := helpers.SaveFile(target, strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestSaveFileOverwrites(t *testing.T) {
	target := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(target, []byte("a much longer previous content"), 0o644))

	_, err := helpers.SaveFile(target, strings.NewReader("new"))
	require.NoError(t, err)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestSaveFileLeavesPartialFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "partial.bin")

	n, err := helpers.SaveFile(target, &failingReader{data: []byte("head")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, int64(4), n)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "head", string(got))
}

func TestEnsureDirIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x", "y")
	require.NoError(t, helpers.EnsureDir(dir))
	require.NoError(t, helpers.EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func BenchmarkSaveFile(b *testing.B) {
	tmpDir := b.TempDir()
	content := bytes.Repeat([]byte("test content"), 100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = helpers.SaveFile(filepath.Join(tmpDir, "src", "file.txt"), bytes.NewReader(content))
	}
}
