package watermark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileStoreLoadMissing(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "last_timestamp.txt"), zap.NewNop())
	require.NoError(t, err)

	ts, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), ts)
}

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "last_timestamp.txt"), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Save(1704103200))

	ts, ok, err := s.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1704103200), ts)

	// Saving again overwrites.
	require.NoError(t, s.Save(1704106800))
	ts, ok, err = s.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1704106800), ts)
}

func TestFileStoreTrailingWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_timestamp.txt")
	require.NoError(t, os.WriteFile(path, []byte(" 42 \n"), 0644))

	s, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	ts, ok, err := s.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), ts)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_timestamp.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a number"), 0644))

	s, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	_, _, err = s.Load()
	assert.Error(t, err)
}
