package fs

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineBase64(t *testing.T) {
	dir := t.TempDir()
	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pill.jpg"), payload, 0o644))

	store := NewImageStore(dir)
	data, err := store.InlineBase64("pill.jpg")
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), data)
}

func TestDataURI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "device.png"), []byte("png"), 0o644))

	store := NewImageStore(dir)
	data, err := store.DataURI("device.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(data, "data:image/png;base64,"))

	data, err = store.DataURI("device.jpg")
	assert.Error(t, err)
	assert.Empty(t, data)
}

func TestPathTraversalConfinedToImageDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.png"), []byte("png"), 0o644))

	store := NewImageStore(dir)

	// Traversal attempts resolve to the base name inside the image dir.
	data, err := store.InlineBase64("../../etc/secret.png")
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = store.InlineBase64("..")
	assert.Error(t, err)

	_, err = store.InlineBase64("")
	assert.Error(t, err)
}

func TestMissingFile(t *testing.T) {
	store := NewImageStore(t.TempDir())
	_, err := store.InlineBase64("nope.jpg")
	assert.Error(t, err)
}
