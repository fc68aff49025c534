package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument(t *testing.T) {
	assert.NoError(t, ValidateDocument("notes.pdf", 1024, 0))
	assert.NoError(t, ValidateDocument("PHOTO.JPG", 1024, 0))
	assert.ErrorIs(t, ValidateDocument("payload.exe", 1024, 0), ErrFileTypeBlocked)
	assert.ErrorIs(t, ValidateDocument("script.sh", 1024, 0), ErrFileTypeBlocked)
	assert.ErrorIs(t, ValidateDocument("noextension", 1024, 0), ErrFileTypeBlocked)
	assert.ErrorIs(t, ValidateDocument("big.pdf", MaxDocumentSize+1, 0), ErrFileTooLarge)
}

func TestValidateDocumentConfiguredLimit(t *testing.T) {
	assert.NoError(t, ValidateDocument("notes.pdf", 2<<20, 2<<20))
	assert.ErrorIs(t, ValidateDocument("notes.pdf", (2<<20)+1, 2<<20), ErrFileTooLarge)
}

func TestLocalStoreSaveAndDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	path, err := store.Save(ctx, "doc-1.pdf", strings.NewReader("content"), 7)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	require.NoError(t, store.Delete(ctx, "doc-1.pdf"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreDeleteMissingFile(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "never-existed.pdf"))
}

func TestLocalStoreStripsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	path, err := store.Save(context.Background(), "../../escape.pdf", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.pdf"), path)
}
