package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Farhan-176/Mcrofinance-Loan-App/internal/infrastructure/storage"
)

func TestDiskStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := storage.NewDiskStore(dir)
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "1700000000000-cnic-front.png", strings.NewReader("png bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1700000000000-cnic-front.png", ref)

	got, err := os.ReadFile(filepath.Join(dir, "1700000000000-cnic-front.png"))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(got))
}

func TestDiskStore_RejectsUnsafeNames(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.png", "a/b.png", ".hidden"} {
		_, err := store.Save(context.Background(), name, strings.NewReader("x"))
		assert.Error(t, err, name)
	}
}

func TestDiskStore_DoesNotOverwrite(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "1-a.png", strings.NewReader("first"))
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "1-a.png", strings.NewReader("second"))
	assert.Error(t, err)
}

func TestDiskStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewDiskStore(dir)
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "1-a.png", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), ref))
	_, err = os.Stat(filepath.Join(dir, "1-a.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, store.Remove(context.Background(), ref), "second remove is a no-op")
	assert.Error(t, store.Remove(context.Background(), "/uploads/../etc/passwd"))
	assert.Error(t, store.Remove(context.Background(), "1-a.png"))
}
