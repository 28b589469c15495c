package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciboo-portal/internal/application/auth"
	"github.com/jhoicas/reciboo-portal/internal/infrastructure/storage"
)

func exercise(t *testing.T, s auth.Storage) {
	t.Helper()
	_, ok, err := s.Get("token")
	require.NoError(t, err)
	assert.False(t, ok, "sin valor inicial")

	require.NoError(t, s.Set("token", "abc"))
	require.NoError(t, s.Set("user", `{"id":1}`))

	v, ok, err := s.Get("token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.Delete("token", "user"))
	_, ok, _ = s.Get("user")
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	exercise(t, storage.NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.yaml")
	s, err := storage.NewFileStore(path)
	require.NoError(t, err)
	exercise(t, s)
}

func TestFileStore_PersisteEntreInstancias(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.yaml")
	a, err := storage.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, a.Set("user", `{"id":7,"nombre":"Ana: \"A\""}`))

	b, err := storage.NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := b.Get("user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"id":7,"nombre":"Ana: \"A\""}`, v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_YAMLCorrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- no\n- es un mapa"), 0o600))

	s, err := storage.NewFileStore(path)
	require.NoError(t, err)
	_, _, err = s.Get("user")
	assert.Error(t, err)
}
