package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bookCatalog/internal/config"
	"bookCatalog/internal/user"
)

func TestOpen_JSONCreatesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.StorageConfig{
		Driver:    config.DriverJSON,
		UsersFile: filepath.Join(dir, "data", "User.json"),
		BooksFile: filepath.Join(dir, "data", "Book.json"),
	}
	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close()

	for _, p := range []string{cfg.UsersFile, cfg.BooksFile} {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		require.Equal(t, "[]", string(data))
	}
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.StorageConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "catalog.db"),
	}
	s, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Users.Create(ctx, user.User{ID: "u1", Email: "a@example.com", Name: "A", Password: "h"}))
	books, err := s.Books.List(ctx)
	require.NoError(t, err)
	require.Empty(t, books)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Driver: "bolt"})
	require.Error(t, err)
}
