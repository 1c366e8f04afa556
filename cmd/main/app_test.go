package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"bookCatalog/internal/storage/jsonfile"
)

func TestUserAdd(t *testing.T) {
	dir := t.TempDir()
	usersFile := filepath.Join(dir, "User.json")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("STORAGE_DRIVER", "json")
	t.Setenv("USERS_FILE", usersFile)
	t.Setenv("BOOKS_FILE", filepath.Join(dir, "Book.json"))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader("pa55word\n"))
	root.SetArgs([]string{"--config", filepath.Join(dir, "none.yml"), "useradd", "--email", "cli@example.com", "--name", "Cli"})
	require.NoError(t, root.Execute())

	u, err := jsonfile.NewUserStorage(usersFile).FindByEmail(context.Background(), "cli@example.com")
	require.NoError(t, err)
	require.Equal(t, "Cli", u.Name)
	require.Contains(t, out.String(), u.ID)
}

func TestMigrate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", filepath.Join(dir, "catalog.db"))

	root := newRootCmd()
	root.SetArgs([]string{"--config", filepath.Join(dir, "none.yml"), "migrate"})
	require.NoError(t, root.Execute())
	require.FileExists(t, filepath.Join(dir, "catalog.db"))
}

func TestReadPassword_FromPipe(t *testing.T) {
	pw, err := readPassword(strings.NewReader("secret\r\n"), &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "secret", pw)

	pw, err = readPassword(strings.NewReader("no-newline"), &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, "no-newline", pw)
}
