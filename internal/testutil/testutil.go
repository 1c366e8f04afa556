package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookCatalog/internal/auth"
	"bookCatalog/internal/config"
	"bookCatalog/internal/server"
	"bookCatalog/internal/storage"
)

const Secret = "test-secret"

// NewConfig returns a config backed by JSON files in a temp dir.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		IsDebug: true,
		Listen:  config.Listener{BindIp: "127.0.0.1", Port: "0"},
		Storage: config.StorageConfig{
			Driver:    config.DriverJSON,
			UsersFile: filepath.Join(dir, "User.json"),
			BooksFile: filepath.Join(dir, "Book.json"),
		},
		Key:  config.JWTSecretKey{SecretKey: Secret, TTL: time.Hour},
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
		Log:  config.LogConfig{Level: "debug"},
	}
}

func OpenStorages(t *testing.T, cfg *config.Config) *storage.Storages {
	t.Helper()
	st, err := storage.Open(context.Background(), cfg.Storage)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// NewServer returns the full HTTP handler over fresh JSON storages.
func NewServer(t *testing.T) (http.Handler, *storage.Storages) {
	t.Helper()
	cfg := NewConfig(t)
	st := OpenStorages(t, cfg)
	return server.NewHandler(cfg, st), st
}

func Token(t *testing.T, email, sub string) string {
	t.Helper()
	tok, err := auth.NewTokenService(Secret, time.Hour).Issue(auth.Identity{Email: email, Sub: sub})
	require.NoError(t, err)
	return tok
}

// Do sends body as JSON (unless nil) with an optional bearer token.
func Do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// Decode unmarshals the recorded JSON body into a generic map.
func Decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
