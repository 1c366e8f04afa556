package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"bookCatalog/internal/apperror"
)

func TestBearerToken(t *testing.T) {
	tok, err := BearerToken("Bearer abc")
	require.NoError(t, err)
	require.Equal(t, "abc", tok)

	tok, err = BearerToken("bearer   abc ")
	require.NoError(t, err)
	require.Equal(t, "abc", tok)

	for _, header := range []string{"", "abc", "Basic abc", "Bearer ", "Bearer"} {
		_, err := BearerToken(header)
		require.Equal(t, apperror.Unauthenticated, apperror.KindOf(err), header)
	}
}

func TestGuard_Protect(t *testing.T) {
	tokens := NewTokenService(testSecret, time.Hour)
	guard := NewGuard(tokens)

	var got *Identity
	h := guard.Protect(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		got, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	// Missing header.
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, got)

	// Invalid token.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec = httptest.NewRecorder()
	h(rec, req, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Nil(t, got)

	// Valid token.
	tok, err := tokens.Issue(Identity{Email: "bob@example.com", Sub: "u2"})
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h(rec, req, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, &Identity{Email: "bob@example.com", Sub: "u2"}, got)
}

func TestRequireIdentity(t *testing.T) {
	_, err := RequireIdentity(context.Background())
	require.Equal(t, apperror.Unauthenticated, apperror.KindOf(err))

	ctx := WithIdentity(context.Background(), &Identity{Email: "a@example.com", Sub: "u1"})
	id, err := RequireIdentity(ctx)
	require.NoError(t, err)
	require.Equal(t, "u1", id.Sub)
}
