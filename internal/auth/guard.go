package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"bookCatalog/internal/apperror"
	"bookCatalog/internal/handlers"
	"bookCatalog/package/logger"
)

type identityKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

// RequireIdentity returns the caller resolved by the Guard.
func RequireIdentity(ctx context.Context) (*Identity, error) {
	id, ok := FromContext(ctx)
	if !ok || id.Sub == "" || id.Email == "" {
		return nil, apperror.New(apperror.Unauthenticated, "authentication failed")
	}
	return id, nil
}

// Guard rejects requests without a valid bearer token before the handler runs.
type Guard struct {
	tokens *TokenService
}

func NewGuard(tokens *TokenService) *Guard {
	return &Guard{tokens: tokens}
}

func (g *Guard) Protect(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		tokenStr, err := BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			handlers.WriteError(w, r, err)
			return
		}
		id, err := g.tokens.Verify(tokenStr)
		if err != nil {
			handlers.WriteError(w, r, err)
			return
		}
		logger.Log.WithField("user", id.Email).Debug("Token verified")
		next(w, r.WithContext(WithIdentity(r.Context(), id)), params)
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", apperror.New(apperror.Unauthenticated, "missing authorization header")
	}
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperror.New(apperror.Unauthenticated, "invalid authorization header")
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", apperror.New(apperror.Unauthenticated, "missing token")
	}
	return tok, nil
}
