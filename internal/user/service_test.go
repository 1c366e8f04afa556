package user_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookCatalog/internal/apperror"
	"bookCatalog/internal/auth"
	"bookCatalog/internal/storage/jsonfile"
	"bookCatalog/internal/user"
)

func newService(t *testing.T) (*user.Service, *auth.TokenService) {
	t.Helper()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	storage := jsonfile.NewUserStorage(filepath.Join(t.TempDir(), "User.json"))
	return user.NewService(storage, tokens), tokens
}

var alice = user.RegisterRequest{Email: "alice@example.com", Password: "pa55word", Name: "Alice"}

func TestRegister_HashesPassword(t *testing.T) {
	svc, _ := newService(t)
	u, err := svc.Register(context.Background(), alice)
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "alice@example.com", u.Email)
	require.NotEqual(t, alice.Password, u.Password)
	require.True(t, strings.HasPrefix(u.Password, "$2a$10$"), u.Password)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.Register(ctx, alice)
	require.NoError(t, err)

	_, err = svc.Register(ctx, alice)
	require.Equal(t, apperror.Conflict, apperror.KindOf(err))
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Register(context.Background(), user.RegisterRequest{Email: "a@example.com"})
	require.Equal(t, apperror.BadRequest, apperror.KindOf(err))
	require.Contains(t, apperror.Message(err), "password")
	require.Contains(t, apperror.Message(err), "name")
}

func TestRegister_TooLongPassword(t *testing.T) {
	svc, _ := newService(t)
	req := alice
	req.Password = strings.Repeat("x", 73)
	_, err := svc.Register(context.Background(), req)
	require.Equal(t, apperror.BadRequest, apperror.KindOf(err))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newService(t)
	registered, err := svc.Register(ctx, alice)
	require.NoError(t, err)

	u, tok, err := svc.Login(ctx, user.LoginRequest{Email: alice.Email, Password: alice.Password})
	require.NoError(t, err)
	require.Equal(t, registered.ID, u.ID)

	id, err := tokens.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, auth.Identity{Email: alice.Email, Sub: registered.ID}, *id)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.Register(ctx, alice)
	require.NoError(t, err)

	_, _, wrongPw := svc.Login(ctx, user.LoginRequest{Email: alice.Email, Password: "nope"})
	require.Equal(t, apperror.Unauthorized, apperror.KindOf(wrongPw))

	_, _, unknown := svc.Login(ctx, user.LoginRequest{Email: "ghost@example.com", Password: "nope"})
	require.Equal(t, apperror.Unauthorized, apperror.KindOf(unknown))

	require.Equal(t, apperror.Message(wrongPw), apperror.Message(unknown))
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := newService(t)
	_, _, err := svc.Login(context.Background(), user.LoginRequest{Email: "a@example.com"})
	require.Equal(t, apperror.BadRequest, apperror.KindOf(err))
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	registered, err := svc.Register(ctx, alice)
	require.NoError(t, err)

	u, err := svc.Me(ctx, auth.Identity{Email: alice.Email, Sub: registered.ID})
	require.NoError(t, err)
	require.Equal(t, registered.ID, u.ID)

	_, err = svc.Me(ctx, auth.Identity{Email: alice.Email, Sub: "someone-else"})
	require.Equal(t, apperror.NotFound, apperror.KindOf(err))

	_, err = svc.Me(ctx, auth.Identity{Email: "ghost@example.com", Sub: registered.ID})
	require.Equal(t, apperror.NotFound, apperror.KindOf(err))
}

func TestProfileHasNoPassword(t *testing.T) {
	u := user.User{ID: "u1", Email: "a@example.com", Name: "A", Password: "$2a$10$hash"}
	data, err := json.Marshal(u.Profile())
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"u1","email":"a@example.com","name":"A"}`, string(data))
}
