package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("create book: %w", New(Conflict, "book already exists with title: %s", "Dune"))
	require.Equal(t, Conflict, KindOf(err))
	require.Equal(t, http.StatusConflict, KindOf(err).Status())
	require.Equal(t, "book already exists with title: Dune", Message(err))

	require.Equal(t, Internal, KindOf(errors.New("disk full")))
	require.Equal(t, "internal server error", Message(errors.New("disk full")))
}

func TestStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		BadRequest:      http.StatusBadRequest,
		Unauthenticated: http.StatusUnauthorized,
		Unauthorized:    http.StatusUnauthorized,
		Forbidden:       http.StatusForbidden,
		NotFound:        http.StatusNotFound,
		Conflict:        http.StatusConflict,
		Internal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		require.Equal(t, status, kind.Status(), kind.String())
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(cause, Internal, "read books")
	require.ErrorIs(t, err, cause)
	require.Equal(t, "internal server error", Message(err))
	require.True(t, errors.Is(err, &Error{Kind: Internal}))
	require.False(t, errors.Is(err, &Error{Kind: NotFound}))
}
