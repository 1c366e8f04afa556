// Package storagetest holds the behaviour every user.Storage and book.Storage
// backend must share. Backend packages call the Run functions from their tests.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"bookCatalog/internal/apperror"
	"bookCatalog/internal/book"
	"bookCatalog/internal/user"
)

func RunUserStorage(t *testing.T, newStorage func(t *testing.T) user.Storage) {
	t.Run("CreateAndFind", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)
		u := user.User{ID: "u1", Email: "alice@example.com", Name: "Alice", Password: "hash"}
		require.NoError(t, s.Create(ctx, u))

		got, err := s.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, u, *got)
	})

	t.Run("EmailIsCaseSensitive", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)
		require.NoError(t, s.Create(ctx, user.User{ID: "u1", Email: "alice@example.com", Name: "A", Password: "h"}))

		_, err := s.FindByEmail(ctx, "Alice@example.com")
		require.Equal(t, apperror.NotFound, apperror.KindOf(err))
	})

	t.Run("DuplicateEmailConflicts", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)
		require.NoError(t, s.Create(ctx, user.User{ID: "u1", Email: "a@example.com", Name: "A", Password: "h"}))

		err := s.Create(ctx, user.User{ID: "u2", Email: "a@example.com", Name: "B", Password: "h"})
		require.Equal(t, apperror.Conflict, apperror.KindOf(err))
	})

	t.Run("ConcurrentDuplicatesKeepOne", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)

		const n = 10
		var wg sync.WaitGroup
		errs := make([]error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = s.Create(ctx, user.User{ID: fmt.Sprintf("u%d", i), Email: "race@example.com", Name: "R", Password: "h"})
			}(i)
		}
		wg.Wait()

		created := 0
		for _, err := range errs {
			if err == nil {
				created++
				continue
			}
			require.Equal(t, apperror.Conflict, apperror.KindOf(err), err.Error())
		}
		require.Equal(t, 1, created)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := newStorage(t).FindByEmail(context.Background(), "nobody@example.com")
		require.Equal(t, apperror.NotFound, apperror.KindOf(err))
	})
}

func RunBookStorage(t *testing.T, newStorage func(t *testing.T) book.Storage) {
	allow := func(*book.Book) error { return nil }

	seed := func(t *testing.T, s book.Storage, books ...book.Book) {
		t.Helper()
		for _, b := range books {
			require.NoError(t, s.Create(context.Background(), b))
		}
	}
	dune := book.Book{ID: "b1", Title: "Dune", Author: "Frank Herbert", Genre: "Fiction", PublishedYear: 1965, UserID: "u1"}
	sapiens := book.Book{ID: "b2", Title: "Sapiens", Author: "Yuval Noah Harari", Genre: "History", PublishedYear: 2011, UserID: "u2"}
	emma := book.Book{ID: "b3", Title: "Emma", Author: "Jane Austen", Genre: "Fiction", PublishedYear: 1815, UserID: "u1"}

	t.Run("ListEmpty", func(t *testing.T) {
		books, err := newStorage(t).List(context.Background())
		require.NoError(t, err)
		require.Empty(t, books)
	})

	t.Run("CreateListFindKeepsOrder", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)
		seed(t, s, dune, sapiens, emma)

		books, err := s.List(ctx)
		require.NoError(t, err)
		require.Equal(t, []book.Book{dune, sapiens, emma}, books)

		got, err := s.FindByID(ctx, "b2")
		require.NoError(t, err)
		require.Equal(t, sapiens, *got)

		_, err = s.FindByID(ctx, "missing")
		require.Equal(t, apperror.NotFound, apperror.KindOf(err))
	})

	t.Run("LargeYear", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)
		far := book.Book{ID: "b7", Title: "Far Future", Author: "A", Genre: "SF", PublishedYear: 3000000000, UserID: "u1"}
		seed(t, s, far)

		got, err := s.FindByID(ctx, "b7")
		require.NoError(t, err)
		require.Equal(t, far, *got)
	})

	t.Run("DuplicateTitleConflicts", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)
		seed(t, s, dune)

		dup := dune
		dup.ID = "b9"
		err := s.Create(ctx, dup)
		require.Equal(t, apperror.Conflict, apperror.KindOf(err))

		books, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
	})

	t.Run("UpdateAppliesPatch", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)
		seed(t, s, dune, sapiens)

		got, err := s.Update(ctx, "b1", allow, func(b *book.Book) {
			b.Genre = "Sci-Fi"
			b.PublishedYear = 1966
		})
		require.NoError(t, err)
		want := dune
		want.Genre = "Sci-Fi"
		want.PublishedYear = 1966
		require.Equal(t, want, *got)

		stored, err := s.FindByID(ctx, "b1")
		require.NoError(t, err)
		require.Equal(t, want, *stored)

		other, err := s.FindByID(ctx, "b2")
		require.NoError(t, err)
		require.Equal(t, sapiens, *other)
	})

	t.Run("UpdateCheckFailureWritesNothing", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)
		seed(t, s, dune)

		deny := apperror.New(apperror.Forbidden, "not yours")
		_, err := s.Update(ctx, "b1", func(*book.Book) error { return deny }, func(b *book.Book) { b.Title = "Changed" })
		require.Equal(t, apperror.Forbidden, apperror.KindOf(err))

		stored, err := s.FindByID(ctx, "b1")
		require.NoError(t, err)
		require.Equal(t, dune, *stored)
	})

	t.Run("UpdateToTakenTitleConflicts", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)
		seed(t, s, dune, sapiens)

		_, err := s.Update(ctx, "b2", allow, func(b *book.Book) { b.Title = "Dune" })
		require.Equal(t, apperror.Conflict, apperror.KindOf(err))
	})

	t.Run("UpdateUnknown", func(t *testing.T) {
		_, err := newStorage(t).Update(context.Background(), "nope", allow, func(*book.Book) {})
		require.Equal(t, apperror.NotFound, apperror.KindOf(err))
	})

	t.Run("DeleteRemovesExactlyOne", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)
		seed(t, s, dune, sapiens, emma)

		require.NoError(t, s.Delete(ctx, "b2", allow))

		books, err := s.List(ctx)
		require.NoError(t, err)
		require.Equal(t, []book.Book{dune, emma}, books)

		err = s.Delete(ctx, "b2", allow)
		require.Equal(t, apperror.NotFound, apperror.KindOf(err))
	})

	t.Run("DeleteCheckFailureKeepsRecord", func(t *testing.T) {
		ctx := context.Background()
		s := newStorage(t)
		seed(t, s, dune)

		err := s.Delete(ctx, "b1", func(*book.Book) error {
			return apperror.New(apperror.Forbidden, "not yours")
		})
		require.Equal(t, apperror.Forbidden, apperror.KindOf(err))

		books, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, books, 1)
	})
}
