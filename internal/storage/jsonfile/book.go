package jsonfile

import (
	"context"

	"bookCatalog/internal/apperror"
	"bookCatalog/internal/book"
)

type BookStorage struct {
	books *Collection[book.Book]
}

func NewBookStorage(path string) *BookStorage {
	return &BookStorage{books: NewCollection[book.Book](path)}
}

func (s *BookStorage) Init(ctx context.Context) error { return s.books.Init(ctx) }

func (s *BookStorage) Create(ctx context.Context, b book.Book) error {
	return s.books.Mutate(ctx, func(all []book.Book) ([]book.Book, error) {
		if titleTaken(all, b.Title, "") {
			return nil, apperror.New(apperror.Conflict, "book already exists with title: %s", b.Title)
		}
		return append(all, b), nil
	})
}

func (s *BookStorage) List(ctx context.Context) ([]book.Book, error) {
	return s.books.Load(ctx)
}

func (s *BookStorage) FindByID(ctx context.Context, id string) (*book.Book, error) {
	all, err := s.books.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, id); i >= 0 {
		return &all[i], nil
	}
	return nil, notFound(id)
}

func (s *BookStorage) Update(ctx context.Context, id string, check func(*book.Book) error, patch func(*book.Book)) (*book.Book, error) {
	var updated book.Book
	err := s.books.Mutate(ctx, func(all []book.Book) ([]book.Book, error) {
		i := indexOf(all, id)
		if i < 0 {
			return nil, notFound(id)
		}
		if err := check(&all[i]); err != nil {
			return nil, err
		}
		next := all[i]
		patch(&next)
		if next.Title != all[i].Title && titleTaken(all, next.Title, id) {
			return nil, apperror.New(apperror.Conflict, "book already exists with title: %s", next.Title)
		}
		all[i] = next
		updated = next
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *BookStorage) Delete(ctx context.Context, id string, check func(*book.Book) error) error {
	return s.books.Mutate(ctx, func(all []book.Book) ([]book.Book, error) {
		i := indexOf(all, id)
		if i < 0 {
			return nil, notFound(id)
		}
		if err := check(&all[i]); err != nil {
			return nil, err
		}
		return append(all[:i], all[i+1:]...), nil
	})
}

func indexOf(all []book.Book, id string) int {
	for i := range all {
		if all[i].ID == id {
			return i
		}
	}
	return -1
}

func titleTaken(all []book.Book, title, exceptID string) bool {
	for _, b := range all {
		if b.Title == title && b.ID != exceptID {
			return true
		}
	}
	return false
}

func notFound(id string) error {
	return apperror.New(apperror.NotFound, "book not found with id: %s", id)
}
