package book

import (
	"context"

	"github.com/google/uuid"

	"bookCatalog/internal/apperror"
	"bookCatalog/internal/auth"
	"bookCatalog/internal/handlers"
	"bookCatalog/internal/user"
)

// UserFinder is the part of user.Storage the book service needs to re-check
// that a token still belongs to an existing user.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type Service struct {
	books Storage
	users UserFinder
}

func NewService(books Storage, users UserFinder) *Service {
	return &Service{books: books, users: users}
}

func (s *Service) Create(ctx context.Context, id auth.Identity, req CreateRequest) (*Book, error) {
	if err := s.checkUser(ctx, id); err != nil {
		return nil, err
	}
	if err := handlers.Validate(req); err != nil {
		return nil, err
	}

	b := Book{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Author:        req.Author,
		Genre:         req.Genre,
		PublishedYear: int(req.PublishedYear),
		UserID:        id.Sub,
	}
	if err := s.books.Create(ctx, b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Service) List(ctx context.Context, id auth.Identity, q Query) (*Page, error) {
	if err := s.checkUser(ctx, id); err != nil {
		return nil, err
	}
	all, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(filter(all, q), q), nil
}

func (s *Service) Get(ctx context.Context, id auth.Identity, bookID string) (*Book, error) {
	if err := s.checkUser(ctx, id); err != nil {
		return nil, err
	}
	return s.books.FindByID(ctx, bookID)
}

func (s *Service) Update(ctx context.Context, id auth.Identity, bookID string, req UpdateRequest) (*Book, error) {
	if err := s.checkUser(ctx, id); err != nil {
		return nil, err
	}
	return s.books.Update(ctx, bookID, ownedBy(id, "update"), req.apply)
}

func (s *Service) Delete(ctx context.Context, id auth.Identity, bookID string) error {
	if err := s.checkUser(ctx, id); err != nil {
		return err
	}
	return s.books.Delete(ctx, bookID, ownedBy(id, "delete"))
}

func (s *Service) checkUser(ctx context.Context, id auth.Identity) error {
	u, err := s.users.FindByEmail(ctx, id.Email)
	if err != nil {
		return err
	}
	if u.ID != id.Sub {
		return apperror.New(apperror.NotFound, "user not found")
	}
	return nil
}

func ownedBy(id auth.Identity, action string) func(*Book) error {
	return func(b *Book) error {
		if b.UserID != id.Sub {
			return apperror.New(apperror.Forbidden, "you are not authorized to %s this book", action)
		}
		return nil
	}
}
