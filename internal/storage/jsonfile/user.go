package jsonfile

import (
	"context"

	"bookCatalog/internal/apperror"
	"bookCatalog/internal/user"
)

type UserStorage struct {
	users *Collection[user.User]
}

func NewUserStorage(path string) *UserStorage {
	return &UserStorage{users: NewCollection[user.User](path)}
}

func (s *UserStorage) Init(ctx context.Context) error { return s.users.Init(ctx) }

func (s *UserStorage) Create(ctx context.Context, u user.User) error {
	return s.users.Mutate(ctx, func(all []user.User) ([]user.User, error) {
		for _, existing := range all {
			if existing.Email == u.Email {
				return nil, apperror.New(apperror.Conflict, "user already exists with email: %s", u.Email)
			}
		}
		return append(all, u), nil
	})
}

func (s *UserStorage) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	all, err := s.users.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Email == email {
			return &all[i], nil
		}
	}
	return nil, apperror.New(apperror.NotFound, "user not found")
}
