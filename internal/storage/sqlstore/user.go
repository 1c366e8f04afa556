package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookCatalog/internal/apperror"
	"bookCatalog/internal/user"
)

type UserStorage struct {
	db *sql.DB
	d  dialect
}

func NewUserStorage(db *sql.DB, driver string) (*UserStorage, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &UserStorage{db: db, d: d}, nil
}

func (s *UserStorage) Create(ctx context.Context, u user.User) error {
	_, err := s.db.ExecContext(ctx, s.d.rebind(
		"INSERT INTO users (id, email, name, password) VALUES (?, ?, ?, ?)"),
		u.ID, u.Email, u.Name, u.Password)
	if isUniqueViolation(err) {
		return apperror.New(apperror.Conflict, "user already exists with email: %s", u.Email)
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStorage) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	err := s.db.QueryRowContext(ctx, s.d.rebind(
		"SELECT id, email, name, password FROM users WHERE email = ?"), email).
		Scan(&u.ID, &u.Email, &u.Name, &u.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.New(apperror.NotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}
