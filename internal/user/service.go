package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookCatalog/internal/apperror"
	"bookCatalog/internal/auth"
	"bookCatalog/internal/handlers"
)

const passwordCost = 10

type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// Service registers and authenticates users.
type Service struct {
	storage Storage
	tokens  TokenIssuer
}

func NewService(storage Storage, tokens TokenIssuer) *Service {
	return &Service{storage: storage, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := handlers.Validate(req); err != nil {
		return nil, err
	}
	if !SuitableForRestrictions(len(req.Email), len(req.Password), len(req.Name)) {
		return nil, apperror.New(apperror.BadRequest, "too long email/password/name")
	}

	taken, err := IsEmailTaken(ctx, s.storage, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.New(apperror.Conflict, "user already exists with email: %s", req.Email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Name:     req.Name,
		Password: string(hashed),
	}
	// The storage re-checks the email while holding its write lock.
	if err := s.storage.Create(ctx, u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Authenticate reports the same error for an unknown email and a wrong
// password so callers can not probe which emails are registered.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	if err := handlers.Validate(LoginRequest{Email: email, Password: password}); err != nil {
		return nil, err
	}
	invalid := apperror.New(apperror.Unauthorized, "invalid email or password")

	u, err := s.storage.FindByEmail(ctx, email)
	if apperror.KindOf(err) == apperror.NotFound {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, invalid
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	u, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(auth.Identity{Email: u.Email, Sub: u.ID})
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// Me resolves the caller's identity to the stored user.
func (s *Service) Me(ctx context.Context, id auth.Identity) (*User, error) {
	u, err := s.storage.FindByEmail(ctx, id.Email)
	if err != nil {
		return nil, err
	}
	if u.ID != id.Sub {
		return nil, apperror.New(apperror.NotFound, "user not found")
	}
	return u, nil
}
