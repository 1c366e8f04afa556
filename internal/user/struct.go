package user

import "context"

// User is the persisted record. Password holds the bcrypt hash.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Profile is the only user shape written to HTTP responses.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Name: u.Name}
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success bool    `json:"success"`
	User    Profile `json:"user"`
	Token   string  `json:"token"`
}

// Storage persists users. Create must reject a duplicate email with an
// apperror.Conflict atomically with the insert; FindByEmail returns an
// apperror.NotFound when nothing matches.
type Storage interface {
	Create(ctx context.Context, u User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
}
