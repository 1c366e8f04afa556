package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"bookCatalog/internal/apperror"
)

// Identity is the token payload: who the caller is.
type Identity struct {
	Email string `json:"email"`
	Sub   string `json:"sub"`
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) Issue(id Identity) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := s.now()
	c := claims{
		Email: id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Sub,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *TokenService) Verify(tokenStr string) (*Identity, error) {
	if len(s.secret) == 0 {
		return nil, errors.New("jwt secret is empty")
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, apperror.Wrap(err, apperror.Unauthenticated, "invalid or expired token")
	}

	c, _ := tok.Claims.(*claims)
	if c == nil || c.Subject == "" || c.Email == "" {
		return nil, apperror.New(apperror.Unauthenticated, "invalid token claims")
	}
	return &Identity{Email: c.Email, Sub: c.Subject}, nil
}
