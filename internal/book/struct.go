package book

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"bookCatalog/internal/apperror"
)

type Book struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Genre         string `json:"genre"`
	PublishedYear int    `json:"publishedYear"`
	UserID        string `json:"userId"`
}

// Year accepts a JSON number or a numeric string.
type Year int

const maxExactFloat = 1 << 53

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
	} else {
		raw = string(data)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*y = Year(n)
		return nil
	}
	// Exponent forms such as 2e3 are accepted while they stay exact.
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
		return apperror.New(apperror.BadRequest, "publishedYear must be a whole number, got %s", string(data))
	}
	*y = Year(f)
	return nil
}

type CreateRequest struct {
	Genre         string `json:"genre" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	PublishedYear Year   `json:"publishedYear" validate:"required"`
}

// UpdateRequest is a partial update: nil or empty fields are left untouched.
type UpdateRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	Genre         *string `json:"genre"`
	PublishedYear *Year   `json:"publishedYear"`
}

func (u UpdateRequest) apply(b *Book) {
	if u.Title != nil && *u.Title != "" {
		b.Title = *u.Title
	}
	if u.Author != nil && *u.Author != "" {
		b.Author = *u.Author
	}
	if u.Genre != nil && *u.Genre != "" {
		b.Genre = *u.Genre
	}
	if u.PublishedYear != nil && *u.PublishedYear != 0 {
		b.PublishedYear = int(*u.PublishedYear)
	}
}

// Query holds the raw list parameters as they arrive on the URL.
type Query struct {
	Genre         string
	Author        string
	PublishedYear string
	Page          string
	Limit         string
}

type Page struct {
	Success bool   `json:"success"`
	Total   int    `json:"total"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	Count   int    `json:"count"`
	Books   []Book `json:"books"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Book    *Book  `json:"book"`
}

// Storage persists books in insertion order.
//
// Create rejects a duplicate title with apperror.Conflict. Update and Delete
// run check against the current record before the change is written, and
// abort without writing if it fails; both return apperror.NotFound for an
// unknown id. Update returns apperror.Conflict when the new title belongs to
// another book.
type Storage interface {
	Create(ctx context.Context, b Book) error
	List(ctx context.Context) ([]Book, error)
	FindByID(ctx context.Context, id string) (*Book, error)
	Update(ctx context.Context, id string, check func(*Book) error, patch func(*Book)) (*Book, error)
	Delete(ctx context.Context, id string, check func(*Book) error) error
}
