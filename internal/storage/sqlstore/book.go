package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bookCatalog/internal/apperror"
	"bookCatalog/internal/book"
)

const bookColumns = "id, title, author, genre, published_year, user_id"

type BookStorage struct {
	db *sql.DB
	d  dialect
}

func NewBookStorage(db *sql.DB, driver string) (*BookStorage, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	return &BookStorage{db: db, d: d}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(row scanner) (book.Book, error) {
	var b book.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.PublishedYear, &b.UserID)
	return b, err
}

func (s *BookStorage) Create(ctx context.Context, b book.Book) error {
	_, err := s.db.ExecContext(ctx, s.d.rebind(
		"INSERT INTO books ("+bookColumns+") VALUES (?, ?, ?, ?, ?, ?)"),
		b.ID, b.Title, b.Author, b.Genre, b.PublishedYear, b.UserID)
	if isUniqueViolation(err) {
		return apperror.New(apperror.Conflict, "book already exists with title: %s", b.Title)
	}
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (s *BookStorage) List(ctx context.Context) ([]book.Book, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+bookColumns+" FROM books ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (s *BookStorage) FindByID(ctx context.Context, id string) (*book.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx, s.d.rebind(
		"SELECT "+bookColumns+" FROM books WHERE id = ?"), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("select book: %w", err)
	}
	return &b, nil
}

func (s *BookStorage) Update(ctx context.Context, id string, check func(*book.Book) error, patch func(*book.Book)) (*book.Book, error) {
	var updated book.Book
	err := s.inTx(ctx, id, check, func(tx *sql.Tx, current book.Book) error {
		updated = current
		patch(&updated)
		_, err := tx.ExecContext(ctx, s.d.rebind(
			"UPDATE books SET title = ?, author = ?, genre = ?, published_year = ? WHERE id = ?"),
			updated.Title, updated.Author, updated.Genre, updated.PublishedYear, id)
		if isUniqueViolation(err) {
			return apperror.New(apperror.Conflict, "book already exists with title: %s", updated.Title)
		}
		if err != nil {
			return fmt.Errorf("update book: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *BookStorage) Delete(ctx context.Context, id string, check func(*book.Book) error) error {
	return s.inTx(ctx, id, check, func(tx *sql.Tx, _ book.Book) error {
		if _, err := tx.ExecContext(ctx, s.d.rebind("DELETE FROM books WHERE id = ?"), id); err != nil {
			return fmt.Errorf("delete book: %w", err)
		}
		return nil
	})
}

// inTx locks the row, runs check on it and then fn, committing only if both succeed.
func (s *BookStorage) inTx(ctx context.Context, id string, check func(*book.Book) error, fn func(*sql.Tx, book.Book) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	current, err := scanBook(tx.QueryRowContext(ctx, s.d.rebind(
		"SELECT "+bookColumns+" FROM books WHERE id = ?"+s.d.forUpdate), id))
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(id)
	}
	if err != nil {
		return fmt.Errorf("select book: %w", err)
	}
	if err := check(&current); err != nil {
		return err
	}
	if err := fn(tx, current); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func notFound(id string) error {
	return apperror.New(apperror.NotFound, "book not found with id: %s", id)
}
