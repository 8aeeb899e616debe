package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Each controller declares the narrow slice of the catalog it needs.
// *catalog.Repository satisfies all of them.

type AuthorStore interface {
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	GetAuthor(ctx context.Context, id uint) (*entities.Author, error)
	CreateAuthor(ctx context.Context, author *entities.Author) error
	DeleteAuthor(ctx context.Context, id uint) error
	BooksByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error)
}

type GenreStore interface {
	ListGenres(ctx context.Context) ([]entities.Genre, error)
	GetGenre(ctx context.Context, id uint) (*entities.Genre, error)
	FindGenreByName(ctx context.Context, name string) (*entities.Genre, error)
	CreateGenre(ctx context.Context, genre *entities.Genre) error
	DeleteGenre(ctx context.Context, id uint) error
	BooksByGenre(ctx context.Context, genreID uint) ([]entities.Book, error)
}

type BookStore interface {
	ListBooks(ctx context.Context) ([]entities.Book, error)
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	CreateBook(ctx context.Context, book *entities.Book) error
	UpdateBook(ctx context.Context, book *entities.Book) error
	DeleteBook(ctx context.Context, id uint) error
	InstancesByBook(ctx context.Context, bookID uint) ([]entities.BookInstance, error)
	GetAuthor(ctx context.Context, id uint) (*entities.Author, error)
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	ListGenres(ctx context.Context) ([]entities.Genre, error)
}

type BookInstanceStore interface {
	ListBookInstances(ctx context.Context) ([]entities.BookInstance, error)
	GetBookInstance(ctx context.Context, id uint) (*entities.BookInstance, error)
	CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error
	DeleteBookInstance(ctx context.Context, id uint) error
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	ListBooks(ctx context.Context) ([]entities.Book, error)
}

// CatalogCounter backs the home page statistics.
type CatalogCounter interface {
	CountBooks(ctx context.Context) (int64, error)
	CountBookInstances(ctx context.Context, status entities.BookInstanceStatus) (int64, error)
	CountAuthors(ctx context.Context) (int64, error)
	CountGenres(ctx context.Context) (int64, error)
}

// AuditRecorder records catalog mutations. Recording never fails a request.
type AuditRecorder interface {
	LogCreate(ctx context.Context, entityType string, entityID uint, description, ipAddr string)
	LogUpdate(ctx context.Context, entityType string, entityID uint, description, ipAddr string)
	LogDelete(ctx context.Context, entityType string, entityID uint, description, ipAddr string)
	Recent(ctx context.Context, limit int) ([]entities.AuditEvent, error)
}

// Flasher carries one-shot messages across a redirect.
type Flasher interface {
	Flash(c *gin.Context, message string)
	PopFlash(c *gin.Context) string
}
