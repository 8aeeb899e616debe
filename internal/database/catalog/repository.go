// Package catalog provides the store adapter for authors, genres, books and
// book copies.
//
// Every lookup by identifier returns ErrNotFound (wrapped) when the row does
// not exist, so controllers can tell a missing record apart from a store
// failure with errors.Is.
//
// # Usage
//
//	repo := catalog.NewRepository(db)
//	book, err := repo.GetBook(ctx, 42) // author and genres populated
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a record looked up by identifier does not exist.
var ErrNotFound = errors.New("record not found")

// Repository handles all catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// notFound converts gorm's missing-row error into ErrNotFound.
func notFound(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", resource, id, ErrNotFound)
	}
	return err
}

// count runs SELECT COUNT(*) on table, filtered by column equality.
func (r *Repository) count(ctx context.Context, table string, filter squirrel.Eq) (int64, error) {
	builder := squirrel.Select("COUNT(*)").From(table)
	if len(filter) > 0 {
		builder = builder.Where(filter)
	}
	if r.db.Dialector.Name() == "postgres" {
		builder = builder.PlaceholderFormat(squirrel.Dollar)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query for %s: %w", table, err)
	}

	var total int64
	if err := r.conn(ctx).Raw(query, args...).Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return total, nil
}
