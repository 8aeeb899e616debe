package catalog

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// ListAuthors returns every author ordered by family name.
func (r *Repository) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	err := r.conn(ctx).Order("family_name ASC").Order("first_name ASC").Find(&authors).Error
	return authors, err
}

// GetAuthor retrieves an author by ID.
func (r *Repository) GetAuthor(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.conn(ctx).First(&author, id).Error; err != nil {
		return nil, notFound(err, "author", id)
	}
	return &author, nil
}

// CreateAuthor inserts a new author and assigns its ID.
func (r *Repository) CreateAuthor(ctx context.Context, author *entities.Author) error {
	return r.conn(ctx).Create(author).Error
}

// DeleteAuthor removes an author. Deleting a missing author is not an error.
func (r *Repository) DeleteAuthor(ctx context.Context, id uint) error {
	return r.conn(ctx).Delete(&entities.Author{}, id).Error
}

func (r *Repository) CountAuthors(ctx context.Context) (int64, error) {
	return r.count(ctx, entities.Author{}.TableName(), squirrel.Eq{})
}
