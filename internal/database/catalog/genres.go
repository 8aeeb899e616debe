package catalog

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// ListGenres returns every genre ordered by name.
func (r *Repository) ListGenres(ctx context.Context) ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.conn(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

// GetGenre retrieves a genre by ID.
func (r *Repository) GetGenre(ctx context.Context, id uint) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.conn(ctx).First(&genre, id).Error; err != nil {
		return nil, notFound(err, "genre", id)
	}
	return &genre, nil
}

// FindGenreByName looks a genre up by name (case-insensitive).
// Returns nil, nil when no genre has that name.
func (r *Repository) FindGenreByName(ctx context.Context, name string) (*entities.Genre, error) {
	var genre entities.Genre
	err := r.conn(ctx).Where("LOWER(name) = LOWER(?)", name).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

// CreateGenre inserts a new genre and assigns its ID.
func (r *Repository) CreateGenre(ctx context.Context, genre *entities.Genre) error {
	return r.conn(ctx).Create(genre).Error
}

// DeleteGenre removes a genre together with any book links that still point at it.
func (r *Repository) DeleteGenre(ctx context.Context, id uint) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_genres WHERE genre_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Genre{}, id).Error
	})
}

func (r *Repository) CountGenres(ctx context.Context) (int64, error) {
	return r.count(ctx, entities.Genre{}.TableName(), squirrel.Eq{})
}

// resolveGenres loads the genres with the given IDs. Unknown IDs are dropped.
func resolveGenres(tx *gorm.DB, ids []uint) ([]entities.Genre, error) {
	genres := []entities.Genre{}
	if len(ids) == 0 {
		return genres, nil
	}
	err := tx.Where("id IN ?", ids).Order("name ASC").Find(&genres).Error
	return genres, err
}
