package catalog

import (
	"context"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// ListBooks returns every book with only title and author loaded, ordered by title.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	err := r.conn(ctx).
		Select("id", "title", "author_id").
		Preload("Author").
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// GetBook retrieves a book with its author and genres populated.
func (r *Repository) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.conn(ctx).
		Preload("Author").
		Preload("Genres", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		First(&book, id).Error
	if err != nil {
		return nil, notFound(err, "book", id)
	}
	return &book, nil
}

// BooksByAuthor returns the title and summary of every book written by the author.
func (r *Repository) BooksByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.conn(ctx).
		Select("id", "title", "summary", "author_id").
		Where("author_id = ?", authorID).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// BooksByGenre returns every book tagged with the genre.
func (r *Repository) BooksByGenre(ctx context.Context, genreID uint) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.conn(ctx).
		Joins("JOIN book_genres ON book_genres.book_id = books.id").
		Where("book_genres.genre_id = ?", genreID).
		Order("books.title ASC").
		Find(&books).Error
	return books, err
}

// CreateBook inserts a book and links it to the genres listed in book.Genres.
// Only the genre IDs are read; unknown genres are skipped.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		genres, err := resolveGenres(tx, book.GenreIDs())
		if err != nil {
			return err
		}
		book.Genres = genres
		return tx.Omit("Author", "Genres.*").Create(book).Error
	})
}

// UpdateBook replaces the stored fields and genre links of book.ID in place.
func (r *Repository) UpdateBook(ctx context.Context, book *entities.Book) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.Book
		if err := tx.First(&existing, book.ID).Error; err != nil {
			return notFound(err, "book", book.ID)
		}

		err := tx.Model(&existing).Updates(map[string]any{
			"title":     book.Title,
			"author_id": book.AuthorID,
			"summary":   book.Summary,
			"isbn":      book.ISBN,
		}).Error
		if err != nil {
			return err
		}

		genres, err := resolveGenres(tx, book.GenreIDs())
		if err != nil {
			return err
		}
		association := tx.Model(&existing).Association("Genres")
		if len(genres) == 0 {
			err = association.Clear()
		} else {
			err = association.Replace(genres)
		}
		if err != nil {
			return err
		}
		book.Genres = genres
		return nil
	})
}

// DeleteBook removes a book and its genre links. Deleting a missing book is not an error.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_genres WHERE book_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
}

func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	return r.count(ctx, entities.Book{}.TableName(), squirrel.Eq{})
}
