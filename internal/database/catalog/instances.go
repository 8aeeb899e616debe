package catalog

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// ListBookInstances returns every copy with its book populated.
func (r *Repository) ListBookInstances(ctx context.Context) ([]entities.BookInstance, error) {
	var instances []entities.BookInstance
	err := r.conn(ctx).Preload("Book").Order("id ASC").Find(&instances).Error
	return instances, err
}

// GetBookInstance retrieves a copy with its book populated.
func (r *Repository) GetBookInstance(ctx context.Context, id uint) (*entities.BookInstance, error) {
	var instance entities.BookInstance
	if err := r.conn(ctx).Preload("Book").First(&instance, id).Error; err != nil {
		return nil, notFound(err, "book instance", id)
	}
	return &instance, nil
}

// InstancesByBook returns every copy of the book.
func (r *Repository) InstancesByBook(ctx context.Context, bookID uint) ([]entities.BookInstance, error) {
	instances := []entities.BookInstance{}
	err := r.conn(ctx).Where("book_id = ?", bookID).Order("id ASC").Find(&instances).Error
	return instances, err
}

// CreateBookInstance inserts a new copy and assigns its ID.
func (r *Repository) CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error {
	if instance.Status == "" {
		instance.Status = entities.BookInstanceMaintenance
	}
	return r.conn(ctx).Omit("Book").Create(instance).Error
}

// DeleteBookInstance removes a copy. Deleting a missing copy is not an error.
func (r *Repository) DeleteBookInstance(ctx context.Context, id uint) error {
	return r.conn(ctx).Delete(&entities.BookInstance{}, id).Error
}

// CountBookInstances counts copies, restricted to one status unless status is empty.
func (r *Repository) CountBookInstances(ctx context.Context, status entities.BookInstanceStatus) (int64, error) {
	filter := squirrel.Eq{}
	if status != "" {
		filter["status"] = string(status)
	}
	return r.count(ctx, entities.BookInstance{}.TableName(), filter)
}
