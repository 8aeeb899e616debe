package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// GetRecentEvents retrieves the latest events, most recent first.
func (r *Repository) GetRecentEvents(ctx context.Context, limit int) ([]entities.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	events := []entities.AuditEvent{}
	err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&events).Error
	return events, err
}

// GetEventsForEntity retrieves the history of one catalog record, oldest first.
func (r *Repository) GetEventsForEntity(ctx context.Context, entityType string, entityID uint) ([]entities.AuditEvent, error) {
	events := []entities.AuditEvent{}
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at ASC").Order("id ASC").
		Find(&events).Error
	return events, err
}
