package audit

import (
	"context"
	"log"

	"github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Service records catalog mutations. Logging failures are reported to the
// process log and never fail the request that caused them.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogCreate records that a catalog record was created.
func (s *Service) LogCreate(ctx context.Context, entityType string, entityID uint, description, ipAddr string) {
	s.record(ctx, entities.AuditActionCreate, entityType, entityID, "Created "+entityType+": "+description, ipAddr)
}

// LogUpdate records that a catalog record was updated in place.
func (s *Service) LogUpdate(ctx context.Context, entityType string, entityID uint, description, ipAddr string) {
	s.record(ctx, entities.AuditActionUpdate, entityType, entityID, "Updated "+entityType+": "+description, ipAddr)
}

// LogDelete records that a catalog record was deleted.
func (s *Service) LogDelete(ctx context.Context, entityType string, entityID uint, description, ipAddr string) {
	s.record(ctx, entities.AuditActionDelete, entityType, entityID, "Deleted "+entityType+": "+description, ipAddr)
}

// Recent returns the latest events, most recent first.
func (s *Service) Recent(ctx context.Context, limit int) ([]entities.AuditEvent, error) {
	return s.repo.GetRecentEvents(ctx, limit)
}

// History returns every event for one record, oldest first.
func (s *Service) History(ctx context.Context, entityType string, entityID uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(ctx, entityType, entityID)
}

func (s *Service) record(ctx context.Context, action entities.AuditAction, entityType string, entityID uint, description, ipAddr string) {
	event := &entities.AuditEvent{
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: truncate(description, 500),
		IPAddress:   ipAddr,
		Status:      entities.AuditStatusSuccess,
	}
	if err := s.repo.LogEvent(ctx, event); err != nil {
		log.Printf("Failed to log audit event (%s %s %d): %v", action, entityType, entityID, err)
	}
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
