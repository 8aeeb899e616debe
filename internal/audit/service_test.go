package audit

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	auditRepo "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	return NewService(auditRepo.NewRepository(db)), db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		Action:     entities.AuditActionCreate,
		EntityType: "genre",
		EntityID:   1,
		Status:     entities.AuditStatusSuccess,
	}

	err := svc.Log(context.Background(), event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	require.NoError(t, db.First(&saved, event.ID).Error)
	assert.Equal(t, "genre", saved.EntityType)
}

func TestService_LogCreateUpdateDelete(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	svc.LogCreate(ctx, "book", 4, "Emma", "127.0.0.1")
	svc.LogUpdate(ctx, "book", 4, "Emma (2nd ed.)", "127.0.0.1")
	svc.LogDelete(ctx, "book", 4, "Emma (2nd ed.)", "127.0.0.1")

	events, err := svc.History(ctx, "book", 4)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, entities.AuditActionCreate, events[0].Action)
	assert.Equal(t, "Created book: Emma", events[0].Description)
	assert.Equal(t, "127.0.0.1", events[0].IPAddress)
	assert.Equal(t, entities.AuditStatusSuccess, events[0].Status)
	assert.Equal(t, entities.AuditActionUpdate, events[1].Action)
	assert.Equal(t, entities.AuditActionDelete, events[2].Action)

	recent, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestService_LogSwallowsStoreErrors(t *testing.T) {
	svc, db := setupTestService(t)
	require.NoError(t, db.Migrator().DropTable(&entities.AuditEvent{}))

	assert.NotPanics(t, func() {
		svc.LogCreate(context.Background(), "author", 1, "Austen, Jane", "")
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("a", 600)
	assert.Len(t, truncate(long, 500), 500)
	assert.True(t, strings.HasSuffix(truncate(long, 500), "..."))
}
