package service

import (
	"context"
	"path/filepath"
	"testing"

	"mindcare-be/internal/dto"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditServiceRecordsAndLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	auditLog := logger.NewIsolatedLogger(path)
	svc := NewAuditService(nil, auditLog, path, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, svc.Start(ctx))

	publisher := events.NewBusPublisher(svc, logger.NewNopLogger())
	publisher.PublishChatTurnCompleted(ctx, "s-1", "greeting", false, 0)
	publisher.PublishQValueUpdated(ctx, "sad_responses", "I'm here for you.", 1, 0.1)
	publisher.PublishChatTurnCompleted(ctx, "s-1", "sad", false, 0)
	require.NoError(t, auditLog.Sync())

	all, err := svc.List(ctx, &dto.AuditQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, events.TypeChatTurnCompleted, all[0].Type)
	assert.Equal(t, "sad", all[0].Details["category"])

	updates, err := svc.List(ctx, &dto.AuditQuery{Type: events.TypeQValueUpdated})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "sad_responses", updates[0].Details["category"])
	assert.NotEmpty(t, updates[0].Details["event_id"])

	page, err := svc.List(ctx, &dto.AuditQuery{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "greeting", page[0].Details["category"])
}
