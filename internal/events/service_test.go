package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupEventsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS events (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  starts_at DATETIME NOT NULL,
  ends_at DATETIME,
  location_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS church_services (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  weekday INTEGER NOT NULL,
  start_time TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newEventsService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestCreateEventRejectsInvertedWindow(t *testing.T) {
	svc := newEventsService(t, setupEventsTestDB(t))

	starts := time.Date(2026, time.June, 10, 19, 0, 0, 0, time.UTC)
	ends := starts.Add(-time.Hour)
	_, err := svc.CreateEvent(context.Background(), CreateEventRequest{
		Name:     "Conference",
		StartsAt: starts,
		EndsAt:   &ends,
	})
	require.Error(t, err)
}

func TestTemplateLifecycle(t *testing.T) {
	svc := newEventsService(t, setupEventsTestDB(t))
	ctx := context.Background()

	created, err := svc.CreateTemplate(ctx, CreateServiceTemplateRequest{
		Name:      "Wednesday Prayer",
		Weekday:   int(time.Wednesday),
		StartTime: "19:30",
	})
	require.NoError(t, err)
	assert.True(t, created.Active)

	_, err = svc.CreateTemplate(ctx, CreateServiceTemplateRequest{
		Name:      "Broken",
		Weekday:   int(time.Friday),
		StartTime: "25:99",
	})
	require.Error(t, err)

	inactive := false
	updated, err := svc.UpdateTemplate(ctx, created.ID, UpdateServiceTemplateRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.Active)

	templates, err := svc.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)
}
