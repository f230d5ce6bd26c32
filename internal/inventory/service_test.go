package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS locations (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  address TEXT,
  capacity INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS equipment (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  quantity INTEGER NOT NULL DEFAULT 1,
  location_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newInventoryService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestCreateEquipmentRequiresExistingLocation(t *testing.T) {
	svc := newInventoryService(t, setupInventoryTestDB(t))
	ctx := context.Background()

	missing := uuid.New()
	_, err := svc.CreateEquipment(ctx, CreateEquipmentRequest{
		Name:       "Microphone",
		Quantity:   4,
		LocationID: &missing,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location does not exist")

	location, err := svc.CreateLocation(ctx, CreateLocationRequest{Name: "Main Hall"})
	require.NoError(t, err)

	created, err := svc.CreateEquipment(ctx, CreateEquipmentRequest{
		Name:       "Microphone",
		Quantity:   4,
		LocationID: &location.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, created.Quantity)
}

func TestListEquipmentFiltersByLocation(t *testing.T) {
	svc := newInventoryService(t, setupInventoryTestDB(t))
	ctx := context.Background()

	hall, err := svc.CreateLocation(ctx, CreateLocationRequest{Name: "Hall"})
	require.NoError(t, err)
	annex, err := svc.CreateLocation(ctx, CreateLocationRequest{Name: "Annex"})
	require.NoError(t, err)

	_, err = svc.CreateEquipment(ctx, CreateEquipmentRequest{Name: "Projector", Quantity: 1, LocationID: &hall.ID})
	require.NoError(t, err)
	_, err = svc.CreateEquipment(ctx, CreateEquipmentRequest{Name: "Chairs", Quantity: 80, LocationID: &annex.ID})
	require.NoError(t, err)

	all, err := svc.ListEquipment(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyHall, err := svc.ListEquipment(ctx, &hall.ID)
	require.NoError(t, err)
	require.Len(t, onlyHall, 1)
	assert.Equal(t, "Projector", onlyHall[0].Name)
}

func TestDuplicateLocationNameConflicts(t *testing.T) {
	svc := newInventoryService(t, setupInventoryTestDB(t))
	ctx := context.Background()

	_, err := svc.CreateLocation(ctx, CreateLocationRequest{Name: "Main Hall"})
	require.NoError(t, err)
	_, err = svc.CreateLocation(ctx, CreateLocationRequest{Name: "Main Hall"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
