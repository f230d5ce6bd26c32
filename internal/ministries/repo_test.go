package ministries

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgdb "github.com/ecclesia-app/ecclesia-backend/pkg/db"
	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
)

func setupMinistriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL,
  phone TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  role TEXT NOT NULL DEFAULT 'member',
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS ministries (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT,
  leader_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS ministry_functions (
  id TEXT PRIMARY KEY,
  ministry_id TEXT NOT NULL,
  name TEXT NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS ministry_memberships (
  id TEXT PRIMARY KEY,
  ministry_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  function_id TEXT,
  status TEXT NOT NULL DEFAULT 'active',
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (ministry_id, user_id)
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	user := &models.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.org",
		Name:     name,
		IsActive: true,
		Role:     enums.SystemRoleMember,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestRepositoryDuplicateMinistryNameFails(t *testing.T) {
	db := setupMinistriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateMinistry(ctx, &models.Ministry{Name: "Worship"}))
	err := repo.CreateMinistry(ctx, &models.Ministry{Name: "Worship"})
	require.Error(t, err)
	assert.True(t, pkgdb.IsUniqueViolation(err, ""))
}

func TestRepositoryMembershipRosterResolvesNames(t *testing.T) {
	db := setupMinistriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ministry := &models.Ministry{Name: "Sound"}
	require.NoError(t, repo.CreateMinistry(ctx, ministry))
	alice := seedUser(t, db, "Alice")
	bruno := seedUser(t, db, "Bruno")

	for _, user := range []*models.User{bruno, alice} {
		require.NoError(t, repo.CreateMembership(ctx, &models.MinistryMembership{
			MinistryID: ministry.ID,
			UserID:     user.ID,
		}))
	}

	roster, err := repo.ListMemberships(ctx, ministry.ID)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Alice", roster[0].UserName)
	assert.Equal(t, "Bruno", roster[1].UserName)
	assert.Equal(t, enums.MembershipStatusActive, roster[0].Status)
}

func TestRepositoryDuplicateMembershipFails(t *testing.T) {
	db := setupMinistriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ministry := &models.Ministry{Name: "Hospitality"}
	require.NoError(t, repo.CreateMinistry(ctx, ministry))
	user := seedUser(t, db, "Carla")

	require.NoError(t, repo.CreateMembership(ctx, &models.MinistryMembership{
		MinistryID: ministry.ID,
		UserID:     user.ID,
	}))
	err := repo.CreateMembership(ctx, &models.MinistryMembership{
		MinistryID: ministry.ID,
		UserID:     user.ID,
	})
	require.Error(t, err)
	assert.True(t, pkgdb.IsUniqueViolation(err, ""))
}

func TestRepositoryDeleteMinistryCascades(t *testing.T) {
	db := setupMinistriesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ministry := &models.Ministry{Name: "Kids"}
	require.NoError(t, repo.CreateMinistry(ctx, ministry))
	require.NoError(t, repo.CreateFunction(ctx, &models.MinistryFunction{MinistryID: ministry.ID, Name: "Storyteller"}))
	user := seedUser(t, db, "Dani")
	require.NoError(t, repo.CreateMembership(ctx, &models.MinistryMembership{MinistryID: ministry.ID, UserID: user.ID}))

	require.NoError(t, repo.DeleteMinistry(ctx, ministry.ID))

	_, err := repo.GetMinistry(ctx, ministry.ID)
	assert.True(t, IsNotFound(err))

	functions, err := repo.ListFunctions(ctx, ministry.ID)
	require.NoError(t, err)
	assert.Empty(t, functions)

	roster, err := repo.ListMemberships(ctx, ministry.ID)
	require.NoError(t, err)
	assert.Empty(t, roster)
}

func TestServiceUpdateMemberValidatesFunctionOwnership(t *testing.T) {
	db := setupMinistriesTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	worship := &models.Ministry{Name: "Worship"}
	other := &models.Ministry{Name: "Other"}
	require.NoError(t, repo.CreateMinistry(ctx, worship))
	require.NoError(t, repo.CreateMinistry(ctx, other))

	foreign := &models.MinistryFunction{MinistryID: other.ID, Name: "Foreign"}
	require.NoError(t, repo.CreateFunction(ctx, foreign))

	user := seedUser(t, db, "Elisa")
	require.NoError(t, repo.CreateMembership(ctx, &models.MinistryMembership{MinistryID: worship.ID, UserID: user.ID}))

	err = svc.UpdateMember(ctx, worship.ID, user.ID, UpdateMembershipRequest{FunctionID: &foreign.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong")
}
