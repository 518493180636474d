package repositories

import (
	"context"
	"testing"

	"github.com/emberloop/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory SQLite database with the same error
// translation the production setup uses, so uniqueness conflicts surface as
// gorm.ErrDuplicatedKey here too.
func newTestDB(t *testing.T, tables ...interface{}) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(tables...); err != nil {
		t.Fatalf("Failed to auto migrate: %v", err)
	}
	return db
}

func TestCreateFollow_DuplicateSurfacesConflict(t *testing.T) {
	db := newTestDB(t, &models.Follow{})
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()

	err := repo.CreateFollow(ctx, &models.Follow{FollowerID: 1, FolloweeID: 2})
	assert.NoError(t, err)

	err = repo.CreateFollow(ctx, &models.Follow{FollowerID: 1, FolloweeID: 2})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCreateFollow_ReverseEdgeIsDistinct(t *testing.T) {
	db := newTestDB(t, &models.Follow{})
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.CreateFollow(ctx, &models.Follow{FollowerID: 1, FolloweeID: 2}))
	assert.NoError(t, repo.CreateFollow(ctx, &models.Follow{FollowerID: 2, FolloweeID: 1}))
}

func TestDeleteFollow_ReportsAffectedRows(t *testing.T) {
	db := newTestDB(t, &models.Follow{})
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.CreateFollow(ctx, &models.Follow{FollowerID: 1, FolloweeID: 2}))

	rows, err := repo.DeleteFollow(ctx, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// A delete that lost the race sees zero rows, which is not an error
	rows, err = repo.DeleteFollow(ctx, 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestGetFolloweeIDs(t *testing.T) {
	db := newTestDB(t, &models.Follow{})
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.CreateFollow(ctx, &models.Follow{FollowerID: 1, FolloweeID: 2}))
	assert.NoError(t, repo.CreateFollow(ctx, &models.Follow{FollowerID: 1, FolloweeID: 3}))
	assert.NoError(t, repo.CreateFollow(ctx, &models.Follow{FollowerID: 2, FolloweeID: 3}))

	ids, err := repo.GetFolloweeIDs(ctx, 1)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{2, 3}, ids)
}

func TestFollowCounts(t *testing.T) {
	db := newTestDB(t, &models.Follow{})
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.CreateFollow(ctx, &models.Follow{FollowerID: 1, FolloweeID: 3}))
	assert.NoError(t, repo.CreateFollow(ctx, &models.Follow{FollowerID: 2, FolloweeID: 3}))
	assert.NoError(t, repo.CreateFollow(ctx, &models.Follow{FollowerID: 3, FolloweeID: 1}))

	followers, err := repo.GetFollowersCount(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	following, err := repo.GetFollowingCount(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), following)
}
