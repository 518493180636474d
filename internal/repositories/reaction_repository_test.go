package repositories

import (
	"context"
	"testing"

	"github.com/emberloop/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestCreateReaction_DuplicateSurfacesConflict(t *testing.T) {
	db := newTestDB(t, &models.Reaction{})
	repo := NewPostgresReactionRepository(db)
	ctx := context.Background()

	err := repo.CreateReaction(ctx, &models.Reaction{SubjectID: "10", UserID: 1, Type: "like"})
	assert.NoError(t, err)

	err = repo.CreateReaction(ctx, &models.Reaction{SubjectID: "10", UserID: 1, Type: "like"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// A different type on the same subject is a distinct row
	err = repo.CreateReaction(ctx, &models.Reaction{SubjectID: "10", UserID: 1, Type: "heart"})
	assert.NoError(t, err)
}

func TestDeleteReaction_ReportsAffectedRows(t *testing.T) {
	db := newTestDB(t, &models.Reaction{})
	repo := NewPostgresReactionRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.CreateReaction(ctx, &models.Reaction{SubjectID: "10", UserID: 1, Type: "like"}))

	rows, err := repo.DeleteReaction(ctx, "10", 1, "like")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.DeleteReaction(ctx, "10", 1, "like")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestHasAnyReaction(t *testing.T) {
	db := newTestDB(t, &models.Reaction{})
	repo := NewPostgresReactionRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.CreateReaction(ctx, &models.Reaction{SubjectID: "10", UserID: 1, Type: "like"}))
	assert.NoError(t, repo.CreateReaction(ctx, &models.Reaction{SubjectID: "10", UserID: 1, Type: "heart"}))
	assert.NoError(t, repo.CreateReaction(ctx, &models.Reaction{SubjectID: "11", UserID: 2, Type: "like"}))

	reacted, err := repo.HasAnyReaction(ctx, []string{"10", "11", "12"}, 1)
	assert.NoError(t, err)
	assert.True(t, reacted["10"])
	assert.False(t, reacted["11"])
	assert.False(t, reacted["12"])
}

func TestGetReactionsCount(t *testing.T) {
	db := newTestDB(t, &models.Reaction{})
	repo := NewPostgresReactionRepository(db)
	ctx := context.Background()

	assert.NoError(t, repo.CreateReaction(ctx, &models.Reaction{SubjectID: "10", UserID: 1, Type: "like"}))
	assert.NoError(t, repo.CreateReaction(ctx, &models.Reaction{SubjectID: "10", UserID: 2, Type: "cheer"}))

	count, err := repo.GetReactionsCount(ctx, "10")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
