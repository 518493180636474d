package repositories

import (
	"context"

	"github.com/emberloop/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations.
// Same contract shape as FollowRepository: raw error on insert, affected
// row count on delete.
type ReactionRepository interface {
	CreateReaction(ctx context.Context, reaction *models.Reaction) error
	DeleteReaction(ctx context.Context, subjectID string, userID uint, reactionType string) (int64, error)
	HasReaction(ctx context.Context, subjectID string, userID uint, reactionType string) (bool, error)
	HasAnyReaction(ctx context.Context, subjectIDs []string, userID uint) (map[string]bool, error)
	GetReactionsCount(ctx context.Context, subjectID string) (int64, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

func (r *PostgresReactionRepository) CreateReaction(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).Create(reaction).Error
}

func (r *PostgresReactionRepository) DeleteReaction(ctx context.Context, subjectID string, userID uint, reactionType string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("subject_id = ? AND user_id = ? AND type = ?", subjectID, userID, reactionType).
		Delete(&models.Reaction{})
	return res.RowsAffected, res.Error
}

func (r *PostgresReactionRepository) HasReaction(ctx context.Context, subjectID string, userID uint, reactionType string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Reaction{}).
		Where("subject_id = ? AND user_id = ? AND type = ?", subjectID, userID, reactionType).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasAnyReaction reports, for each of the given subject IDs, whether the user
// has any reaction on it. One query regardless of page size.
func (r *PostgresReactionRepository) HasAnyReaction(ctx context.Context, subjectIDs []string, userID uint) (map[string]bool, error) {
	reacted := make(map[string]bool, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return reacted, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Reaction{}).
		Where("subject_id IN ? AND user_id = ?", subjectIDs, userID).
		Distinct().
		Pluck("subject_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		reacted[id] = true
	}
	return reacted, nil
}

func (r *PostgresReactionRepository) GetReactionsCount(ctx context.Context, subjectID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reaction{}).
		Where("subject_id = ?", subjectID).Count(&count).Error
	return count, err
}
