package repositories

import (
	"context"
	"time"

	"github.com/emberloop/backend/internal/models"
	"gorm.io/gorm"
)

// DailyPostRepository defines the interface for daily post data operations
type DailyPostRepository interface {
	CreateDailyPost(ctx context.Context, post *models.DailyPost) error
	GetDailyPostByID(ctx context.Context, id uint) (*models.DailyPost, error)
	ListSince(ctx context.Context, authorIDs []uint, since time.Time, limit int) ([]models.DailyPost, error)
	ListTimestampsSince(ctx context.Context, userID uint, since time.Time) ([]time.Time, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.DailyPost, error)
}

// PostgresDailyPostRepository implements DailyPostRepository for PostgreSQL
type PostgresDailyPostRepository struct {
	db *gorm.DB
}

// NewPostgresDailyPostRepository creates a new PostgresDailyPostRepository
func NewPostgresDailyPostRepository(db *gorm.DB) *PostgresDailyPostRepository {
	return &PostgresDailyPostRepository{db: db}
}

func (r *PostgresDailyPostRepository) CreateDailyPost(ctx context.Context, post *models.DailyPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostgresDailyPostRepository) GetDailyPostByID(ctx context.Context, id uint) (*models.DailyPost, error) {
	var post models.DailyPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListSince returns posts created at or after since, newest first. A nil
// authorIDs slice means no author restriction (public scope).
func (r *PostgresDailyPostRepository) ListSince(ctx context.Context, authorIDs []uint, since time.Time, limit int) ([]models.DailyPost, error) {
	q := r.db.WithContext(ctx).Model(&models.DailyPost{})
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	if authorIDs != nil {
		q = q.Where("user_id IN ?", authorIDs)
	}

	var posts []models.DailyPost
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

// ListTimestampsSince returns the creation timestamps of a user's daily posts
// within the lookback window. Input to streak computation.
func (r *PostgresDailyPostRepository) ListTimestampsSince(ctx context.Context, userID uint, since time.Time) ([]time.Time, error) {
	var timestamps []time.Time
	err := r.db.WithContext(ctx).Model(&models.DailyPost{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Pluck("created_at", &timestamps).Error
	return timestamps, err
}

func (r *PostgresDailyPostRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.DailyPost, error) {
	var posts []models.DailyPost
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}
