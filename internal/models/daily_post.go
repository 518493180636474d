package models

import "time"

// DailyPost is a personal check-in post (PostgreSQL). Daily posts are the
// input to streak computation and one of the two feed sources.
type DailyPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// CreateDailyPostRequest defines the request body for creating a daily post
type CreateDailyPostRequest struct {
	Body string `json:"body" validate:"required,min=1,max=500"`
}
