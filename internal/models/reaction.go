package models

import "time"

// Reaction represents a user's reaction on a content item. SubjectID is the
// content item id (Mongo ObjectID hex for group posts, decimal id for daily
// posts). At most one row may exist per (subject_id, user_id, type); the
// unique index enforces it under concurrent toggles.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SubjectID string    `json:"subject_id" gorm:"index;uniqueIndex:idx_subject_user_type"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_subject_user_type"`
	Type      string    `json:"type" gorm:"size:20;uniqueIndex:idx_subject_user_type"`
	CreatedAt time.Time `json:"created_at"`
}

// ToggleReactionRequest defines the request body for toggling a reaction
type ToggleReactionRequest struct {
	Type string `json:"type" validate:"required,oneof=like heart cheer"`
}
