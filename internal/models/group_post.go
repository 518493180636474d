package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupPost is a post inside a topic group, stored in MongoDB
type GroupPost struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	GroupID   string             `json:"group_id" bson:"group_id"`
	Body      string             `json:"body" bson:"body"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Group is a topic group, stored in MongoDB
type Group struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// GroupCompact is the slim group shape embedded in feed items
type GroupCompact struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToCompact converts a Group to its compact representation
func (g *Group) ToCompact() GroupCompact {
	return GroupCompact{
		ID:   g.ID.Hex(),
		Name: g.Name,
	}
}

// CreateGroupPostRequest defines the request body for creating a group post
type CreateGroupPostRequest struct {
	GroupID string `json:"group_id" validate:"required"`
	Body    string `json:"body" validate:"required,min=1,max=2000"`
}

// CreateGroupRequest defines the request body for creating a group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
}
