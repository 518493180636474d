package feed

import (
	"time"

	"github.com/emberloop/backend/internal/models"
)

// ItemKind tags the content source a feed item came from
type ItemKind string

const (
	KindGroupPost ItemKind = "group_post"
	KindDailyPost ItemKind = "daily_post"
)

// Item is the uniform shape both content sources are adapted to before
// merging. GroupID is empty for daily posts.
type Item struct {
	Kind      ItemKind  `json:"kind"`
	ID        string    `json:"id"`
	AuthorID  uint      `json:"author_id"`
	GroupID   string    `json:"group_id,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// itemLess reports whether a sorts before b in feed order: newest first,
// ties broken by id then kind so repeated merges of the same inputs always
// produce the same sequence.
func itemLess(a, b Item) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.Kind < b.Kind
}

// ScopeMode selects how the viewer's social graph restricts the feed
type ScopeMode string

const (
	ScopeSelf      ScopeMode = "self"
	ScopeFollowing ScopeMode = "following"
	ScopePublic    ScopeMode = "public"
)

// Timeframe bounds how far back sources are queried
type Timeframe string

const (
	TimeframeToday    Timeframe = "today"
	TimeframeWeek     Timeframe = "week"
	TimeframeUpcoming Timeframe = "upcoming"
)

// Visibility optionally restricts the feed to the viewer's own items
type Visibility string

const (
	VisibilityAll  Visibility = "all"
	VisibilityMine Visibility = "mine"
)

// Query is a feed request after HTTP-level validation
type Query struct {
	ScopeMode  ScopeMode
	Timeframe  Timeframe
	Visibility Visibility
	Sort       string
	Cursor     string
}

// HydratedItem is an Item with author/group metadata and viewer flags attached
type HydratedItem struct {
	Item
	Author    models.UserCompact   `json:"author"`
	Group     *models.GroupCompact `json:"group,omitempty"`
	IsReacted bool                 `json:"is_reacted"`
}

// Page is one page of the merged feed. Degraded is set when a content source
// failed and the page was served from the surviving sources.
type Page struct {
	Items      []HydratedItem `json:"items"`
	NextCursor string         `json:"next_cursor,omitempty"`
	Degraded   bool           `json:"degraded,omitempty"`
}
