package feed

import (
	"context"
	"strconv"
	"time"

	"github.com/emberloop/backend/internal/repositories"
)

// Source is a typed reader over one content kind, adapted to the uniform
// Item shape the merge engine consumes.
type Source interface {
	Kind() ItemKind
	List(ctx context.Context, scope Scope, since time.Time, limit int) ([]Item, error)
}

// GroupPostSource adapts the MongoDB group post repository
type GroupPostSource struct {
	repo repositories.GroupPostRepository
}

// NewGroupPostSource creates a new GroupPostSource
func NewGroupPostSource(repo repositories.GroupPostRepository) *GroupPostSource {
	return &GroupPostSource{repo: repo}
}

func (s *GroupPostSource) Kind() ItemKind { return KindGroupPost }

func (s *GroupPostSource) List(ctx context.Context, scope Scope, since time.Time, limit int) ([]Item, error) {
	var authorIDs []uint
	if !scope.All {
		authorIDs = scope.AuthorIDs
	}
	posts, err := s.repo.ListSince(ctx, authorIDs, since, limit)
	if err != nil {
		return nil, err
	}
	items := make([]Item, len(posts))
	for i, p := range posts {
		items[i] = Item{
			Kind:      KindGroupPost,
			ID:        p.ID.Hex(),
			AuthorID:  p.AuthorID,
			GroupID:   p.GroupID,
			Body:      p.Body,
			CreatedAt: p.CreatedAt,
		}
	}
	return items, nil
}

// DailyPostSource adapts the PostgreSQL daily post repository
type DailyPostSource struct {
	repo repositories.DailyPostRepository
}

// NewDailyPostSource creates a new DailyPostSource
func NewDailyPostSource(repo repositories.DailyPostRepository) *DailyPostSource {
	return &DailyPostSource{repo: repo}
}

func (s *DailyPostSource) Kind() ItemKind { return KindDailyPost }

func (s *DailyPostSource) List(ctx context.Context, scope Scope, since time.Time, limit int) ([]Item, error) {
	var authorIDs []uint
	if !scope.All {
		authorIDs = scope.AuthorIDs
	}
	posts, err := s.repo.ListSince(ctx, authorIDs, since, limit)
	if err != nil {
		return nil, err
	}
	items := make([]Item, len(posts))
	for i, p := range posts {
		items[i] = Item{
			Kind:      KindDailyPost,
			ID:        strconv.FormatUint(uint64(p.ID), 10),
			AuthorID:  p.UserID,
			Body:      p.Body,
			CreatedAt: p.CreatedAt,
		}
	}
	return items, nil
}
