package feed

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/emberloop/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubSource serves a fixed item slice, or fails, and remembers the scope and
// since it was queried with.
type stubSource struct {
	kind      ItemKind
	items     []Item
	err       error
	lastScope Scope
	lastSince time.Time
}

func (s *stubSource) Kind() ItemKind { return s.kind }

func (s *stubSource) List(ctx context.Context, scope Scope, since time.Time, limit int) ([]Item, error) {
	s.lastScope = scope
	s.lastSince = since
	if s.err != nil {
		return nil, s.err
	}
	if len(s.items) > limit {
		return s.items[:limit], nil
	}
	return s.items, nil
}

type stubFollows struct {
	followees []uint
}

func (s *stubFollows) GetFolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	return s.followees, nil
}

type stubUsers struct{}

func (stubUsers) GetUsersByIDs(ids []uint) ([]models.User, error) {
	users := make([]models.User, len(ids))
	for i, id := range ids {
		users[i] = models.User{ID: id, Name: fmt.Sprintf("user-%d", id)}
	}
	return users, nil
}

type stubGroups struct{}

func (stubGroups) GetGroupsByIDs(ctx context.Context, ids []string) (map[string]models.Group, error) {
	return map[string]models.Group{}, nil
}

type stubReactions struct {
	reacted map[string]bool
}

func (s stubReactions) HasAnyReaction(ctx context.Context, subjectIDs []string, userID uint) (map[string]bool, error) {
	if s.reacted == nil {
		return map[string]bool{}, nil
	}
	return s.reacted, nil
}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(followees []uint, sources ...Source) *Service {
	s := NewService(
		NewResolver(&stubFollows{followees: followees}),
		sources,
		stubUsers{},
		stubGroups{},
		stubReactions{},
		time.UTC,
		zap.NewNop(),
	)
	s.now = func() time.Time { return testNow }
	return s
}

func dailyItem(id uint, authorID uint, createdAt time.Time) Item {
	return Item{
		Kind:      KindDailyPost,
		ID:        strconv.FormatUint(uint64(id), 10),
		AuthorID:  authorID,
		Body:      "body",
		CreatedAt: createdAt,
	}
}

func groupItem(id string, authorID uint, createdAt time.Time) Item {
	return Item{
		Kind:      KindGroupPost,
		ID:        id,
		AuthorID:  authorID,
		Body:      "body",
		CreatedAt: createdAt,
	}
}

func TestGetFeed_MergesNewestFirst(t *testing.T) {
	daily := &stubSource{kind: KindDailyPost, items: []Item{
		dailyItem(3, 1, testNow.Add(-1*time.Hour)),
		dailyItem(2, 1, testNow.Add(-3*time.Hour)),
	}}
	group := &stubSource{kind: KindGroupPost, items: []Item{
		groupItem("aaa", 2, testNow.Add(-2*time.Hour)),
		groupItem("bbb", 2, testNow.Add(-4*time.Hour)),
	}}

	svc := newTestService([]uint{2}, daily, group)

	page, err := svc.GetFeed(context.Background(), 1, Query{ScopeMode: ScopeFollowing, Timeframe: TimeframeWeek})
	assert.NoError(t, err)
	assert.False(t, page.Degraded)

	ids := make([]string, len(page.Items))
	for i, it := range page.Items {
		ids[i] = it.ID
	}
	assert.Equal(t, []string{"3", "aaa", "2", "bbb"}, ids)
}

func TestGetFeed_HydratesAuthors(t *testing.T) {
	daily := &stubSource{kind: KindDailyPost, items: []Item{
		dailyItem(1, 7, testNow.Add(-time.Hour)),
	}}
	svc := newTestService(nil, daily)

	page, err := svc.GetFeed(context.Background(), 7, Query{ScopeMode: ScopeSelf, Timeframe: TimeframeWeek})
	assert.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, uint(7), page.Items[0].Author.ID)
	assert.Equal(t, "user-7", page.Items[0].Author.Name)
}

func TestGetFeed_PartialSourceFailureDegrades(t *testing.T) {
	daily := &stubSource{kind: KindDailyPost, items: []Item{
		dailyItem(1, 1, testNow.Add(-time.Hour)),
	}}
	group := &stubSource{kind: KindGroupPost, err: errors.New("mongo down")}

	svc := newTestService(nil, daily, group)

	page, err := svc.GetFeed(context.Background(), 1, Query{ScopeMode: ScopeSelf, Timeframe: TimeframeWeek})
	assert.NoError(t, err)
	assert.True(t, page.Degraded)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "1", page.Items[0].ID)
}

func TestGetFeed_AllSourcesFailing(t *testing.T) {
	daily := &stubSource{kind: KindDailyPost, err: errors.New("postgres down")}
	group := &stubSource{kind: KindGroupPost, err: errors.New("mongo down")}

	svc := newTestService(nil, daily, group)

	_, err := svc.GetFeed(context.Background(), 1, Query{ScopeMode: ScopeSelf, Timeframe: TimeframeWeek})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestGetFeed_CursorPagination(t *testing.T) {
	items := make([]Item, 45)
	for i := range items {
		items[i] = dailyItem(uint(100+i), 1, testNow.Add(-time.Duration(i)*time.Minute))
	}
	daily := &stubSource{kind: KindDailyPost, items: items}
	svc := newTestService(nil, daily)

	first, err := svc.GetFeed(context.Background(), 1, Query{ScopeMode: ScopeSelf, Timeframe: TimeframeWeek})
	assert.NoError(t, err)
	assert.Len(t, first.Items, pageSize)
	assert.NotEmpty(t, first.NextCursor)

	second, err := svc.GetFeed(context.Background(), 1, Query{
		ScopeMode: ScopeSelf,
		Timeframe: TimeframeWeek,
		Cursor:    first.NextCursor,
	})
	assert.NoError(t, err)
	assert.Len(t, second.Items, 5)
	assert.Empty(t, second.NextCursor)

	// No overlap between pages
	seen := make(map[string]bool)
	for _, it := range first.Items {
		seen[it.ID] = true
	}
	for _, it := range second.Items {
		assert.False(t, seen[it.ID], "item %s appeared on both pages", it.ID)
	}
}

func TestGetFeed_InvalidCursor(t *testing.T) {
	daily := &stubSource{kind: KindDailyPost}
	svc := newTestService(nil, daily)

	_, err := svc.GetFeed(context.Background(), 1, Query{
		ScopeMode: ScopeSelf,
		Timeframe: TimeframeWeek,
		Cursor:    "not-a-cursor!!!",
	})
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestGetFeed_VisibilityMineOverridesScope(t *testing.T) {
	daily := &stubSource{kind: KindDailyPost}
	svc := newTestService([]uint{2, 3}, daily)

	_, err := svc.GetFeed(context.Background(), 1, Query{
		ScopeMode:  ScopePublic,
		Timeframe:  TimeframeWeek,
		Visibility: VisibilityMine,
	})
	assert.NoError(t, err)
	assert.False(t, daily.lastScope.All)
	assert.Equal(t, []uint{1}, daily.lastScope.AuthorIDs)
}

func TestGetFeed_TodayTimeframeStartsAtLocalMidnight(t *testing.T) {
	daily := &stubSource{kind: KindDailyPost}
	svc := newTestService(nil, daily)

	_, err := svc.GetFeed(context.Background(), 1, Query{ScopeMode: ScopeSelf, Timeframe: TimeframeToday})
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), daily.lastSince)
}
