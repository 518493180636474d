package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/emberloop/backend/internal/metrics"
	"github.com/emberloop/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// sourcePageSize bounds how many rows each source contributes to a merge
	sourcePageSize = 80
	// pageSize is the feed page size, applied before hydration to bound
	// hydration cost
	pageSize = 40
)

// ErrSourceUnavailable is returned when every content source failed. A single
// source failing degrades the page instead.
var ErrSourceUnavailable = errors.New("feed: all content sources unavailable")

// UserDirectory is the batched author lookup the hydration step needs
type UserDirectory interface {
	GetUsersByIDs(ids []uint) ([]models.User, error)
}

// GroupDirectory is the batched group lookup the hydration step needs
type GroupDirectory interface {
	GetGroupsByIDs(ctx context.Context, ids []string) (map[string]models.Group, error)
}

// ViewerReactions answers which of the page's items the viewer reacted to
type ViewerReactions interface {
	HasAnyReaction(ctx context.Context, subjectIDs []string, userID uint) (map[string]bool, error)
}

// Service assembles the merged feed: scope resolution, concurrent source
// fetch, k-way merge, pagination and batched hydration.
type Service struct {
	resolver  *Resolver
	sources   []Source
	users     UserDirectory
	groups    GroupDirectory
	reactions ViewerReactions
	loc       *time.Location
	log       *zap.Logger
	now       func() time.Time
}

// NewService creates a new feed Service
func NewService(
	resolver *Resolver,
	sources []Source,
	users UserDirectory,
	groups GroupDirectory,
	reactions ViewerReactions,
	loc *time.Location,
	log *zap.Logger,
) *Service {
	return &Service{
		resolver:  resolver,
		sources:   sources,
		users:     users,
		groups:    groups,
		reactions: reactions,
		loc:       loc,
		log:       log,
		now:       time.Now,
	}
}

// GetFeed returns one page of the viewer's merged feed
func (s *Service) GetFeed(ctx context.Context, viewerID uint, q Query) (*Page, error) {
	metrics.FeedRequests.Inc()

	scope, err := s.effectiveScope(ctx, viewerID, q)
	if err != nil {
		return nil, err
	}

	var after *cursor
	if q.Cursor != "" {
		c, err := decodeCursor(q.Cursor)
		if err != nil {
			return nil, err
		}
		after = &c
	}

	since := s.sinceFor(q.Timeframe)

	items, degraded, err := s.fetchAll(ctx, scope, since)
	if err != nil {
		return nil, err
	}

	if after != nil {
		filtered := items[:0]
		for _, it := range items {
			if after.contains(it) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	nextCursor := ""
	if len(items) > pageSize {
		items = items[:pageSize]
		nextCursor = encodeCursor(items[len(items)-1])
	}

	hydrated, err := s.hydrate(ctx, viewerID, items)
	if err != nil {
		return nil, err
	}

	return &Page{Items: hydrated, NextCursor: nextCursor, Degraded: degraded}, nil
}

// effectiveScope resolves the author scope, with visibility=mine overriding
// whatever mode asked for.
func (s *Service) effectiveScope(ctx context.Context, viewerID uint, q Query) (Scope, error) {
	if q.Visibility == VisibilityMine {
		return Scope{AuthorIDs: []uint{viewerID}}, nil
	}
	return s.resolver.Resolve(ctx, viewerID, q.ScopeMode)
}

// sinceFor derives the lookback boundary for a timeframe.
func (s *Service) sinceFor(tf Timeframe) time.Time {
	now := s.now().In(s.loc)
	switch tf {
	case TimeframeToday:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	case TimeframeUpcoming:
		// TODO: "upcoming" still shares the 7-day lookback with "week";
		// switch to a forward-looking window once scheduled posts land.
		return now.AddDate(0, 0, -7)
	default: // week
		return now.AddDate(0, 0, -7)
	}
}

// fetchAll queries every source concurrently and merges the survivors. The
// page degrades to the surviving sources when some fail; only a total failure
// is an error. Each source call carries the request context so an aborted
// request cancels the in-flight queries.
func (s *Service) fetchAll(ctx context.Context, scope Scope, since time.Time) ([]Item, bool, error) {
	results := make([][]Item, len(s.sources))
	errs := make([]error, len(s.sources))

	var wg sync.WaitGroup
	for i, src := range s.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			results[i], errs[i] = src.List(ctx, scope, since, sourcePageSize)
		}(i, src)
	}
	wg.Wait()

	failures := 0
	var firstErr error
	for i, err := range errs {
		if err == nil {
			continue
		}
		failures++
		if firstErr == nil {
			firstErr = err
		}
		metrics.FeedSourceFailures.WithLabelValues(string(s.sources[i].Kind())).Inc()
		s.log.Warn("feed source failed, serving partial results",
			zap.String("source", string(s.sources[i].Kind())),
			zap.Error(err))
	}
	if failures == len(s.sources) {
		return nil, false, fmt.Errorf("%w: %v", ErrSourceUnavailable, firstErr)
	}

	return mergeDesc(results), failures > 0, nil
}

// hydrate attaches author, group and viewer-reaction metadata with one
// batched lookup per concern, all three running concurrently.
func (s *Service) hydrate(ctx context.Context, viewerID uint, items []Item) ([]HydratedItem, error) {
	authorIDSet := make(map[uint]bool)
	groupIDSet := make(map[string]bool)
	subjectIDs := make([]string, len(items))
	for i, it := range items {
		authorIDSet[it.AuthorID] = true
		if it.GroupID != "" {
			groupIDSet[it.GroupID] = true
		}
		subjectIDs[i] = it.ID
	}

	authorIDs := make([]uint, 0, len(authorIDSet))
	for id := range authorIDSet {
		authorIDs = append(authorIDs, id)
	}
	groupIDs := make([]string, 0, len(groupIDSet))
	for id := range groupIDSet {
		groupIDs = append(groupIDs, id)
	}

	var (
		userMap    = make(map[uint]models.UserCompact)
		groupMap   map[string]models.Group
		reactedMap map[string]bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := s.users.GetUsersByIDs(authorIDs)
		if err != nil {
			return fmt.Errorf("hydrating authors: %w", err)
		}
		for _, u := range users {
			userMap[u.ID] = u.ToCompact()
		}
		return nil
	})
	g.Go(func() error {
		var err error
		groupMap, err = s.groups.GetGroupsByIDs(gctx, groupIDs)
		if err != nil {
			return fmt.Errorf("hydrating groups: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		reactedMap, err = s.reactions.HasAnyReaction(gctx, subjectIDs, viewerID)
		if err != nil {
			return fmt.Errorf("hydrating reactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hydrated := make([]HydratedItem, len(items))
	for i, it := range items {
		hydrated[i] = HydratedItem{
			Item:      it,
			Author:    userMap[it.AuthorID],
			IsReacted: reactedMap[it.ID],
		}
		if it.GroupID != "" {
			if grp, ok := groupMap[it.GroupID]; ok {
				compact := grp.ToCompact()
				hydrated[i].Group = &compact
			}
		}
	}
	return hydrated, nil
}
