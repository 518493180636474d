package toggle

import (
	"context"
	"fmt"
	"strconv"

	"github.com/emberloop/backend/internal/metrics"
	"github.com/emberloop/backend/internal/models"
	"github.com/emberloop/backend/internal/repositories"
)

// Limiter bounds the rate of reaction toggles-to-"on". Advisory: it exists to
// bound abuse, not to guarantee an exact ceiling.
type Limiter interface {
	Allow(ctx context.Context, actorID uint) bool
	Record(ctx context.Context, actorID uint)
}

// ReactionNotifier is invoked on a reaction transitioning to "on"
type ReactionNotifier interface {
	ReactionReceived(actorID, recipientID uint, subjectID, reactionType string)
}

// ReactionToggler applies reaction on/off as an idempotent toggle over both
// content kinds.
type ReactionToggler struct {
	reactions  repositories.ReactionRepository
	groupPosts repositories.GroupPostRepository
	dailyPosts repositories.DailyPostRepository
	limiter    Limiter
	notifier   ReactionNotifier
}

// NewReactionToggler creates a new ReactionToggler
func NewReactionToggler(
	reactions repositories.ReactionRepository,
	groupPosts repositories.GroupPostRepository,
	dailyPosts repositories.DailyPostRepository,
	limiter Limiter,
	notifier ReactionNotifier,
) *ReactionToggler {
	return &ReactionToggler{
		reactions:  reactions,
		groupPosts: groupPosts,
		dailyPosts: dailyPosts,
		limiter:    limiter,
		notifier:   notifier,
	}
}

// Toggle flips the actor's reaction on a content item and returns the
// resulting state. Only transitions to "on" are rate limited and notified;
// the author never gets notified about their own reaction.
func (t *ReactionToggler) Toggle(ctx context.Context, actorID uint, subjectID, reactionType string) (State, error) {
	if actorID == 0 {
		return "", ErrNotAuthenticated
	}

	authorID, err := t.subjectAuthor(ctx, subjectID)
	if err != nil {
		return "", err
	}

	// The rate limit only applies to transitions to "on", so peek at the
	// current state first. The peek is advisory; flip re-checks under the
	// store's constraint.
	exists, err := t.reactions.HasReaction(ctx, subjectID, actorID, reactionType)
	if err != nil {
		return "", err
	}
	if !exists && t.limiter != nil && !t.limiter.Allow(ctx, actorID) {
		return "", ErrRateLimited
	}

	state, err := flip(ctx, &reactionTarget{
		repo:         t.reactions,
		subjectID:    subjectID,
		userID:       actorID,
		reactionType: reactionType,
	})
	if err != nil {
		return "", err
	}

	metrics.Toggles.WithLabelValues("reaction", string(state)).Inc()
	if state == StateOn {
		if t.limiter != nil {
			t.limiter.Record(ctx, actorID)
		}
		if t.notifier != nil && authorID != actorID {
			t.notifier.ReactionReceived(actorID, authorID, subjectID, reactionType)
		}
	}
	return state, nil
}

// subjectAuthor resolves the author of a content item by id. Numeric ids are
// daily posts, everything else is tried as a group post ObjectID.
func (t *ReactionToggler) subjectAuthor(ctx context.Context, subjectID string) (uint, error) {
	if id, err := strconv.ParseUint(subjectID, 10, 32); err == nil {
		post, err := t.dailyPosts.GetDailyPostByID(ctx, uint(id))
		if err != nil {
			return 0, fmt.Errorf("%w: post %s not found", ErrInvalidTarget, subjectID)
		}
		return post.UserID, nil
	}

	post, err := t.groupPosts.GetGroupPostByID(ctx, subjectID)
	if err != nil {
		return 0, fmt.Errorf("%w: post %s not found", ErrInvalidTarget, subjectID)
	}
	return post.AuthorID, nil
}

type reactionTarget struct {
	repo         repositories.ReactionRepository
	subjectID    string
	userID       uint
	reactionType string
}

func (t *reactionTarget) Exists(ctx context.Context) (bool, error) {
	return t.repo.HasReaction(ctx, t.subjectID, t.userID, t.reactionType)
}

func (t *reactionTarget) Insert(ctx context.Context) error {
	return t.repo.CreateReaction(ctx, &models.Reaction{
		SubjectID: t.subjectID,
		UserID:    t.userID,
		Type:      t.reactionType,
	})
}

func (t *reactionTarget) Delete(ctx context.Context) (int64, error) {
	return t.repo.DeleteReaction(ctx, t.subjectID, t.userID, t.reactionType)
}
