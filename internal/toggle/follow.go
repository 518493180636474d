package toggle

import (
	"context"
	"errors"
	"fmt"

	"github.com/emberloop/backend/internal/metrics"
	"github.com/emberloop/backend/internal/models"
	"github.com/emberloop/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowNotifier is invoked on a follow transitioning to "on"
type FollowNotifier interface {
	FollowerGained(actorID, recipientID uint)
}

// FollowToggler applies follow/unfollow as an idempotent toggle
type FollowToggler struct {
	follows  repositories.FollowRepository
	users    repositories.UserRepository
	notifier FollowNotifier
}

// NewFollowToggler creates a new FollowToggler
func NewFollowToggler(follows repositories.FollowRepository, users repositories.UserRepository, notifier FollowNotifier) *FollowToggler {
	return &FollowToggler{follows: follows, users: users, notifier: notifier}
}

// Toggle flips the follow edge (actorID -> targetID) and returns the
// resulting state. A transition to "on" notifies the followee; unfollow never
// notifies.
func (t *FollowToggler) Toggle(ctx context.Context, actorID, targetID uint) (State, error) {
	if actorID == 0 {
		return "", ErrNotAuthenticated
	}
	if actorID == targetID {
		return "", fmt.Errorf("%w: cannot follow yourself", ErrInvalidTarget)
	}
	if _, err := t.users.GetUserByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: user %d not found", ErrInvalidTarget, targetID)
		}
		return "", err
	}

	state, err := flip(ctx, &followTarget{repo: t.follows, followerID: actorID, followeeID: targetID})
	if err != nil {
		return "", err
	}

	metrics.Toggles.WithLabelValues("follow", string(state)).Inc()
	if state == StateOn && t.notifier != nil {
		t.notifier.FollowerGained(actorID, targetID)
	}
	return state, nil
}

type followTarget struct {
	repo       repositories.FollowRepository
	followerID uint
	followeeID uint
}

func (t *followTarget) Exists(ctx context.Context) (bool, error) {
	return t.repo.IsFollowing(ctx, t.followerID, t.followeeID)
}

func (t *followTarget) Insert(ctx context.Context) error {
	return t.repo.CreateFollow(ctx, &models.Follow{
		FollowerID: t.followerID,
		FolloweeID: t.followeeID,
	})
}

func (t *followTarget) Delete(ctx context.Context) (int64, error) {
	return t.repo.DeleteFollow(ctx, t.followerID, t.followeeID)
}
