package toggle

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// State is the authoritative resulting state of a toggle, which is what the
// caller reconciles against — not its optimistic guess.
type State string

const (
	StateOn  State = "on"
	StateOff State = "off"
)

var (
	// ErrNotAuthenticated is returned when the actor is unknown
	ErrNotAuthenticated = errors.New("toggle: not authenticated")
	// ErrInvalidTarget is returned for self-follows and missing subjects
	ErrInvalidTarget = errors.New("toggle: invalid target")
	// ErrRateLimited is returned when the actor exceeded the reaction budget
	ErrRateLimited = errors.New("toggle: rate limited")
)

// Target is one uniquely keyed row under toggle control. Insert must surface
// the store's uniqueness conflict unmodified; Delete must report the affected
// row count.
type Target interface {
	Exists(ctx context.Context) (bool, error)
	Insert(ctx context.Context) error
	Delete(ctx context.Context) (int64, error)
}

// flip applies the idempotent create-if-absent / delete-if-present state
// machine. The store's uniqueness constraint, not application locking, breaks
// races: a conflicting concurrent insert converges to "on", a concurrent
// delete that got there first converges to "off". Neither outcome is an
// error.
func flip(ctx context.Context, t Target) (State, error) {
	exists, err := t.Exists(ctx)
	if err != nil {
		return "", err
	}

	if !exists {
		if err := t.Insert(ctx); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return StateOn, nil
			}
			return "", err
		}
		return StateOn, nil
	}

	if _, err := t.Delete(ctx); err != nil {
		return "", err
	}
	return StateOff, nil
}
