package feed

import (
	"context"
	"fmt"
)

// Scope is the effective author restriction for a feed query. All means no
// restriction; otherwise only AuthorIDs are included.
type Scope struct {
	All       bool
	AuthorIDs []uint
}

// FollowEdges is the slice of the follow store the resolver needs
type FollowEdges interface {
	GetFolloweeIDs(ctx context.Context, followerID uint) ([]uint, error)
}

// Resolver computes the author scope for a viewer
type Resolver struct {
	follows FollowEdges
}

// NewResolver creates a new Resolver
func NewResolver(follows FollowEdges) *Resolver {
	return &Resolver{follows: follows}
}

// Resolve returns the author set for the given mode. The viewer is always
// part of their own "following" scope, so a user who follows nobody still
// sees their own posts. Mode is validated at the HTTP boundary; an unknown
// mode here is a programmer error.
func (r *Resolver) Resolve(ctx context.Context, viewerID uint, mode ScopeMode) (Scope, error) {
	switch mode {
	case ScopeSelf:
		return Scope{AuthorIDs: []uint{viewerID}}, nil
	case ScopeFollowing:
		ids, err := r.follows.GetFolloweeIDs(ctx, viewerID)
		if err != nil {
			return Scope{}, fmt.Errorf("resolving following scope: %w", err)
		}
		return Scope{AuthorIDs: append(ids, viewerID)}, nil
	case ScopePublic:
		return Scope{All: true}, nil
	default:
		panic(fmt.Sprintf("feed: unknown scope mode %q", mode))
	}
}
