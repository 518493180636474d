package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Self(t *testing.T) {
	r := NewResolver(&stubFollows{followees: []uint{2, 3}})

	scope, err := r.Resolve(context.Background(), 1, ScopeSelf)
	assert.NoError(t, err)
	assert.False(t, scope.All)
	assert.Equal(t, []uint{1}, scope.AuthorIDs)
}

func TestResolve_FollowingIncludesViewer(t *testing.T) {
	r := NewResolver(&stubFollows{followees: []uint{2, 3}})

	scope, err := r.Resolve(context.Background(), 1, ScopeFollowing)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2, 3}, scope.AuthorIDs)
}

func TestResolve_FollowingNobodyStillSeesSelf(t *testing.T) {
	r := NewResolver(&stubFollows{})

	scope, err := r.Resolve(context.Background(), 1, ScopeFollowing)
	assert.NoError(t, err)
	assert.Equal(t, []uint{1}, scope.AuthorIDs)
}

func TestResolve_Public(t *testing.T) {
	r := NewResolver(&stubFollows{followees: []uint{2}})

	scope, err := r.Resolve(context.Background(), 1, ScopePublic)
	assert.NoError(t, err)
	assert.True(t, scope.All)
}

func TestResolve_UnknownModePanics(t *testing.T) {
	r := NewResolver(&stubFollows{})

	assert.Panics(t, func() {
		r.Resolve(context.Background(), 1, ScopeMode("nonsense")) //nolint:errcheck
	})
}
