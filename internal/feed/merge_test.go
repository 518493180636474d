package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMergeDesc_OrdersNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	a := []Item{
		dailyItem(1, 1, base.Add(-1*time.Minute)),
		dailyItem(2, 1, base.Add(-5*time.Minute)),
	}
	b := []Item{
		groupItem("x", 2, base.Add(-2*time.Minute)),
		groupItem("y", 2, base.Add(-4*time.Minute)),
	}

	merged := mergeDesc([][]Item{a, b})

	ids := make([]string, len(merged))
	for i, it := range merged {
		ids[i] = it.ID
	}
	assert.Equal(t, []string{"1", "x", "y", "2"}, ids)
}

func TestMergeDesc_TieBreakIsDeterministic(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	a := []Item{groupItem("b", 1, base), groupItem("a", 1, base.Add(-time.Minute))}
	b := []Item{groupItem("a", 2, base)}

	first := mergeDesc([][]Item{a, b})
	second := mergeDesc([][]Item{a, b})
	assert.Equal(t, first, second)

	// Equal timestamps order by id ascending
	assert.Equal(t, "a", first[0].ID)
	assert.Equal(t, "b", first[1].ID)
}

func TestMergeDesc_DeduplicatesSameItem(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	a := []Item{dailyItem(1, 1, base)}
	b := []Item{dailyItem(1, 1, base)}

	merged := mergeDesc([][]Item{a, b})
	assert.Len(t, merged, 1)
}

func TestMergeDesc_SameIDDifferentKindSurvives(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	a := []Item{dailyItem(7, 1, base)}
	b := []Item{groupItem("7", 2, base)}

	merged := mergeDesc([][]Item{a, b})
	assert.Len(t, merged, 2)
}

func TestCursorRoundTrip(t *testing.T) {
	it := dailyItem(42, 1, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	c, err := decodeCursor(encodeCursor(it))
	assert.NoError(t, err)
	assert.Equal(t, it.ID, c.id)
	assert.True(t, c.createdAt.Equal(it.CreatedAt))
}

func TestDecodeCursor_Invalid(t *testing.T) {
	for _, s := range []string{"", "%%%", "bm9jb2xvbg"} {
		_, err := decodeCursor(s)
		assert.ErrorIs(t, err, ErrInvalidCursor, "cursor %q", s)
	}
}
