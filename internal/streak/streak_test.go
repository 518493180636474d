package streak

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubActivity struct {
	timestamps []time.Time
}

func (s *stubActivity) ListTimestampsSince(ctx context.Context, userID uint, since time.Time) ([]time.Time, error) {
	return s.timestamps, nil
}

func newTestCalculator(loc *time.Location, now time.Time, timestamps ...time.Time) *Calculator {
	c := NewCalculator(&stubActivity{timestamps: timestamps}, loc)
	c.now = func() time.Time { return now }
	return c
}

func day(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestCompute_ConsecutiveDaysWithoutTodaysPost(t *testing.T) {
	now := day(2026, 3, 10, 8)
	calc := newTestCalculator(time.UTC, now,
		day(2026, 3, 7, 9),
		day(2026, 3, 8, 21),
		day(2026, 3, 9, 12),
	)

	snap, err := calc.Compute(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, snap.CurrentStreak)
	assert.False(t, snap.PostedToday)
}

func TestCompute_PostingTodayExtendsStreak(t *testing.T) {
	now := day(2026, 3, 10, 9)
	calc := newTestCalculator(time.UTC, now,
		day(2026, 3, 7, 9),
		day(2026, 3, 8, 21),
		day(2026, 3, 9, 12),
		day(2026, 3, 10, 7),
	)

	snap, err := calc.Compute(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 4, snap.CurrentStreak)
	assert.True(t, snap.PostedToday)
}

func TestCompute_GapBreaksStreak(t *testing.T) {
	now := day(2026, 3, 10, 8)
	calc := newTestCalculator(time.UTC, now,
		day(2026, 3, 5, 9),
		day(2026, 3, 9, 12),
	)

	snap, err := calc.Compute(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, snap.CurrentStreak)
}

func TestCompute_MultiplePostsPerDayCountOnce(t *testing.T) {
	now := day(2026, 3, 10, 8)
	calc := newTestCalculator(time.UTC, now,
		day(2026, 3, 9, 8),
		day(2026, 3, 9, 12),
		day(2026, 3, 9, 22),
	)

	snap, err := calc.Compute(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, snap.CurrentStreak)
}

func TestCompute_NoActivity(t *testing.T) {
	calc := newTestCalculator(time.UTC, day(2026, 3, 10, 8))

	snap, err := calc.Compute(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, snap.CurrentStreak)
	assert.False(t, snap.PostedToday)
	assert.Nil(t, snap.LastActivityAt)
}

func TestCompute_LastActivityTracked(t *testing.T) {
	latest := day(2026, 3, 9, 22)
	calc := newTestCalculator(time.UTC, day(2026, 3, 10, 8),
		day(2026, 3, 9, 8),
		latest,
	)

	snap, err := calc.Compute(context.Background(), 1)
	assert.NoError(t, err)
	if assert.NotNil(t, snap.LastActivityAt) {
		assert.True(t, snap.LastActivityAt.Equal(latest))
	}
}

// A post stored late in the evening UTC can land on the next calendar day in
// the user's location. Day boundaries must follow the location.
func TestCompute_LocalDayBoundary(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	// 20:30 UTC on Mar 9 is 01:30 Mar 10 in UTC+5
	post := time.Date(2026, 3, 9, 20, 30, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, loc)

	calc := newTestCalculator(loc, now, post)

	snap, err := calc.Compute(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, snap.PostedToday)
	assert.Equal(t, 1, snap.CurrentStreak)
}

func TestCompute_Deterministic(t *testing.T) {
	now := day(2026, 3, 10, 8)
	timestamps := []time.Time{
		day(2026, 3, 8, 9),
		day(2026, 3, 9, 12),
	}

	first, err := newTestCalculator(time.UTC, now, timestamps...).Compute(context.Background(), 1)
	assert.NoError(t, err)
	second, err := newTestCalculator(time.UTC, now, timestamps...).Compute(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompute_LookbackBound(t *testing.T) {
	now := day(2026, 3, 10, 8)
	var timestamps []time.Time
	for i := 1; i <= 90; i++ {
		timestamps = append(timestamps, now.AddDate(0, 0, -i))
	}

	calc := newTestCalculator(time.UTC, now, timestamps...)
	snap, err := calc.Compute(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, DefaultLookbackDays, snap.CurrentStreak)
}
