package streak

import (
	"context"
	"fmt"
	"time"
)

// DefaultLookbackDays bounds how far back the calculator scans for activity
const DefaultLookbackDays = 60

// Snapshot is the derived streak state for a user. It is recomputed on
// demand and never stored.
type Snapshot struct {
	UserID         uint       `json:"user_id"`
	CurrentStreak  int        `json:"current_streak"`
	PostedToday    bool       `json:"posted_today"`
	LastActivityAt *time.Time `json:"last_activity_at,omitempty"`
}

// ActivitySource provides the daily-post timestamps streaks are computed from
type ActivitySource interface {
	ListTimestampsSince(ctx context.Context, userID uint, since time.Time) ([]time.Time, error)
}

// Calculator computes consecutive-day streaks. The clock and location are
// injected so a computation is deterministic for a given activity set and
// "now"; day boundaries follow loc, not UTC.
type Calculator struct {
	activity     ActivitySource
	loc          *time.Location
	lookbackDays int
	now          func() time.Time
}

// NewCalculator creates a new Calculator
func NewCalculator(activity ActivitySource, loc *time.Location) *Calculator {
	return &Calculator{
		activity:     activity,
		loc:          loc,
		lookbackDays: DefaultLookbackDays,
		now:          time.Now,
	}
}

// Compute returns the user's current streak snapshot.
//
// The walk starts at today when the user already posted today, otherwise at
// yesterday: a streak is not broken until the day actually ends without a
// post. It then steps back one calendar day at a time while the day key is
// present, stopping at the first gap or the lookback bound.
func (c *Calculator) Compute(ctx context.Context, userID uint) (*Snapshot, error) {
	now := c.now().In(c.loc)
	since := now.AddDate(0, 0, -c.lookbackDays)

	timestamps, err := c.activity.ListTimestampsSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("loading activity for streak: %w", err)
	}

	days := make(map[string]bool, len(timestamps))
	var last *time.Time
	for _, t := range timestamps {
		days[c.dayKey(t)] = true
		if last == nil || t.After(*last) {
			tt := t
			last = &tt
		}
	}

	postedToday := days[c.dayKey(now)]

	day := now
	if !postedToday {
		day = now.AddDate(0, 0, -1)
	}

	streak := 0
	for i := 0; i < c.lookbackDays; i++ {
		if !days[c.dayKey(day)] {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return &Snapshot{
		UserID:         userID,
		CurrentStreak:  streak,
		PostedToday:    postedToday,
		LastActivityAt: last,
	}, nil
}

// dayKey buckets a timestamp into its calendar day in the calculator's
// location.
func (c *Calculator) dayKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}
