package feed

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidCursor is returned when a pagination cursor cannot be decoded
var ErrInvalidCursor = errors.New("feed: invalid cursor")

// cursor is the composite pagination position (createdAt, id). Encoded
// opaque so clients cannot depend on its layout.
type cursor struct {
	createdAt time.Time
	id        string
}

func encodeCursor(it Item) string {
	raw := fmt.Sprintf("%d:%s", it.CreatedAt.UnixMicro(), it.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(s string) (cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return cursor{}, ErrInvalidCursor
	}
	micros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	return cursor{createdAt: time.UnixMicro(micros), id: parts[1]}, nil
}

// contains reports whether it belongs to the page after the cursor position,
// given the (createdAt desc, id asc) feed order.
func (c cursor) contains(it Item) bool {
	if it.CreatedAt.Before(c.createdAt) {
		return true
	}
	return it.CreatedAt.Equal(c.createdAt) && it.ID > c.id
}
