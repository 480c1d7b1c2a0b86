package config

import (
	"context"
	"errors"
	"time"
)

// ErrNoConfig is returned by a Store when no scoring document has been
// written yet. The Manager treats it as "use the defaults", not a failure.
var ErrNoConfig = errors.New("no scoring config stored")

// Store is the external persistent source of the scoring document. The
// engine ships a sqlite adapter; callers may inject their own.
type Store interface {
	// ReadCurrent returns the current YAML scoring document and the time
	// it was last updated. Returns ErrNoConfig when nothing is stored.
	ReadCurrent(ctx context.Context) ([]byte, time.Time, error)
}

// Notice is one change notification from the feed. The payload is
// advisory; the Manager always re-reads the Store rather than trusting
// feed contents.
type Notice struct {
	Payload string
	At      time.Time
}

// ChangeFeed is the external change-notification channel the Manager
// subscribes to. Implementations deliver a Notice per change; delivery is
// at-most-once and losing one only delays a refresh until the next timer
// tick.
type ChangeFeed interface {
	Subscribe(ctx context.Context) (<-chan Notice, error)
	Close() error
}
