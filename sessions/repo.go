package sessions

import (
	"context"
	"time"
)

type Repo interface {
	Upsert(ctx context.Context, session Session) error
	Get(ctx context.Context, sessionID string) (Session, error)
	Delete(ctx context.Context, sessionID string) error
	// DeleteExpired removes every session whose lifetime ended before
	// now, returning the number removed.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
