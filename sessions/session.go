package sessions

import "time"

// Session is the server-side record of a completed sign-in. UserID is
// copied from the ID token's subject claim at creation time and never
// changes for the session's lifetime.
type Session struct {
	ID     string
	UserID string
	Email  string
	Name   string

	// Provider tokens (refresh is essential, access is convenience)
	RefreshToken string
	AccessToken  string
	TokenExpiry  time.Time

	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its lifetime.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
