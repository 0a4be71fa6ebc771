package authflow

import "time"

// State tracks one in-flight sign-in between the redirect to the
// identity provider and the callback. It is keyed by the opaque state
// parameter and used exactly once.
type State struct {
	CodeVerifier string
	Nonce        string
	ReturnURL    string
	CreatedAt    time.Time
}

type Repo interface {
	Upsert(state string, flowState *State) error
	Get(state string) (*State, error)
	Delete(state string) error
	// DeleteStale removes states created before the cutoff, returning
	// the number removed. Abandoned sign-ins never complete, so the
	// janitor prunes them.
	DeleteStale(cutoff time.Time) int
}
