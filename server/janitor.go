package server

import (
	"context"
	"time"
)

// flowStateTTL bounds how long an abandoned sign-in may sit in the
// flow repo before the janitor removes it.
const flowStateTTL = 15 * time.Minute

// StartJanitor launches a background goroutine that prunes expired
// sessions and abandoned sign-in states. It stops when ctx is
// cancelled.
func (s *Server) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.pruneOnce(ctx)
			}
		}
	}()
}

func (s *Server) pruneOnce(ctx context.Context) {
	now := time.Now()

	removed, err := s.sessions.DeleteExpired(ctx, now)
	if err != nil {
		s.logger.Err(err).Msg("Failed to prune expired sessions")
	} else if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("Pruned expired sessions")
	}

	if s.flows != nil {
		if stale := s.flows.DeleteStale(now.Add(-flowStateTTL)); stale > 0 {
			s.logger.Debug().Int("removed", stale).Msg("Pruned abandoned sign-in states")
		}
	}
}
