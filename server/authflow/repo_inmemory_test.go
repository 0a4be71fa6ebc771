package authflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quayside/entraportal/server/authflow"
)

func TestInMemoryRepo(t *testing.T) {
	t.Run("upsert and get", func(t *testing.T) {
		repo := authflow.NewInMemoryRepo()
		st := &authflow.State{
			CodeVerifier: "verifier",
			Nonce:        "nonce",
			ReturnURL:    "/dashboard",
			CreatedAt:    time.Now(),
		}
		require.NoError(t, repo.Upsert("state-1", st))

		got, err := repo.Get("state-1")
		require.NoError(t, err)
		require.Equal(t, "verifier", got.CodeVerifier)
		require.Equal(t, "nonce", got.Nonce)
		require.Equal(t, "/dashboard", got.ReturnURL)
	})

	t.Run("returned state is a copy", func(t *testing.T) {
		repo := authflow.NewInMemoryRepo()
		require.NoError(t, repo.Upsert("state-1", &authflow.State{Nonce: "original"}))

		got, err := repo.Get("state-1")
		require.NoError(t, err)
		got.Nonce = "mutated"

		again, err := repo.Get("state-1")
		require.NoError(t, err)
		require.Equal(t, "original", again.Nonce)
	})

	t.Run("empty state rejected", func(t *testing.T) {
		repo := authflow.NewInMemoryRepo()
		require.Error(t, repo.Upsert("", &authflow.State{}))
		require.Error(t, repo.Upsert("state-1", nil))

		_, err := repo.Get("")
		require.Error(t, err)
	})

	t.Run("get unknown state", func(t *testing.T) {
		repo := authflow.NewInMemoryRepo()
		_, err := repo.Get("missing")
		require.Error(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		repo := authflow.NewInMemoryRepo()
		require.NoError(t, repo.Upsert("state-1", &authflow.State{}))
		require.NoError(t, repo.Delete("state-1"))

		_, err := repo.Get("state-1")
		require.Error(t, err)
	})

	t.Run("delete stale", func(t *testing.T) {
		repo := authflow.NewInMemoryRepo()
		now := time.Now()
		require.NoError(t, repo.Upsert("fresh", &authflow.State{CreatedAt: now}))
		require.NoError(t, repo.Upsert("stale", &authflow.State{CreatedAt: now.Add(-time.Hour)}))

		removed := repo.DeleteStale(now.Add(-10 * time.Minute))
		require.Equal(t, 1, removed)

		_, err := repo.Get("fresh")
		require.NoError(t, err)
		_, err = repo.Get("stale")
		require.Error(t, err)
	})
}
