package server_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quayside/entraportal/server"
)

func TestProtector(t *testing.T) {
	p := server.NewProtector(server.DefaultExclusions...)

	t.Run("excluded paths", func(t *testing.T) {
		for _, path := range []string{
			"/",
			"/auth/signin",
			"/auth/callback",
			"/auth/signout",
			"/api/health",
			"/api/anything/nested",
			"/static/css/app.css",
			"/favicon.ico",
		} {
			require.False(t, p.Protected(path), "expected %s to be excluded", path)
		}
	})

	t.Run("protected paths", func(t *testing.T) {
		for _, path := range []string{
			"/dashboard",
			"/profile",
			"/authx",
			"/apiary",
			"/staticx/file.css",
			"/anything/else",
		} {
			require.True(t, p.Protected(path), "expected %s to be protected", path)
		}
	})

	t.Run("custom patterns", func(t *testing.T) {
		custom := server.NewProtector("/public/*", "/about")
		require.False(t, custom.Protected("/public/docs/readme"))
		require.False(t, custom.Protected("/about"))
		require.True(t, custom.Protected("/about/team"))
		require.True(t, custom.Protected("/"))
	})
}
