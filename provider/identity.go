package provider

import (
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
)

// Identity is the slice of the ID token the rest of the portal cares
// about. UserID carries the token's subject claim; it is the stable
// per-user identifier the session is keyed on.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Nonce  string
}

func identityFromToken(idToken *oidc.IDToken) (Identity, error) {
	var claims struct {
		Sub               string `json:"sub"`
		Email             string `json:"email"`
		Name              string `json:"name"`
		PreferredUsername string `json:"preferred_username"`
		Nonce             string `json:"nonce"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return Identity{}, fmt.Errorf("[provider identityFromToken] failed to extract claims: %w", err)
	}

	// Entra ID omits the email claim for some account types; the UPN
	// is the usual fallback.
	email := claims.Email
	if email == "" {
		email = claims.PreferredUsername
	}

	name := claims.Name
	if name == "" {
		name = email
	}

	return Identity{
		UserID: claims.Sub,
		Email:  email,
		Name:   name,
		Nonce:  claims.Nonce,
	}, nil
}
