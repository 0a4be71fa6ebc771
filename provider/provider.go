// Package provider wires the portal to Microsoft Entra ID as an OIDC
// relying party. Discovery, code exchange and ID-token verification are
// delegated to coreos/go-oidc and golang.org/x/oauth2; nothing here
// re-implements any part of the handshake.
package provider

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/quayside/entraportal/internal/config"
	apperrors "github.com/quayside/entraportal/internal/errors"
)

// Provider is the cached relying-party state for the configured tenant.
// Discovery runs lazily on first use so the server can start while the
// identity provider is unreachable.
type Provider struct {
	cfg config.Config

	mu           sync.Mutex
	oidcProvider *oidc.Provider
	oauthConfig  *oauth2.Config
	verifier     *oidc.IDTokenVerifier
}

func New(cfg config.Config) *Provider {
	return &Provider{cfg: cfg}
}

// setup performs OIDC discovery against the tenant issuer and caches
// the resulting endpoints and verifier.
func (p *Provider) setup(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.oidcProvider != nil {
		return nil
	}

	oidcProvider, err := oidc.NewProvider(ctx, p.cfg.GetIssuerURL())
	if err != nil {
		return fmt.Errorf("[provider setup] failed to create OIDC provider: %w", err)
	}

	p.oidcProvider = oidcProvider
	p.oauthConfig = &oauth2.Config{
		ClientID:     p.cfg.GetClientID(),
		ClientSecret: p.cfg.GetClientSecret(),
		Endpoint:     oidcProvider.Endpoint(),
		RedirectURL:  p.cfg.GetBaseURL() + "/auth/callback",
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email", oidc.ScopeOfflineAccess},
	}
	p.verifier = oidcProvider.Verifier(&oidc.Config{
		ClientID: p.cfg.GetClientID(),
	})

	return nil
}

// AuthCodeURL builds the authorization redirect for the tenant's
// authorize endpoint, carrying state, nonce and the PKCE challenge.
func (p *Provider) AuthCodeURL(ctx context.Context, state, nonce, codeChallenge string) (string, error) {
	if err := p.setup(ctx); err != nil {
		return "", err
	}

	return p.oauthConfig.AuthCodeURL(
		state,
		oidc.Nonce(nonce),
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	), nil
}

// Exchange swaps the authorization code for tokens using the stored
// PKCE verifier.
func (p *Provider) Exchange(ctx context.Context, code, codeVerifier string) (*oauth2.Token, error) {
	if err := p.setup(ctx); err != nil {
		return nil, err
	}

	token, err := p.oauthConfig.Exchange(
		ctx,
		code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
	if err != nil {
		return nil, fmt.Errorf("[provider Exchange] token exchange failed: %w", err)
	}
	return token, nil
}

// Verify checks the raw ID token's signature and standard claims and
// extracts the portal identity from it.
func (p *Provider) Verify(ctx context.Context, rawIDToken string) (Identity, error) {
	if err := p.setup(ctx); err != nil {
		return Identity{}, err
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return Identity{}, fmt.Errorf("[provider Verify] ID token verification failed: %w", err)
	}
	return identityFromToken(idToken)
}

// EndSessionURL returns the provider's front-channel logout URL, or an
// empty string when discovery does not advertise one.
func (p *Provider) EndSessionURL(ctx context.Context, postLogoutRedirect string) (string, error) {
	if err := p.setup(ctx); err != nil {
		return "", err
	}

	var claims struct {
		EndSessionEndpoint string `json:"end_session_endpoint"`
	}
	if err := p.oidcProvider.Claims(&claims); err != nil {
		return "", fmt.Errorf("[provider EndSessionURL] failed to read discovery metadata: %w", err)
	}
	if claims.EndSessionEndpoint == "" {
		return "", nil
	}

	endSession, err := url.Parse(claims.EndSessionEndpoint)
	if err != nil {
		return "", apperrors.Wrapf(err, "[provider EndSessionURL] malformed end_session_endpoint")
	}
	q := endSession.Query()
	q.Set("post_logout_redirect_uri", postLogoutRedirect)
	endSession.RawQuery = q.Encode()

	return endSession.String(), nil
}
