package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/quayside/entraportal/internal/config"
	applog "github.com/quayside/entraportal/internal/log"
	"github.com/quayside/entraportal/provider"
	"github.com/quayside/entraportal/server/authflow"
	"github.com/quayside/entraportal/sessions"
)

// RelyingParty is the slice of the OIDC provider the handlers use.
// *provider.Provider satisfies it; tests substitute a fake.
type RelyingParty interface {
	AuthCodeURL(ctx context.Context, state, nonce, codeChallenge string) (string, error)
	Exchange(ctx context.Context, code, codeVerifier string) (*oauth2.Token, error)
	Verify(ctx context.Context, rawIDToken string) (provider.Identity, error)
	EndSessionURL(ctx context.Context, postLogoutRedirect string) (string, error)
}

var _ RelyingParty = (*provider.Provider)(nil)

type Server struct {
	env        string // Environment (e.g., "DEV", "production")
	mux        *http.ServeMux
	handler    http.Handler
	routes     []string
	fileServer http.Handler
	config     config.Config
	rp         RelyingParty
	sessions   sessions.Repo
	flows      authflow.Repo
	cookies    *sessions.CookieCodec
	protector  *Protector
	logger     zerolog.Logger
}

func New(cfg config.Config, rp RelyingParty, sessionRepo sessions.Repo, flowRepo authflow.Repo) (*Server, error) {
	if rp == nil {
		return nil, fmt.Errorf("[Server New] relying party is required")
	}
	if sessionRepo == nil {
		return nil, fmt.Errorf("[Server New] session repo is required")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		rp:        rp,
		sessions:  sessionRepo,
		flows:     flowRepo,
		cookies:   sessions.NewCookieCodec(cfg.GetSessionSecret(), cfg.GetAppName()),
		protector: NewProtector(DefaultExclusions...),
		logger:    applog.New("server"),
	}
	s.env = cfg.GetEnv()
	s.fileServer = FileServerHandler()

	s.initRoutes()
	s.logRoutes()

	// Every request passes through the session interceptor before the
	// mux sees it, mirroring an edge middleware hook.
	s.handler = s.SessionInterceptor(s.mux)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			s.logRoute(parts[0], parts[1])
		} else {
			s.logRoute("", parts[0])
		}
	}
}

func (s *Server) logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	s.logger.Info().Msgf("[%-19s] %s", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
