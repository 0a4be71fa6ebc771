package server

import (
	"path"
	"strings"
)

// DefaultExclusions lists the paths the session interceptor leaves
// alone: the public index, the sign-in flow itself, API endpoints,
// and static assets. Everything else requires a session.
var DefaultExclusions = []string{
	"/",
	"/auth/*",
	"/api/*",
	"/static/*",
	"/favicon.ico",
}

// Protector decides which request paths require an authenticated
// session, using glob-style exclusion patterns. A pattern ending in
// "/*" excludes the whole subtree; anything else is matched with
// path.Match semantics.
type Protector struct {
	exclusions []string
}

func NewProtector(exclusions ...string) *Protector {
	return &Protector{exclusions: exclusions}
}

// Protected reports whether a request path must carry a valid session.
func (p *Protector) Protected(requestPath string) bool {
	for _, pattern := range p.exclusions {
		if matchExclusion(pattern, requestPath) {
			return false
		}
	}
	return true
}

func matchExclusion(pattern, requestPath string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return requestPath == prefix || strings.HasPrefix(requestPath, prefix+"/")
	}
	matched, err := path.Match(pattern, requestPath)
	return err == nil && matched
}
