package config

import "strings"

type AllowedOrigins map[string]struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

func (c mainConfig) GetAllowedOrigins() AllowedOrigins {
	origins := make(AllowedOrigins, len(c.vars.AllowedOrigins))
	for _, o := range c.vars.AllowedOrigins {
		o = strings.TrimSpace(o)
		if o != "" {
			origins[o] = struct{}{}
		}
	}
	return origins
}

func (c mainConfig) GetAllowedMethods() string {
	return "GET, POST, PUT, PATCH, DELETE"
}

func (c mainConfig) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
