// Package secheaders sets the browser hardening headers on every response.
package secheaders

import (
	"net/http"
	"strings"
)

// RouteClass picks the Content-Security-Policy variant for a path.
type RouteClass int

const (
	RouteAPI RouteClass = iota
	RouteDocs
)

const (
	// APIPolicy allows nothing beyond same-origin.
	APIPolicy = "default-src 'self'"

	// DocsPolicy lets the interactive docs load their bundle and styles
	// from the CDN.
	DocsPolicy = "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
		"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
		"img-src 'self' data: https://cdn.jsdelivr.net; " +
		"font-src 'self' https://cdn.jsdelivr.net"
)

var docsPaths = []string{"/docs", "/redoc", "/openapi.json"}

// Classify reports whether path is a documentation route. Anything else,
// including unknown paths, is an API route.
func Classify(path string) RouteClass {
	for _, p := range docsPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return RouteDocs
		}
	}
	return RouteAPI
}

// Decorate writes the fixed header set plus the class's CSP. Values are
// overwritten, so calling it twice is harmless.
func Decorate(h http.Header, class RouteClass) {
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("X-Frame-Options", "DENY")
	h.Set("X-XSS-Protection", "1; mode=block")
	h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
	h.Set("Referrer-Policy", "no-referrer")
	if class == RouteDocs {
		h.Set("Content-Security-Policy", DocsPolicy)
	} else {
		h.Set("Content-Security-Policy", APIPolicy)
	}
}

// Middleware decorates before calling next so error responses written by
// later stages, including 401 and 429, carry the headers too.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Decorate(w.Header(), Classify(r.URL.Path))
		next.ServeHTTP(w, r)
	})
}
