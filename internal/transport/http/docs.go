package httptransport

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

var (
	//go:embed static/openapi.json
	openAPISpec []byte

	//go:embed static/docs.html
	swaggerPage []byte

	//go:embed static/redoc.html
	redocPage []byte
)

func registerDocs(r chi.Router) {
	r.Get("/openapi.json", serveStatic(openAPISpec, "application/json"))
	r.Get("/docs", serveStatic(swaggerPage, "text/html; charset=utf-8"))
	r.Get("/redoc", serveStatic(redocPage, "text/html; charset=utf-8"))
}

func serveStatic(body []byte, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}
