// Package docs serves the API description and a Swagger UI for it.
package docs

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

const docPath = "/docs/doc.json"

//go:embed openapi.json
var openAPI []byte

// Register mounts the document and the UI. The document route is static so
// chi matches it ahead of the UI wildcard.
func Register(r chi.Router) {
	r.Get(docPath, serveDocument)
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL(docPath),
	))
}

func serveDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPI)
}
