// Package swagger serves the API contract and a Swagger UI page for it.
package swagger

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const (
	DocsPath = "/docs"
	SpecPath = "/docs/openapi.yml"

	uiVersion = "5.29.3"
)

// Register serves spec at SpecPath and a Swagger UI page rendering it at
// DocsPath.
func Register(r chi.Router, title string, spec []byte) {
	page := []byte(uiPage(title, SpecPath))

	r.Get(DocsPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(page)
	})

	r.Get(SpecPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		w.Write(spec)
	})
}

func uiPage(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>%[1]s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@%[2]s/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@%[2]s/swagger-ui-bundle.js" crossorigin></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '%[3]s',
      dom_id: '#swagger-ui',
      deepLinking: true,
      docExpansion: 'list',
      filter: true,
    });
  };
</script>
</body>
</html>
`, title, uiVersion, specPath)
}
