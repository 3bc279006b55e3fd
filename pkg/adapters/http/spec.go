package http

import (
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var specYAML []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

func rawSpec() ([]byte, error) {
	return specYAML, nil
}

// GetSwagger returns the parsed and validated OpenAPI document served by the API.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(specYAML)
		if err != nil {
			swaggerErr = fmt.Errorf("failed to load openapi spec: %w", err)
			return
		}
		if err := doc.Validate(loader.Context); err != nil {
			swaggerErr = fmt.Errorf("invalid openapi spec: %w", err)
			return
		}
		swagger = doc
	})
	return swagger, swaggerErr
}

// validateRequests rejects requests that do not match the OpenAPI document.
// Routes the document does not describe (e.g. /metrics) pass through untouched.
func validateRequests(logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	// Skip server URL matching: the API is served wherever it is mounted.
	routed := *doc
	routed.Servers = nil
	router, err := legacyrouter.NewRouter(&routed)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, params, err := router.FindRoute(r)
			if err != nil {
				// The router allocates a fresh RouteError, so compare reasons.
				if err.Error() == routers.ErrPathNotFound.Error() {
					next.ServeHTTP(w, r)
					return
				}
				writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: err.Error()})
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: params,
				Route:      route,
				Options: &openapi3filter.Options{
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				logger.Warn("request rejected by openapi validation", "path", r.URL.Path, "error", err)
				writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
				return
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}
