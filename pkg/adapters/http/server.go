package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/definition"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/simulate"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the automata API.
// Catalog routes answer 404 until a store is configured.
type Server struct {
	Engine   ports.Engine
	Store    ports.DefinitionStore
	Watcher  ports.Watchable
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithStore enables the /automata catalog routes.
func WithStore(store ports.DefinitionStore) Option {
	return func(s *Server) { s.Store = store }
}

// WithWatcher streams catalog changes on /events.
func WithWatcher(w ports.Watchable) Option {
	return func(s *Server) { s.Watcher = w }
}

// WithGatherer exposes the given registry on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.Gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Engine, opts ...Option) (http.Handler, error) {
	server := &Server{Engine: engine}
	for _, opt := range opts {
		opt(server)
	}
	if server.Logger == nil {
		server.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	validate, err := validateRequests(server.Logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Swagger UI
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			server.Logger.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if server.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(validate)
		r.Get("/health", server.GetHealth)
		r.Get("/info", server.GetInfo)
		r.Post("/regex", server.CompileRegex)
		r.Post("/simulate", server.Simulate)
		r.Post("/convert", server.Convert)
		r.Post("/minimize", server.Minimize)
		r.Get("/events", server.SubscribeEvents)

		r.Get("/automata", server.ListAutomata)
		r.Get("/automata/{id}", server.withID(server.GetAutomaton))
		r.Put("/automata/{id}", server.withID(server.PutAutomaton))
		r.Delete("/automata/{id}", server.withID(server.DeleteAutomaton))
		r.Get("/automata/{id}/graph", server.withID(server.GetAutomatonGraph))
		r.Post("/automata/{id}/simulate", server.withID(server.SimulateStored))
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Automata API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

type idHandler func(w http.ResponseWriter, r *http.Request, id string)

// withID binds the {id} path parameter the way generated chi wrappers do.
func (s *Server) withID(next idHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter id: %w", err))
			return
		}
		next(w, r, id)
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}
	kinds := make([]string, len(domain.Kinds))
	for i, k := range domain.Kinds {
		kinds[i] = string(k)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"app":         "automata-http",
		"version":     strings.TrimSpace(automata.Version),
		"api_version": apiVersion,
		"kinds":       kinds,
		"catalog":     s.Store != nil,
	})
}

// CompileRegex handles the POST /regex request.
func (s *Server) CompileRegex(w http.ResponseWriter, r *http.Request) {
	var body CompileRequest
	if !s.decode(w, r, &body) {
		return
	}
	p, err := s.Engine.Compile(r.Context(), body.Pattern)
	if err != nil {
		s.fail(w, statusOf(err), err)
		return
	}
	resp := CompileResponse{
		Pattern: body.Pattern,
		AST:     p.AST.String(),
		Stages: []AutomatonResponse{
			mapAutomaton("enfa", p.ENFA),
			mapAutomaton("nfa", p.NFA),
			mapAutomaton("dfa", p.DFA),
			mapAutomaton("minimal", p.Minimal),
		},
	}
	writeJSON(w, http.StatusOK, resp)
}

// Simulate handles the POST /simulate request.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if !s.decode(w, r, &body) {
		return
	}
	a, err := s.build(body.Definition)
	if err != nil {
		s.fail(w, statusOf(err), err)
		return
	}
	s.run(r.Context(), w, a, body.InputRequest)
}

// Convert handles the POST /convert request.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	var body ConvertRequest
	if !s.decode(w, r, &body) {
		return
	}
	target, err := domain.ParseKind(body.Target)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	a, err := s.build(body.Definition)
	if err != nil {
		s.fail(w, statusOf(err), err)
		return
	}
	out, err := s.Engine.Convert(r.Context(), a, target)
	if err != nil {
		s.fail(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, mapAutomaton("convert", out))
}

// Minimize handles the POST /minimize request.
func (s *Server) Minimize(w http.ResponseWriter, r *http.Request) {
	var body DefinitionRequest
	if !s.decode(w, r, &body) {
		return
	}
	a, err := s.build(body.Definition)
	if err != nil {
		s.fail(w, statusOf(err), err)
		return
	}
	out, err := s.Engine.Minimize(r.Context(), a)
	if err != nil {
		s.fail(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, mapAutomaton("minimize", out))
}

// ListAutomata handles the GET /automata request.
func (s *Server) ListAutomata(w http.ResponseWriter, r *http.Request) {
	if !s.catalog(w) {
		return
	}
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// GetAutomaton handles the GET /automata/{id} request.
func (s *Server) GetAutomaton(w http.ResponseWriter, r *http.Request, id string) {
	if !s.catalog(w) {
		return
	}
	def, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.fail(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// PutAutomaton handles the PUT /automata/{id} request.
// The definition is validated before it is stored.
func (s *Server) PutAutomaton(w http.ResponseWriter, r *http.Request, id string) {
	if !s.catalog(w) {
		return
	}
	var raw map[string]any
	if !s.decode(w, r, &raw) {
		return
	}
	def, err := definition.Decode(raw)
	if err != nil {
		s.fail(w, statusOf(err), err)
		return
	}
	def.Name = id
	if _, err := s.Engine.Build(def); err != nil {
		s.fail(w, statusOf(err), err)
		return
	}
	if err := s.Store.Save(r.Context(), id, def); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.Logger.Info("automaton stored", "id", id, "kind", def.Type)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAutomaton handles the DELETE /automata/{id} request.
func (s *Server) DeleteAutomaton(w http.ResponseWriter, r *http.Request, id string) {
	if !s.catalog(w) {
		return
	}
	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAutomatonGraph handles the GET /automata/{id}/graph request.
func (s *Server) GetAutomatonGraph(w http.ResponseWriter, r *http.Request, id string) {
	format := "mermaid"
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter format: %w", err))
		return
	}
	a, ok := s.stored(r.Context(), w, id)
	if !ok {
		return
	}

	view := a.Graph(nil)
	switch format {
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		io.WriteString(w, graph.DOT(view))
	case "json":
		writeJSON(w, http.StatusOK, view)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, graph.Mermaid(view))
	}
}

// SimulateStored handles the POST /automata/{id}/simulate request.
func (s *Server) SimulateStored(w http.ResponseWriter, r *http.Request, id string) {
	var body InputRequest
	if !s.decode(w, r, &body) {
		return
	}
	a, ok := s.stored(r.Context(), w, id)
	if !ok {
		return
	}
	s.run(r.Context(), w, a, body)
}

// SubscribeEvents handles the GET /events request (SSE).
// One "reload" event is sent per catalog change.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	if s.Watcher == nil {
		s.fail(w, http.StatusNotImplemented, errors.New("catalog is not watchable"))
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	events, err := s.Watcher.Watch(r.Context())
	if err != nil {
		s.fail(w, http.StatusInternalServerError, fmt.Errorf("watch error: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	s.Logger.Info("SSE: client subscribed to catalog changes")
	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE client disconnected")
			return
		case _, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: reload\n\n")
			flusher.Flush()
		}
	}
}

// -- Helpers --

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return false
	}
	return true
}

func (s *Server) build(raw map[string]any) (*domain.Automaton, error) {
	def, err := definition.Decode(raw)
	if err != nil {
		return nil, err
	}
	return s.Engine.Build(def)
}

func (s *Server) catalog(w http.ResponseWriter) bool {
	if s.Store == nil {
		s.fail(w, http.StatusNotFound, errors.New("no catalog configured"))
		return false
	}
	return true
}

func (s *Server) stored(ctx context.Context, w http.ResponseWriter, id string) (*domain.Automaton, bool) {
	if !s.catalog(w) {
		return nil, false
	}
	def, err := s.Store.Get(ctx, id)
	if err != nil {
		s.fail(w, statusOf(err), err)
		return nil, false
	}
	if def.Name == "" {
		def.Name = id
	}
	a, err := s.Engine.Build(def)
	if err != nil {
		s.fail(w, statusOf(err), err)
		return nil, false
	}
	return a, true
}

func (s *Server) run(ctx context.Context, w http.ResponseWriter, a *domain.Automaton, in InputRequest) {
	if in.Acceptance != nil && a.Kind() == domain.KindPDA && *in.Acceptance != a.Acceptance() {
		def := a.Definition()
		def.Acceptance = *in.Acceptance
		var err error
		if a, err = s.Engine.Build(def); err != nil {
			s.fail(w, statusOf(err), err)
			return
		}
	}

	var input []string
	switch {
	case in.Tokens != nil:
		input = *in.Tokens
	case in.Input != nil:
		input = simulate.Tokenize(a, *in.Input)
	}

	res, err := s.Engine.Simulate(ctx, a, input)
	if res == nil {
		s.fail(w, statusOf(err), err)
		return
	}
	resp := mapResult(a, res)
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = statusOf(err)
	}
	writeJSON(w, status, resp)
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "status", status, "error", err)
	} else {
		s.Logger.Debug("request rejected", "status", status, "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

// statusOf maps core errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrDefinitionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSyntax),
		errors.Is(err, domain.ErrMalformedAutomaton),
		errors.Is(err, domain.ErrKindMismatch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoTransition),
		errors.Is(err, domain.ErrStepLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
