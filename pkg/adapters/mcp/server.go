package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/definition"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/simulate"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// CatalogURI is the resource listing the definitions of the configured source.
const CatalogURI = "automata://catalog"

// CompileResponse describes every stage of a regex compilation.
type CompileResponse struct {
	Pattern string        `json:"pattern" jsonschema_description:"The compiled pattern"`
	AST     string        `json:"ast" jsonschema_description:"Fully parenthesized syntax tree"`
	Stages  []StageResult `json:"stages" jsonschema_description:"ENFA, NFA, DFA and minimal DFA, in pipeline order"`
}

// StageResult is one automaton produced by a tool.
type StageResult struct {
	Stage      string            `json:"stage" jsonschema_description:"Pipeline stage or operation"`
	Kind       domain.Kind       `json:"kind"`
	States     int               `json:"states" jsonschema_description:"Number of states"`
	Definition domain.Definition `json:"definition"`
}

// SimulateResponse aligns with the HTTP API so clients see the same shape on both adapters.
type SimulateResponse struct {
	Verdict       simulate.Verdict `json:"verdict" jsonschema_description:"accept, reject or output"`
	Accepted      bool             `json:"accepted"`
	Outputs       []string         `json:"outputs,omitempty" jsonschema_description:"Transducer output, one symbol per input"`
	InitialOutput string           `json:"initial_output,omitempty"`
	Steps         int              `json:"steps"`
	Trace         []string         `json:"trace" jsonschema_description:"One line per configuration"`
	Error         string           `json:"error,omitempty" jsonschema_description:"Set when the run stopped early"`
}

// Server exposes the automata engine as an MCP server.
type Server struct {
	engine    ports.Engine
	source    ports.DefinitionSource
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used by tool handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP Server instance. source may be nil, in which case
// tools only accept inline definitions.
func NewServer(engine ports.Engine, source ports.DefinitionSource, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		source:    source,
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops it when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: compile_regex
	s.mcpServer.AddTool(mcp.NewTool("compile_regex",
		mcp.WithDescription("Compile a regular expression (literals, |, *, +, parentheses, \\e for ε) into an ε-NFA, NFA, DFA and minimal DFA."),
		mcp.WithString("pattern", mcp.Required(), mcp.Description("The regular expression")),
		mcp.WithOutputSchema[CompileResponse](),
	), mcp.NewStructuredToolHandler(s.handleCompile))

	// TOOL: simulate
	s.mcpServer.AddTool(mcp.NewTool("simulate",
		mcp.WithDescription("Run an automaton over an input string and return the verdict or output with the full trace."),
		mcp.WithString("definition", mcp.Description("Inline definition document (optional if name is provided)")),
		mcp.WithString("format", mcp.Description("Syntax of the inline definition: json (default), yaml or text")),
		mcp.WithString("name", mcp.Description("Name of a catalog definition")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string, tokenized against the alphabet")),
		mcp.WithOutputSchema[SimulateResponse](),
	), mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: convert
	s.mcpServer.AddTool(mcp.NewTool("convert",
		mcp.WithDescription("Convert an automaton to an equivalent one of another kind (ENFA->NFA, NFA->DFA, MEALY<->MOORE)."),
		mcp.WithString("definition", mcp.Description("Inline definition document (optional if name is provided)")),
		mcp.WithString("format", mcp.Description("Syntax of the inline definition")),
		mcp.WithString("name", mcp.Description("Name of a catalog definition")),
		mcp.WithString("target", mcp.Required(), mcp.Description("Target kind"), mcp.Enum("DFA", "NFA", "ENFA", "MEALY", "MOORE")),
		mcp.WithOutputSchema[StageResult](),
	), mcp.NewStructuredToolHandler(s.handleConvert))

	// TOOL: minimize
	s.mcpServer.AddTool(mcp.NewTool("minimize",
		mcp.WithDescription("Return the minimal DFA of a DFA, NFA or ε-NFA."),
		mcp.WithString("definition", mcp.Description("Inline definition document (optional if name is provided)")),
		mcp.WithString("format", mcp.Description("Syntax of the inline definition")),
		mcp.WithString("name", mcp.Description("Name of a catalog definition")),
		mcp.WithOutputSchema[StageResult](),
	), mcp.NewStructuredToolHandler(s.handleMinimize))

	// TOOL: graph
	s.mcpServer.AddTool(mcp.NewTool("graph",
		mcp.WithDescription("Render the state diagram of an automaton as Mermaid or Graphviz DOT."),
		mcp.WithString("definition", mcp.Description("Inline definition document (optional if name is provided)")),
		mcp.WithString("format", mcp.Description("Syntax of the inline definition")),
		mcp.WithString("name", mcp.Description("Name of a catalog definition")),
		mcp.WithString("output", mcp.Description("mermaid (default) or dot"), mcp.Enum("mermaid", "dot")),
	), s.handleGraph)
}

func (s *Server) handleCompile(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (CompileResponse, error) {
	pattern, _ := args["pattern"].(string)
	p, err := s.engine.Compile(ctx, pattern)
	if err != nil {
		return CompileResponse{}, fmt.Errorf("compile failed: %w", err)
	}
	return CompileResponse{
		Pattern: pattern,
		AST:     p.AST.String(),
		Stages: []StageResult{
			stageResult("enfa", p.ENFA),
			stageResult("nfa", p.NFA),
			stageResult("dfa", p.DFA),
			stageResult("minimal", p.Minimal),
		},
	}, nil
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SimulateResponse, error) {
	a, err := s.resolve(ctx, args)
	if err != nil {
		return SimulateResponse{}, err
	}
	input, _ := args["input"].(string)

	res, err := s.engine.Simulate(ctx, a, simulate.Tokenize(a, input))
	if res == nil {
		return SimulateResponse{}, fmt.Errorf("simulate failed: %w", err)
	}
	resp := SimulateResponse{
		Verdict:       res.Verdict,
		Accepted:      res.Accepted,
		Outputs:       res.Outputs,
		InitialOutput: res.InitialOutput,
		Steps:         res.Steps,
		Trace:         make([]string, len(res.Trace)),
	}
	for i, cfg := range res.Trace {
		resp.Trace[i] = cfg.Describe(a)
	}
	if err != nil {
		s.logger.Warn("MCP simulate: run stopped early", "error", err)
		resp.Error = err.Error()
	}
	return resp, nil
}

func (s *Server) handleConvert(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (StageResult, error) {
	target, _ := args["target"].(string)
	kind, err := domain.ParseKind(target)
	if err != nil {
		return StageResult{}, err
	}
	a, err := s.resolve(ctx, args)
	if err != nil {
		return StageResult{}, err
	}
	out, err := s.engine.Convert(ctx, a, kind)
	if err != nil {
		return StageResult{}, fmt.Errorf("convert failed: %w", err)
	}
	return stageResult("convert", out), nil
}

func (s *Server) handleMinimize(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (StageResult, error) {
	a, err := s.resolve(ctx, args)
	if err != nil {
		return StageResult{}, err
	}
	out, err := s.engine.Minimize(ctx, a)
	if err != nil {
		return StageResult{}, fmt.Errorf("minimize failed: %w", err)
	}
	return stageResult("minimize", out), nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := s.resolve(ctx, request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view := a.Graph(nil)
	if request.GetString("output", "mermaid") == "dot" {
		return mcp.NewToolResultText(graph.DOT(view)), nil
	}
	return mcp.NewToolResultText(graph.Mermaid(view)), nil
}

// resolve builds the automaton named by args: an inline "definition" wins over a catalog "name".
func (s *Server) resolve(ctx context.Context, args map[string]any) (*domain.Automaton, error) {
	if doc, _ := args["definition"].(string); doc != "" {
		formatName, _ := args["format"].(string)
		format, err := definition.ParseFormat(formatName)
		if err != nil {
			return nil, err
		}
		def, err := definition.Parse([]byte(doc), format)
		if err != nil {
			return nil, err
		}
		return s.engine.Build(def)
	}

	name, _ := args["name"].(string)
	if name == "" {
		return nil, errors.New("either definition or name is required")
	}
	if s.source == nil {
		return nil, fmt.Errorf("load %q: no catalog configured", name)
	}
	def, err := s.source.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if def.Name == "" {
		def.Name = name
	}
	return s.engine.Build(def)
}

func stageResult(stage string, a *domain.Automaton) StageResult {
	return StageResult{
		Stage:      stage,
		Kind:       a.Kind(),
		States:     a.Len(),
		Definition: a.Definition(),
	}
}

func (s *Server) registerResources() {
	// EXPOSE: automata://catalog
	s.mcpServer.AddResource(mcp.NewResource(CatalogURI, "Automata Catalog",
		mcp.WithResourceDescription("Names of the stored automaton definitions"),
		mcp.WithMIMEType("application/json"),
	), s.readCatalog)
}

func (s *Server) readCatalog(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names := []string{}
	if s.source != nil {
		var err error
		if names, err = s.source.List(ctx); err != nil {
			return nil, fmt.Errorf("failed to list catalog: %w", err)
		}
	}
	if names == nil {
		names = []string{}
	}
	jsonBytes, _ := json.Marshal(names)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CatalogURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
