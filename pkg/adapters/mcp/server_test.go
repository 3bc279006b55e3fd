package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports/tests"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const edgeYAML = `
type: mealy
states: [s0, s1]
start_state: s0
transitions:
  - {from: s0, symbol: "0", to: s0, output: "0"}
  - {from: s0, symbol: "1", to: s1, output: "1"}
  - {from: s1, symbol: "0", to: s0, output: "1"}
  - {from: s1, symbol: "1", to: s1, output: "0"}
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := memory.NewFromDefinitions(tests.SampleDefinition())
	require.NoError(t, err)
	return NewServer(automata.New(), store)
}

func TestCompileRegexTool(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleCompile(context.Background(), mcp.CallToolRequest{}, map[string]any{"pattern": "ab*"})
	require.NoError(t, err)
	require.Len(t, resp.Stages, 4)
	assert.Equal(t, "(ab*)", resp.AST)
	assert.Equal(t, domain.KindENFA, resp.Stages[0].Kind)
	assert.Equal(t, domain.KindDFA, resp.Stages[3].Kind)
	assert.Equal(t, 2, resp.Stages[3].States)

	_, err = s.handleCompile(context.Background(), mcp.CallToolRequest{}, map[string]any{"pattern": "a|"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSyntax)
}

func TestSimulateTool(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]any{"name": "ends-in-one", "input": "001"})
	require.NoError(t, err)
	assert.True(t, resp.Accepted)
	assert.Equal(t, 3, resp.Steps)
	require.Len(t, resp.Trace, 4)
	assert.Contains(t, resp.Trace[3], "{q1}")

	resp, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]any{
		"definition": edgeYAML,
		"format":     "yaml",
		"input":      "0110",
	})
	require.NoError(t, err)
	assert.Equal(t, "output", string(resp.Verdict))
	assert.Equal(t, []string{"0", "1", "0", "1"}, resp.Outputs)
}

func TestSimulateTool_Errors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]any{"input": "1"})
	assert.ErrorContains(t, err, "either definition or name")

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]any{"name": "missing", "input": "1"})
	assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]any{"definition": "{", "input": "1"})
	assert.ErrorIs(t, err, domain.ErrMalformedAutomaton)

	_, err = s.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]any{"definition": "{}", "format": "xml", "input": "1"})
	assert.ErrorContains(t, err, "unknown definition format")

	noCatalog := NewServer(automata.New(), nil)
	_, err = noCatalog.handleSimulate(ctx, mcp.CallToolRequest{}, map[string]any{"name": "x", "input": "1"})
	assert.ErrorContains(t, err, "no catalog configured")
}

func TestConvertTool(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleConvert(context.Background(), mcp.CallToolRequest{}, map[string]any{
		"definition": edgeYAML,
		"format":     "yaml",
		"target":     "moore",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.KindMoore, resp.Kind)
	assert.NotEmpty(t, resp.Definition.StateOutputs)

	_, err = s.handleConvert(context.Background(), mcp.CallToolRequest{}, map[string]any{"name": "ends-in-one", "target": "PDA"})
	assert.ErrorIs(t, err, domain.ErrKindMismatch)
}

func TestMinimizeTool(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleMinimize(context.Background(), mcp.CallToolRequest{}, map[string]any{"name": "ends-in-one"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.States)
	assert.Equal(t, "ends-in-one", resp.Definition.Name)
}

func TestGraphTool(t *testing.T) {
	s := newTestServer(t)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"name": "ends-in-one"}
	res, err := s.handleGraph(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(text.Text, "graph LR"))

	req.Params.Arguments = map[string]any{"name": "ends-in-one", "output": "dot"}
	res, err = s.handleGraph(context.Background(), req)
	require.NoError(t, err)
	text = res.Content[0].(mcp.TextContent)
	assert.Contains(t, text.Text, "digraph")

	req.Params.Arguments = map[string]any{"name": "missing"}
	res, err = s.handleGraph(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestCatalogResource(t *testing.T) {
	contents, err := newTestServer(t).readCatalog(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text := contents[0].(mcp.TextResourceContents)
	assert.Equal(t, CatalogURI, text.URI)
	assert.JSONEq(t, `["ends-in-one"]`, text.Text)

	contents, err = NewServer(automata.New(), nil).readCatalog(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, contents[0].(mcp.TextResourceContents).Text)
}
