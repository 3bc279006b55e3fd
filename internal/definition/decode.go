package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var keyAliases = map[string]string{
	"kind":               "type",
	"automaton_type":     "type",
	"label":              "name",
	"sigma":              "alphabet",
	"symbols":            "alphabet",
	"input_alphabet":     "alphabet",
	"start":              "start_state",
	"initial":            "start_state",
	"initial_state":      "start_state",
	"accept":             "accept_states",
	"accepting":          "accept_states",
	"accepting_states":   "accept_states",
	"final":              "accept_states",
	"final_states":       "accept_states",
	"stack":              "stack_alphabet",
	"stack_symbols":      "stack_alphabet",
	"gamma":              "stack_alphabet",
	"start_stack_symbol": "initial_stack_symbol",
	"initial_stack":      "initial_stack_symbol",
	"accept_by":          "acceptance",
	"outputs":            "state_outputs",
	"output_symbols":     "output_alphabet",
}

var transitionAliases = map[string]string{
	"source":       "from",
	"from_state":   "from",
	"target":       "to",
	"to_state":     "to",
	"input":        "symbol",
	"input_symbol": "symbol",
	"read":         "symbol",
	"stack_pop":    "pop",
	"stack_push":   "push",
	"out":          "output",
}

var transitionSchema = schema.Schema{
	"from":   schema.Required(schema.String()),
	"to":     schema.Required(schema.String()),
	"symbol": schema.Optional(schema.String()),
	"output": schema.Optional(schema.String()),
	"pop":    schema.Optional(schema.String()),
	"push":   schema.Optional(schema.Slice(schema.String())),
}

// Schema describes a normalized definition document.
var Schema = schema.Schema{
	"type":                 schema.Required(schema.String()),
	"name":                 schema.Optional(schema.String()),
	"states":               schema.Required(schema.Slice(schema.String())),
	"alphabet":             schema.Optional(schema.Slice(schema.String())),
	"start_state":          schema.Required(schema.String()),
	"accept_states":        schema.Optional(schema.Slice(schema.String())),
	"transitions":          schema.Optional(schema.Slice(schema.Object(transitionSchema))),
	"stack_alphabet":       schema.Optional(schema.Slice(schema.String())),
	"initial_stack_symbol": schema.Optional(schema.String()),
	"acceptance":           schema.Optional(schema.String()),
	"output_alphabet":      schema.Optional(schema.Slice(schema.String())),
	"state_outputs":        schema.Optional(schema.Map(schema.String())),
	"require_total":        schema.Optional(schema.Bool()),
}

// Parse reads a definition in the given format. Every failure, including
// syntax errors of the underlying format, is reported as *domain.MalformedError.
func Parse(data []byte, format Format) (domain.Definition, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return domain.Definition{}, &domain.MalformedError{Reason: "invalid JSON", Err: err}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.Definition{}, &domain.MalformedError{Reason: "invalid YAML", Err: err}
		}
	case FormatText:
		var err error
		if raw, err = parseText(string(data)); err != nil {
			return domain.Definition{}, err
		}
	default:
		return domain.Definition{}, fmt.Errorf("unknown definition format %q", format)
	}
	if raw == nil {
		return domain.Definition{}, domain.Malformed("", "", "empty definition")
	}
	return Decode(raw)
}

// ReadFile loads a definition file, picking the format from its extension.
func ReadFile(path string) (domain.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("failed to read definition: %w", err)
	}
	return Parse(data, Detect(path))
}

// Decode turns a loosely typed document into a Definition. Key aliases are resolved,
// scalar symbols are stringified, the shape is checked against Schema and missing
// alphabets are inferred from the transitions.
func Decode(raw map[string]any) (domain.Definition, error) {
	doc, err := normalize(raw)
	if err != nil {
		return domain.Definition{}, err
	}
	if err := schema.Validate(Schema, doc); err != nil {
		return domain.Definition{}, &domain.MalformedError{Reason: "invalid definition document", Err: err}
	}

	var def domain.Definition
	if err := mapstructure.Decode(doc, &def); err != nil {
		return domain.Definition{}, &domain.MalformedError{Reason: "cannot decode definition", Err: err}
	}

	kind, err := domain.ParseKind(string(def.Type))
	if err != nil {
		return domain.Definition{}, &domain.MalformedError{Reason: "invalid type", Err: err}
	}
	def.Type = kind

	for i := range def.Transitions {
		if def.Transitions[i].Symbol == "" && kind.AllowsEpsilon() {
			def.Transitions[i].Symbol = domain.Epsilon
		}
	}
	if len(def.Alphabet) == 0 {
		def.Alphabet = inferAlphabet(def.Transitions)
	}
	return def, nil
}

func normalize(raw map[string]any) (map[string]any, error) {
	doc := renameKeys(raw, keyAliases)
	for k, v := range doc {
		if k != "require_total" && k != "transitions" {
			doc[k] = stringify(v)
		}
	}

	switch ts := doc["transitions"].(type) {
	case nil:
	case []any:
		out := make([]any, 0, len(ts))
		for _, item := range ts {
			m, ok := toStringMap(item)
			if !ok {
				out = append(out, item)
				continue
			}
			t := renameKeys(m, transitionAliases)
			for k, v := range t {
				t[k] = stringify(v)
			}
			if push, ok := t["push"].(string); ok {
				t["push"] = splitPush(push)
			}
			out = append(out, t)
		}
		doc["transitions"] = out
	default:
		m, ok := toStringMap(ts)
		if !ok {
			break
		}
		expanded, err := expandTable(m)
		if err != nil {
			return nil, err
		}
		doc["transitions"] = expanded
	}
	return doc, nil
}

// expandTable accepts the compact form {from: {symbol: target | [targets]}}.
func expandTable(table map[string]any) ([]any, error) {
	var out []any
	for _, from := range sortedKeys(table) {
		row, ok := toStringMap(table[from])
		if !ok {
			return nil, domain.Malformed(from, "", "transition table row must be a map")
		}
		for _, sym := range sortedKeys(row) {
			var targets []string
			switch v := stringify(row[sym]).(type) {
			case string:
				targets = []string{v}
			case []any:
				for _, t := range v {
					s, ok := t.(string)
					if !ok {
						return nil, domain.Malformed(from, sym, "transition target must be a string")
					}
					targets = append(targets, s)
				}
			default:
				return nil, domain.Malformed(from, sym, "transition target must be a string or a list")
			}
			for _, to := range targets {
				out = append(out, map[string]any{"from": from, "symbol": sym, "to": to})
			}
		}
	}
	return out, nil
}

func renameKeys(m map[string]any, aliases map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		key := strings.ToLower(strings.TrimSpace(k))
		if canonical, ok := aliases[key]; ok {
			if _, taken := m[canonical]; taken {
				continue
			}
			key = canonical
		}
		out[key] = v
	}
	return out
}

// stringify turns scalar leaves into strings, so that `alphabet: [0, 1]` in YAML
// yields the symbols "0" and "1".
func stringify(v any) any {
	switch x := v.(type) {
	case nil, string:
		return v
	case json.Number:
		return x.String()
	case int, int64, float64, bool, uint64:
		return fmt.Sprint(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = stringify(e)
		}
		return out
	}
	if m, ok := toStringMap(v); ok {
		out := make(map[string]any, len(m))
		for k, e := range m {
			out[k] = stringify(e)
		}
		return out
	}
	return v
}

func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, e := range m {
			out[fmt.Sprint(k)] = e
		}
		return out, true
	}
	return nil, false
}

// splitPush reads a push sequence written as a string: whitespace or comma separated
// tokens, or one symbol per rune when there is no separator. The sequence is kept
// in push order.
func splitPush(s string) []any {
	s = strings.TrimSpace(s)
	var parts []string
	switch {
	case s == "" || domain.IsEpsilon(s):
		return []any{}
	case strings.ContainsAny(s, ", \t"):
		parts = strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	default:
		for _, r := range s {
			parts = append(parts, string(r))
		}
	}
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out
}

func inferAlphabet(ts []domain.TransitionDef) []string {
	set := make(map[string]bool)
	for _, t := range ts {
		if t.Symbol != "" && !domain.IsEpsilon(t.Symbol) {
			set[t.Symbol] = true
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
