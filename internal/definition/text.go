package definition

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/domain"
)

// listKeys are header fields holding comma separated lists.
var listKeys = map[string]bool{
	"states":          true,
	"alphabet":        true,
	"accept_states":   true,
	"stack_alphabet":  true,
	"output_alphabet": true,
}

// parseText reads the line oriented format:
//
//	type: DFA
//	states: q0, q1
//	alphabet: a, b
//	start: q0
//	accept: q1
//	transitions:
//	q0, a -> q1
//
// Mealy transitions append "/ output" to the target, PDA transitions read
// "from, input, pop -> to, push" and Moore outputs are given as "outputs: q0=x, q1=y".
func parseText(text string) (map[string]any, error) {
	raw := make(map[string]any)
	type line struct {
		no   int
		text string
	}
	var transitions []line

	inTransitions := false
	for i, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		if strings.Contains(l, "->") {
			if !inTransitions {
				return nil, domain.Malformed("", "", "line %d: transition before 'transitions:'", i+1)
			}
			transitions = append(transitions, line{i + 1, l})
			continue
		}

		key, value, ok := strings.Cut(l, ":")
		if !ok {
			return nil, domain.Malformed("", "", "line %d: expected 'key: value'", i+1)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if canonical, ok := keyAliases[key]; ok {
			key = canonical
		}
		value = strings.TrimSpace(value)

		switch {
		case key == "transitions":
			inTransitions = true
		case listKeys[key]:
			raw[key] = splitList(value)
		case key == "state_outputs":
			outputs := make(map[string]any)
			for _, pair := range splitList(value) {
				state, out, ok := strings.Cut(pair.(string), "=")
				if !ok {
					return nil, domain.Malformed("", "", "line %d: expected state=output", i+1)
				}
				outputs[strings.TrimSpace(state)] = strings.TrimSpace(out)
			}
			raw[key] = outputs
		case key == "require_total":
			raw[key] = strings.EqualFold(value, "true") || value == "yes"
		default:
			raw[key] = value
		}
	}

	kind, _ := domain.ParseKind(fmt.Sprint(raw["type"]))
	var ts []any
	for _, l := range transitions {
		t, err := parseTransition(kind, l.text)
		if err != nil {
			return nil, domain.Malformed("", "", "line %d: %v", l.no, err)
		}
		ts = append(ts, t...)
	}
	raw["transitions"] = ts
	return raw, nil
}

func parseTransition(kind domain.Kind, l string) ([]any, error) {
	lhs, rhs, _ := strings.Cut(l, "->")
	left := splitStrings(lhs)
	right := strings.TrimSpace(rhs)

	switch kind {
	case domain.KindPDA:
		if len(left) != 3 {
			return nil, fmt.Errorf("expected 'from, input, pop -> to, push'")
		}
		to, push, _ := strings.Cut(right, ",")
		return []any{map[string]any{
			"from":   left[0],
			"symbol": left[1],
			"pop":    left[2],
			"to":     strings.TrimSpace(to),
			"push":   splitPush(push),
		}}, nil

	case domain.KindMealy:
		if len(left) != 2 {
			return nil, fmt.Errorf("expected 'from, input -> to / output'")
		}
		slash := strings.LastIndex(right, "/")
		if slash < 0 {
			return nil, fmt.Errorf("mealy transition needs '/ output'")
		}
		to, out := right[:slash], right[slash+1:]
		return []any{map[string]any{
			"from":   left[0],
			"symbol": left[1],
			"to":     strings.TrimSpace(to),
			"output": strings.TrimSpace(out),
		}}, nil
	}

	if len(left) != 2 {
		return nil, fmt.Errorf("expected 'from, input -> to'")
	}
	var out []any
	for _, to := range splitStrings(right) {
		out = append(out, map[string]any{"from": left[0], "symbol": left[1], "to": to})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("missing target state")
	}
	return out, nil
}

func splitStrings(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitList(s string) []any {
	parts := splitStrings(s)
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out
}

func encodeText(def domain.Definition) []byte {
	var sb strings.Builder
	header := func(key string, values ...string) {
		if len(values) == 0 || (len(values) == 1 && values[0] == "") {
			return
		}
		fmt.Fprintf(&sb, "%s: %s\n", key, strings.Join(values, ", "))
	}

	header("type", string(def.Type))
	header("name", def.Name)
	header("states", def.States...)
	header("alphabet", def.Alphabet...)
	header("start", def.StartState)
	header("accept", def.AcceptStates...)
	header("stack", def.StackAlphabet...)
	header("initial_stack", def.InitialStackSymbol)
	header("acceptance", string(def.Acceptance))
	header("output_alphabet", def.OutputAlphabet...)
	if len(def.StateOutputs) > 0 {
		names := make([]string, 0, len(def.StateOutputs))
		for name := range def.StateOutputs {
			names = append(names, name)
		}
		sort.Strings(names)
		pairs := make([]string, len(names))
		for i, name := range names {
			pairs[i] = name + "=" + def.StateOutputs[name]
		}
		header("outputs", pairs...)
	}
	if def.RequireTotal {
		header("require_total", "true")
	}

	sb.WriteString("transitions:\n")
	for _, t := range def.Transitions {
		switch def.Type {
		case domain.KindPDA:
			pop := t.Pop
			if pop == "" {
				pop = domain.Epsilon
			}
			push := strings.Join(t.Push, " ")
			switch {
			case push == "":
				push = domain.Epsilon
			case len(t.Push) == 1 && utf8.RuneCountInString(push) > 1:
				// a lone multi-rune symbol would otherwise be split per rune
				push += ","
			}
			fmt.Fprintf(&sb, "%s, %s, %s -> %s, %s\n", t.From, t.Symbol, pop, t.To, push)
		case domain.KindMealy:
			fmt.Fprintf(&sb, "%s, %s -> %s / %s\n", t.From, t.Symbol, t.To, t.Output)
		default:
			fmt.Fprintf(&sb, "%s, %s -> %s\n", t.From, t.Symbol, t.To)
		}
	}
	return []byte(sb.String())
}
