package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/simulate"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Report describes a run as markdown: verdict, outputs and the step trace.
func Report(a *domain.Automaton, res *simulate.Result) string {
	var sb strings.Builder
	title := a.Label()
	if title == "" {
		title = "simulation"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "- **kind**: %s\n", a.Kind())
	fmt.Fprintf(&sb, "- **verdict**: %s\n", res.Verdict)
	fmt.Fprintf(&sb, "- **steps**: %d\n", res.Steps)
	if res.Branches > 0 {
		fmt.Fprintf(&sb, "- **branches**: %d\n", res.Branches)
	}
	if res.Verdict == simulate.VerdictOutput {
		if a.Kind() == domain.KindMoore {
			fmt.Fprintf(&sb, "- **initial output**: `%s`\n", res.InitialOutput)
		}
		fmt.Fprintf(&sb, "- **outputs**: `%s`\n", strings.Join(res.Outputs, " "))
	}

	sb.WriteString("\n## Trace\n\n")
	for _, cfg := range res.Trace {
		fmt.Fprintf(&sb, "1. `%s`\n", cfg.Describe(a))
	}
	return sb.String()
}

// WriteReport renders the report with glamour when w is a terminal and writes plain markdown otherwise.
func WriteReport(w io.Writer, a *domain.Automaton, res *simulate.Result) error {
	md := Report(a, res)
	if IsTerminal(w) {
		if rendered, err := NewRenderer()(md); err == nil {
			md = rendered
		}
	}
	_, err := io.WriteString(w, md)
	return err
}
