package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/automata/pkg/simulate"
	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner of the command line tool.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"              _                        _        ", "#818cf8"},
		{"   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _ ", "#a78bfa"},
		{"  / _` | | | | __/ _ \\| '_ ` _ \\ / _` | __/ _` |", "#c084fc"},
		{" | (_| | |_| | || (_) | | | | | | (_| | || (_| |", "#e879f9"},
		{"  \\__,_|\\__,_|\\__\\___/|_| |_| |_|\\__,_|\\__\\__,_|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Verdict colors the outcome of a run: green for accept, red for reject, cyan for output.
func Verdict(res *simulate.Result) string {
	p := termenv.ColorProfile()
	switch res.Verdict {
	case simulate.VerdictAccept:
		return termenv.String("ACCEPT").Foreground(p.Color("#22c55e")).Bold().String()
	case simulate.VerdictOutput:
		return termenv.String("OUTPUT").Foreground(p.Color("#06b6d4")).Bold().String()
	}
	return termenv.String("REJECT").Foreground(p.Color("#ef4444")).Bold().String()
}
