package automata

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/simulate"
)

// Runner replays a simulation interactively over the provided IO.
// Commands read from Input: enter or "n" steps forward, "p" steps back,
// "r" rewinds and "q" quits.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms the final report before it is written.
// This allows TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Run walks the trace of res until the last snapshot or until the user quits.
// Headless runners print every snapshot without waiting for input.
func (r *Runner) Run(a *domain.Automaton, res *simulate.Result) error {
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	if r.Input == nil && !r.Headless {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}

	stepper := simulate.NewStepper(res)
	var lines *bufio.Reader
	if !r.Headless {
		lines = bufio.NewReader(r.Input)
	}

	for {
		fmt.Fprintln(r.Output, stepper.Current().Describe(a))
		if stepper.Done() && r.Headless {
			break
		}
		if r.Headless {
			stepper.Next()
			continue
		}

		fmt.Fprint(r.Output, "> ")
		text, err := lines.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("input error: %w", err)
		}
		cmd := strings.TrimSpace(text)
		if err == io.EOF && cmd == "" {
			fmt.Fprintln(r.Output)
			break
		}

		moved := true
		switch cmd {
		case "", "n", "next":
			moved = stepper.Next()
		case "p", "prev":
			moved = stepper.Prev()
		case "r", "reset":
			stepper.Reset()
		case "q", "quit", "exit":
			return r.report(res)
		default:
			fmt.Fprintf(r.Output, "unknown command %q (n, p, r, q)\n", cmd)
			continue
		}
		if !moved {
			fmt.Fprintln(r.Output, "(no more steps)")
		}
	}
	return r.report(res)
}

func (r *Runner) report(res *simulate.Result) error {
	msg := Summary(res)
	if r.Renderer != nil {
		if rendered, err := r.Renderer(msg); err == nil {
			msg = rendered
		}
	}
	_, err := fmt.Fprintln(r.Output, strings.TrimSpace(msg))
	return err
}

// Summary describes the verdict of res on one line.
func Summary(res *simulate.Result) string {
	switch res.Verdict {
	case simulate.VerdictOutput:
		out := strings.Join(res.Outputs, "")
		if res.InitialOutput != "" {
			out = res.InitialOutput + " | " + out
		}
		return fmt.Sprintf("output: %s (%d steps)", out, res.Steps)
	case simulate.VerdictAccept:
		return fmt.Sprintf("accepted (%d steps)", res.Steps)
	}
	return fmt.Sprintf("rejected (%d steps)", res.Steps)
}
