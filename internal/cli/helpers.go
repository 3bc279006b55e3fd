package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/definition"
	"github.com/aretw0/automata/pkg/domain"
)

// Resolve loads ref as a definition file when it exists on disk, and as a catalog name otherwise.
func Resolve(ctx context.Context, eng *automata.Engine, ref string) (*domain.Automaton, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return eng.LoadFile(ref)
	}
	a, err := eng.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("%s is neither a file nor a catalog entry: %w", ref, err)
	}
	return a, nil
}

// WriteDefinition encodes a in the given format ("json", "yaml" or "text") to path, or to
// stdout when path is empty or "-".
func WriteDefinition(a *domain.Automaton, format, path string) error {
	f, err := definition.ParseFormat(format)
	if err != nil {
		return err
	}
	data, err := definition.Encode(a.Definition(), f)
	if err != nil {
		return err
	}
	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
