package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/automata/pkg/ports"
)

// Sync copies every definition of src into dst and removes entries of dst that src
// no longer has. It returns the number of definitions copied.
func Sync(ctx context.Context, src ports.DefinitionSource, dst ports.DefinitionStore) (int, error) {
	names, err := src.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list source: %w", err)
	}
	keep := make(map[string]bool, len(names))
	for _, name := range names {
		def, err := src.Get(ctx, name)
		if err != nil {
			return 0, err
		}
		if err := dst.Save(ctx, name, def); err != nil {
			return 0, fmt.Errorf("save %s: %w", name, err)
		}
		keep[name] = true
	}

	existing, err := dst.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list store: %w", err)
	}
	for _, name := range existing {
		if !keep[name] {
			if err := dst.Delete(ctx, name); err != nil {
				return 0, fmt.Errorf("delete %s: %w", name, err)
			}
		}
	}
	return len(names), nil
}

// WatchAndSync re-runs Sync after every change signaled by w until ctx is done.
// Sync failures are logged and do not stop the loop.
func WatchAndSync(ctx context.Context, w ports.Watchable, src ports.DefinitionSource, dst ports.DefinitionStore, logger *slog.Logger) error {
	events, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-events:
			if !ok {
				return nil
			}
			n, err := Sync(ctx, src, dst)
			if err != nil {
				logger.Warn("catalog reload failed", "error", err)
				continue
			}
			logger.Info("catalog reloaded", "definitions", n)
		}
	}
}
