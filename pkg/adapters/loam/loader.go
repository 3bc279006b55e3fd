package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/internal/definition"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
)

// Loader adapts a Loam repository to ports.DefinitionSource.
// Any JSON, YAML or Markdown front matter document carrying a "type" key is
// served as a definition named after its file.
type Loader struct {
	raw  core.Repository
	Repo *loam.TypedRepository[DocumentMetadata]
}

// New creates a new Loam adapter.
func New(repo core.Repository) *Loader {
	return &Loader{
		raw:  repo,
		Repo: loam.NewTypedRepository[DocumentMetadata](repo),
	}
}

// Open initializes a read-only, strict Loam repository at dir.
func Open(dir string) (*Loader, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(abs,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(repo), nil
}

// Get decodes the document stored under name.
func (l *Loader) Get(ctx context.Context, name string) (domain.Definition, error) {
	doc, err := l.raw.Get(ctx, name)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("%w: %s (%v)", domain.ErrDefinitionNotFound, name, err)
	}
	if _, ok := doc.Metadata["type"]; !ok {
		return domain.Definition{}, fmt.Errorf("%w: %s is not an automaton document", domain.ErrDefinitionNotFound, name)
	}

	def, err := definition.Decode(doc.Metadata)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("definition %s: %w", name, err)
	}
	if def.Name == "" {
		def.Name = trimExtension(name)
	}
	return def, nil
}

// List lists the automaton documents of the repository, sorted.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Data.Type == "" {
			continue
		}
		name := trimExtension(doc.ID)
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: definition '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				// Coalesce bursts: a pending signal already means "reload".
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()
	return ch, nil
}
