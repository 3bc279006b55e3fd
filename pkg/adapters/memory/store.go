package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.DefinitionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Definition
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Definition),
	}
}

// Save stores a deep copy of def.
func (s *Store) Save(ctx context.Context, name string, def domain.Definition) error {
	if name == "" {
		return fmt.Errorf("definition name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = clone(def)
	return nil
}

// Get returns a copy so callers can't mutate the store through shared slices.
func (s *Store) Get(ctx context.Context, name string) (domain.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[name]
	if !ok {
		return domain.Definition{}, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
	}
	return clone(def), nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func clone(def domain.Definition) domain.Definition {
	out := def
	out.States = append([]string(nil), def.States...)
	out.Alphabet = append([]string(nil), def.Alphabet...)
	out.AcceptStates = append([]string(nil), def.AcceptStates...)
	out.StackAlphabet = append([]string(nil), def.StackAlphabet...)
	out.OutputAlphabet = append([]string(nil), def.OutputAlphabet...)
	if def.StateOutputs != nil {
		out.StateOutputs = make(map[string]string, len(def.StateOutputs))
		for k, v := range def.StateOutputs {
			out.StateOutputs[k] = v
		}
	}
	out.Transitions = make([]domain.TransitionDef, len(def.Transitions))
	for i, t := range def.Transitions {
		t.Push = append([]string(nil), t.Push...)
		out.Transitions[i] = t
	}
	return out
}
