package tests

import (
	"context"
	"testing"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SampleDefinition is a small DFA accepting strings over {0,1} that end in 1.
func SampleDefinition() domain.Definition {
	return domain.Definition{
		Type:         domain.KindDFA,
		Name:         "ends-in-one",
		States:       []string{"q0", "q1"},
		Alphabet:     []string{"0", "1"},
		StartState:   "q0",
		AcceptStates: []string{"q1"},
		Transitions: []domain.TransitionDef{
			{From: "q0", Symbol: "0", To: "q0"},
			{From: "q0", Symbol: "1", To: "q1"},
			{From: "q1", Symbol: "0", To: "q0"},
			{From: "q1", Symbol: "1", To: "q1"},
		},
	}
}

// DefinitionSourceContractTest verifies that a source serves exactly the given definitions.
func DefinitionSourceContractTest(t *testing.T, src ports.DefinitionSource, want map[string]domain.Definition) {
	t.Helper()
	ctx := context.Background()

	t.Run("Get_Success", func(t *testing.T) {
		for name, def := range want {
			got, err := src.Get(ctx, name)
			require.NoError(t, err, name)
			a, err := domain.New(got)
			require.NoError(t, err, name)
			assert.True(t, a.Equal(domain.MustNew(def)), "definition %s changed", name)
		}
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		_, err := src.Get(ctx, "non-existent-definition")
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})

	t.Run("List", func(t *testing.T) {
		names, err := src.List(ctx)
		require.NoError(t, err)
		assert.Len(t, names, len(want))
		for name := range want {
			assert.Contains(t, names, name)
		}
		assert.IsNonDecreasing(t, names)
	})
}

// DefinitionStoreContractTest runs the Save/Get/Delete/List cycle against an empty store.
func DefinitionStoreContractTest(t *testing.T, store ports.DefinitionStore) {
	t.Helper()
	ctx := context.Background()
	def := SampleDefinition()

	t.Run("Save and Get", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "sample", def))

		got, err := store.Get(ctx, "sample")
		require.NoError(t, err)
		assert.Equal(t, def.Type, got.Type)
		assert.Equal(t, def.States, got.States)
		assert.Equal(t, def.Transitions, got.Transitions)
	})

	t.Run("Save replaces", func(t *testing.T) {
		changed := def
		changed.AcceptStates = []string{"q0"}
		require.NoError(t, store.Save(ctx, "sample", changed))

		got, err := store.Get(ctx, "sample")
		require.NoError(t, err)
		assert.Equal(t, []string{"q0"}, got.AcceptStates)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "another", def))
		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"another", "sample"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "sample"))
		require.NoError(t, store.Delete(ctx, "sample"), "deleting twice is not an error")

		_, err := store.Get(ctx, "sample")
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"another"}, names)
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		got, err := store.Get(ctx, "another")
		require.NoError(t, err)
		got.States[0] = "mutated"

		again, err := store.Get(ctx, "another")
		require.NoError(t, err)
		assert.Equal(t, "q0", again.States[0])
	})
}
