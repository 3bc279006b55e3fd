package memory_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	contract "github.com/aretw0/automata/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromDefinitions_Contract(t *testing.T) {
	def := contract.SampleDefinition()
	store, err := memory.NewFromDefinitions(def)
	require.NoError(t, err)

	contract.DefinitionSourceContractTest(t, store, map[string]domain.Definition{def.Name: def})
}

func TestNewFromDefinitions_Invalid(t *testing.T) {
	_, err := memory.NewFromDefinitions(domain.Definition{Type: domain.KindDFA})
	assert.Error(t, err, "a definition without name is rejected")

	broken := contract.SampleDefinition()
	broken.StartState = "nowhere"
	_, err = memory.NewFromDefinitions(broken)
	assert.ErrorIs(t, err, domain.ErrMalformedAutomaton)
}
