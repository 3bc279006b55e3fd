package memory_test

import (
	"testing"

	"github.com/aretw0/automata/pkg/adapters/memory"
	contract "github.com/aretw0/automata/pkg/ports/tests"
)

func TestMemoryStore_Contract(t *testing.T) {
	contract.DefinitionStoreContractTest(t, memory.NewStore())
}
