package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 8; i++ {
		if a.Uint64() != b.Uint64() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestDeriveIsIndependent(t *testing.T) {
	parent := New(42)
	child := Derive(parent)

	// the derived stream must match a rerun from the same parent state
	parent2 := New(42)
	child2 := Derive(parent2)
	for i := 0; i < 8; i++ {
		assert.Equal(t, child.Uint64(), child2.Uint64())
	}
}
