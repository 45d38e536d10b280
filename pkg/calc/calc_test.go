package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   string
		a, b int64
		want int64
	}{
		{"add", 2, 2, 4},
		{"add", 0, 0, 0},
		{"add", -3, 5, 2},
		{"subtract", 5, 3, 2},
		{"subtract", 3, 5, -2},
		{"subtract", 0, 0, 0},
		{"multiply", 2, 3, 6},
		{"multiply", 0, 0, 0},
		{"multiply", -4, 5, -20},
	}

	for _, tt := range tests {
		op, ok := Lookup(tt.op)
		require.True(t, ok, "operation %s not registered", tt.op)
		assert.Equal(t, tt.want, op.Apply(tt.a, tt.b), "%s(%d, %d)", tt.op, tt.a, tt.b)
	}
}

func TestOverflowWrapsAround(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(math.MinInt64), Add(math.MaxInt64, 1))
	assert.Equal(t, int64(math.MaxInt64), Subtract(math.MinInt64, 1))
	assert.Equal(t, int64(-2), Multiply(math.MaxInt64, 2))
}

func TestIdempotence(t *testing.T) {
	t.Parallel()

	// Operations are pure; repeated application yields identical results.
	for i := 0; i < 10; i++ {
		assert.Equal(t, int64(4), Add(2, 2))
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("fixed order", func(t *testing.T) {
		t.Parallel()
		ops := Operations()
		require.Len(t, ops, 3)
		assert.Equal(t, "add", ops[0].Name)
		assert.Equal(t, "subtract", ops[1].Name)
		assert.Equal(t, "multiply", ops[2].Name)
	})

	t.Run("returns a copy", func(t *testing.T) {
		t.Parallel()
		ops := Operations()
		ops[0] = Operation{Name: "divide"}
		_, ok := Lookup("divide")
		assert.False(t, ok)
	})

	t.Run("unknown operation", func(t *testing.T) {
		t.Parallel()
		_, ok := Lookup("modulo")
		assert.False(t, ok)
	})
}
