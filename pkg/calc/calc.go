// Package calc implements the arithmetic operations calcd serves over HTTP.
//
// All operations work on int64. Overflow wraps around (two's complement),
// which is Go's native behavior for fixed-width integers.
package calc

// Func computes a single arithmetic operation on two integers.
type Func func(a, b int64) int64

// Operation is a named arithmetic operation. The name doubles as the first
// URL path segment of the route that serves it (e.g. /add/{num1}/{num2}).
type Operation struct {
	Name  string
	Apply Func
}

// Add returns a + b.
func Add(a, b int64) int64 { return a + b }

// Subtract returns a - b.
func Subtract(a, b int64) int64 { return a - b }

// Multiply returns a * b.
func Multiply(a, b int64) int64 { return a * b }

// operations is the fixed registry shared by the HTTP engine and the
// contract-check harness. Order is stable and part of the route surface.
var operations = []Operation{
	{Name: "add", Apply: Add},
	{Name: "subtract", Apply: Subtract},
	{Name: "multiply", Apply: Multiply},
}

// Operations returns all registered operations in registration order.
// The returned slice is a copy; callers may not mutate the registry.
func Operations() []Operation {
	out := make([]Operation, len(operations))
	copy(out, operations)
	return out
}

// Lookup returns the operation with the given name.
func Lookup(name string) (Operation, bool) {
	for _, op := range operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}
