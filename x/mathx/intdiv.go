package mathx

import "golang.org/x/exp/constraints"

// RoundDiv returns floor((a + b/2)/b), i.e. a/b rounded half up.
// A zero divisor yields 0; register maths must never trap.
func RoundDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

// CeilDiv returns ceil(a/b) for unsigned operands; 0 when b == 0.
func CeilDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
