// Package bits provides small helpers for working with the bits
// of unsigned values.
package bits

import "golang.org/x/exp/constraints"

// Set sets the bit at the given index.
func Set[T constraints.Unsigned](value T, bit uint8) T {
	return value | (1 << bit)
}

// Reset resets the bit at the given index.
func Reset[T constraints.Unsigned](value T, bit uint8) T {
	return value &^ (1 << bit)
}

// Test tests the bit at the given index.
func Test[T constraints.Unsigned](value T, bit uint8) bool {
	return value&(1<<bit) != 0
}

// Join16 joins two bytes into a big-endian 16-bit word.
func Join16(upper, lower uint8) uint16 {
	return uint16(upper)<<8 | uint16(lower)
}
