package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is matched by every DecodeError.
	ErrDecode = errors.New("unrecognised opcode")
	// ErrStackOverflow is returned when a call is made with the
	// stack already holding types.StackDepth return addresses.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is made with
	// an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// DecodeError is returned when the word fetched from memory
// does not match any instruction. It is not fatal, the program
// counter has already moved past the word and nothing else has
// changed.
type DecodeError struct {
	Opcode uint16
	PC     uint16 // address the opcode was fetched from
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cpu: %v 0x%04X at 0x%03X", ErrDecode, e.Opcode, e.PC)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// IsFatal reports whether err leaves the CPU in a state it
// cannot continue from. Decode errors are the only recoverable
// error kind.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrDecode)
}
