// Package ram provides the 4KB memory of the machine, with the
// font table preloaded and range-checked access.
package ram

import (
	"errors"
	"fmt"

	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/bits"
)

var (
	// ErrOutOfRange is returned when an access falls outside of
	// the address space.
	ErrOutOfRange = errors.New("address out of range")
	// ErrProtected is returned when a write would overwrite the
	// font table.
	ErrProtected = errors.New("address is write protected")
	// ErrProgramTooLarge is returned by LoadProgram when the
	// program does not fit between types.ProgramAddress and the
	// end of memory.
	ErrProgramTooLarge = errors.New("program too large")
)

// AddressError describes a failed memory access.
type AddressError struct {
	Op      string // "read", "write" or "fetch"
	Address uint16
	Length  int
	Err     error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("ram: %s of %d byte(s) at 0x%04X: %v", e.Op, e.Length, e.Address, e.Err)
}

func (e *AddressError) Unwrap() error { return e.Err }

// RAM represents the memory of the machine.
type RAM struct {
	data [types.MemorySize]uint8
}

// NewRAM returns a new RAM with the font table written to
// types.FontAddress.
func NewRAM() *RAM {
	r := &RAM{}
	r.Reset()
	return r
}

// Reset clears the memory and rewrites the font table.
func (r *RAM) Reset() {
	r.data = [types.MemorySize]uint8{}
	copy(r.data[types.FontAddress:], Font[:])
}

// LoadProgram places program verbatim at types.ProgramAddress,
// clearing whatever was previously loaded. Memory is left
// untouched if the program does not fit.
func (r *RAM) LoadProgram(program []byte) error {
	if len(program) > types.MaxProgramSize {
		return fmt.Errorf("ram: %d bytes exceeds %d: %w", len(program), types.MaxProgramSize, ErrProgramTooLarge)
	}

	clear(r.data[types.ProgramAddress:])
	copy(r.data[types.ProgramAddress:], program)
	return nil
}

// check validates that [address, address+length) lies within
// memory.
func check(op string, address uint16, length int) error {
	if int(address)+length > types.MemorySize {
		return &AddressError{Op: op, Address: address, Length: length, Err: ErrOutOfRange}
	}
	return nil
}

// Read returns the value at the given address.
func (r *RAM) Read(address uint16) (uint8, error) {
	if err := check("read", address, 1); err != nil {
		return 0, err
	}
	return r.data[address], nil
}

// Fetch returns the big-endian word at the given address.
func (r *RAM) Fetch(address uint16) (uint16, error) {
	if err := check("fetch", address, 2); err != nil {
		return 0, err
	}
	return bits.Join16(r.data[address], r.data[address+1]), nil
}

// ReadSlice returns a copy of length bytes starting at address.
func (r *RAM) ReadSlice(address uint16, length int) ([]byte, error) {
	if err := check("read", address, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, r.data[address:])
	return out, nil
}

// Write writes the value to the given address.
func (r *RAM) Write(address uint16, value uint8) error {
	return r.WriteSlice(address, []byte{value})
}

// WriteSlice writes data starting at address. Either every byte
// is written or none are.
func (r *RAM) WriteSlice(address uint16, data []byte) error {
	if err := check("write", address, len(data)); err != nil {
		return err
	}
	if len(data) > 0 {
		end := int(address) + len(data) - 1
		if int(address) <= int(types.FontEndAddress) && end >= int(types.FontAddress) {
			return &AddressError{Op: "write", Address: address, Length: len(data), Err: ErrProtected}
		}
	}
	copy(r.data[address:], data)
	return nil
}

// Bytes returns a copy of the whole address space, for use
// by diagnostic views.
func (r *RAM) Bytes() []byte {
	out := make([]byte, types.MemorySize)
	copy(out, r.data[:])
	return out
}

var _ types.Stater = (*RAM)(nil)

// Load loads the state of the RAM from the given state.
func (r *RAM) Load(s *types.State) {
	s.ReadData(r.data[:])
}

// Save saves the state of the RAM to the given state.
func (r *RAM) Save(s *types.State) {
	s.WriteData(r.data[:])
}
