package types

import (
	"errors"
	"os"
)

// ErrStateTruncated is returned by State.Err when a read went past
// the end of the raw state data.
var ErrStateTruncated = errors.New("state: unexpected end of data")

// Resettable is an interface that allows an object to be reset.
type Resettable interface {
	Reset() // Reset the state of the object
}

// State represents the machine state. This is used to
// save and load states between runs.
type State struct {
	raw           []byte // raw state data (for serialization)
	readPosition  int    // current read position
	writePosition int    // current write position
	err           error  // first error encountered while reading
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0),
	}
}

// ResetPosition resets the read and write positions,
// allowing the state to be read from the beginning.
func (s *State) ResetPosition() {
	s.readPosition = 0
	s.writePosition = 0
	s.err = nil
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
	s.writePosition++
}

func (s *State) Write16(value uint16) {
	s.raw = append(s.raw, byte(value), byte(value>>8))
	s.writePosition += 2
}

func (s *State) Write32(value uint32) {
	s.raw = append(s.raw, byte(value), byte(value>>8), byte(value>>16), byte(value>>24))
	s.writePosition += 4
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
	s.writePosition++
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
	s.writePosition += len(data)
}

// available reports whether n more bytes can be read, recording
// ErrStateTruncated if not.
func (s *State) available(n int) bool {
	if s.err != nil {
		return false
	}
	if s.readPosition+n > len(s.raw) {
		s.err = ErrStateTruncated
		return false
	}
	return true
}

func (s *State) Read8() uint8 {
	if !s.available(1) {
		return 0
	}
	value := s.raw[s.readPosition]
	s.readPosition++
	return value
}

func (s *State) Read16() uint16 {
	if !s.available(2) {
		return 0
	}
	value := uint16(s.raw[s.readPosition]) | uint16(s.raw[s.readPosition+1])<<8
	s.readPosition += 2
	return value
}

func (s *State) Read32() uint32 {
	if !s.available(4) {
		return 0
	}
	value := uint32(s.raw[s.readPosition]) | uint32(s.raw[s.readPosition+1])<<8 | uint32(s.raw[s.readPosition+2])<<16 | uint32(s.raw[s.readPosition+3])<<24
	s.readPosition += 4
	return value
}

func (s *State) ReadBool() bool {
	return s.Read8() != 0
}

func (s *State) ReadData(p []byte) {
	if !s.available(len(p)) {
		return
	}
	copy(p, s.raw[s.readPosition:])
	s.readPosition += len(p)
}

// Err returns the first error encountered while reading the state.
func (s *State) Err() error {
	return s.err
}

func (s *State) SaveToFile(filename string) error {
	return os.WriteFile(filename, s.raw, 0644)
}

func (s *State) Bytes() []byte {
	return s.raw
}
