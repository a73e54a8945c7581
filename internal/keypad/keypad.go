// Package keypad provides an implementation of the 16-key
// hexadecimal keypad. The keypad tracks which keys are held
// down, and hands out read-only snapshots of that state to the
// CPU before each instruction.
package keypad

import (
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/bits"
)

// Key represents one of the 16 hexadecimal keys, 0x0 - 0xF.
type Key = uint8

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// Snapshot is the state of every key at a single point in
// time, indexed by Key.
type Snapshot [types.KeyCount]bool

// Pressed reports whether the key (low nibble of k) is down.
func (s Snapshot) Pressed(k uint8) bool {
	return s[k&0x0F]
}

// Lowest returns the lowest-indexed key that is pressed, and
// false if no key is pressed.
func (s Snapshot) Lowest() (Key, bool) {
	for k, down := range s {
		if down {
			return Key(k), true
		}
	}
	return 0, false
}

// State represents the state of the keypad. Bit n of State
// is set while key n is held down.
type State struct {
	State uint16
}

// New returns a new keypad state with no keys pressed.
func New() *State {
	return &State{}
}

// Press presses a key.
func (s *State) Press(key Key) {
	s.State = bits.Set(s.State, key&0x0F)
}

// Release releases a key.
func (s *State) Release(key Key) {
	s.State = bits.Reset(s.State, key&0x0F)
}

// Snapshot returns the current state of every key.
func (s *State) Snapshot() Snapshot {
	var snap Snapshot
	for k := range snap {
		snap[k] = bits.Test(s.State, uint8(k))
	}
	return snap
}

// Reset releases every key.
func (s *State) Reset() {
	s.State = 0
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.State = st.Read16()
}

func (s *State) Save(st *types.State) {
	st.Write16(s.State)
}
