package types

// Address represents a location in the 4KB address space of
// the machine. Addresses are 16-bit wide, but only the lower
// 12 bits (0x000 - 0xFFF) map to memory.
type Address = uint16

const (
	// MemorySize is the size of the addressable memory, in bytes.
	MemorySize = 0x1000

	// FontAddress is the address of the first font glyph. The 16
	// hexadecimal glyphs are stored contiguously from this address,
	// 5 bytes per glyph.
	FontAddress Address = 0x50
	// FontEndAddress is the address of the last byte of the font
	// table (inclusive).
	FontEndAddress Address = 0x9F
	// GlyphSize is the number of bytes (rows) per font glyph.
	GlyphSize = 5

	// ProgramAddress is the address programs are loaded to, and
	// where execution begins.
	ProgramAddress Address = 0x200
	// MaxProgramSize is the largest program that fits between
	// ProgramAddress and the end of memory.
	MaxProgramSize = MemorySize - int(ProgramAddress)
)

// Register is an 8-bit general purpose register.
type Register = uint8

const (
	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16
	// FlagRegister is the index of VF, which doubles as the
	// carry/borrow/collision flag.
	FlagRegister = 0xF
	// StackDepth is the capacity of the call stack.
	StackDepth = 16
	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16
)
