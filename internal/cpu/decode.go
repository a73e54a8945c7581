package cpu

// opcode matches an instruction word against a pattern. A word
// w is the instruction op when w&mask == value.
type opcode struct {
	mask  uint16
	value uint16
	op    Op
}

// opcodes holds the patterns of every instruction, grouped by
// the top nibble of the word.
var opcodes = [16][]opcode{
	0x0: {
		{0xFFFF, 0x00E0, OpCLS},
		{0xFFFF, 0x00EE, OpRET},
	},
	0x1: {{0xF000, 0x1000, OpJP}},
	0x2: {{0xF000, 0x2000, OpCALL}},
	0x3: {{0xF000, 0x3000, OpSEImm}},
	0x4: {{0xF000, 0x4000, OpSNEImm}},
	0x5: {{0xF00F, 0x5000, OpSEReg}},
	0x6: {{0xF000, 0x6000, OpLDImm}},
	0x7: {{0xF000, 0x7000, OpADDImm}},
	0x8: {
		{0xF00F, 0x8000, OpLDReg},
		{0xF00F, 0x8001, OpOR},
		{0xF00F, 0x8002, OpAND},
		{0xF00F, 0x8003, OpXOR},
		{0xF00F, 0x8004, OpADD},
		{0xF00F, 0x8005, OpSUB},
		{0xF00F, 0x8006, OpSHR},
		{0xF00F, 0x8007, OpSUBN},
		{0xF00F, 0x800E, OpSHL},
	},
	0x9: {{0xF00F, 0x9000, OpSNEReg}},
	0xA: {{0xF000, 0xA000, OpLDI}},
	0xB: {{0xF000, 0xB000, OpJPV0}},
	0xC: {{0xF000, 0xC000, OpRND}},
	0xD: {{0xF000, 0xD000, OpDRW}},
	0xE: {
		{0xF0FF, 0xE09E, OpSKP},
		{0xF0FF, 0xE0A1, OpSKNP},
	},
	0xF: {
		{0xF0FF, 0xF007, OpLDVxDT},
		{0xF0FF, 0xF00A, OpLDK},
		{0xF0FF, 0xF015, OpLDDT},
		{0xF0FF, 0xF018, OpLDST},
		{0xF0FF, 0xF01E, OpADDI},
		{0xF0FF, 0xF029, OpLDF},
		{0xF0FF, 0xF033, OpLDB},
		{0xF0FF, 0xF055, OpLDIVx},
		{0xF0FF, 0xF065, OpLDVxI},
	},
}

// Decode maps an instruction word to the Instruction it
// encodes. Words that match no instruction, including the
// machine code calls 0nnn, return a *DecodeError with a zero PC.
func Decode(word uint16) (Instruction, error) {
	for _, o := range opcodes[word>>12] {
		if word&o.mask == o.value {
			return Instruction{
				Op:     o.op,
				Opcode: word,
				X:      uint8(word>>8) & 0x0F,
				Y:      uint8(word>>4) & 0x0F,
				N:      uint8(word) & 0x0F,
				KK:     uint8(word),
				NNN:    word & 0x0FFF,
			}, nil
		}
	}
	return Instruction{Opcode: word}, &DecodeError{Opcode: word}
}
