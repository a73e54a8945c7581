package cpu

import "fmt"

// Op identifies one of the instructions of the base
// instruction set.
type Op uint8

const (
	OpInvalid Op = iota // unrecognised word
	OpCLS               // 00E0
	OpRET               // 00EE
	OpJP                // 1nnn
	OpCALL              // 2nnn
	OpSEImm             // 3xkk
	OpSNEImm            // 4xkk
	OpSEReg             // 5xy0
	OpLDImm             // 6xkk
	OpADDImm            // 7xkk
	OpLDReg             // 8xy0
	OpOR                // 8xy1
	OpAND               // 8xy2
	OpXOR               // 8xy3
	OpADD               // 8xy4
	OpSUB               // 8xy5
	OpSHR               // 8xy6
	OpSUBN              // 8xy7
	OpSHL               // 8xyE
	OpSNEReg            // 9xy0
	OpLDI               // Annn
	OpJPV0              // Bnnn
	OpRND               // Cxkk
	OpDRW               // Dxyn
	OpSKP               // Ex9E
	OpSKNP              // ExA1
	OpLDVxDT            // Fx07
	OpLDK               // Fx0A
	OpLDDT              // Fx15
	OpLDST              // Fx18
	OpADDI              // Fx1E
	OpLDF               // Fx29
	OpLDB               // Fx33
	OpLDIVx             // Fx55
	OpLDVxI             // Fx65
)

var opNames = [...]string{
	OpInvalid: "DW",
	OpCLS: "CLS", OpRET: "RET", OpJP: "JP", OpCALL: "CALL",
	OpSEImm: "SE", OpSNEImm: "SNE", OpSEReg: "SE", OpLDImm: "LD",
	OpADDImm: "ADD", OpLDReg: "LD", OpOR: "OR", OpAND: "AND",
	OpXOR: "XOR", OpADD: "ADD", OpSUB: "SUB", OpSHR: "SHR",
	OpSUBN: "SUBN", OpSHL: "SHL", OpSNEReg: "SNE", OpLDI: "LD",
	OpJPV0: "JP", OpRND: "RND", OpDRW: "DRW", OpSKP: "SKP",
	OpSKNP: "SKNP", OpLDVxDT: "LD", OpLDK: "LD", OpLDDT: "LD",
	OpLDST: "LD", OpADDI: "ADD", OpLDF: "LD", OpLDB: "LD",
	OpLDIVx: "LD", OpLDVxI: "LD",
}

// Name returns the mnemonic of the operation.
func (o Op) Name() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return opNames[OpInvalid]
}

// Instruction is a decoded instruction word. Only the fields
// used by Op are meaningful, but every field is always filled
// from Opcode.
type Instruction struct {
	Op     Op
	Opcode uint16

	X   uint8  // bits 8-11
	Y   uint8  // bits 4-7
	N   uint8  // bits 0-3
	KK  uint8  // bits 0-7
	NNN uint16 // bits 0-11
}

// String disassembles the instruction.
func (i Instruction) String() string {
	name := i.Op.Name()
	switch i.Op {
	case OpCLS, OpRET:
		return name
	case OpJP, OpCALL:
		return fmt.Sprintf("%s $%03X", name, i.NNN)
	case OpSEImm, OpSNEImm, OpLDImm, OpADDImm:
		return fmt.Sprintf("%s V%X, $%02X", name, i.X, i.KK)
	case OpRND:
		return fmt.Sprintf("%s V%X, $%02X", name, i.X, i.KK)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADD, OpSUB, OpSUBN:
		return fmt.Sprintf("%s V%X, V%X", name, i.X, i.Y)
	case OpSHR, OpSHL:
		return fmt.Sprintf("%s V%X", name, i.X)
	case OpLDI:
		return fmt.Sprintf("%s I, $%03X", name, i.NNN)
	case OpJPV0:
		return fmt.Sprintf("%s V0, $%03X", name, i.NNN)
	case OpDRW:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, i.X, i.Y, i.N)
	case OpSKP, OpSKNP:
		return fmt.Sprintf("%s V%X", name, i.X)
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", name, i.X)
	case OpLDK:
		return fmt.Sprintf("%s V%X, K", name, i.X)
	case OpLDDT:
		return fmt.Sprintf("%s DT, V%X", name, i.X)
	case OpLDST:
		return fmt.Sprintf("%s ST, V%X", name, i.X)
	case OpADDI:
		return fmt.Sprintf("%s I, V%X", name, i.X)
	case OpLDF:
		return fmt.Sprintf("%s F, V%X", name, i.X)
	case OpLDB:
		return fmt.Sprintf("%s B, V%X", name, i.X)
	case OpLDIVx:
		return fmt.Sprintf("%s [I], V%X", name, i.X)
	case OpLDVxI:
		return fmt.Sprintf("%s V%X, [I]", name, i.X)
	}
	return fmt.Sprintf("DW $%04X", i.Opcode)
}
