package cpu

import "testing"

func TestInstruction_ShiftRight(t *testing.T) {
	runALU(t, 0x6, []aluTest{
		{"lsb set", 0x05, 0xFF, 0x02, 1},
		{"lsb clear", 0x04, 0xFF, 0x02, 0},
		{"vy ignored", 0x80, 0x01, 0x40, 0},
	})
}

func TestInstruction_ShiftLeft(t *testing.T) {
	runALU(t, 0xE, []aluTest{
		{"msb set", 0x81, 0x00, 0x02, 1},
		{"msb clear", 0x41, 0x00, 0x82, 0},
		{"vy ignored", 0x01, 0x80, 0x02, 0},
	})
}
