package cpu

import (
	"fmt"
	"io"

	"github.com/thelolagemann/gochip8/pkg/bits"
)

// Disassemble writes a listing of program, loaded at origin, to
// w: one line per word with its address, the word and the
// instruction. Words that do not decode are listed as DW, and a
// trailing odd byte as DB.
func Disassemble(w io.Writer, program []byte, origin uint16) error {
	for i := 0; i+1 < len(program); i += 2 {
		word := bits.Join16(program[i], program[i+1])
		ins, _ := Decode(word)
		if _, err := fmt.Fprintf(w, "%03X  %04X  %s\n", origin+uint16(i), word, ins); err != nil {
			return err
		}
	}
	if len(program)%2 == 1 {
		last := len(program) - 1
		_, err := fmt.Fprintf(w, "%03X  %02X    DB $%02X\n", origin+uint16(last), program[last], program[last])
		return err
	}
	return nil
}
