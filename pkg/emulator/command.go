package emulator

import (
	"encoding/binary"
	"math"
)

// CommandPacket is a command packet that is sent to the
// emulator to control it.
type CommandPacket struct {
	Command Command
	Data    []byte
}

// Command is a command that is sent to the emulator to
// control it.
type Command int

// ResponsePacket is a response packet that is sent
// from the emulator to the client.
type ResponsePacket struct {
	Command Command
	Data    []byte
	Error   error
}

const (
	// CommandPause pauses the emulator.
	CommandPause Command = iota
	// CommandResume resumes the emulator.
	CommandResume
	// CommandClose closes the emulator.
	CommandClose
	// CommandReset resets the emulator.
	CommandReset
	// CommandLoadROM loads the program in Data into the
	// emulator, and resets it.
	CommandLoadROM
	// CommandLoadSave restores the save state in Data. With
	// no Data, the newest save slot is restored.
	CommandLoadSave
	// CommandSaveState writes a new save slot. The state is
	// returned in the response Data.
	CommandSaveState
	// CommandSetSpeed sets the speed multiplier of the
	// emulator to the float64 encoded (little endian IEEE 754)
	// in Data.
	CommandSetSpeed
	// CommandCyclePalette switches to the next colour palette.
	CommandCyclePalette
)

func (c Command) String() string {
	switch c {
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandClose:
		return "close"
	case CommandReset:
		return "reset"
	case CommandLoadROM:
		return "load rom"
	case CommandLoadSave:
		return "load save"
	case CommandSaveState:
		return "save state"
	case CommandSetSpeed:
		return "set speed"
	case CommandCyclePalette:
		return "cycle palette"
	}
	return "unknown"
}

// SpeedCommand returns a CommandSetSpeed packet for the given
// speed multiplier.
func SpeedCommand(speed float64) CommandPacket {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, math.Float64bits(speed))
	return CommandPacket{Command: CommandSetSpeed, Data: data}
}
