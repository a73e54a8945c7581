package main

import (
	"flag"
	"os"

	"github.com/thelolagemann/gochip8/internal/chip8"
	"github.com/thelolagemann/gochip8/internal/cpu"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	_ "github.com/thelolagemann/gochip8/pkg/display/fyne"
	_ "github.com/thelolagemann/gochip8/pkg/display/sdl"
	_ "github.com/thelolagemann/gochip8/pkg/display/terminal"
	_ "github.com/thelolagemann/gochip8/pkg/display/web"
	"github.com/thelolagemann/gochip8/pkg/emulator"
	"github.com/thelolagemann/gochip8/pkg/log"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

var (
	_ display.Emulator = &chip8.Machine{}
)

func main() {
	var logger = log.New()

	if len(display.InstalledDrivers) == 0 {
		logger.Fatal("No display drivers installed. Please compile with at least one display driver")
	}

	romFile := flag.String("rom", "", "The program file to load")
	state := flag.String("state", "", "The state file to load")
	saves := flag.String("saves", emulator.DefaultSaveFolder, "The folder save states are written to")
	displayDriver := flag.String("driver", "auto", "The display driver to use. Can be auto, fyne, sdl, web or terminal")
	speed := flag.Float64("speed", 1, "The speed to run the emulator at")
	clock := flag.Uint64("clock", chip8.DefaultClockSpeed, "Instructions executed per second at a speed of 1")
	wait := flag.String("wait", "latch", "How Fx0A waits for a key. Can be latch or block")
	edge := flag.String("edge", "clip", "How sprites crossing the screen edge are drawn. Can be clip or wrap")
	seed := flag.Int64("seed", 0, "Seed for the random number generator, 0 picks one from the clock")
	debug := flag.Bool("debug", false, "Log every executed instruction")
	disasm := flag.Bool("disasm", false, "Print a listing of the program and exit")

	display.RegisterFlags(flag.CommandLine)
	flag.Parse()

	var rom []byte
	var err error
	if *romFile != "" {
		rom, err = utils.LoadFile(*romFile)
		if err != nil {
			logger.Fatal(err.Error())
		}
	}

	if *disasm {
		if rom == nil {
			logger.Fatal("no program to disassemble, use -rom")
		}
		if err := cpu.Disassemble(os.Stdout, rom, types.ProgramAddress); err != nil {
			logger.Fatal(err.Error())
		}
		return
	}

	waitMode, err := cpu.ParseKeyWaitMode(*wait)
	if err != nil {
		logger.Fatal(err.Error())
	}
	edgeMode, err := ppu.ParseEdgeMode(*edge)
	if err != nil {
		logger.Fatal(err.Error())
	}

	opts := []chip8.Opt{
		chip8.WithSaveFolder(*saves),
		chip8.WithKeyWaitMode(waitMode),
		chip8.WithEdgeMode(edgeMode),
		chip8.ClockSpeed(*clock),
		chip8.Speed(*speed),
	}
	if rom != nil {
		opts = append(opts, chip8.WithProgram(rom))
	}
	if *state != "" {
		b, err := utils.LoadFile(*state)
		if err != nil {
			logger.Fatal(err.Error())
		}
		opts = append(opts, chip8.WithState(b))
	}
	if *seed != 0 {
		opts = append(opts, chip8.WithSeed(*seed))
	}
	if *debug {
		opts = append(opts, chip8.WithLogger(log.NewWithWriter(os.Stderr, true)), chip8.Debug())
	} else {
		opts = append(opts, chip8.WithLogger(logger))
	}

	m, err := chip8.New(opts...)
	if err != nil {
		logger.Fatal(err.Error())
	}

	driver := display.GetDriver(*displayDriver)

	// check to make sure the driver is valid
	if driver == nil {
		logger.Fatal("invalid display driver")
	}

	// attach machine to driver
	driver.Initialize(m)

	// create framebuffer
	fb := make(chan []byte, 60)

	// create various channels
	events := make(chan event.Event, 60)
	pressed := make(chan keypad.Key, 10)
	released := make(chan keypad.Key, 10)

	// start machine in a goroutine
	go func() {
		if err := m.Start(fb, events, pressed, released); err != nil {
			logger.Errorf("machine stopped: %s", err)
		}
	}()

	if err := driver.Start(fb, events, pressed, released); err != nil {
		logger.Fatal(err.Error())
	}
}
