package emulator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

const (
	// DefaultSaveFolder is the folder save states are kept in,
	// relative to the working directory.
	DefaultSaveFolder = "saves"
	saveExt           = ".state"
)

// ErrNoSaves is returned when a program has no save states.
var ErrNoSaves = errors.New("no save states")

// save file naming convention:
// <folder>/<xxhash of program>/<unix timestamp>.state

// Save represents a save state on disk.
type Save struct {
	Path string    // the path to the save file
	Time time.Time // when the save was made
}

// Bytes reads the save file data.
func (s *Save) Bytes() ([]byte, error) {
	return utils.LoadFile(s.Path)
}

// Saves manages the save states of programs in a folder.
type Saves struct {
	Folder string
}

// NewSaves returns a Saves rooted at folder.
func NewSaves(folder string) *Saves {
	return &Saves{Folder: folder}
}

// ProgramFolder returns the folder holding the save states of
// the given program. Programs are identified by the hash of
// their contents.
func (s *Saves) ProgramFolder(program []byte) string {
	return filepath.Join(s.Folder, fmt.Sprintf("%016x", xxhash.Sum64(program)))
}

// Write writes a new save state for the program. The data is
// written to a temporary file first, which is renamed once
// complete, so an interrupted write never leaves a corrupt save.
func (s *Saves) Write(program, state []byte, at time.Time) (*Save, error) {
	folder := s.ProgramFolder(program)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, err
	}

	path := filepath.Join(folder, strconv.FormatInt(at.Unix(), 10)+saveExt)
	f, err := os.CreateTemp(folder, filepath.Base(path)+".*")
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(state); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write save state: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, err
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return nil, err
	}

	return &Save{Path: path, Time: time.Unix(at.Unix(), 0)}, nil
}

// List returns the save states of the program, newest first. If
// no save states exist, an empty slice is returned.
func (s *Saves) List(program []byte) ([]*Save, error) {
	files, err := os.ReadDir(s.ProgramFolder(program))
	if os.IsNotExist(err) {
		return make([]*Save, 0), nil
	} else if err != nil {
		return nil, err
	}

	saves := make([]*Save, 0, len(files))
	for _, file := range files {
		ts, ok := parseTimestampFromFilename(file.Name())
		if !ok || file.IsDir() {
			continue
		}
		saves = append(saves, &Save{
			Path: filepath.Join(s.ProgramFolder(program), file.Name()),
			Time: time.Unix(ts, 0),
		})
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].Time.After(saves[j].Time)
	})

	return saves, nil
}

// Latest returns the newest save state of the program.
func (s *Saves) Latest(program []byte) (*Save, error) {
	saves, err := s.List(program)
	if err != nil {
		return nil, err
	}
	if len(saves) == 0 {
		return nil, ErrNoSaves
	}
	return saves[0], nil
}

// parseTimestampFromFilename parses the timestamp from a filename
// in the format of "<timestamp>.state".
func parseTimestampFromFilename(filename string) (int64, bool) {
	if !strings.HasSuffix(filename, saveExt) {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSuffix(filename, saveExt), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
