package chip8

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const modulePath = "github.com/thelolagemann/gochip8/"

// the machine and everything it imports must build without cgo,
// so that it can be tested on hosts without GUI headers
func TestMachine_ImportsNoCgo(t *testing.T) {
	banned := []string{
		"C",
		"fyne.io/",
		"github.com/sqweek/dialog",
		"golang.design/x/clipboard",
		"github.com/veandco/go-sdl2",
		"github.com/google/brotli",
	}

	seen := map[string]bool{}
	queue := []string{modulePath + "internal/chip8"}
	for len(queue) > 0 {
		pkg := queue[0]
		queue = queue[1:]
		if seen[pkg] {
			continue
		}
		seen[pkg] = true

		dir := filepath.Join("..", "..", filepath.FromSlash(strings.TrimPrefix(pkg, modulePath)))
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
				continue
			}
			f, err := parser.ParseFile(token.NewFileSet(), filepath.Join(dir, name), nil, parser.ImportsOnly)
			if err != nil {
				t.Fatal(err)
			}
			for _, spec := range f.Imports {
				path, _ := strconv.Unquote(spec.Path.Value)
				for _, b := range banned {
					if path == b || (strings.HasSuffix(b, "/") && strings.HasPrefix(path, b)) || strings.HasPrefix(path, b+"/") {
						t.Errorf("expected no cgo imports, %s/%s imports %s", pkg, name, path)
					}
				}
				if strings.HasPrefix(path, modulePath) {
					queue = append(queue, path)
				}
			}
		}
	}
	if !seen[modulePath+"pkg/utils"] || !seen[modulePath+"pkg/bits"] {
		t.Errorf("expected pkg/utils and pkg/bits in the import graph, got %v", seen)
	}
}
