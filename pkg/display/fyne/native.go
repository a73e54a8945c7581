//go:build !test

package fyne

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"strings"

	native "github.com/sqweek/dialog"
	"golang.design/x/clipboard"
)

// askForFile opens a native file picker, showing only files
// with the given extensions when any are given.
func askForFile(title, startingDir string, extensions ...string) (string, error) {
	builder := native.File().SetStartDir(startingDir).Title(title)
	if len(extensions) > 0 {
		builder = builder.Filter(title, extensions...)
	}
	return builder.Load()
}

// copyImage places img on the clipboard as a PNG.
func copyImage(img image.Image) error {
	if err := clipboard.Init(); err != nil {
		return err
	}

	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, b.Bytes())
	return nil
}

// saveImage asks where to save img, and writes it there as a PNG.
func saveImage(img image.Image) error {
	filename, err := native.File().Filter("PNG Image", "png").Title("Save screenshot").Save()
	if err != nil {
		return err
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
