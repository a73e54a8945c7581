package views

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gochip8/internal/chip8"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/display/fyne/themes"
)

// Inspector returns a copy of the machine state.
type Inspector func() chip8.Inspection

// refreshRate is how often the views poll the machine.
const refreshRate = time.Second / 10

// bold is a small utility function for creating a bold label.
func bold(s string) *widget.Label { return widget.NewLabelWithStyle(s, 0, fyne.TextStyle{Bold: true}) }

// mono is a small utility function for creating a monospaced text element.
func mono(s string, c color.Color) *canvas.Text {
	t := canvas.NewText(s, c)
	t.TextStyle.Monospace = true

	return t
}

// newBadge places content over a rectangle of the given colour.
func newBadge(backgroundColor color.Color, content fyne.CanvasObject) fyne.CanvasObject {
	bgRect := canvas.NewRectangle(backgroundColor)
	bgRect.Resize(content.MinSize())

	return container.NewMax(bgRect, content)
}

func newCard(title string, content fyne.CanvasObject) fyne.CanvasObject {
	return newBadge(themeColor(themes.ColorNameCard), container.NewVBox(
		newBadge(themeColor(theme.ColorNameInputBackground), container.NewPadded(mono(title, themeColor(theme.ColorNameForeground)))),
		content))
}

func themeColor(name fyne.ThemeColorName) color.Color {
	settings := fyne.CurrentApp().Settings()
	return settings.Theme().Color(name, settings.ThemeVariant())
}

// refreshUntilClosed refreshes w every refreshRate, until the
// events of its window are closed or the emulator quits.
func refreshUntilClosed(w fyne.Widget, events <-chan event.Event) {
	t := time.NewTicker(refreshRate)
	defer t.Stop()

	for {
		select {
		case e, ok := <-events:
			if !ok || e.Type == event.Quit {
				return
			}
		case <-t.C:
			w.Refresh()
		}
	}
}
