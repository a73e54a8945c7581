// Package themes holds the fyne theme used by the desktop driver.
package themes

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Phosphor is a dark theme tinted after a green phosphor
// monitor. Colours it does not name fall back to the default
// theme.
type Phosphor struct{}

var (
	glow     = color.NRGBA{0x33, 0xff, 0x66, 0xff}
	glowSoft = color.NRGBA{0x7d, 0xd9, 0x93, 0xff}

	tube      = color.NRGBA{0x0b, 0x14, 0x0e, 0xff}
	tubeLight = color.NRGBA{0x16, 0x24, 0x1a, 0xff}
	bezel     = color.NRGBA{0x24, 0x36, 0x29, 0xff}
	bezelHigh = color.NRGBA{0x37, 0x4d, 0x3d, 0xff}

	faded = color.NRGBA{0x5e, 0x73, 0x63, 0xff}
	amber = color.NRGBA{0xff, 0xb0, 0x00, 0xff}
)

const (
	// ColorNameCard is the background of the cards grouping values
	// in the debug views.
	ColorNameCard fyne.ThemeColorName = "card"
	// ColorNameHighlight marks the instruction at the program
	// counter.
	ColorNameHighlight fyne.ThemeColorName = "highlight"
	// ColorNameDimmed is used for zero bytes and unset values.
	ColorNameDimmed fyne.ThemeColorName = "dimmed"
)

var colorMap = map[fyne.ThemeColorName]color.Color{
	ColorNameCard:                    tubeLight,
	ColorNameHighlight:               amber,
	ColorNameDimmed:                  faded,
	theme.ColorNamePrimary:           glow,
	theme.ColorNameForeground:        glowSoft,
	theme.ColorNameBackground:        tube,
	theme.ColorNameMenuBackground:    bezel,
	theme.ColorNameOverlayBackground: bezel,
	theme.ColorNameButton:            bezel,
	theme.ColorNameInputBackground:   bezel,
	theme.ColorNameDisabled:          faded,
	theme.ColorNameFocus:             bezelHigh,
	theme.ColorNameHover:             bezelHigh,
	theme.ColorNameSelection:         bezelHigh,
}

func (Phosphor) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	if c, ok := colorMap[name]; ok {
		return c
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (Phosphor) Font(style fyne.TextStyle) fyne.Resource    { return theme.DefaultTheme().Font(style) }
func (Phosphor) Icon(name fyne.ThemeIconName) fyne.Resource { return theme.DefaultTheme().Icon(name) }
func (Phosphor) Size(name fyne.ThemeSizeName) float32       { return theme.DefaultTheme().Size(name) }
