// Package palette provides the colours used to render the
// monochrome framebuffer.
package palette

const (
	// Greyscale is the default palette, white pixels on black.
	Greyscale = iota
	// Inverted is black pixels on white.
	Inverted
	// Green emulates a green phosphor monitor.
	Green
	// Amber emulates an amber monochrome monitor.
	Amber
	// Sepia uses muted, paper-like colours.
	Sepia
)

// Palette represents a palette. Index 0 is the colour of an
// unset pixel, index 1 is the colour of a set pixel.
type Palette struct {
	Name   string
	Colors [2]RGB
}

// Current is the currently selected palette.
var Current = Greyscale

// Palettes is a list of all available palettes.
var Palettes = []Palette{
	{Name: "Greyscale", Colors: [2]RGB{hex(Black), hex(White)}},
	{Name: "Inverted", Colors: [2]RGB{hex(White), hex(Black)}},
	{Name: "Green", Colors: [2]RGB{hex(PhosphorDark), hex(Phosphor)}},
	{Name: "Amber", Colors: [2]RGB{hex(AmberDark), hex(AmberLight)}},
	{Name: "Sepia", Colors: [2]RGB{hex(Conditioner), hex(Ming)}},
}

// GetColour returns the colour of a pixel from the Current
// palette.
func GetColour(on bool) RGB {
	return Palettes[Current].GetColour(on)
}

// GetColour returns the colour of a pixel.
func (p Palette) GetColour(on bool) RGB {
	if on {
		return p.Colors[1]
	}
	return p.Colors[0]
}

// CyclePalette selects the next palette, wrapping around to
// the first, and returns it.
func CyclePalette() Palette {
	Current = (Current + 1) % len(Palettes)
	return Palettes[Current]
}
