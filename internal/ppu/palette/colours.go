package palette

const (
	White        = 0xFFFFFF
	Black        = 0x000000
	Ming         = 0x42737B
	AmberLight   = 0xFFB000
	AmberDark    = 0x281A00
	Phosphor     = 0x33FF66
	PhosphorDark = 0x0A1A0F
	Conditioner  = 0xFFFFCE
)

// RGB is a single colour.
type RGB [3]uint8

// hex converts a 0xRRGGBB value to an RGB.
func hex(v uint32) RGB {
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}
