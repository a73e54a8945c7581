package web

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	// Frame is a full frame: a little endian uint16 cache slot,
	// followed by the (possibly compressed) packed RGB frame.
	Frame Type = iota
	// FrameCache repeats the frame stored in the given cache slot.
	FrameCache
	// FrameSync is a full uncached frame, sent to new clients.
	FrameSync
	// ClientInfo is sent to a new client: its ID, followed by
	// the hub settings (see hub.info) and compression level.
	ClientInfo
	// ServerInfo lists every client ID with its average round
	// trip time in milliseconds, as a little endian uint16.
	ServerInfo
	// Title carries the window title as a string.
	Title
	// Sound is 1 while the sound timer is active, 0 otherwise.
	Sound
	// ClientClosing is sent with the ID of a disconnected client.
	ClientClosing
	// Error carries the error the emulator stopped on.
	Error
)

// Event is the first byte of every message sent by a client.
type Event = uint8

const (
	_ Event = iota
	// KeyDown and KeyUp are followed by a keypad key, 0x0 - 0xF.
	KeyDown
	KeyUp
	// Control is followed by a ControlCode byte.
	Control
	// Setting is followed by a SettingCode byte and its value.
	Setting
	// Closing is sent by a client before it disconnects.
	Closing = 255
)

// ControlCode is an emulator control requested by a client.
type ControlCode = uint8

const (
	PausePlay ControlCode = iota
	Reset
	CyclePalette
	SaveState
	LoadSave
)

// SettingCode is a hub setting changed by a client.
type SettingCode = uint8

const (
	_ SettingCode = iota
	Compression
	CompressionLevel
	FrameCaching
)
