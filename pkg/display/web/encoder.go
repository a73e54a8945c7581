package web

import (
	"encoding/binary"
	"errors"
)

const (
	// cacheSize is the number of frames clients keep.
	cacheSize = 64
	// defaultQuality is the default brotli quality.
	defaultQuality = 5
)

var errNotTCP = errors.New("web: not a TCP connection")

// encoder turns frames into messages, sending repeated frames as
// a cache slot and compressing the rest when enabled.
type encoder struct {
	cache    *cache
	compress bool
	quality  int
	last     []byte
}

func newEncoder() *encoder {
	return &encoder{
		cache:   newCache(cacheSize),
		quality: defaultQuality,
	}
}

// payload returns f, compressed if enabled, and the compression
// flag byte.
func (e *encoder) payload(f []byte) ([]byte, byte, error) {
	if !e.compress {
		return f, 0, nil
	}
	b, err := compress(f, e.quality)
	if err != nil {
		return nil, 0, err
	}
	return b, 1, nil
}

// encode returns the message for frame f:
//
//	Frame      compressed slot(2) payload
//	FrameCache 0          slot(2)
func (e *encoder) encode(f []byte) ([]byte, error) {
	e.last = append(e.last[:0], f...)

	slot, hit := e.cache.lookup(f)
	if hit {
		msg := []byte{FrameCache, 0, 0, 0}
		binary.LittleEndian.PutUint16(msg[2:], uint16(slot))
		return msg, nil
	}

	payload, compressed, err := e.payload(f)
	if err != nil {
		return nil, err
	}
	msg := make([]byte, 4, 4+len(payload))
	msg[0], msg[1] = Frame, compressed
	binary.LittleEndian.PutUint16(msg[2:], uint16(slot))
	return append(msg, payload...), nil
}

// sync empties the cache and returns the last frame as a
// FrameSync message, or nil before the first frame. Clients
// empty their cache when they receive it.
func (e *encoder) sync() ([]byte, error) {
	e.cache.reset()
	if e.last == nil {
		return nil, nil
	}
	payload, compressed, err := e.payload(e.last)
	if err != nil {
		return nil, err
	}
	return append([]byte{FrameSync, compressed}, payload...), nil
}

// apply changes a setting, reporting whether clients need to
// resynchronise.
func (e *encoder) apply(setting SettingCode, value byte) bool {
	switch setting {
	case Compression:
		e.compress = value == 1 && compressionSupported
	case CompressionLevel:
		if value > 11 {
			value = 11
		}
		e.quality = int(value)
	case FrameCaching:
		e.cache.enabled = value == 1
	default:
		return false
	}
	return true
}
