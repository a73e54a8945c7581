//go:build !test

package web

import "github.com/google/brotli/go/cbrotli"

// compressionSupported reports whether frames can be compressed.
const compressionSupported = true

// compress compresses a frame with brotli at the given quality,
// 0 - 11.
func compress(b []byte, quality int) ([]byte, error) {
	return cbrotli.Encode(b, cbrotli.WriterOptions{Quality: quality})
}
