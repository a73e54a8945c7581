//go:build test

package web

import "errors"

const compressionSupported = false

func compress([]byte, int) ([]byte, error) {
	return nil, errors.New("web: compression requires cgo")
}
