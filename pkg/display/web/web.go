// Package web implements a display driver that streams frames to
// browsers over a websocket, and reads keypad input back.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/display/event"
)

func init() {
	driver := &webDriver{}
	display.Install("web", driver, []display.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &driver.addr,
			Type:        "string",
			Description: "Address to serve the web player on",
		},
		{
			Name:        "compression",
			Default:     false,
			Value:       &driver.compression,
			Type:        "bool",
			Description: "Compress frames with brotli",
		},
	})
}

type webDriver struct {
	addr        string
	compression bool

	emu display.Emulator
	srv *http.Server
}

func (w *webDriver) Initialize(emu display.Emulator) {
	w.emu = emu
}

// Start serves the player until the emulator quits.
func (w *webDriver) Start(frames <-chan []byte, events <-chan event.Event, pressed, released chan<- keypad.Key) error {
	h := newHub()
	enc := newEncoder()
	enc.apply(Compression, boolByte(w.compression))
	w.updateStatus(h, enc)

	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/", func(wr http.ResponseWriter, r *http.Request) {
		wr.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = wr.Write([]byte(indexPage))
	})
	w.srv = &http.Server{Addr: w.addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		if err := w.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go h.run()
	defer close(h.done)

	for {
		select {
		case f := <-frames:
			msg, err := enc.encode(f)
			if err != nil {
				return err
			}
			h.broadcast <- msg
		case <-h.resync:
			if err := w.sync(h, enc); err != nil {
				return err
			}
		case m := <-h.inbound:
			resync, err := w.handle(m.data, enc, pressed, released)
			if err != nil {
				continue // malformed message
			}
			w.updateStatus(h, enc)
			if resync {
				if err := w.sync(h, enc); err != nil {
					return err
				}
			}
		case e := <-events:
			switch e.Type {
			case event.Title:
				h.broadcast <- append([]byte{Title}, e.Data.(string)...)
			case event.Sound:
				h.broadcast <- []byte{Sound, boolByte(e.Data.(bool))}
			case event.Error:
				h.broadcast <- append([]byte{Error}, e.Data.(error).Error()...)
			case event.Quit:
				return w.Stop()
			}
			w.updateStatus(h, enc)
		case err := <-errCh:
			return fmt.Errorf("web: %w", err)
		}
	}
}

func (w *webDriver) sync(h *hub, enc *encoder) error {
	msg, err := enc.sync()
	if err != nil || msg == nil {
		return err
	}
	h.broadcast <- msg
	return nil
}

func (w *webDriver) updateStatus(h *hub, enc *encoder) {
	status := w.emu.Status()
	h.status.Store(uint32(info(status.IsRunning(), status.IsPaused(), enc.compress, enc.cache.enabled)))
}

var errMalformed = errors.New("web: malformed message")

// handle carries out a client message, reporting whether clients
// need to resynchronise.
func (w *webDriver) handle(data []byte, enc *encoder, pressed, released chan<- keypad.Key) (bool, error) {
	if len(data) < 2 {
		return false, errMalformed
	}

	switch data[0] {
	case KeyDown, KeyUp:
		k := data[1]
		if k >= types.KeyCount {
			return false, errMalformed
		}
		if data[0] == KeyDown {
			pressed <- k
		} else {
			released <- k
		}
	case Control:
		switch data[1] {
		case PausePlay:
			display.TogglePause(w.emu)
		case Reset:
			w.emu.SendCommand(display.Reset)
		case CyclePalette:
			w.emu.SendCommand(display.CyclePalette)
		case SaveState:
			w.emu.SendCommand(display.SaveState)
		case LoadSave:
			w.emu.SendCommand(display.LoadSave)
		default:
			return false, errMalformed
		}
	case Setting:
		if len(data) < 3 {
			return false, errMalformed
		}
		return enc.apply(data[1], data[2]), nil
	default:
		return false, errMalformed
	}
	return false, nil
}

// Stop shuts the server down, closing every connection.
func (w *webDriver) Stop() error {
	if w.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return w.srv.Shutdown(ctx)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
