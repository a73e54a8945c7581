package web

import (
	"bytes"
	"encoding/binary"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gochip8/internal/keypad"
	"github.com/thelolagemann/gochip8/internal/ppu"
	"github.com/thelolagemann/gochip8/pkg/display"
	"github.com/thelolagemann/gochip8/pkg/emulator"
)

func testFrame(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, ppu.ScreenWidth*ppu.ScreenHeight*3)
}

func TestCache(t *testing.T) {
	c := newCache(2)
	a, b, d := []byte("a"), []byte("b"), []byte("d")

	if slot, hit := c.lookup(a); hit || slot != 0 {
		t.Errorf("expected miss in slot 0, got %d %t", slot, hit)
	}
	if slot, hit := c.lookup(b); hit || slot != 1 {
		t.Errorf("expected miss in slot 1, got %d %t", slot, hit)
	}
	if slot, hit := c.lookup(a); !hit || slot != 0 {
		t.Errorf("expected hit in slot 0, got %d %t", slot, hit)
	}

	// evicts a
	c.lookup(d)
	if _, hit := c.lookup(a); hit {
		t.Errorf("expected a to be evicted")
	}

	c.reset()
	if slot, hit := c.lookup(b); hit || slot != 0 {
		t.Errorf("expected empty cache after reset, got %d %t", slot, hit)
	}
}

func TestEncoder(t *testing.T) {
	e := newEncoder()
	if msg, _ := e.sync(); msg != nil {
		t.Errorf("expected no sync before the first frame")
	}

	f := testFrame(0xFF)
	msg, err := e.encode(f)
	if err != nil {
		t.Fatal(err)
	}
	if msg[0] != Frame || msg[1] != 0 || binary.LittleEndian.Uint16(msg[2:]) != 0 {
		t.Errorf("expected uncompressed frame in slot 0, got % X", msg[:4])
	}
	if !bytes.Equal(msg[4:], f) {
		t.Errorf("expected frame payload")
	}

	msg, _ = e.encode(testFrame(0x00))
	if msg[0] != Frame || binary.LittleEndian.Uint16(msg[2:]) != 1 {
		t.Errorf("expected frame in slot 1, got % X", msg[:4])
	}

	msg, _ = e.encode(f)
	if len(msg) != 4 || msg[0] != FrameCache || binary.LittleEndian.Uint16(msg[2:]) != 0 {
		t.Errorf("expected cached frame from slot 0, got % X", msg)
	}

	msg, _ = e.sync()
	if msg[0] != FrameSync || !bytes.Equal(msg[2:], f) {
		t.Errorf("expected sync of the last frame")
	}
	if msg, _ = e.encode(f); msg[0] != Frame {
		t.Errorf("expected a full frame after sync, got %d", msg[0])
	}
}

func TestEncoder_Settings(t *testing.T) {
	e := newEncoder()
	if !e.apply(FrameCaching, 0) {
		t.Errorf("expected caching change to resync")
	}
	f := testFrame(1)
	e.encode(f)
	if msg, _ := e.encode(f); msg[0] != Frame {
		t.Errorf("expected no cache hits with caching disabled")
	}

	e.apply(CompressionLevel, 42)
	if e.quality != 11 {
		t.Errorf("expected quality clamped to 11, got %d", e.quality)
	}
	if e.apply(SettingCode(99), 1) {
		t.Errorf("expected unknown setting to be ignored")
	}
}

type fakeEmulator struct {
	status emulator.Status
	sent   []emulator.Command
}

func (f *fakeEmulator) SendCommand(c emulator.CommandPacket) emulator.ResponsePacket {
	f.sent = append(f.sent, c.Command)
	return emulator.ResponsePacket{Command: c.Command}
}
func (f *fakeEmulator) Speed() float64          { return 1 }
func (f *fakeEmulator) Status() emulator.Status { return f.status }

var _ display.Emulator = (*fakeEmulator)(nil)

func TestHandle(t *testing.T) {
	emu := &fakeEmulator{status: emulator.Running}
	w := &webDriver{emu: emu}
	enc := newEncoder()
	pressed, released := make(chan keypad.Key, 1), make(chan keypad.Key, 1)

	if _, err := w.handle([]byte{KeyDown, 0xA}, enc, pressed, released); err != nil {
		t.Fatal(err)
	}
	if k := <-pressed; k != keypad.KeyA {
		t.Errorf("expected key A, got %X", k)
	}
	w.handle([]byte{KeyUp, 0x3}, enc, pressed, released)
	if k := <-released; k != keypad.Key3 {
		t.Errorf("expected key 3, got %X", k)
	}
	if _, err := w.handle([]byte{KeyDown, 0x10}, enc, pressed, released); err == nil {
		t.Errorf("expected error for key out of range")
	}

	w.handle([]byte{Control, PausePlay}, enc, pressed, released)
	w.handle([]byte{Control, Reset}, enc, pressed, released)
	if len(emu.sent) != 2 || emu.sent[0] != emulator.CommandPause || emu.sent[1] != emulator.CommandReset {
		t.Errorf("expected pause then reset, got %v", emu.sent)
	}

	resync, err := w.handle([]byte{Setting, FrameCaching, 0}, enc, pressed, released)
	if err != nil || !resync || enc.cache.enabled {
		t.Errorf("expected caching disabled with resync, got %t %v", resync, err)
	}
	if _, err := w.handle([]byte{Setting}, enc, pressed, released); err == nil {
		t.Errorf("expected error for short message")
	}
	if _, err := w.handle([]byte{0x42, 0}, enc, pressed, released); err == nil {
		t.Errorf("expected error for unknown message")
	}
}

func TestInfo(t *testing.T) {
	if b := info(true, false, true, true); b != 0b1101 {
		t.Errorf("expected 0b1101, got %04b", b)
	}
}

func TestHub(t *testing.T) {
	h := newHub()
	h.status.Store(0b1001)
	go h.run()
	defer close(h.done)

	srv := httptest.NewServer(h)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if len(msg) != 3 || msg[0] != ClientInfo || msg[1] != 1 || msg[2] != 0b1001 {
		t.Errorf("expected client info for client 1, got % X", msg)
	}

	select {
	case <-h.resync:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a resync request")
	}

	h.broadcast <- []byte{Title, 'h', 'i'}
	if _, msg, err = conn.ReadMessage(); err != nil || string(msg[1:]) != "hi" {
		t.Errorf("expected title broadcast, got % X %v", msg, err)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{KeyDown, 5}); err != nil {
		t.Fatal(err)
	}
	select {
	case m := <-h.inbound:
		if !bytes.Equal(m.data, []byte{KeyDown, 5}) || m.client.ID != 1 {
			t.Errorf("expected key down from client 1, got % X", m.data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected an inbound message")
	}
}

func TestHub_ClientIDs(t *testing.T) {
	h := newHub()
	r := httptest.NewRequest("GET", "/ws", nil)

	seen := map[uint8]*Client{}
	for i := 0; i < 255; i++ {
		c, err := h.newClient(r)
		if err != nil {
			t.Fatalf("client %d: %v", i, err)
		}
		if c.ID == 0 || seen[c.ID] != nil {
			t.Fatalf("expected a fresh non-zero ID, got %d", c.ID)
		}
		seen[c.ID] = c
		h.clients[c] = true
	}
	if _, err := h.newClient(r); err != errHubFull {
		t.Errorf("expected errHubFull, got %v", err)
	}

	// a dropped client's ID is handed out again
	h.drop(seen[42])
	c, err := h.newClient(r)
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != 42 {
		t.Errorf("expected ID 42 to be reused, got %d", c.ID)
	}
}

func TestHub_Full(t *testing.T) {
	h := newHub()
	for id := range h.ids {
		h.ids[id] = true
	}
	go h.run()
	defer close(h.done)

	srv := httptest.NewServer(h)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err == nil {
		t.Fatal("expected the dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %v", resp)
	}
}
