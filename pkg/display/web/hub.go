package web

import (
	"encoding/binary"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gochip8/internal/types"
)

// hub tracks the connected clients, and broadcasts messages to
// them. Only run touches the client set.
type hub struct {
	clients map[*Client]bool

	broadcast            chan []byte
	register, unregister chan *Client
	inbound              chan message
	// resync is signalled when a client connects, so that the
	// driver can send everyone a fresh FrameSync
	resync chan struct{}
	done   chan struct{}

	// ids marks the client IDs in use, ID 0 is never handed out
	ids [256]bool
	mu  sync.Mutex

	// status is the info byte sent to new clients, kept up to
	// date by the driver
	status atomic.Uint32
}

// errHubFull is returned when every client ID is in use.
var errHubFull = errors.New("web: too many clients")

func newHub() *hub {
	return &hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan message, 16),
		resync:     make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeHTTP upgrades the connection to a websocket, and
// registers the client.
func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := h.newClient(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.releaseID(c.ID)
		return // the upgrader has already replied
	}
	c.conn = conn

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.readPump()
	go c.writePump()
}

// newClient creates a new client with the lowest free ID.
func (h *hub) newClient(r *http.Request) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id := 1; id < len(h.ids); id++ {
		if h.ids[id] {
			continue
		}
		h.ids[id] = true
		return &Client{
			hub:         h,
			send:        make(chan []byte, 64),
			ID:          uint8(id),
			RemoteAddr:  r.RemoteAddr,
			connectedAt: time.Now(),
		}, nil
	}
	return nil, errHubFull
}

// releaseID frees id for the next client.
func (h *hub) releaseID(id uint8) {
	h.mu.Lock()
	h.ids[id] = false
	h.mu.Unlock()
}

// run handles the client set until done is closed.
func (h *hub) run() {
	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-h.done:
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			c.send <- []byte{ClientInfo, c.ID, byte(h.status.Load())}
			select {
			case h.resync <- struct{}{}:
			default:
			}
		case c := <-h.unregister:
			if !h.clients[c] {
				continue
			}
			h.drop(c)
			h.sendAll([]byte{ClientClosing, c.ID})
		case msg := <-h.broadcast:
			h.sendAll(msg)
		case <-t.C:
			if len(h.clients) == 0 {
				continue
			}
			data := []byte{ServerInfo}
			for c := range h.clients {
				data = append(data, c.ID)
				data = binary.LittleEndian.AppendUint16(data, uint16(c.avgLatency.Load()))
			}
			h.sendAll(data)
		}
	}
}

// sendAll queues msg for every client, dropping any client that
// has fallen too far behind.
func (h *hub) sendAll(msg []byte) {
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.drop(c)
		}
	}
}

func (h *hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.releaseID(c.ID)
}

// info returns a byte of information containing the various
// hub settings. The byte is constructed as follows:
//
//	Bit 0: Emulator running
//	Bit 1: Emulator paused
//	Bit 2: Compression enabled
//	Bit 3: Frame caching enabled
func info(running, paused, compression, caching bool) byte {
	var b byte
	if running {
		b |= types.Bit0
	}
	if paused {
		b |= types.Bit1
	}
	if compression {
		b |= types.Bit2
	}
	if caching {
		b |= types.Bit3
	}
	return b
}
