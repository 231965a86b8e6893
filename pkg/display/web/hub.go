// Package web streams presented frames to browsers over websockets.
package web

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"
	"github.com/silatcha/gboy/internal/ppu"
	"github.com/silatcha/gboy/internal/types"
	"github.com/silatcha/gboy/pkg/display"
	"github.com/silatcha/gboy/pkg/log"
)

var errNoRTT = errors.New("web: round trip time unavailable")

// Hub fans presented frames out to every connected client. It
// implements ppu.Video and http.Handler; Run must be running for clients
// to be served.
type Hub struct {
	clients              map[*Client]bool
	broadcast            chan []byte
	register, unregister chan *Client
	done                 chan struct{}

	// guarded by mu
	compression      bool
	compressionLevel int
	cache            *cache
	lastHash         uint64
	hasLast          bool
	currentID        uint8
	mu               sync.Mutex

	buf []byte
	log log.Logger
}

// Opt configures a Hub.
type Opt func(h *Hub)

// WithCompression brotli-compresses frames at the given level (0-11).
func WithCompression(level int) Opt {
	return func(h *Hub) {
		h.compression = true
		h.compressionLevel = level
	}
}

// WithCache keeps the last size frames on every client, so that
// repeated frames are sent as a slot number. 0 disables the cache.
func WithCache(size int) Opt {
	return func(h *Hub) {
		h.cache = newCache(size)
	}
}

// WithLogger sets the logger of the hub.
func WithLogger(l log.Logger) Opt {
	return func(h *Hub) {
		h.log = l
	}
}

// NewHub returns a hub with an 8 frame cache and no compression.
func NewHub(opts ...Opt) *Hub {
	h := &Hub{
		clients:          make(map[*Client]bool),
		broadcast:        make(chan []byte, 16),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		done:             make(chan struct{}),
		compressionLevel: brotli.DefaultCompression,
		cache:            newCache(8),
		buf:              make([]byte, 0, display.FrameSize),
		log:              log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// DrawVideo queues f for every client. A frame identical to the
// previous one is not sent, and frames are dropped rather than block
// the caller when the hub falls behind.
func (h *Hub) DrawVideo(f *ppu.Frame) {
	h.buf = display.AppendRGB(h.buf[:0], f)
	hash := xxhash.Sum64(h.buf)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.hasLast && hash == h.lastHash {
		return
	}
	h.lastHash, h.hasLast = hash, true

	if slot := h.cache.index(hash); slot >= 0 {
		h.send([]byte{FrameCache, uint8(slot)})
		return
	}

	payload, flags, err := h.encode(h.buf)
	if err != nil {
		h.log.Errorf("web: encoding frame: %v", err)
		return
	}
	slot := h.cache.add(hash, append([]byte{flags}, payload...))
	h.send(append([]byte{Frame, uint8(slot), flags}, payload...))
}

// encode returns the frame payload and its flags.
func (h *Hub) encode(rgb []byte) ([]byte, uint8, error) {
	if !h.compression {
		return append([]byte(nil), rgb...), 0, nil
	}

	var b bytes.Buffer
	w := brotli.NewWriterLevel(&b, h.compressionLevel)
	if _, err := w.Write(rgb); err != nil {
		return nil, 0, err
	}
	if err := w.Close(); err != nil {
		return nil, 0, err
	}
	return b.Bytes(), FlagCompressed, nil
}

func (h *Hub) send(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		h.log.Debugf("web: hub busy, frame dropped")
	}
}

// info returns a byte of information containing the various
// hub settings. The byte is constructed as follows:
//
//	Bit 0: Compression enabled
//	Bit 1: Frame caching enabled
func (h *Hub) info() byte {
	info := uint8(0)
	if h.compression {
		info |= types.Bit0
	}
	if h.cache.enabled {
		info |= types.Bit1
	}
	return info
}

// ServeHTTP upgrades the request to a websocket and attaches a client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// upgrade the connection to a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("web: upgrading %s: %v", r.RemoteAddr, err)
		return
	}

	c := h.newClient(conn, r)
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	h.log.Infof("web: client %d connected from %s (%s)", c.ID, c.Metadata.RemoteAddr, c.Metadata.UserAgent)

	// spawn read/write pumps
	go c.readPump()
	go c.writePump()
}

// Run serves the clients until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			return
		case c := <-h.register:
			// queued frames are already in the cache the client is
			// synced from
			h.flush()
			h.clients[c] = true
			h.syncCache(c)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; !ok {
				continue
			}
			delete(h.clients, c)
			close(c.Send)
			h.log.Infof("web: client %d disconnected after %s", c.ID, c.Uptime().Round(time.Second))

			// notify connected clients that this client has disconnected
			for other := range h.clients {
				select {
				case other.Send <- []byte{ClientClosing, c.ID}:
				default:
				}
			}
		case msg := <-h.broadcast:
			h.fanOut(msg)
		case <-t.C:
			// periodic latency report
			data := []byte{ServerInfo}
			for c := range h.clients {
				data = append(data, c.ID)
				data = binary.LittleEndian.AppendUint16(data, c.Latency())
			}
			for c := range h.clients {
				select {
				case c.Send <- data:
				default:
				}
			}
		}
	}
}

// fanOut sends msg to every client, dropping the clients that fall
// behind.
func (h *Hub) fanOut(msg []byte) {
	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			close(c.Send)
			delete(h.clients, c)
		}
	}
}

// flush delivers the queued broadcasts to the current clients.
func (h *Hub) flush() {
	for {
		select {
		case msg := <-h.broadcast:
			h.fanOut(msg)
		default:
			return
		}
	}
}

// syncCache sends the cached frames to a client that just joined.
func (h *Hub) syncCache(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for slot, e := range h.cache.cache {
		if !e.valid {
			continue
		}
		select {
		case c.Send <- append([]byte{FrameCacheSync, uint8(slot)}, e.data...):
		default:
		}
	}
}

// ListenAndServe serves the hub on addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h}
	go h.Run(ctx)

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	h.log.Infof("web: streaming on %s", addr)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

// newClient creates a new client and queues its ClientInfo message.
func (h *Hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentID++

	c := &Client{
		hub:  h,
		conn: conn,
		Send: make(chan []byte, 256),
		ID:   h.currentID,
		Metadata: struct {
			RemoteAddr string
			UserAgent  string
		}{RemoteAddr: r.RemoteAddr, UserAgent: r.Header.Get("User-Agent")},
		connectedAt: time.Now(),
	}
	c.Send <- []byte{ClientInfo, c.ID, h.info(), uint8(h.compressionLevel)}
	return c
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
