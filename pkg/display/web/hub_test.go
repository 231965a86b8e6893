package web

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gorilla/websocket"
	"github.com/silatcha/gboy/internal/ppu"
	"github.com/silatcha/gboy/pkg/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// next returns the next message that is not a latency report.
func next(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		if msg[0] != ServerInfo {
			return msg
		}
	}
}

func solid(v uint8) *ppu.Frame {
	f := &ppu.Frame{}
	for y := range f {
		for x := range f[y] {
			f[y][x] = [3]uint8{v, v, v}
		}
	}
	return f
}

func TestHubStreamsFrames(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(WithCache(4))
	go h.Run(ctx)
	conn := connect(t, h)

	info := next(t, conn)
	require.Equal(t, ClientInfo, info[0])
	assert.Equal(t, uint8(1), info[1])

	a, b := solid(0x00), solid(0xFF)

	h.DrawVideo(a)
	msg := next(t, conn)
	require.Equal(t, Frame, msg[0])
	assert.Equal(t, uint8(0), msg[1])
	assert.Equal(t, uint8(0), msg[2])
	assert.Equal(t, display.AppendRGB(nil, a), msg[3:])

	h.DrawVideo(a) // duplicate, not sent
	h.DrawVideo(b)
	msg = next(t, conn)
	require.Equal(t, Frame, msg[0])
	assert.Equal(t, uint8(1), msg[1])

	h.DrawVideo(a)
	msg = next(t, conn)
	assert.Equal(t, []byte{FrameCache, 0}, msg)
}

func TestHubCompression(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(WithCompression(4), WithCache(0))
	go h.Run(ctx)
	conn := connect(t, h)

	info := next(t, conn)
	assert.Equal(t, uint8(1), info[2]&1, "compression bit")
	assert.Equal(t, uint8(4), info[3])

	f := solid(0x77)
	f[5][5] = [3]uint8{1, 2, 3}
	h.DrawVideo(f)

	msg := next(t, conn)
	require.Equal(t, Frame, msg[0])
	require.Equal(t, uint8(FlagCompressed), msg[2])
	assert.Less(t, len(msg), display.FrameSize)

	rgb, err := io.ReadAll(brotli.NewReader(bytes.NewReader(msg[3:])))
	require.NoError(t, err)
	assert.Equal(t, display.AppendRGB(nil, f), rgb)
}

func TestHubSyncsCacheToLateClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub()
	go h.Run(ctx)

	h.DrawVideo(solid(0x10))
	h.DrawVideo(solid(0x20))

	conn := connect(t, h)
	require.Equal(t, ClientInfo, next(t, conn)[0])

	first, second := next(t, conn), next(t, conn)
	assert.Equal(t, FrameCacheSync, first[0])
	assert.Equal(t, uint8(0), first[1])
	assert.Equal(t, FrameCacheSync, second[0])
	assert.Equal(t, uint8(1), second[1])
	assert.Equal(t, display.AppendRGB(nil, solid(0x20)), second[3:])
}

func TestHubFlushesQueuedFramesBeforeSync(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub()
	// queued before Run picks them up
	h.DrawVideo(solid(0x10))
	h.DrawVideo(solid(0x20))
	go h.Run(ctx)

	c := &Client{hub: h, Send: make(chan []byte, 16), connectedAt: time.Now()}
	h.register <- c

	var got []byte
	timeout := time.After(200 * time.Millisecond)
	for done := false; !done; {
		select {
		case msg, ok := <-c.Send:
			if !ok {
				done = true
			} else if msg[0] != ServerInfo {
				got = append(got, msg[0])
			}
		case <-timeout:
			done = true
		}
	}
	assert.Equal(t, []byte{FrameCacheSync, FrameCacheSync}, got)
}

func TestNewClient(t *testing.T) {
	h := NewHub(WithCompression(3))
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("User-Agent", "gboy-test")

	c := h.newClient(nil, r)
	assert.Equal(t, uint8(1), c.ID)
	assert.Equal(t, "gboy-test", c.Metadata.UserAgent)
	assert.Equal(t, r.RemoteAddr, c.Metadata.RemoteAddr)
	assert.Less(t, c.Uptime(), time.Minute)
	assert.Equal(t, []byte{ClientInfo, 1, h.info(), 3}, <-c.Send)
}

func TestHubKeepAlive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub()
	go h.Run(ctx)
	conn := connect(t, h)
	require.Equal(t, ClientInfo, next(t, conn)[0])

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{KeepAlive}))
	h.DrawVideo(solid(0x42))
	assert.Equal(t, Frame, next(t, conn)[0])
}

func TestCache(t *testing.T) {
	c := newCache(2)
	assert.Equal(t, -1, c.index(1))
	assert.Equal(t, 0, c.add(1, nil))
	assert.Equal(t, 1, c.add(2, nil))
	assert.Equal(t, 0, c.add(3, nil))
	assert.Equal(t, -1, c.index(1))
	assert.Equal(t, 1, c.index(2))
	assert.Equal(t, 0, c.index(3))
}
