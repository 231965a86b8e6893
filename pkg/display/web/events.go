package web

// Type is the first byte of every message sent to a client.
type Type = uint8

const (
	// Frame carries a frame: [Frame, slot, flags, pixels...]. The client
	// keeps it in cache slot slot.
	Frame Type = iota
	// FrameCache repeats the frame held in a cache slot: [FrameCache, slot].
	FrameCache
	// FrameCacheSync fills a cache slot without displaying it, sent to
	// clients joining late: [FrameCacheSync, slot, flags, pixels...].
	FrameCacheSync
	// ClientInfo tells a client its ID and the hub settings:
	// [ClientInfo, id, info, compression level].
	ClientInfo
	// ServerInfo reports the latency of every client:
	// [ServerInfo, (id, latency ms little-endian uint16)...].
	ServerInfo
	// ClientClosing announces a client left: [ClientClosing, id].
	ClientClosing
)

// Frame flags.
const (
	// FlagCompressed marks brotli-compressed pixels.
	FlagCompressed = 1 << iota
)

// Event is the second byte of a settings message sent by a client:
// [settingsMessage, Event, value].
type Event = uint8

const (
	_ Event = iota
	Compression
	CompressionLevel
	FrameCaching
	KeepAlive = 254
	Closing   = 255
)

const settingsMessage = 10
