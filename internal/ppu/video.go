package ppu

import "github.com/silatcha/gboy/internal/ppu/palette"

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144
)

// Frame is a complete 160x144 RGB picture.
type Frame [ScreenHeight][ScreenWidth]palette.Color

// Video receives every finished frame. DrawVideo is called on the
// emulation goroutine, and frame is only valid for the duration of the
// call.
type Video interface {
	DrawVideo(frame *Frame)
}

// VideoFunc adapts a function to the Video interface.
type VideoFunc func(frame *Frame)

// DrawVideo calls f(frame).
func (f VideoFunc) DrawVideo(frame *Frame) {
	f(frame)
}

type nopVideo struct{}

func (nopVideo) DrawVideo(*Frame) {}
