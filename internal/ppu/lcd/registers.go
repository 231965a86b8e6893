package lcd

import (
	"fmt"

	"github.com/silatcha/gboy/internal/types"
)

// Scroll holds the background viewport position (SCY, SCX).
type Scroll struct {
	SCY, SCX uint8
}

// Read returns the value of SCY or SCX.
func (s *Scroll) Read(address uint16) uint8 {
	switch address {
	case types.SCY:
		return s.SCY
	case types.SCX:
		return s.SCX
	}
	panic(fmt.Sprintf("lcd scroll: illegal read from address 0x%04X", address))
}

// Write sets SCY or SCX.
func (s *Scroll) Write(address uint16, value uint8) {
	switch address {
	case types.SCY:
		s.SCY = value
	case types.SCX:
		s.SCX = value
	default:
		panic(fmt.Sprintf("lcd scroll: illegal write to address 0x%04X", address))
	}
}

// Line holds the current scanline LY and its compare target LYC.
//
// A write to LY also restarts the PPU timing, which the PPU does on top
// of the register write.
type Line struct {
	LY, LYC uint8
}

// Read returns the value of LY or LYC.
func (l *Line) Read(address uint16) uint8 {
	switch address {
	case types.LY:
		return l.LY
	case types.LYC:
		return l.LYC
	}
	panic(fmt.Sprintf("lcd line: illegal read from address 0x%04X", address))
}

// Write sets LYC. Any write to LY sets it to 0.
func (l *Line) Write(address uint16, value uint8) {
	switch address {
	case types.LY:
		l.LY = 0
	case types.LYC:
		l.LYC = value
	default:
		panic(fmt.Sprintf("lcd line: illegal write to address 0x%04X", address))
	}
}

// Equal reports whether LY == LYC.
func (l *Line) Equal() bool {
	return l.LY == l.LYC
}

// Window holds the window position (WY, WX). WX is offset by 7.
type Window struct {
	WY, WX uint8
}

// Read returns the value of WY or WX.
func (w *Window) Read(address uint16) uint8 {
	switch address {
	case types.WY:
		return w.WY
	case types.WX:
		return w.WX
	}
	panic(fmt.Sprintf("lcd window: illegal read from address 0x%04X", address))
}

// Write sets WY or WX.
func (w *Window) Write(address uint16, value uint8) {
	switch address {
	case types.WY:
		w.WY = value
	case types.WX:
		w.WX = value
	default:
		panic(fmt.Sprintf("lcd window: illegal write to address 0x%04X", address))
	}
}

// Origin returns the first screen column covered by the window.
func (w *Window) Origin() int {
	if w.WX < 7 {
		return 0
	}
	return int(w.WX) - 7
}
