package ppu

import "github.com/silatcha/gboy/internal/ppu/lcd"

// timing is the part of the PPU state advanced by transition.
type timing struct {
	mode lcd.Mode
	dots uint64
	ly   uint8
}

// effects are the side effects of a single transition, applied by Step.
type effects struct {
	render  bool // draw the current line before leaving Pixels
	search  bool // run the OAM search for the new line
	present bool // hand the frame to the Video sink
	vblank  bool // request the VBlank interrupt
	stat    bool // request the LCD STAT interrupt
}

// transition advances t by at most one phase, consuming the duration of
// the completed phase from t.dots. It reports false when t.dots does not
// complete the current phase, in which case only LY may change.
func transition(t timing, enables lcd.Status) (timing, effects, bool) {
	var e effects

	switch t.mode {
	case lcd.Search:
		if t.dots < SearchDots {
			return t, e, false
		}
		t.dots -= SearchDots
		t.mode = lcd.Pixels
	case lcd.Pixels:
		if t.dots < PixelsDots {
			return t, e, false
		}
		t.dots -= PixelsDots
		t.mode = lcd.HBlank
		e.render = true
		e.stat = enables.HBlankInterrupt
	case lcd.HBlank:
		if t.dots < HBlankDots {
			return t, e, false
		}
		t.dots -= HBlankDots
		if t.ly == lastVisibleLine {
			t.mode = lcd.VBlank
			t.ly = ScreenHeight
			e.vblank = true
			e.present = true
			e.stat = enables.VBlankInterrupt
		} else {
			t.mode = lcd.Search
			t.ly++
			e.search = true
			e.stat = enables.OAMInterrupt
		}
	case lcd.VBlank:
		if t.dots < VBlankDots {
			t.ly = vblankLine(t.ly, t.dots)
			return t, e, false
		}
		t.dots -= VBlankDots
		t.mode = lcd.Search
		t.ly = 0
		e.search = true
		e.stat = enables.OAMInterrupt
	}

	return t, e, true
}

// vblankLine returns LY for a point in VBlank. LY reads 0 from the
// middle of line 153 until VBlank ends.
func vblankLine(ly uint8, dots uint64) uint8 {
	if ly == 0 {
		return 0
	}
	ly = ScreenHeight + uint8(dots/DotsPerLine)
	if ly == lastLine && dots%DotsPerLine > DotsPerLine/2 {
		return 0
	}
	return ly
}
