// Package ppu implements the Game Boy's (P)ixel (P)rocessing (U)nit as a
// scanline renderer driven by a dot counter.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
package ppu

import (
	"github.com/silatcha/gboy/internal/interrupts"
	"github.com/silatcha/gboy/internal/ppu/lcd"
	"github.com/silatcha/gboy/internal/ppu/palette"
	"github.com/silatcha/gboy/internal/types"
	"github.com/silatcha/gboy/pkg/log"
)

const (
	// SearchDots is the duration of the OAM search (mode 2).
	SearchDots = 80
	// PixelsDots is the duration of the pixel transfer (mode 3). The
	// hardware takes 172-289 dots depending on objects and window; a
	// fixed duration is used instead.
	PixelsDots = 230
	// HBlankDots is the duration of the horizontal blank (mode 0), the
	// remainder of the 456 dot line.
	HBlankDots = 146
	// VBlankDots is the duration of the vertical blank (mode 1), 10 lines.
	VBlankDots = 4560

	// DotsPerLine is the duration of a single scanline.
	DotsPerLine = SearchDots + PixelsDots + HBlankDots
	// FrameDots is the duration of a complete frame.
	FrameDots = DotsPerLine*ScreenHeight + VBlankDots

	lastVisibleLine = ScreenHeight - 1
	lastLine        = 153
)

// PPU implements the Game Boy's (P)ixel (P)rocessing (U)nit.
type PPU struct {
	mode   types.Mode
	video  Video
	log    log.Logger
	gating bool

	// dots elapsed in the current phase
	dots uint64

	lcdc     *lcd.Controller
	status   *lcd.Status
	scroll   lcd.Scroll
	line     lcd.Line
	win      lcd.Window
	pal      *palette.Pal
	colorPal *palette.ColorPal
	vram     *VRAM
	oam      *OAM

	buffer Frame
	// shadow holds the background/window colour index of every pixel
	// of buffer, or bgPriority.
	shadow [ScreenHeight][ScreenWidth]uint8

	vblankInt bool
	lcdInt    bool

	// Debug controls
	Debug struct {
		OBJDisabled        bool // Force disable OBJ rendering
		BackgroundDisabled bool // Force disable BG layer
		WindowDisabled     bool // Force disable window layer
	}
}

// New returns a PPU for the given hardware mode, presenting frames to
// video. The display starts disabled.
func New(mode types.Mode, video Video, opts ...Opt) *PPU {
	if video == nil {
		video = nopVideo{}
	}
	p := &PPU{
		mode:     mode,
		video:    video,
		log:      log.NewNullLogger(),
		lcdc:     lcd.NewController(),
		status:   lcd.NewStatus(),
		pal:      palette.NewPal(palette.Greyscale),
		colorPal: palette.NewColorPal(),
		vram:     NewVRAM(mode),
		oam:      NewOAM(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.status.SetMode(lcd.HBlank)
	for y := range p.buffer {
		for x := range p.buffer[y] {
			p.buffer[y][x] = palette.White
		}
	}
	return p
}

// Step advances the PPU by cycles dots. It does nothing while the
// display is disabled.
func (p *PPU) Step(cycles uint64) {
	if !p.lcdc.Enabled {
		return
	}

	p.dots += cycles
	for {
		next, e, changed := transition(timing{p.status.Mode, p.dots, p.line.LY}, *p.status)

		if e.render {
			p.drawLine(p.line.LY)
		}
		p.dots, p.line.LY = next.dots, next.ly
		p.status.SetMode(next.mode)

		if e.search {
			p.oam.Search(p.line.LY, p.lcdc.SpriteHeight)
		}
		if e.vblank {
			p.vblankInt = true
		}
		if e.stat {
			p.lcdInt = true
		}
		if e.present {
			p.video.DrawVideo(&p.buffer)
		}
		p.compareLine()

		if !changed {
			return
		}
	}
}

// compareLine updates the coincidence flag, requesting the STAT
// interrupt when LY becomes equal to LYC.
func (p *PPU) compareLine() {
	if p.status.SetCoincidence(p.line.Equal()) && p.status.CoincidenceInterrupt {
		p.lcdInt = true
	}
}

// TakeVBlankInt returns the pending VBlank request, clearing it.
func (p *PPU) TakeVBlankInt() (interrupts.Flag, bool) {
	if !p.vblankInt {
		return 0, false
	}
	p.vblankInt = false
	return interrupts.VBlankFlag, true
}

// TakeLCDInt returns the pending LCD STAT request, clearing it.
func (p *PPU) TakeLCDInt() (interrupts.Flag, bool) {
	if !p.lcdInt {
		return 0, false
	}
	p.lcdInt = false
	return interrupts.LCDFlag, true
}

// restart places the timing at the start of line 0.
func (p *PPU) restart() {
	p.dots, p.line.LY = 0, 0
	p.status.SetMode(lcd.Search)
	p.oam.Search(0, p.lcdc.SpriteHeight)
	p.compareLine()
}

func (p *PPU) enable() {
	p.log.Debugf("ppu: display enabled")
	p.restart()
}

func (p *PPU) disable() {
	if p.status.Mode != lcd.VBlank {
		p.log.Warnf("ppu: display disabled outside VBlank (LY=%d, mode=%s)", p.line.LY, p.status.Mode)
	}
	p.log.Debugf("ppu: display disabled")

	p.dots, p.line.LY = 0, 0
	p.status.SetMode(lcd.HBlank)
	// no interrupt while the display is off, but the flag must follow
	// LY so the next match is seen as an edge
	p.status.SetCoincidence(p.line.Equal())
	p.clear()
}

// clear fills the frame with the blank colour and presents it.
func (p *PPU) clear() {
	c := p.pal.ClearColor()
	if p.mode == types.Color {
		c = p.colorPal.ClearColor()
	}
	for y := range p.buffer {
		for x := range p.buffer[y] {
			p.buffer[y][x] = c
			p.shadow[y][x] = 0
		}
	}
	p.video.DrawVideo(&p.buffer)
}

// Framebuffer returns the frame being drawn.
func (p *PPU) Framebuffer() *Frame {
	return &p.buffer
}

// ColorIndex returns the background/window colour index that produced
// the pixel at (x, y). Color mode tiles with priority over objects
// report 4.
func (p *PPU) ColorIndex(x, y int) uint8 {
	return p.shadow[y][x]
}

// StatMode returns the current phase.
func (p *PPU) StatMode() lcd.Mode {
	return p.status.Mode
}

// LY returns the current line.
func (p *PPU) LY() uint8 {
	return p.line.LY
}

// Dots returns the dots elapsed in the current phase.
func (p *PPU) Dots() uint64 {
	return p.dots
}

// Enabled reports whether the display is on.
func (p *PPU) Enabled() bool {
	return p.lcdc.Enabled
}

// HardwareMode returns the mode the PPU was built for.
func (p *PPU) HardwareMode() types.Mode {
	return p.mode
}

// VisibleSprites returns the OAM indices of the objects found on the
// current line by the last OAM search.
func (p *PPU) VisibleSprites() []int {
	return p.oam.Visible()
}

// VRAM returns the video RAM, bypassing access gating.
func (p *PPU) VRAM() *VRAM {
	return p.vram
}

// OAM returns the object attribute memory, bypassing access gating.
func (p *PPU) OAM() *OAM {
	return p.oam
}
