package ppu

import (
	"github.com/silatcha/gboy/internal/ppu/palette"
	"github.com/silatcha/gboy/pkg/log"
)

// Opt configures a PPU.
type Opt func(p *PPU)

// WithLogger sets the logger used by the PPU.
func WithLogger(l log.Logger) Opt {
	return func(p *PPU) {
		p.log = l
	}
}

// WithAccessGating blocks bus access to OAM during Search and Pixels,
// and to VRAM and colour palette data during Pixels, as the hardware
// does. Blocked reads return 0xFF and blocked writes are dropped.
func WithAccessGating() Opt {
	return func(p *PPU) {
		p.gating = true
	}
}

// WithShades sets the base colours of the Monochrome palettes.
func WithShades(shades palette.Palette) Opt {
	return func(p *PPU) {
		p.pal.Shades = shades
	}
}
