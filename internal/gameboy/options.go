package gameboy

import (
	"github.com/silatcha/gboy/internal/ppu"
	"github.com/silatcha/gboy/internal/ppu/palette"
	"github.com/silatcha/gboy/internal/types"
	"github.com/silatcha/gboy/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// AsMode selects the hardware the PPU emulates.
func AsMode(m types.Mode) Opt {
	return func(gb *GameBoy) {
		gb.mode = m
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithVideo sets the sink every finished frame is presented to.
func WithVideo(v ppu.Video) Opt {
	return func(gb *GameBoy) {
		gb.video = v
	}
}

// WithAccessGating locks VRAM and OAM out of the bus while the PPU is
// using them.
func WithAccessGating() Opt {
	return func(gb *GameBoy) {
		gb.ppuOpts = append(gb.ppuOpts, ppu.WithAccessGating())
	}
}

// WithShades sets the base colours of the Monochrome palettes.
func WithShades(p palette.Palette) Opt {
	return func(gb *GameBoy) {
		gb.ppuOpts = append(gb.ppuOpts, ppu.WithShades(p))
	}
}

// WithSampler registers s to observe the PPU after every step.
func WithSampler(s Sampler) Opt {
	return func(gb *GameBoy) {
		gb.sampler = s
	}
}
