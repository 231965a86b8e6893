package ppu

import (
	"github.com/silatcha/gboy/internal/ppu/lcd"
	"github.com/silatcha/gboy/internal/ppu/palette"
	"github.com/silatcha/gboy/internal/types"
)

// bgPriority is stored in the shadow buffer for Color mode tiles whose
// attributes give them priority over every object.
const bgPriority = 4

// Tile map attribute flags (Color mode, VRAM bank 1).
const (
	attrPriority = types.Bit7
	attrFlipY    = types.Bit6
	attrFlipX    = types.Bit5
	attrBank     = types.Bit3
	attrPalette  = 0x07
)

// tilePixel extracts the 2-bit colour index of column col (7 is the
// leftmost pixel) from a pair of bitplane bytes.
func tilePixel(lo, hi uint8, col int) uint8 {
	return (lo>>col)&1 | ((hi>>col)&1)<<1
}

// drawLine composites background, window and objects of line ly into
// the framebuffer.
func (p *PPU) drawLine(ly uint8) {
	// Monochrome hardware shows a blank line with the background off,
	// Color hardware always draws it.
	showBG := p.lcdc.BackgroundEnabled || p.mode == types.Color
	if showBG && !p.Debug.BackgroundDisabled {
		p.drawBackground(ly)
	} else {
		p.clearLine(ly)
	}
	if p.lcdc.WindowEnabled && !p.Debug.WindowDisabled {
		p.drawWindow(ly)
	}
	if p.lcdc.SpriteEnabled && !p.Debug.OBJDisabled {
		p.drawObjects(ly)
	}
}

func (p *PPU) clearLine(ly uint8) {
	c := p.pal.ClearColor()
	if p.mode == types.Color {
		c = p.colorPal.ClearColor()
	}
	for x := 0; x < ScreenWidth; x++ {
		p.buffer[ly][x] = c
		p.shadow[ly][x] = 0
	}
}

// pointColor fetches the colour and colour index of the pixel at (x, y)
// of the 256x256 picture described by tile map m and tile data d.
func (p *PPU) pointColor(y, x int, m lcd.TileMapAddr, d lcd.TileDataAddr) (palette.Color, uint8) {
	cell := uint16(m) - types.VRAMStart + uint16(32*(y/8)+x/8)
	tile := p.vram.banks[0][cell]

	var flags uint8
	if p.mode == types.Color {
		flags = p.vram.banks[1][cell]
	}

	col, row := 7-x&7, y&7
	if flags&attrFlipX != 0 {
		col = 7 - col
	}
	if flags&attrFlipY != 0 {
		row = 7 - row
	}

	bank := 0
	if flags&attrBank != 0 {
		bank = 1
	}
	offset := d.Offset(tile) + uint16(row*2)
	index := tilePixel(p.vram.banks[bank][offset], p.vram.banks[bank][offset+1], col)

	if p.mode != types.Color {
		return p.pal.BGColor(index), index
	}

	c := p.colorPal.BGColor(flags&attrPalette, index)
	if flags&attrPriority != 0 && index != 0 {
		index = bgPriority
	}
	return c, index
}

func (p *PPU) drawBackground(ly uint8) {
	y := int(ly + p.scroll.SCY)
	for lx := 0; lx < ScreenWidth; lx++ {
		x := int(uint8(lx) + p.scroll.SCX)
		p.buffer[ly][lx], p.shadow[ly][lx] = p.pointColor(y, x, p.lcdc.BackgroundTileMap, p.lcdc.TileData)
	}
}

func (p *PPU) drawWindow(ly uint8) {
	if ly < p.win.WY {
		return
	}
	y := int(ly - p.win.WY)
	origin := p.win.Origin()
	for lx := origin; lx < ScreenWidth; lx++ {
		p.buffer[ly][lx], p.shadow[ly][lx] = p.pointColor(y, lx-origin, p.lcdc.WindowTileMap, p.lcdc.TileData)
	}
}

// drawObjects draws every object covering line ly. Objects are walked
// from the last OAM entry to the first so that lower indices end up on
// top.
func (p *PPU) drawObjects(ly uint8) {
	height := p.lcdc.SpriteHeight

	for i := OAMEntries - 1; i >= 0; i-- {
		e := p.oam.Entries[i]
		if !e.Covers(ly, height) {
			continue
		}

		tile := e.Tile
		if height == 16 {
			tile &= 0xFE
		}

		bank := 0
		if p.mode == types.Color && e.Flags&FlagBank != 0 {
			bank = 1
		}

		row := int(ly) - e.Top()
		if e.Flags&FlagFlipY != 0 {
			row = int(height) - 1 - row
		}
		offset := uint16(tile)*16 + uint16(row*2)
		lo, hi := p.vram.banks[bank][offset], p.vram.banks[bank][offset+1]

		left := e.Left()
		for lx := max(left, 0); lx < min(left+8, ScreenWidth); lx++ {
			col := 7 - (lx - left)
			if e.Flags&FlagFlipX != 0 {
				col = 7 - col
			}
			index := tilePixel(lo, hi, col)

			under := p.shadow[ly][lx]
			if index == 0 || // transparent
				e.Flags&FlagBehindBG != 0 && under != 0 ||
				under == bgPriority {
				continue
			}

			if p.mode == types.Color {
				p.buffer[ly][lx] = p.colorPal.OBColor(e.Flags&FlagPalette, index)
			} else {
				p.buffer[ly][lx] = p.pal.OBColor(e.Flags&FlagOBP1 != 0, index)
			}
		}
	}
}
