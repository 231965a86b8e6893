package ppu

import (
	"image"
	"image/color"

	"github.com/silatcha/gboy/internal/ppu/lcd"
	"github.com/silatcha/gboy/internal/ppu/palette"
)

// TileData decodes the 256 tiles of block d in the given VRAM bank into
// a 16x16 tile sheet (128x128 pixels) of grey shades. The Data8800
// block is laid out from 0x8800 upwards.
func (p *PPU) TileData(d lcd.TileDataAddr, bank int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 16*8, 16*8))
	data := p.vram.Bank(bank)
	base := 0
	if d == lcd.Data8800 {
		base = 0x800
	}

	for y := 0; y < 16*8; y++ {
		for x := 0; x < 16*8; x++ {
			tile := 16*(y/8) + x/8
			offset := base + 16*tile + (y&7)*2
			index := tilePixel(data[offset], data[offset+1], 7-x&7)
			img.SetRGBA(x, y, rgba(palette.Greyscale.Shade(index)))
		}
	}
	return img
}

// TileMap renders the complete 256x256 picture of tile map m through
// the current palettes.
func (p *PPU) TileMap(m lcd.TileMapAddr, d lcd.TileDataAddr) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 32*8, 32*8))
	for y := 0; y < 32*8; y++ {
		for x := 0; x < 32*8; x++ {
			c, _ := p.pointColor(y, x, m, d)
			img.SetRGBA(x, y, rgba(c))
		}
	}
	return img
}

func rgba(c palette.Color) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
}
