package palette

import (
	"fmt"

	"github.com/silatcha/gboy/internal/types"
)

// RAM is one block of colour palette RAM: 8 palettes of 4 colours, each
// colour stored as little-endian RGB555.
//
//	Bit 0-4   Red Intensity   (00-1F)
//	Bit 5-9   Green Intensity (00-1F)
//	Bit 10-14 Blue Intensity  (00-1F)
type RAM struct {
	Data         [64]uint8
	Index        uint8
	Incrementing bool
}

// SetIndex updates the index and the auto-increment flag (bit 7).
func (r *RAM) SetIndex(value uint8) {
	r.Index = value & 0x3F
	r.Incrementing = value&types.Bit7 != 0
}

// GetIndex returns the index register. Bit 6 is unused and reads 1.
func (r *RAM) GetIndex() uint8 {
	value := r.Index | types.Bit6
	if r.Incrementing {
		value |= types.Bit7
	}
	return value
}

// Read returns the palette byte at the current index.
func (r *RAM) Read() uint8 {
	return r.Data[r.Index]
}

// Write stores value at the current index, advancing it when
// auto-increment is enabled.
func (r *RAM) Write(value uint8) {
	r.Data[r.Index] = value
	if r.Incrementing {
		r.Index = (r.Index + 1) & 0x3F
	}
}

// Color returns colour index of palette pal, expanded to 8 bits per
// channel.
func (r *RAM) Color(pal, index uint8) Color {
	offset := int(pal&0x07)*8 + int(index&0x03)*2
	c := uint16(r.Data[offset]) | uint16(r.Data[offset+1])<<8
	return Color{
		expand(uint8(c) & 0x1F),
		expand(uint8(c>>5) & 0x1F),
		expand(uint8(c>>10) & 0x1F),
	}
}

func expand(c uint8) uint8 {
	return c<<3 | c>>2
}

// ColorPal is the colour palette RAM of the background (BCPS/BCPD) and
// of the objects (OCPS/OCPD).
type ColorPal struct {
	BG, OB RAM
}

// NewColorPal returns palette RAM with every colour set to white.
func NewColorPal() *ColorPal {
	c := &ColorPal{}
	for i := 0; i < 64; i += 2 {
		c.BG.Data[i], c.BG.Data[i+1] = 0xFF, 0x7F
		c.OB.Data[i], c.OB.Data[i+1] = 0xFF, 0x7F
	}
	return c
}

// BGColor resolves a background colour index through palette pal.
func (c *ColorPal) BGColor(pal, index uint8) Color {
	return c.BG.Color(pal, index)
}

// OBColor resolves an object colour index through palette pal.
func (c *ColorPal) OBColor(pal, index uint8) Color {
	return c.OB.Color(pal, index)
}

// ClearColor is the colour of a blank display.
func (c *ColorPal) ClearColor() Color {
	return White
}

func (c *ColorPal) Read(address uint16) uint8 {
	switch address {
	case types.BCPS:
		return c.BG.GetIndex()
	case types.BCPD:
		return c.BG.Read()
	case types.OCPS:
		return c.OB.GetIndex()
	case types.OCPD:
		return c.OB.Read()
	}
	panic(fmt.Sprintf("colour palette: illegal read from address 0x%04X", address))
}

func (c *ColorPal) Write(address uint16, value uint8) {
	switch address {
	case types.BCPS:
		c.BG.SetIndex(value)
	case types.BCPD:
		c.BG.Write(value)
	case types.OCPS:
		c.OB.SetIndex(value)
	case types.OCPD:
		c.OB.Write(value)
	default:
		panic(fmt.Sprintf("colour palette: illegal write to address 0x%04X", address))
	}
}
