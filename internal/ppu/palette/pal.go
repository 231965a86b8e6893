package palette

import (
	"fmt"

	"github.com/silatcha/gboy/internal/types"
)

// Pal holds the monochrome palette registers. Each register maps the
// four colour indices to a shade, two bits per index:
//
//	Bit 7-6 - Shade for index 3
//	Bit 5-4 - Shade for index 2
//	Bit 3-2 - Shade for index 1
//	Bit 1-0 - Shade for index 0
type Pal struct {
	BGP, OBP0, OBP1 uint8

	// Shades are the base colours the registers select from.
	Shades Palette
}

// NewPal returns the monochrome palette registers resolving through
// shades.
func NewPal(shades Palette) *Pal {
	return &Pal{Shades: shades}
}

func mapShade(reg, index uint8) uint8 {
	return (reg >> ((index & 0x03) * 2)) & 0x03
}

// BGColor resolves a background/window colour index through BGP.
func (p *Pal) BGColor(index uint8) Color {
	return p.Shades.Shade(mapShade(p.BGP, index))
}

// OBColor resolves an object colour index through OBP0 or OBP1,
// selected by the object's palette bit.
func (p *Pal) OBColor(obp1 bool, index uint8) Color {
	if obp1 {
		return p.Shades.Shade(mapShade(p.OBP1, index))
	}
	return p.Shades.Shade(mapShade(p.OBP0, index))
}

// ClearColor is the colour of a blank display.
func (p *Pal) ClearColor() Color {
	return p.Shades.Shade(0)
}

func (p *Pal) Read(address uint16) uint8 {
	switch address {
	case types.BGP:
		return p.BGP
	case types.OBP0:
		return p.OBP0
	case types.OBP1:
		return p.OBP1
	}
	panic(fmt.Sprintf("palette: illegal read from address 0x%04X", address))
}

func (p *Pal) Write(address uint16, value uint8) {
	switch address {
	case types.BGP:
		p.BGP = value
	case types.OBP0:
		p.OBP0 = value
	case types.OBP1:
		p.OBP1 = value
	default:
		panic(fmt.Sprintf("palette: illegal write to address 0x%04X", address))
	}
}
