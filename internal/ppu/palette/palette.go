// Package palette resolves 2-bit colour indices into RGB colours, either
// through the monochrome palette registers (BGP, OBP0, OBP1) or through
// the colour palette RAM addressed by BCPS/BCPD and OCPS/OCPD.
package palette

import (
	"fmt"
	"strings"
)

// Color is an 8-bit per channel RGB triplet.
type Color = [3]uint8

// White is the colour palette RAM powers up with.
var White = Color{0xFF, 0xFF, 0xFF}

// Palette represents a palette. A palette is an array of 4 RGB values,
// used as the base shades the monochrome palette registers select from.
type Palette struct {
	Colors [4]Color
}

var (
	// Greyscale is the default greyscale palette.
	Greyscale = Palette{Colors: [4]Color{
		{0xFF, 0xFF, 0xFF},
		{0xCC, 0xCC, 0xCC},
		{0x77, 0x77, 0x77},
		{0x00, 0x00, 0x00},
	}}
	// Green is the green palette which attempts to emulate
	// the original colour palette as it would have appeared
	// on the original Game Boy.
	Green = Palette{Colors: [4]Color{
		{0x9B, 0xBC, 0x0F},
		{0x8B, 0xAC, 0x0F},
		{0x30, 0x62, 0x30},
		{0x0F, 0x38, 0x0F},
	}}
	// Red is a red palette.
	Red = Palette{Colors: [4]Color{
		{0xFF, 0x00, 0x00},
		{0xCC, 0x00, 0x00},
		{0x77, 0x00, 0x00},
		{0x00, 0x00, 0x00},
	}}
	// Yellow is a yellow palette.
	Yellow = Palette{Colors: [4]Color{
		{0xFF, 0xFF, 0x00},
		{0xCC, 0xCC, 0x00},
		{0x77, 0x77, 0x00},
		{0x00, 0x00, 0x00},
	}}
)

// Palettes maps the names accepted by ByName to their palette.
var Palettes = map[string]Palette{
	"greyscale": Greyscale,
	"green":     Green,
	"red":       Red,
	"yellow":    Yellow,
}

// ByName returns the named base palette.
func ByName(name string) (Palette, error) {
	p, ok := Palettes[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("palette: unknown palette %q", name)
	}
	return p, nil
}

// Shade returns the base colour for a shade number 0-3.
func (p Palette) Shade(shade uint8) Color {
	return p.Colors[shade&0x03]
}
