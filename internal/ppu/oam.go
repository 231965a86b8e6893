package ppu

import (
	"fmt"

	"github.com/silatcha/gboy/internal/types"
)

const (
	// OAMEntries is the number of objects in OAM.
	OAMEntries = 40
	// MaxLineSprites is the number of objects the OAM search keeps per line.
	MaxLineSprites = 10
)

// Object attribute flags.
const (
	// FlagBehindBG draws the object behind background colours 1-3.
	FlagBehindBG = types.Bit7
	// FlagFlipY mirrors the object vertically.
	FlagFlipY = types.Bit6
	// FlagFlipX mirrors the object horizontally.
	FlagFlipX = types.Bit5
	// FlagOBP1 selects OBP1 instead of OBP0 (Monochrome mode).
	FlagOBP1 = types.Bit4
	// FlagBank selects VRAM bank 1 for the tile data (Color mode).
	FlagBank = types.Bit3
	// FlagPalette masks the colour palette number (Color mode).
	FlagPalette = 0x07
)

// Entry is a single object of OAM. Y and X are offset by 16 and 8, so
// that Y=0 or X=0 hide the object off screen.
type Entry struct {
	Y, X, Tile, Flags uint8
}

// Top returns the screen row of the first line of the object.
func (e Entry) Top() int {
	return int(e.Y) - 16
}

// Left returns the screen column of the first pixel of the object.
func (e Entry) Left() int {
	return int(e.X) - 8
}

// Covers reports whether the object spans line ly at the given height.
func (e Entry) Covers(ly uint8, height uint8) bool {
	top := e.Top()
	return int(ly) >= top && int(ly) < top+int(height)
}

// OAM (Object Attribute Memory) is the memory used to store the
// attributes of the sprites. It is 160 bytes long and is located at
// 0xFE00-0xFE9F in the memory map. It is divided in 40 entries of 4 bytes
// each, each entry representing a sprite.
type OAM struct {
	Entries [OAMEntries]Entry

	visible [MaxLineSprites]int
	count   int
}

// NewOAM returns a zeroed OAM.
func NewOAM() *OAM {
	return &OAM{}
}

// Read returns the value at the given address.
func (o *OAM) Read(address uint16) uint8 {
	if address < types.OAMStart || address > types.OAMEnd {
		panic(fmt.Sprintf("oam: illegal read from address 0x%04X", address))
	}
	offset := address - types.OAMStart
	e := &o.Entries[offset>>2]
	switch offset & 3 {
	case 0:
		return e.Y
	case 1:
		return e.X
	case 2:
		return e.Tile
	default:
		return e.Flags
	}
}

// Write writes the given value at the given address.
func (o *OAM) Write(address uint16, value uint8) {
	if address < types.OAMStart || address > types.OAMEnd {
		panic(fmt.Sprintf("oam: illegal write to address 0x%04X", address))
	}
	offset := address - types.OAMStart
	e := &o.Entries[offset>>2]
	switch offset & 3 {
	case 0:
		e.Y = value
	case 1:
		e.X = value
	case 2:
		e.Tile = value
	default:
		e.Flags = value
	}
}

// Search records the first MaxLineSprites objects, in OAM order, that
// span line ly.
func (o *OAM) Search(ly uint8, height uint8) {
	o.count = 0
	for i := range o.Entries {
		if o.count == MaxLineSprites {
			break
		}
		if o.Entries[i].Covers(ly, height) {
			o.visible[o.count] = i
			o.count++
		}
	}
}

// Visible returns the OAM indices found by the last Search.
func (o *OAM) Visible() []int {
	v := make([]int, o.count)
	copy(v, o.visible[:o.count])
	return v
}
