package lcd

import (
	"fmt"

	"github.com/silatcha/gboy/internal/types"
)

// TileMapAddr is the base address of one of the two 32x32 tile maps.
type TileMapAddr uint16

const (
	// Map9800 is the tile map at 0x9800-0x9BFF.
	Map9800 TileMapAddr = 0x9800
	// Map9C00 is the tile map at 0x9C00-0x9FFF.
	Map9C00 TileMapAddr = 0x9C00
)

// TileDataAddr is the base address of the BG & Window tile data block.
type TileDataAddr uint16

const (
	// Data8000 addresses tiles 0..255 unsigned from 0x8000.
	Data8000 TileDataAddr = 0x8000
	// Data8800 addresses tiles -128..127 signed around 0x9000.
	Data8800 TileDataAddr = 0x8800
)

// Offset returns the VRAM offset (relative to 0x8000) of the first
// byte of tile n, honouring the signed addressing of Data8800.
func (d TileDataAddr) Offset(n uint8) uint16 {
	if d == Data8800 {
		return uint16(0x1000 + int(int8(n))*16)
	}
	return uint16(n) * 16
}

// Controller is the LCD controller. It is responsible for controlling various
// aspects of the LCD, such as enabling the background and window display.
//
// Its value is stored in the LCD Control Register (0xFF40) as follows:
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
type Controller struct {
	// Enabled is the LCD Enable bit.
	Enabled bool
	// WindowTileMap is the tile map used by the window.
	WindowTileMap TileMapAddr
	// WindowEnabled is the Window Display Enable bit.
	WindowEnabled bool
	// TileData is the tile data block shared by background and window.
	TileData TileDataAddr
	// BackgroundTileMap is the tile map used by the background.
	BackgroundTileMap TileMapAddr
	// SpriteHeight is 8 or 16.
	SpriteHeight uint8
	// SpriteEnabled is the OBJ (Sprite) Display Enable bit.
	SpriteEnabled bool
	// BackgroundEnabled is the BG/Window Display/Priority bit.
	BackgroundEnabled bool
}

// NewController returns a new LCD controller with every bit clear.
func NewController() *Controller {
	c := &Controller{}
	c.Set(0)
	return c
}

// Set decodes value into the controller fields.
func (c *Controller) Set(value uint8) {
	c.Enabled = value&types.Bit7 != 0
	c.WindowTileMap = Map9800
	if value&types.Bit6 != 0 {
		c.WindowTileMap = Map9C00
	}
	c.WindowEnabled = value&types.Bit5 != 0
	c.TileData = Data8800
	if value&types.Bit4 != 0 {
		c.TileData = Data8000
	}
	c.BackgroundTileMap = Map9800
	if value&types.Bit3 != 0 {
		c.BackgroundTileMap = Map9C00
	}
	c.SpriteHeight = 8
	if value&types.Bit2 != 0 {
		c.SpriteHeight = 16
	}
	c.SpriteEnabled = value&types.Bit1 != 0
	c.BackgroundEnabled = value&types.Bit0 != 0
}

// Value encodes the controller fields back into the register byte.
func (c *Controller) Value() uint8 {
	var value uint8
	if c.Enabled {
		value |= types.Bit7
	}
	if c.WindowTileMap == Map9C00 {
		value |= types.Bit6
	}
	if c.WindowEnabled {
		value |= types.Bit5
	}
	if c.TileData == Data8000 {
		value |= types.Bit4
	}
	if c.BackgroundTileMap == Map9C00 {
		value |= types.Bit3
	}
	if c.SpriteHeight == 16 {
		value |= types.Bit2
	}
	if c.SpriteEnabled {
		value |= types.Bit1
	}
	if c.BackgroundEnabled {
		value |= types.Bit0
	}
	return value
}

// Write writes the value to the LCD controller.
func (c *Controller) Write(address uint16, value uint8) {
	if address != types.LCDC {
		panic(fmt.Sprintf("lcd controller: illegal write to address 0x%04X", address))
	}
	c.Set(value)
}

// Read reads the value from the LCD controller.
func (c *Controller) Read(address uint16) uint8 {
	if address != types.LCDC {
		panic(fmt.Sprintf("lcd controller: illegal read from address 0x%04X", address))
	}
	return c.Value()
}
