package ppu

import (
	"fmt"

	"github.com/silatcha/gboy/internal/ppu/lcd"
	"github.com/silatcha/gboy/internal/types"
)

// Claims reports whether address belongs to the PPU.
func Claims(address uint16) bool {
	switch {
	case address >= types.VRAMStart && address <= types.VRAMEnd,
		address >= types.OAMStart && address <= types.OAMEnd,
		address >= types.LCDC && address <= types.LYC,
		address >= types.BGP && address <= types.WX,
		address == types.VBK,
		address >= types.BCPS && address <= types.OCPD:
		return true
	}
	return false
}

// oamBlocked reports whether the bus is locked out of OAM.
func (p *PPU) oamBlocked() bool {
	return p.gating && p.lcdc.Enabled && (p.status.Mode == lcd.Search || p.status.Mode == lcd.Pixels)
}

// vramBlocked reports whether the bus is locked out of VRAM and colour
// palette data.
func (p *PPU) vramBlocked() bool {
	return p.gating && p.lcdc.Enabled && p.status.Mode == lcd.Pixels
}

// Read returns the value at address. It panics when address does not
// belong to the PPU.
func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= types.VRAMStart && address <= types.VRAMEnd:
		if p.vramBlocked() {
			return 0xFF
		}
		return p.vram.Read(address)
	case address >= types.OAMStart && address <= types.OAMEnd:
		if p.oamBlocked() {
			return 0xFF
		}
		return p.oam.Read(address)
	}

	switch address {
	case types.LCDC:
		return p.lcdc.Read(address)
	case types.STAT:
		return p.status.Read(address)
	case types.SCY, types.SCX:
		return p.scroll.Read(address)
	case types.LY, types.LYC:
		return p.line.Read(address)
	case types.BGP, types.OBP0, types.OBP1:
		return p.pal.Read(address)
	case types.WY, types.WX:
		return p.win.Read(address)
	case types.VBK:
		return p.vram.ReadBank()
	case types.BCPS, types.OCPS:
		if p.mode != types.Color {
			return 0xFF
		}
		return p.colorPal.Read(address)
	case types.BCPD, types.OCPD:
		if p.mode != types.Color || p.vramBlocked() {
			return 0xFF
		}
		return p.colorPal.Read(address)
	}

	panic(fmt.Sprintf("ppu: illegal read from address 0x%04X", address))
}

// Write writes value at address. It panics when address does not
// belong to the PPU.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= types.VRAMStart && address <= types.VRAMEnd:
		if !p.vramBlocked() {
			p.vram.Write(address, value)
		}
		return
	case address >= types.OAMStart && address <= types.OAMEnd:
		if !p.oamBlocked() {
			p.oam.Write(address, value)
		}
		return
	}

	switch address {
	case types.LCDC:
		was := p.lcdc.Enabled
		p.lcdc.Write(address, value)
		switch {
		case was && !p.lcdc.Enabled:
			p.disable()
		case !was && p.lcdc.Enabled:
			p.enable()
		}
	case types.STAT:
		p.status.Write(address, value)
	case types.SCY, types.SCX:
		p.scroll.Write(address, value)
	case types.LY:
		p.log.Debugf("ppu: LY reset from line %d", p.line.LY)
		p.line.Write(address, value)
		p.restart()
	case types.LYC:
		p.line.Write(address, value)
	case types.BGP, types.OBP0, types.OBP1:
		p.pal.Write(address, value)
	case types.WY, types.WX:
		p.win.Write(address, value)
	case types.VBK:
		if !p.vramBlocked() {
			p.vram.WriteBank(value)
		}
	case types.BCPS, types.OCPS:
		if p.mode == types.Color {
			p.colorPal.Write(address, value)
		}
	case types.BCPD, types.OCPD:
		if p.mode == types.Color && !p.vramBlocked() {
			p.colorPal.Write(address, value)
		}
	default:
		panic(fmt.Sprintf("ppu: illegal write to address 0x%04X", address))
	}
}
