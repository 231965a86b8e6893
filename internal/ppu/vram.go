package ppu

import (
	"fmt"

	"github.com/silatcha/gboy/internal/types"
)

// VRAMSize is the size of a single VRAM bank.
const VRAMSize = 0x2000

// VRAM is the video RAM mapped at 0x8000-0x9FFF. The Monochrome mode
// has a single bank; the Color mode has two, selected through VBK.
//
//	0x8000-0x97FF - tile data (384 tiles of 16 bytes)
//	0x9800-0x9BFF - tile map 0
//	0x9C00-0x9FFF - tile map 1
//
// In Color mode bank 1 holds the tile map attributes at the tile map
// addresses.
type VRAM struct {
	banks [2][VRAMSize]uint8
	bank  uint8
	mode  types.Mode
}

// NewVRAM returns a zeroed VRAM for the given mode.
func NewVRAM(mode types.Mode) *VRAM {
	return &VRAM{mode: mode}
}

// Bank returns the raw contents of bank n.
func (v *VRAM) Bank(n int) *[VRAMSize]uint8 {
	return &v.banks[n&1]
}

// Read returns the byte at address in the selected bank.
func (v *VRAM) Read(address uint16) uint8 {
	if address < types.VRAMStart || address > types.VRAMEnd {
		panic(fmt.Sprintf("vram: illegal read from address 0x%04X", address))
	}
	return v.banks[v.bank][address-types.VRAMStart]
}

// Write writes value at address in the selected bank.
func (v *VRAM) Write(address uint16, value uint8) {
	if address < types.VRAMStart || address > types.VRAMEnd {
		panic(fmt.Sprintf("vram: illegal write to address 0x%04X", address))
	}
	v.banks[v.bank][address-types.VRAMStart] = value
}

// ReadBank returns the VBK register.
func (v *VRAM) ReadBank() uint8 {
	if v.mode != types.Color {
		return 0xFF
	}
	return 0xFE | v.bank
}

// WriteBank selects the bank used by Read and Write. It is ignored in
// Monochrome mode.
func (v *VRAM) WriteBank(value uint8) {
	if v.mode != types.Color {
		return
	}
	v.bank = value & types.Bit0
}
