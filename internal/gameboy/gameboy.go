// Package gameboy provides the minimal machine the PPU runs in: a bus
// routing the PPU's addresses, work and high RAM, the interrupt
// registers and OAM DMA.
package gameboy

import (
	"github.com/silatcha/gboy/internal/interrupts"
	"github.com/silatcha/gboy/internal/ppu"
	"github.com/silatcha/gboy/internal/ppu/lcd"
	"github.com/silatcha/gboy/internal/ram"
	"github.com/silatcha/gboy/internal/types"
	"github.com/silatcha/gboy/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = 4194304 // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = ppu.FrameDots

	// cyclesPerInstruction is the granularity RunFrame steps at, a
	// single machine cycle.
	cyclesPerInstruction = 4
)

// Sampler observes the PPU timing. cycle counts the dots elapsed since
// power on.
type Sampler interface {
	Sample(cycle uint64, ly uint8, mode lcd.Mode)
}

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	PPU        *ppu.PPU
	Interrupts *interrupts.Service

	wRAM ram.RAM
	hRAM ram.RAM
	dma  uint8

	mode    types.Mode
	video   ppu.Video
	ppuOpts []ppu.Opt
	sampler Sampler
	cycles  uint64

	log.Logger
}

// New returns a new GameBoy.
func New(opts ...Opt) *GameBoy {
	g := &GameBoy{
		Interrupts: interrupts.NewService(),
		wRAM:       ram.NewRAM(0xC000, 0x2000),
		hRAM:       ram.NewRAM(0xFF80, 0x7F),
		mode:       types.Monochrome,
		Logger:     log.NewNullLogger(),
		dma:        0xFF,
	}

	for _, opt := range opts {
		opt(g)
	}

	g.PPU = ppu.New(g.mode, g.video, append([]ppu.Opt{ppu.WithLogger(g.Logger)}, g.ppuOpts...)...)
	g.Debugf("gameboy: %s machine ready", g.mode)
	return g
}

// Mode returns the hardware mode of the machine.
func (g *GameBoy) Mode() types.Mode {
	return g.mode
}

// Cycles returns the dots elapsed since power on.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// Step advances the machine by cycles dots, then moves any interrupt
// the PPU requested into the IF register.
func (g *GameBoy) Step(cycles uint64) {
	g.PPU.Step(cycles)
	g.Interrupts.Collect(g.PPU)
	g.cycles += cycles

	if g.sampler != nil {
		g.sampler.Sample(g.cycles, g.PPU.LY(), g.PPU.StatMode())
	}
}

// RunFrame advances the machine by a frame worth of dots, one machine
// cycle at a time.
func (g *GameBoy) RunFrame() {
	for i := 0; i < CyclesPerFrame; i += cyclesPerInstruction {
		g.Step(cyclesPerInstruction)
	}
}

// Read returns the value at address. Unmapped addresses read 0xFF.
func (g *GameBoy) Read(address uint16) uint8 {
	switch {
	case ppu.Claims(address):
		return g.PPU.Read(address)
	case address >= 0xC000 && address <= 0xDFFF:
		return g.wRAM.Read(address)
	case address >= 0xE000 && address <= 0xFDFF:
		return g.wRAM.Read(address - 0x2000)
	case address >= 0xFF80 && address <= 0xFFFE:
		return g.hRAM.Read(address)
	case address == types.IF, address == types.IE:
		return g.Interrupts.Read(address)
	case address == types.DMA:
		return g.dma
	}
	return 0xFF
}

// Write writes value at address. Writes to unmapped addresses are
// dropped.
func (g *GameBoy) Write(address uint16, value uint8) {
	switch {
	case ppu.Claims(address):
		g.PPU.Write(address, value)
	case address >= 0xC000 && address <= 0xDFFF:
		g.wRAM.Write(address, value)
	case address >= 0xE000 && address <= 0xFDFF:
		g.wRAM.Write(address-0x2000, value)
	case address >= 0xFF80 && address <= 0xFFFE:
		g.hRAM.Write(address, value)
	case address == types.IF, address == types.IE:
		g.Interrupts.Write(address, value)
	case address == types.DMA:
		g.transferOAM(value)
	default:
		g.Debugf("gameboy: dropped write 0x%02X to unmapped 0x%04X", value, address)
	}
}

// transferOAM copies 0xXX00-0xXX9F into OAM. The copy completes
// immediately rather than over 160 machine cycles.
func (g *GameBoy) transferOAM(value uint8) {
	g.dma = value
	source := uint16(value) << 8
	oam := g.PPU.OAM()
	for i := uint16(0); i < ppu.OAMEntries*4; i++ {
		oam.Write(types.OAMStart+i, g.readDMA(source+i))
	}
}

// readDMA reads a DMA source byte. The DMA unit is not locked out of
// VRAM and OAM while the PPU uses them.
func (g *GameBoy) readDMA(address uint16) uint8 {
	switch {
	case address >= types.VRAMStart && address <= types.VRAMEnd:
		return g.PPU.VRAM().Read(address)
	case address >= types.OAMStart && address <= types.OAMEnd:
		return g.PPU.OAM().Read(address)
	}
	return g.Read(address)
}
