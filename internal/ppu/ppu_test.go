package ppu

import (
	"testing"

	"github.com/silatcha/gboy/internal/interrupts"
	"github.com/silatcha/gboy/internal/ppu/lcd"
	"github.com/silatcha/gboy/internal/ppu/palette"
	"github.com/silatcha/gboy/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingVideo struct {
	frames int
	last   Frame
}

func (v *countingVideo) DrawVideo(f *Frame) {
	v.frames++
	v.last = *f
}

func newPPU(t *testing.T, mode types.Mode, lcdc uint8, opts ...Opt) (*PPU, *countingVideo) {
	t.Helper()
	v := &countingVideo{}
	p := New(mode, v, opts...)
	p.Write(types.LCDC, lcdc)
	require.True(t, p.Enabled())
	require.Equal(t, lcd.Search, p.StatMode())
	return p, v
}

var (
	black = palette.Color{0x00, 0x00, 0x00}
	white = palette.Color{0xFF, 0xFF, 0xFF}
	light = palette.Color{0xCC, 0xCC, 0xCC}
)

func TestFrameDots(t *testing.T) {
	assert.Equal(t, 456, DotsPerLine)
	assert.Equal(t, 70224, FrameDots)
}

func TestFrameCycle(t *testing.T) {
	p, v := newPPU(t, types.Monochrome, 0x80)

	var (
		lines   []uint8
		vblanks int
		last    = p.LY()
	)
	for i := 0; i < FrameDots/4; i++ {
		p.Step(4)
		if _, ok := p.TakeVBlankInt(); ok {
			vblanks++
		}
		if ly := p.LY(); ly != last {
			lines = append(lines, ly)
			last = ly
		}
	}

	assert.Equal(t, lcd.Search, p.StatMode())
	assert.Equal(t, uint8(0), p.LY())
	assert.Equal(t, uint64(0), p.Dots())
	assert.Equal(t, 1, vblanks)
	assert.Equal(t, 1, v.frames)

	require.Len(t, lines, 154)
	for i := 0; i < 153; i++ {
		assert.Equal(t, uint8(i+1), lines[i])
	}
	assert.Equal(t, uint8(0), lines[153])
}

func TestFrameCycleSingleStep(t *testing.T) {
	p, v := newPPU(t, types.Monochrome, 0x80)

	p.Step(FrameDots + 10)

	assert.Equal(t, lcd.Search, p.StatMode())
	assert.Equal(t, uint8(0), p.LY())
	assert.Equal(t, uint64(10), p.Dots(), "the remainder carries into the next phase")
	assert.Equal(t, 1, v.frames)

	f, ok := p.TakeVBlankInt()
	assert.True(t, ok)
	assert.Equal(t, interrupts.VBlankFlag, f)
	_, ok = p.TakeVBlankInt()
	assert.False(t, ok, "requests are taken once")
}

func TestPhaseDurations(t *testing.T) {
	p, _ := newPPU(t, types.Monochrome, 0x80)

	p.Step(SearchDots - 1)
	assert.Equal(t, lcd.Search, p.StatMode())
	p.Step(1)
	assert.Equal(t, lcd.Pixels, p.StatMode())
	p.Step(PixelsDots)
	assert.Equal(t, lcd.HBlank, p.StatMode())
	assert.Equal(t, uint8(0x80), p.Read(types.STAT)&0x83)
	p.Step(HBlankDots)
	assert.Equal(t, lcd.Search, p.StatMode())
	assert.Equal(t, uint8(1), p.LY())
	assert.Equal(t, uint8(0x82), p.Read(types.STAT)&0x83)
}

func TestLine153Reset(t *testing.T) {
	p, _ := newPPU(t, types.Monochrome, 0x80)

	p.Step(DotsPerLine * ScreenHeight)
	require.Equal(t, lcd.VBlank, p.StatMode())
	assert.Equal(t, uint8(144), p.LY())

	p.Step(DotsPerLine)
	assert.Equal(t, uint8(145), p.LY())

	p.Step(8*DotsPerLine + DotsPerLine/2 - DotsPerLine)
	p.Step(DotsPerLine)
	assert.Equal(t, uint8(153), p.LY())

	p.Step(1)
	assert.Equal(t, uint8(0), p.LY(), "LY resets in the middle of line 153")
	assert.Equal(t, lcd.VBlank, p.StatMode())

	p.Step(VBlankDots - 9*DotsPerLine - DotsPerLine/2 - 2)
	assert.Equal(t, lcd.VBlank, p.StatMode())
	assert.Equal(t, uint8(0), p.LY())
	p.Step(1)
	assert.Equal(t, lcd.Search, p.StatMode())
}

func TestLYCRisingEdge(t *testing.T) {
	p, _ := newPPU(t, types.Monochrome, 0x80)
	p.Write(types.LYC, 5)
	p.Write(types.STAT, types.Bit6)

	requests := 0
	for frame := 0; frame < 2; frame++ {
		for i := 0; i < FrameDots/4; i++ {
			p.Step(4)
			if _, ok := p.TakeLCDInt(); ok {
				requests++
			}
			if p.LY() == 5 {
				assert.NotZero(t, p.Read(types.STAT)&types.Bit2)
			} else {
				assert.Zero(t, p.Read(types.STAT)&types.Bit2)
			}
		}
	}
	assert.Equal(t, 2, requests)
}

func TestLYCDisabledNoRequest(t *testing.T) {
	p, _ := newPPU(t, types.Monochrome, 0x80)
	p.Write(types.LYC, 5)

	p.Step(FrameDots)
	_, ok := p.TakeLCDInt()
	assert.False(t, ok)
}

func TestModeInterrupts(t *testing.T) {
	p, _ := newPPU(t, types.Monochrome, 0x80)
	p.Write(types.STAT, types.Bit3) // HBlank

	p.Step(SearchDots + PixelsDots - 1)
	_, ok := p.TakeLCDInt()
	assert.False(t, ok)
	p.Step(1)
	f, ok := p.TakeLCDInt()
	assert.True(t, ok)
	assert.Equal(t, interrupts.LCDFlag, f)

	p.Write(types.STAT, types.Bit5) // OAM
	p.Step(HBlankDots)
	_, ok = p.TakeLCDInt()
	assert.True(t, ok)

	p.Write(types.STAT, types.Bit4) // VBlank
	p.Step(DotsPerLine*ScreenHeight - DotsPerLine)
	_, ok = p.TakeLCDInt()
	assert.True(t, ok)
	_, ok = p.TakeVBlankInt()
	assert.True(t, ok)
}

func TestDisplayDisable(t *testing.T) {
	p, v := newPPU(t, types.Monochrome, 0x91)
	p.Write(types.BGP, 0xFF)
	p.VRAM().Bank(0)[0] = 0xFF
	p.Step(DotsPerLine * 20)
	require.Equal(t, uint8(20), p.LY())

	p.Write(types.LCDC, 0x11)

	assert.Equal(t, uint64(0), p.Dots())
	assert.Equal(t, uint8(0), p.LY())
	assert.Equal(t, lcd.HBlank, p.StatMode())
	assert.Equal(t, 1, v.frames)
	for y := range v.last {
		for x := range v.last[y] {
			require.Equal(t, white, v.last[y][x])
			require.Zero(t, p.ColorIndex(x, y))
		}
	}

	p.Step(FrameDots)
	assert.Equal(t, uint8(0), p.LY(), "a disabled display is frozen")
	assert.Equal(t, 1, v.frames)
}

func TestDisplayDisableRecomparesLine(t *testing.T) {
	p, _ := newPPU(t, types.Monochrome, 0x91)
	p.Write(types.STAT, types.Bit6)
	p.Write(types.LYC, 20)
	p.Step(DotsPerLine * 20)
	require.Equal(t, uint8(20), p.LY())
	_, ok := p.TakeLCDInt()
	require.True(t, ok)
	require.NotZero(t, p.Read(types.STAT)&types.Bit2)

	p.Write(types.LCDC, 0x11)
	assert.Zero(t, p.Read(types.STAT)&types.Bit2, "LY 0 no longer matches LYC 20")
	_, ok = p.TakeLCDInt()
	assert.False(t, ok, "disabling raises no interrupt")

	p.Write(types.LYC, 0)
	p.Write(types.LCDC, 0x91)
	_, ok = p.TakeLCDInt()
	assert.True(t, ok, "LY == LYC on enable is a new match")
	assert.NotZero(t, p.Read(types.STAT)&types.Bit2)
}

func TestDisplayDisableColorClear(t *testing.T) {
	p, v := newPPU(t, types.Color, 0x80, WithShades(palette.Green))
	p.Write(types.LCDC, 0x00)
	assert.Equal(t, white, v.last[0][0])

	m, mv := newPPU(t, types.Monochrome, 0x80, WithShades(palette.Green))
	m.Write(types.LCDC, 0x00)
	assert.Equal(t, palette.Green.Shade(0), mv.last[0][0])
}

func TestLYWriteResets(t *testing.T) {
	p, _ := newPPU(t, types.Monochrome, 0x80)
	p.Step(DotsPerLine*10 + SearchDots + 5)
	require.Equal(t, lcd.Pixels, p.StatMode())

	p.Write(types.LY, 0x42)

	assert.Equal(t, uint8(0), p.Read(types.LY))
	assert.Equal(t, uint64(0), p.Dots())
	assert.Equal(t, lcd.Search, p.StatMode())
}

func TestRegisterRoundTrip(t *testing.T) {
	p := New(types.Color, nil)
	for _, addr := range []uint16{types.SCY, types.SCX, types.WY, types.WX, types.LYC, types.BGP, types.OBP0, types.OBP1} {
		p.Write(addr, 0xA5)
		assert.Equal(t, uint8(0xA5), p.Read(addr), "0x%04X", addr)
	}

	p.Write(types.STAT, 0xFF)
	assert.Equal(t, uint8(0xF8), p.Read(types.STAT)&0xF8)

	p.Write(types.BCPS, 0x82)
	p.Write(types.BCPD, 0x12)
	p.Write(types.BCPD, 0x34)
	p.Write(types.BCPS, 0x02)
	assert.Equal(t, uint8(0x42), p.Read(types.BCPS))
	assert.Equal(t, uint8(0x12), p.Read(types.BCPD))
	p.Write(types.BCPS, 0x03)
	assert.Equal(t, uint8(0x34), p.Read(types.BCPD))

	p.Write(types.OCPS, 0x00)
	p.Write(types.OCPD, 0x56)
	assert.Equal(t, uint8(0x56), p.Read(types.OCPD))
}

func TestVRAMBanks(t *testing.T) {
	p := New(types.Color, nil)
	p.Write(0x8000, 0x11)
	p.Write(types.VBK, 0x01)
	assert.Equal(t, uint8(0xFF), p.Read(types.VBK))
	assert.Equal(t, uint8(0x00), p.Read(0x8000))
	p.Write(0x8000, 0x22)
	p.Write(types.VBK, 0x00)
	assert.Equal(t, uint8(0xFE), p.Read(types.VBK))
	assert.Equal(t, uint8(0x11), p.Read(0x8000))
	assert.Equal(t, uint8(0x22), p.VRAM().Bank(1)[0])

	m := New(types.Monochrome, nil)
	m.Write(types.VBK, 0x01)
	assert.Equal(t, uint8(0xFF), m.Read(types.VBK))
	m.Write(0x9FFF, 0x33)
	assert.Equal(t, uint8(0x33), m.VRAM().Bank(0)[0x1FFF])
	assert.Equal(t, uint8(0xFF), m.Read(types.BCPS))
}

func TestOAMAccess(t *testing.T) {
	p := New(types.Monochrome, nil)
	p.Write(0xFE00, 0x10)
	p.Write(0xFE01, 0x08)
	p.Write(0xFE02, 0x03)
	p.Write(0xFE9F, 0x80)

	assert.Equal(t, Entry{Y: 0x10, X: 0x08, Tile: 0x03}, p.OAM().Entries[0])
	assert.Equal(t, uint8(0x80), p.OAM().Entries[39].Flags)
	assert.Equal(t, uint8(0x03), p.Read(0xFE02))
}

func TestIllegalAddressPanics(t *testing.T) {
	p := New(types.Monochrome, nil)
	assert.Panics(t, func() { p.Read(types.DMA) })
	assert.Panics(t, func() { p.Write(0xC000, 0) })
	assert.False(t, Claims(types.DMA))
	assert.True(t, Claims(types.LY))
	assert.True(t, Claims(types.OCPD))
	assert.True(t, Claims(0xFE9F))
	assert.False(t, Claims(0xFEA0))
}

func TestAccessGating(t *testing.T) {
	p, _ := newPPU(t, types.Monochrome, 0x80, WithAccessGating())
	p.VRAM().Bank(0)[0] = 0x12
	p.OAM().Entries[0].Y = 0x34

	// Search
	assert.Equal(t, uint8(0xFF), p.Read(0xFE00))
	assert.Equal(t, uint8(0x12), p.Read(0x8000))

	p.Step(SearchDots)
	require.Equal(t, lcd.Pixels, p.StatMode())
	assert.Equal(t, uint8(0xFF), p.Read(0xFE00))
	assert.Equal(t, uint8(0xFF), p.Read(0x8000))
	p.Write(0x8000, 0x99)
	assert.Equal(t, uint8(0x12), p.VRAM().Bank(0)[0])

	p.Step(PixelsDots)
	require.Equal(t, lcd.HBlank, p.StatMode())
	assert.Equal(t, uint8(0x34), p.Read(0xFE00))
	assert.Equal(t, uint8(0x12), p.Read(0x8000))

	open, _ := newPPU(t, types.Monochrome, 0x80)
	open.Step(SearchDots)
	open.Write(0x8000, 0x99)
	assert.Equal(t, uint8(0x99), open.Read(0x8000))
}

func TestVisibleSprites(t *testing.T) {
	p := New(types.Monochrome, nil)
	for i := 0; i < 12; i++ {
		p.OAM().Entries[i+2] = Entry{Y: 16, X: uint8(8 + i)}
	}
	p.OAM().Entries[0] = Entry{Y: 40, X: 8}
	p.Write(types.LCDC, 0x82)

	visible := p.VisibleSprites()
	require.Len(t, visible, MaxLineSprites)
	assert.Equal(t, 2, visible[0])
	assert.Equal(t, 11, visible[9])

	p.Step(DotsPerLine * 24)
	assert.Equal(t, []int{0}, p.VisibleSprites())
}
