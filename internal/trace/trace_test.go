package trace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/silatcha/gboy/internal/gameboy"
	"github.com/silatcha/gboy/internal/ppu"
	"github.com/silatcha/gboy/internal/ppu/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blackTile = `
# a single black tile at the top left
w 8000 ff ff        # tile 0, row 0
w 0x9800 00
w ff47 fc           # BGP: index 3 is black
w ff40 91           # display + BG, tiles at 0x8000
step 312
expect ff41 0x84    # HBlank, LY=LYC
expect ff44 00
`

func TestParse(t *testing.T) {
	s, err := Parse(strings.NewReader(blackTile))
	require.NoError(t, err)
	require.Len(t, s, 7)

	assert.Equal(t, Command{Op: OpWrite, Line: 3, Address: 0x8000, Data: []uint8{0xFF, 0xFF}}, s[0])
	assert.Equal(t, uint16(0x9800), s[1].Address)
	assert.Equal(t, OpStep, s[4].Op)
	assert.Equal(t, uint64(312), s[4].Count)
	assert.Equal(t, OpExpect, s[5].Op)
	assert.Equal(t, uint8(0x84), s[5].Data[0])
	assert.Equal(t, uint64(312), s.Dots())
}

func TestParseCounts(t *testing.T) {
	s, err := Parse(strings.NewReader("line\nline 3\nframe\nframe 2\nfill c000 300 aa\n"))
	require.NoError(t, err)

	assert.Equal(t, uint64(ppu.DotsPerLine), s[0].Count)
	assert.Equal(t, uint64(3*ppu.DotsPerLine), s[1].Count)
	assert.Equal(t, uint64(ppu.FrameDots), s[2].Count)
	assert.Equal(t, uint64(2*ppu.FrameDots), s[3].Count)
	assert.Equal(t, Command{Op: OpFill, Line: 5, Address: 0xC000, Data: []uint8{0xAA}, Count: 300}, s[4])
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"w ff40",
		"w 10000 00",
		"w ff40 100",
		"fill c000 aa",
		"step",
		"step 0x10",
		"frame 1 2",
		"expect ff40",
		"jump 0100",
	} {
		_, err := Parse(strings.NewReader("# header\n" + in))
		if assert.Error(t, err, in) {
			assert.Contains(t, err.Error(), "line 2", in)
		}
	}
}

func TestRunBlackTile(t *testing.T) {
	g := gameboy.New()
	s, err := Parse(strings.NewReader(blackTile))
	require.NoError(t, err)

	require.NoError(t, s.Run(g))
	assert.Equal(t, palette.Color{0, 0, 0}, g.PPU.Framebuffer()[0][0])
	assert.Equal(t, uint8(3), g.PPU.ColorIndex(0, 0))
	assert.Equal(t, uint64(312), g.Cycles())
}

func TestRunFill(t *testing.T) {
	g := gameboy.New()
	s, err := Parse(strings.NewReader("fill c010 16 5a\nexpect c010 5a\nexpect c01f 5a\nexpect c020 00\n"))
	require.NoError(t, err)
	assert.NoError(t, s.Run(g))
}

func TestRunExpectationFailure(t *testing.T) {
	g := gameboy.New()
	s, err := Parse(strings.NewReader("w c000 01\nexpect c000 02\n"))
	require.NoError(t, err)

	err = s.Run(g)
	assert.ErrorIs(t, err, ErrExpectation)
	assert.Contains(t, err.Error(), "line 2")
}

type stepRecorder struct{ steps []uint64 }

func (r *stepRecorder) Read(uint16) uint8   { return 0 }
func (r *stepRecorder) Write(uint16, uint8) {}
func (r *stepRecorder) Step(cycles uint64)  { r.steps = append(r.steps, cycles) }

func TestRunStepGranularity(t *testing.T) {
	r := &stepRecorder{}
	require.NoError(t, Script{{Op: OpStep, Count: 10}}.Run(r))
	assert.Equal(t, []uint64{4, 4, 2}, r.steps)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "black.trace")
	require.NoError(t, os.WriteFile(path, []byte(blackTile), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s, 7)
}
