// Package display provides the sinks finished frames are presented to:
// image conversion, frame digests, fan-out and recording.
package display

import (
	"image"

	"github.com/cespare/xxhash"
	"github.com/silatcha/gboy/internal/ppu"
	"golang.org/x/image/draw"
)

// FrameSize is the size of a frame packed as RGB bytes.
const FrameSize = ppu.ScreenWidth * ppu.ScreenHeight * 3

// AppendRGB appends the pixels of f, row by row, as RGB bytes to dst.
func AppendRGB(dst []byte, f *ppu.Frame) []byte {
	for y := range f {
		for x := range f[y] {
			dst = append(dst, f[y][x][0], f[y][x][1], f[y][x][2])
		}
	}
	return dst
}

// ToImage converts f to an RGBA image.
func ToImage(f *ppu.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y := range f {
		for x := range f[y] {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = f[y][x][0]
			img.Pix[i+1] = f[y][x][1]
			img.Pix[i+2] = f[y][x][2]
			img.Pix[i+3] = 0xFF
		}
	}
	return img
}

// Hash returns the xxhash digest of the RGB bytes of f.
func Hash(f *ppu.Frame) uint64 {
	return xxhash.Sum64(AppendRGB(make([]byte, 0, FrameSize), f))
}

// Scale enlarges img by factor using nearest neighbour sampling, keeping
// pixels sharp.
func Scale(img image.Image, factor int) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

type multi []ppu.Video

// Multi returns a Video presenting every frame to each of videos, in
// order.
func Multi(videos ...ppu.Video) ppu.Video {
	return multi(videos)
}

func (m multi) DrawVideo(f *ppu.Frame) {
	for _, v := range m {
		v.DrawVideo(f)
	}
}

// Recorder keeps the digest of every presented frame and a copy of the
// last one.
type Recorder struct {
	Hashes []uint64
	Last   ppu.Frame
}

// DrawVideo records f.
func (r *Recorder) DrawVideo(f *ppu.Frame) {
	r.Hashes = append(r.Hashes, Hash(f))
	r.Last = *f
}

// Frames returns the number of frames recorded.
func (r *Recorder) Frames() int {
	return len(r.Hashes)
}
