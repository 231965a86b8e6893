// Package ram provides a basic RAM implementation.
package ram

import "fmt"

// RAM represents a block of RAM.
type RAM interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// ram is a block of size bytes addressed from base.
type ram struct {
	base uint16
	data []uint8
}

// NewRAM returns a zeroed RAM of size bytes mapped at base.
func NewRAM(base uint16, size uint32) RAM {
	return &ram{
		base: base,
		data: make([]uint8, size),
	}
}

// Read returns the value at the given address.
func (r *ram) Read(address uint16) uint8 {
	return r.data[r.offset(address)]
}

// Write writes the value to the given address.
func (r *ram) Write(address uint16, value uint8) {
	r.data[r.offset(address)] = value
}

func (r *ram) offset(address uint16) int {
	off := int(address) - int(r.base)
	if off < 0 || off >= len(r.data) {
		panic(fmt.Sprintf("ram: address 0x%04X outside 0x%04X-0x%04X", address, r.base, int(r.base)+len(r.data)-1))
	}
	return off
}
