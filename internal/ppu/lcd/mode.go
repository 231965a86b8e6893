package lcd

// Mode represents the phase the PPU is currently in. Its value is the
// one reported in the low 2 bits of the STAT register.
type Mode uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// Search is the OAM search mode. The CPU can access the display RAM but not OAM.
	Search
	// Pixels is the pixel transfer mode. The CPU can access neither the display RAM nor OAM.
	Pixels
)

func (m Mode) String() string {
	switch m {
	case HBlank:
		return "HBlank"
	case VBlank:
		return "VBlank"
	case Search:
		return "Search"
	case Pixels:
		return "Pixels"
	}
	return "Unknown"
}
