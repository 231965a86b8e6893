package types

import "strings"

// Mode is the hardware the emulated session runs as. It is chosen once
// at power-on and never changes.
type Mode int

const (
	// Monochrome is the original 4-shade Game Boy (DMG).
	Monochrome Mode = iota
	// Color is the Game Boy Color (CGB) with palette RAM and two
	// VRAM banks.
	Color
)

var modeNames = map[Mode]string{
	Monochrome: "DMG",
	Color:      "CGB",
}

// StringToMode converts a model name (dmg or cgb) to a Mode. Unknown
// names fall back to Monochrome.
func StringToMode(s string) Mode {
	for m, n := range modeNames {
		if n == strings.ToUpper(s) {
			return m
		}
	}

	return Monochrome
}

func (m Mode) String() string {
	return modeNames[m]
}

// VRAMBanks returns the number of VRAM banks available in the Mode.
func (m Mode) VRAMBanks() int {
	if m == Color {
		return 2
	}
	return 1
}
