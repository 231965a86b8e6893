package lcd

import (
	"fmt"

	"github.com/silatcha/gboy/internal/types"
)

// Status represents the LCD status register. It contains information about the
// current state of the LCD controller. Its value is stored in the STAT register
// (0xFF41) as follows:
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3, see below) (Read Only)
//		0: During H-Blank
//		1: During V-Blank
//		2: During Searching OAM-RAM
//		3: During Transferring Data to LCD Driver
type Status struct {
	// CoincidenceInterrupt is set when the LYC=LY coincidence interrupt is
	// enabled.
	CoincidenceInterrupt bool
	// OAMInterrupt is set when the OAM interrupt is enabled.
	OAMInterrupt bool
	// VBlankInterrupt is set when the V-Blank interrupt is enabled.
	VBlankInterrupt bool
	// HBlankInterrupt is set when the H-Blank interrupt is enabled.
	HBlankInterrupt bool
	// Coincidence is set while LY equals LYC.
	Coincidence bool
	// Mode is the current mode of the LCD controller.
	Mode Mode
}

// NewStatus returns a new Status.
func NewStatus() *Status {
	return &Status{}
}

// SetMode sets the mode reported in bits 0-1.
func (s *Status) SetMode(mode Mode) {
	s.Mode = mode
}

// SetCoincidence updates the coincidence flag, reporting whether it
// went from clear to set.
func (s *Status) SetCoincidence(equal bool) (rising bool) {
	rising = equal && !s.Coincidence
	s.Coincidence = equal
	return rising
}

// Write writes the value to the status register. Only the interrupt
// enables are writable.
func (s *Status) Write(address uint16, value uint8) {
	if address != types.STAT {
		panic(fmt.Sprintf("lcd status: illegal write to address 0x%04X", address))
	}
	s.CoincidenceInterrupt = value&types.Bit6 != 0
	s.OAMInterrupt = value&types.Bit5 != 0
	s.VBlankInterrupt = value&types.Bit4 != 0
	s.HBlankInterrupt = value&types.Bit3 != 0
}

// Read returns the value of the status register.
func (s *Status) Read(address uint16) uint8 {
	if address != types.STAT {
		panic(fmt.Sprintf("lcd status: illegal read from address 0x%04X", address))
	}
	var value uint8
	if s.CoincidenceInterrupt {
		value |= types.Bit6
	}
	if s.OAMInterrupt {
		value |= types.Bit5
	}
	if s.VBlankInterrupt {
		value |= types.Bit4
	}
	if s.HBlankInterrupt {
		value |= types.Bit3
	}
	if s.Coincidence {
		value |= types.Bit2
	}
	value |= uint8(s.Mode) & 0x03
	return value | types.Bit7 // bit 7 is always set
}
