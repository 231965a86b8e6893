package interrupts

import (
	"github.com/silatcha/gboy/internal/types"
)

// Flag is a single interrupt request bit of the IF register.
type Flag = uint8

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode (lcd.VBlank).
	VBlankFlag Flag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag Flag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag Flag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag Flag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when any of types.P1 bits 0-3
	// go from high to low.
	JoypadFlag Flag = types.Bit4
)

// Source is a device holding single-slot pending interrupt requests.
// Each Take call returns the pending request, if any, and clears it.
type Source interface {
	TakeVBlankInt() (Flag, bool)
	TakeLCDInt() (Flag, bool)
}

// Service is the interrupt service, used to request
// interrupts and to get the current interrupt vector.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// the CPU jumps to the interrupt vector, and the
// corresponding bit in the Flag register is cleared.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// Collect drains the pending requests of src into the Flag register.
// It is intended to be called once per CPU step.
func (s *Service) Collect(src Source) {
	if f, ok := src.TakeVBlankInt(); ok {
		s.Request(f)
	}
	if f, ok := src.TakeLCDInt(); ok {
		s.Request(f)
	}
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(flag Flag) {
	s.Flag |= flag
}

// Vector returns the currently serviced interrupt vector,
// or 0 if no interrupt is being serviced. This function
// will also clear the corresponding bit in the Flag
// register.
func (s *Service) Vector() uint16 {
	if s.Enable&s.Flag == 0 {
		return 0
	}
	for i := uint8(0); i < 5; i++ {
		flag := uint8(1 << i)

		if s.Flag&flag != 0 && s.Enable&flag != 0 {
			s.Flag ^= flag
			return uint16(0x0040 + i*8)
		}
	}

	return 0
}

// Read returns the value of the IF or IE register.
func (s *Service) Read(address uint16) uint8 {
	switch address {
	case types.IF:
		return s.Flag | 0xE0 // the upper 3 bits are always set
	case types.IE:
		return s.Enable
	}

	panic("interrupts: illegal read")
}

// Write writes the value to the IF or IE register.
func (s *Service) Write(address uint16, value uint8) {
	switch address {
	case types.IF:
		s.Flag = value & 0x1F // only the first 5 bits are used
	case types.IE:
		s.Enable = value
	default:
		panic("interrupts: illegal write")
	}
}
