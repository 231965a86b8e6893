package types

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F
	// LCDC is the address of the LCD control register. It holds the
	// top-level enable bits for the display, background, window and
	// objects, and the tile map/data addressing selects.
	LCDC HardwareAddress = 0xFF40
	// STAT is the address of the LCD status register. It reports the
	// current PPU mode and the LY=LYC coincidence, and holds the
	// STAT interrupt enables.
	STAT HardwareAddress = 0xFF41
	// SCY is the address of the background scroll Y register.
	SCY HardwareAddress = 0xFF42
	// SCX is the address of the background scroll X register.
	SCX HardwareAddress = 0xFF43
	// LY is the address of the LY register, the line currently being
	// transferred to the LCD driver. Writing to it resets the counter.
	LY HardwareAddress = 0xFF44
	// LYC is the address of the LY compare register.
	LYC HardwareAddress = 0xFF45
	// DMA is the address of the OAM DMA transfer register. Writing a
	// value XX copies 0xXX00-0xXX9F into OAM.
	DMA HardwareAddress = 0xFF46
	// BGP is the address of the monochrome background palette.
	BGP HardwareAddress = 0xFF47
	// OBP0 is the address of the first monochrome object palette.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is the address of the second monochrome object palette.
	OBP1 HardwareAddress = 0xFF49
	// WY is the address of the window Y position register.
	WY HardwareAddress = 0xFF4A
	// WX is the address of the window X position register, offset
	// by 7 pixels.
	WX HardwareAddress = 0xFF4B
	// VBK is the address of the VRAM bank select register (CGB).
	VBK HardwareAddress = 0xFF4F
	// BCPS is the address of the background palette index register (CGB).
	BCPS HardwareAddress = 0xFF68
	// BCPD is the address of the background palette data register (CGB).
	BCPD HardwareAddress = 0xFF69
	// OCPS is the address of the object palette index register (CGB).
	OCPS HardwareAddress = 0xFF6A
	// OCPD is the address of the object palette data register (CGB).
	OCPD HardwareAddress = 0xFF6B
	// IE is the address of the interrupt enable register.
	IE HardwareAddress = 0xFFFF
)

const (
	// VRAMStart is the first address of video RAM.
	VRAMStart uint16 = 0x8000
	// VRAMEnd is the last address of video RAM.
	VRAMEnd uint16 = 0x9FFF
	// OAMStart is the first address of object attribute memory.
	OAMStart uint16 = 0xFE00
	// OAMEnd is the last address of object attribute memory.
	OAMEnd uint16 = 0xFE9F
)
