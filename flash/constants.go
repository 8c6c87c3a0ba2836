package flash

// Reg is a register offset within the flash controller block.
type Reg uint32

// Flash controller register offsets per the CH32V003 reference manual.
// Offsets are relative to the controller block base (0x40022000).
const (
	// RegACTLR is the control register for flash access timing
	RegACTLR Reg = 0x00

	// RegKEYR is the key register; write UnlockKey1 then UnlockKey2 to clear LOCK
	RegKEYR Reg = 0x04

	// RegOBKEYR is the option byte key register (option byte programming only)
	RegOBKEYR Reg = 0x08

	// RegSTATR is the status register; BSY is polled after every operation
	RegSTATR Reg = 0x0C

	// RegCTLR is the control register holding operation select and start bits
	RegCTLR Reg = 0x10

	// RegADDR is the target address register for erase and program operations
	RegADDR Reg = 0x14

	// RegOBR is the option byte read-back register
	RegOBR Reg = 0x1C

	// RegWRPR is the write protection status register
	RegWRPR Reg = 0x20

	// RegMODEKEYR is the fast mode key register; the key pair clears FLOCK
	RegMODEKEYR Reg = 0x24

	// RegBootModeKEYR is the boot area mode key register
	RegBootModeKEYR Reg = 0x28
)

// String returns the register's datasheet name.
func (r Reg) String() string {
	switch r {
	case RegACTLR:
		return "ACTLR"
	case RegKEYR:
		return "KEYR"
	case RegOBKEYR:
		return "OBKEYR"
	case RegSTATR:
		return "STATR"
	case RegCTLR:
		return "CTLR"
	case RegADDR:
		return "ADDR"
	case RegOBR:
		return "OBR"
	case RegWRPR:
		return "WRPR"
	case RegMODEKEYR:
		return "MODEKEYR"
	case RegBootModeKEYR:
		return "BOOT_MODEKEYR"
	}
	return "UNKNOWN"
}

// Unlock key values. The same pair is written to KEYR and MODEKEYR.
const (
	// UnlockKey1 is the first unlock key value
	UnlockKey1 = 0x45670123

	// UnlockKey2 is the second unlock key value
	UnlockKey2 = 0xCDEF89AB
)

// CTLR control register bits.
const (
	// CtlrPG selects standard word programming
	CtlrPG = 1 << 0

	// CtlrPER selects standard (1KB sector) erase
	CtlrPER = 1 << 1

	// CtlrMER selects mass erase of the whole flash
	CtlrMER = 1 << 2

	// CtlrOPTPG selects option byte programming
	CtlrOPTPG = 1 << 4

	// CtlrOPTER selects option byte erase
	CtlrOPTER = 1 << 5

	// CtlrSTRT starts the selected operation; self-clears when it completes
	CtlrSTRT = 1 << 6

	// CtlrLOCK locks the controller; cleared only by the KEYR key sequence
	CtlrLOCK = 1 << 7

	// CtlrFLOCK locks fast mode; cleared only by the MODEKEYR key sequence
	CtlrFLOCK = 1 << 15

	// CtlrPagePG selects fast page programming
	CtlrPagePG = 1 << 16

	// CtlrPageER selects fast page erase
	CtlrPageER = 1 << 17

	// CtlrBufLoad latches the last written word into the page buffer; self-clears
	CtlrBufLoad = 1 << 18

	// CtlrBufRst resets the page buffer to all 0xFF; self-clears
	CtlrBufRst = 1 << 19
)

// STATR status register bits.
const (
	// StatrBSY indicates an operation is in progress
	StatrBSY = 1 << 0

	// StatrWRPRTERR indicates a write to a protected page was attempted
	StatrWRPRTERR = 1 << 4

	// StatrEOP indicates the last operation completed; write 1 to clear
	StatrEOP = 1 << 5
)

// Flash geometry of the reference part (CH32V003).
const (
	// DefaultPageSize is the erase/program page size in bytes
	DefaultPageSize = 64

	// DefaultFlashBase is the first address of program flash
	DefaultFlashBase = 0x08000000

	// DefaultFlashSize is the program flash size in bytes (16KB)
	DefaultFlashSize = 16 * 1024

	// DefaultEndAddr is the first address past the end of program flash
	DefaultEndAddr = DefaultFlashBase + DefaultFlashSize

	// WordSize is the programming word size in bytes
	WordSize = 4
)
