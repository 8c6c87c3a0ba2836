package flash

// Bus is the hardware access surface the sequencing code runs against.
// Implementations map the four primitives onto real register windows, a
// simulated device, or a recording double.
//
// All methods follow memory-mapped semantics and cannot fail: a write the
// hardware does not accept (for example a CTLR write while locked) is
// silently ignored, and its effect becomes observable through later reads.
type Bus interface {
	// ReadReg reads a flash controller register.
	ReadReg(reg Reg) uint32

	// WriteReg writes a flash controller register.
	WriteReg(reg Reg, val uint32)

	// ReadFlash reads one byte from the flash array at an absolute address.
	// Array reads bypass the controller and are always coherent with the
	// last completed program or erase.
	ReadFlash(addr uint32) byte

	// WriteFlashWord writes a 32-bit word to an absolute flash address.
	// Only meaningful while fast programming is selected; the word is
	// staged for the page buffer rather than written to the array.
	WriteFlashWord(addr uint32, val uint32)
}
