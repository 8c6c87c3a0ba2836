package flash

// State identifies the protocol phase a Controller is driving.
type State int

// Controller states.
const (
	// StateLocked means no unlock sequence has run, or Lock was called
	StateLocked State = iota

	// StateUnlocked means both key pairs have been written
	StateUnlocked

	// StateErasing means a page erase is in progress
	StateErasing

	// StateProgramming means a fast page program is in progress
	StateProgramming
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	case StateErasing:
		return "erasing"
	case StateProgramming:
		return "programming"
	}
	return "unknown"
}

// Controller drives the erase and fast page programming protocol over a Bus.
//
// The expected call sequence is Unlock, any number of ErasePage and
// ProgramPage calls, then Lock. The controller tracks which phase it is
// driving but does not validate ordering: operating while locked is not an
// error here because the hardware simply ignores control writes in that
// state, and the outcome shows up in the flash contents instead.
//
// Controller is not safe for concurrent use. All operations run to
// completion on the calling goroutine; busy waits spin without a timeout.
type Controller struct {
	bus      Bus
	pageSize uint32
	state    State
}

// NewController returns a Controller in the locked state.
func NewController(bus Bus, layout Layout) *Controller {
	if bus == nil {
		panic("bus cannot be nil")
	}
	return &Controller{
		bus:      bus,
		pageSize: layout.PageSize,
		state:    StateLocked,
	}
}

// State reports the protocol phase currently being driven.
func (c *Controller) State() State {
	return c.state
}

// Unlock writes both key pairs, clearing LOCK and then FLOCK.
// Fast page operations are accepted afterwards.
func (c *Controller) Unlock() {
	c.bus.WriteReg(RegKEYR, UnlockKey1)
	c.bus.WriteReg(RegKEYR, UnlockKey2)
	c.bus.WriteReg(RegMODEKEYR, UnlockKey1)
	c.bus.WriteReg(RegMODEKEYR, UnlockKey2)
	c.state = StateUnlocked
}

// Lock re-locks fast mode and then the whole controller.
// A fresh Unlock is required before further operations.
func (c *Controller) Lock() {
	c.setCtlr(CtlrFLOCK)
	c.setCtlr(CtlrLOCK)
	c.state = StateLocked
}

// ErasePage erases the page at addr. addr must be page-aligned.
func (c *Controller) ErasePage(addr uint32) {
	c.state = StateErasing
	c.setCtlr(CtlrPageER)
	c.bus.WriteReg(RegADDR, addr)
	c.setCtlr(CtlrSTRT)
	c.waitBusy()
	c.clearCtlr(CtlrPageER)
	c.state = StateUnlocked
}

// ProgramPage programs one page at addr with data using fast page
// programming. addr must be page-aligned and len(data) must not exceed the
// page size. Words are assembled little-endian; slots past the end of data
// are filled with 0xFFFFFFFF, so a short page keeps its tail erased.
func (c *Controller) ProgramPage(addr uint32, data []byte) {
	if uint32(len(data)) > c.pageSize {
		panic("data exceeds page size")
	}

	c.state = StateProgramming
	c.setCtlr(CtlrPagePG)
	c.setCtlr(CtlrBufRst)
	c.waitBusy()

	wordAddr := addr
	for off := uint32(0); off < c.pageSize; off += WordSize {
		c.bus.WriteFlashWord(wordAddr, wordAt(data, int(off)))
		c.setCtlr(CtlrBufLoad)
		c.waitBusy()
		wordAddr += WordSize
	}

	c.bus.WriteReg(RegADDR, addr)
	c.setCtlr(CtlrSTRT)
	c.waitBusy()
	c.clearCtlr(CtlrPagePG)
	c.state = StateUnlocked
}

// setCtlr sets bits in CTLR with a read-modify-write.
func (c *Controller) setCtlr(bits uint32) {
	c.bus.WriteReg(RegCTLR, c.bus.ReadReg(RegCTLR)|bits)
}

// clearCtlr clears bits in CTLR with a read-modify-write.
func (c *Controller) clearCtlr(bits uint32) {
	c.bus.WriteReg(RegCTLR, c.bus.ReadReg(RegCTLR)&^bits)
}

// waitBusy spins until STATR.BSY clears. No timeout: a stuck controller
// blocks forever, matching the on-chip sequence.
func (c *Controller) waitBusy() {
	for c.bus.ReadReg(RegSTATR)&StatrBSY != 0 {
	}
}

// wordAt assembles the little-endian programming word at byte offset off.
// Bytes past the end of data read as 0xFF.
func wordAt(data []byte, off int) uint32 {
	word := uint32(0)
	for i := 3; i >= 0; i-- {
		word <<= 8
		if off+i < len(data) {
			word |= uint32(data[off+i])
		} else {
			word |= 0xFF
		}
	}
	return word
}
