package flashsim

import (
	"encoding/binary"
	"fmt"

	"github.com/ch32-tools/settingsstore/flash"
)

// Counters tracks simulated controller operations.
type Counters struct {
	// PageErases is the number of completed page erase operations
	PageErases int

	// PagePrograms is the number of completed page program operations
	PagePrograms int

	// WordLoads is the number of words latched into the page buffer
	WordLoads int
}

// Device simulates a flash array behind CH32V00x controller registers.
// It implements flash.Bus.
//
// Device is not safe for concurrent use, matching the single-owner model
// of the hardware it stands in for.
type Device struct {
	base     uint32
	pageSize uint32
	mem      []byte

	ctlr uint32
	addr uint32

	keyStage     int
	modeKeyStage int

	pageBuf     []byte
	stagedAddr  uint32
	stagedWord  uint32
	stagedValid bool

	busyHold  int
	busyPolls int

	counters Counters
}

// New creates a simulated device. Without options it owns a blank 16KB
// array (all 0xFF) based at 0x08000000 with 64-byte pages, and comes out
// of reset locked.
func New(opts ...Option) *Device {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	mem := cfg.Memory
	if mem == nil {
		mem = make([]byte, cfg.Size)
		for i := range mem {
			mem[i] = 0xFF
		}
	}

	d := &Device{
		base:      cfg.Base,
		pageSize:  cfg.PageSize,
		mem:       mem,
		ctlr:      flash.CtlrLOCK | flash.CtlrFLOCK,
		pageBuf:   make([]byte, cfg.PageSize),
		busyPolls: cfg.BusyPolls,
	}
	for i := range d.pageBuf {
		d.pageBuf[i] = 0xFF
	}
	return d
}

// ReadReg reads a controller register. STATR reports BSY for the
// configured number of polls after each operation; KEYR and MODEKEYR are
// write-only and read as zero.
func (d *Device) ReadReg(reg flash.Reg) uint32 {
	switch reg {
	case flash.RegSTATR:
		if d.busyHold > 0 {
			d.busyHold--
			return flash.StatrBSY
		}
		return 0
	case flash.RegCTLR:
		return d.ctlr
	case flash.RegADDR:
		return d.addr
	}
	return 0
}

// WriteReg writes a controller register. CTLR and ADDR writes are ignored
// while the controller is locked.
func (d *Device) WriteReg(reg flash.Reg, val uint32) {
	switch reg {
	case flash.RegKEYR:
		d.writeKey(&d.keyStage, val, func() { d.ctlr &^= flash.CtlrLOCK })
	case flash.RegMODEKEYR:
		// Fast mode keys are accepted only once LOCK is already clear.
		if d.ctlr&flash.CtlrLOCK != 0 {
			d.modeKeyStage = 0
			return
		}
		d.writeKey(&d.modeKeyStage, val, func() { d.ctlr &^= flash.CtlrFLOCK })
	case flash.RegCTLR:
		d.writeCtlr(val)
	case flash.RegADDR:
		if d.ctlr&flash.CtlrLOCK == 0 {
			d.addr = val
		}
	}
}

// ReadFlash reads one byte from the array. Array reads work regardless of
// lock state.
func (d *Device) ReadFlash(addr uint32) byte {
	return d.mem[d.offset(addr)]
}

// WriteFlashWord stages a word for the page buffer. The write lands only
// while fast programming is selected; otherwise it is ignored like a stray
// write to a read-only bus region.
func (d *Device) WriteFlashWord(addr uint32, val uint32) {
	d.offset(addr) // bounds check applies even to ignored writes
	if d.ctlr&flash.CtlrLOCK != 0 || d.ctlr&flash.CtlrPagePG == 0 {
		return
	}
	d.stagedAddr = addr
	d.stagedWord = val
	d.stagedValid = true
}

// writeKey advances a key register's unlock sequence. Any unexpected value
// re-arms the sequence and the corresponding lock stays set.
func (d *Device) writeKey(stage *int, val uint32, unlock func()) {
	switch {
	case *stage == 0 && val == flash.UnlockKey1:
		*stage = 1
	case *stage == 1 && val == flash.UnlockKey2:
		unlock()
		*stage = 0
	default:
		*stage = 0
	}
}

// writeCtlr applies a CTLR write: action bits (BUF_RST, BUF_LOAD, STRT)
// execute and self-clear, the rest of the value is stored.
func (d *Device) writeCtlr(val uint32) {
	if d.ctlr&flash.CtlrLOCK != 0 {
		return
	}

	if val&flash.CtlrBufRst != 0 {
		for i := range d.pageBuf {
			d.pageBuf[i] = 0xFF
		}
		d.stagedValid = false
		d.busyHold = d.busyPolls
	}

	if val&flash.CtlrBufLoad != 0 && val&flash.CtlrPagePG != 0 && d.stagedValid {
		slot := (d.stagedAddr % d.pageSize) &^ 3
		binary.LittleEndian.PutUint32(d.pageBuf[slot:slot+4], d.stagedWord)
		d.counters.WordLoads++
		d.stagedValid = false
		d.busyHold = d.busyPolls
	}

	if val&flash.CtlrSTRT != 0 {
		switch {
		case val&flash.CtlrPageER != 0:
			d.erasePage(d.addr)
		case val&flash.CtlrPagePG != 0:
			d.programPage(d.addr)
		}
	}

	if val&flash.CtlrLOCK != 0 {
		d.keyStage = 0
		d.modeKeyStage = 0
	}
	if val&flash.CtlrFLOCK != 0 {
		d.modeKeyStage = 0
	}

	d.ctlr = val &^ (flash.CtlrSTRT | flash.CtlrBufLoad | flash.CtlrBufRst)
}

// erasePage fills the page containing addr with 0xFF.
func (d *Device) erasePage(addr uint32) {
	off := d.offset(addr &^ (d.pageSize - 1))
	for i := 0; i < int(d.pageSize); i++ {
		d.mem[off+i] = 0xFF
	}
	d.counters.PageErases++
	d.busyHold = d.busyPolls
}

// programPage burns the page buffer into the page containing addr.
// Flash programming can only clear bits, so old and new contents are ANDed.
func (d *Device) programPage(addr uint32) {
	off := d.offset(addr &^ (d.pageSize - 1))
	for i := 0; i < int(d.pageSize); i++ {
		d.mem[off+i] &= d.pageBuf[i]
	}
	d.counters.PagePrograms++
	d.busyHold = d.busyPolls
}

// offset maps an absolute address to an array index.
// Out-of-range access panics, standing in for a bus fault.
func (d *Device) offset(addr uint32) int {
	if addr < d.base || addr-d.base >= uint32(len(d.mem)) {
		panic(fmt.Sprintf("flashsim: address 0x%08X outside array [0x%08X, 0x%08X)",
			addr, d.base, d.base+uint32(len(d.mem))))
	}
	return int(addr - d.base)
}

// Base returns the first address of the array.
func (d *Device) Base() uint32 {
	return d.base
}

// Size returns the array size in bytes.
func (d *Device) Size() int {
	return len(d.mem)
}

// Bytes returns the backing array. The slice is aliased, not copied.
func (d *Device) Bytes() []byte {
	return d.mem
}

// Locked reports whether the controller ignores control writes.
func (d *Device) Locked() bool {
	return d.ctlr&flash.CtlrLOCK != 0
}

// FastLocked reports whether fast page operations are still locked.
func (d *Device) FastLocked() bool {
	return d.ctlr&flash.CtlrFLOCK != 0
}

// Counters returns the operation counters.
func (d *Device) Counters() Counters {
	return d.counters
}

// ResetCounters zeroes the operation counters.
func (d *Device) ResetCounters() {
	d.counters = Counters{}
}

// SetBytes writes directly into the array, bypassing the controller.
// Intended for test setup.
func (d *Device) SetBytes(addr uint32, data []byte) {
	off := d.offset(addr)
	if off+len(data) > len(d.mem) {
		panic(fmt.Sprintf("flashsim: write of %d bytes at 0x%08X overruns array", len(data), addr))
	}
	copy(d.mem[off:], data)
}

// Corrupt inverts the byte at addr, bypassing the controller.
// Intended for integrity tests.
func (d *Device) Corrupt(addr uint32) {
	d.mem[d.offset(addr)] ^= 0xFF
}

// Compile-time interface satisfaction check.
var _ flash.Bus = (*Device)(nil)
