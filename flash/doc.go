// Package flash models the flash memory controller found on WCH CH32V00x
// microcontrollers.
//
// This package provides the register map, control bits, unlock keys, flash
// geometry helpers, and a Controller type that drives the page erase and fast
// page programming sequences documented in the CH32V003 reference manual.
//
// # Register Overview
//
// The controller is a block of memory-mapped registers. Only a handful of
// them participate in the erase/program protocol:
//
//	KEYR     - unlock key register (write KEY1 then KEY2 to clear LOCK)
//	MODEKEYR - fast mode key register (same key pair, clears FLOCK)
//	STATR    - status register (BSY flag polled after every operation)
//	CTLR     - control register (operation select and start bits)
//	ADDR     - target address for erase and program operations
//
// # Unlock Sequence
//
// After reset the controller ignores all control writes. Two key pairs must
// be written before fast page operations are accepted:
//
//	bus.WriteReg(flash.RegKEYR, flash.UnlockKey1)
//	bus.WriteReg(flash.RegKEYR, flash.UnlockKey2)     // clears CTLR.LOCK
//	bus.WriteReg(flash.RegMODEKEYR, flash.UnlockKey1)
//	bus.WriteReg(flash.RegMODEKEYR, flash.UnlockKey2) // clears CTLR.FLOCK
//
// Controller.Unlock performs both writes in order. A wrong key value re-arms
// the sequence and the controller stays locked.
//
// # Page Erase
//
// Pages are erased one at a time. For each page:
//
//	CTLR |= PAGE_ER
//	ADDR  = page base address
//	CTLR |= STRT
//	wait while STATR.BSY
//	CTLR &^= PAGE_ER
//
// # Fast Page Programming
//
// Fast programming loads a full page into an internal 16-word latch, then
// burns the latch in one operation:
//
//	CTLR |= PAGE_PG
//	CTLR |= BUF_RST          // latch resets to all 0xFF
//	wait while STATR.BSY
//	for each 4-byte slot:
//	    write word to the mapped flash address
//	    CTLR |= BUF_LOAD
//	    wait while STATR.BSY
//	ADDR  = page base address
//	CTLR |= STRT
//	wait while STATR.BSY
//	CTLR &^= PAGE_PG
//
// Controller.ProgramPage owns the word assembly: input bytes are packed
// little-endian and any slot past the end of the data is filled with
// 0xFFFFFFFF, so short inputs leave the page tail erased.
//
// # Hardware Access
//
// The package does NOT touch hardware directly. All register and memory
// access goes through the Bus interface, so the same sequencing code runs
// against real register windows, a simulated device, or a recording double
// in tests:
//
//	type MyBus struct{ /* your register window */ }
//
//	func (b *MyBus) ReadReg(reg flash.Reg) uint32        { ... }
//	func (b *MyBus) WriteReg(reg flash.Reg, val uint32)  { ... }
//	func (b *MyBus) ReadFlash(addr uint32) byte          { ... }
//	func (b *MyBus) WriteFlashWord(addr, val uint32)     { ... }
//
// # Liveness
//
// Busy polling has no timeout. If the controller never clears BSY the wait
// spins forever, exactly as the on-chip sequence would. Callers that need a
// bound must put one in their Bus implementation.
//
// # Reference
//
// CH32V003 Reference Manual (RM), chapter "Flash Memory and User Option
// Bytes (FLASH)".
package flash
