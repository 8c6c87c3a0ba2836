// Package flashsim simulates a CH32V00x flash array behind its controller
// registers.
//
// # Overview
//
// Device implements flash.Bus over a plain byte array and reproduces the
// controller behavior the persistence protocol depends on:
//   - The two-stage key sequence: KEYR clears LOCK, then MODEKEYR clears
//     FLOCK. A wrong key value re-arms the sequence.
//   - Lock gating: CTLR and ADDR writes are ignored while LOCK is set.
//   - Fast page erase: PAGE_ER + ADDR + STRT fills the page with 0xFF.
//   - Fast page programming: BUF_RST resets the page latch, word writes
//     plus BUF_LOAD fill latch slots, STRT burns the latch into the array.
//   - Programming can only clear bits. Programming over an unerased page
//     ANDs old and new contents, corrupting the data visibly instead of
//     silently accepting it.
//   - BSY stays set for a configurable number of status reads after every
//     operation, exercising busy-wait loops without ever wedging them.
//
// # Counters
//
// The device counts page erases, page programs, and buffer loads, which is
// how tests observe change detection:
//
//	dev := flashsim.New()
//	store := settings.New(dev, buf)
//	store.Save()
//	store.Save() // identical content
//	if dev.Counters().PageErases != expected {
//	    // second save should not have touched flash
//	}
//
// # Backing Memory
//
// By default the device owns a 16KB array of 0xFF at 0x08000000. WithMemory
// substitutes a caller-provided slice without copying, which is how
// package imagefile maps a device onto a memory-mapped file.
//
// # Fidelity Limits
//
// Only the fast page protocol is simulated. Standard programming (PG),
// sector erase (PER), mass erase, and option byte operations are accepted
// and ignored. Out-of-range array access panics, standing in for a bus
// fault.
package flashsim
