// Package settings persists a fixed-size settings block in the last pages of
// microcontroller program flash.
//
// # Overview
//
// Parts like the CH32V003 have no EEPROM, so configuration data that must
// survive power cycles is kept in program flash instead. This package
// implements the complete persistence protocol:
//   - Carving a page-aligned region out of the end of flash
//   - Loading the block and verifying its CRC-16 trailer
//   - Skipping writes when the block already matches flash
//   - Erasing and fast-programming the region page by page
//
// # Basic Usage
//
// The store borrows a caller-owned byte buffer and keeps it associated with
// a flash region sized for it:
//
//	// Hardware access behind the flash.Bus interface; flashsim.Device
//	// implements it for host-side use.
//	dev := flashsim.New()
//
//	buf := make([]byte, 32)
//	store := settings.New(dev, buf)
//
//	if !store.Load() {
//	    // First boot or corrupted block: fill buf with defaults.
//	    applyDefaults(buf)
//	    store.Save()
//	}
//
//	// ... mutate buf as settings change ...
//	store.Save()
//
// # Checksum
//
// By default the last two bytes of the block hold a little-endian CRC-16
// (CCITT polynomial 0x1021, initial value 0xFFFF) computed over the rest of
// the block. Save writes it, Load verifies it. Load always fills the buffer
// from flash, even when verification fails, so callers can inspect what was
// read. Blocks shorter than the trailer disable the checksum.
//
// # Change Detection
//
// Save compares the buffer against flash first and returns without touching
// the hardware when nothing differs. Flash pages survive on the order of
// 10K erase cycles, so settings that rarely change should not burn a cycle
// per boot. WithForceWrite disables the comparison.
//
// # Progress Tracking
//
// Saves report their phases through an optional callback:
//
//	store := settings.New(dev, buf,
//	    settings.WithProgressCallback(func(p settings.Progress) {
//	        fmt.Printf("[%s] page %d/%d\n", p.Phase, p.Page, p.TotalPages)
//	    }),
//	)
//
// # Configuration Options
//
//	store := settings.New(dev, buf,
//	    settings.WithChecksum(true),
//	    settings.WithForceWrite(false),
//	    settings.WithLayout(flash.Layout{PageSize: 64, EndAddr: 0x08004000}),
//	    settings.WithLogger(settings.NewSlogLogger(slog.Default())),
//	    settings.WithProgressCallback(progressFunc),
//	)
//
// # Logging
//
// The Logger interface integrates with any logging framework, and
// NewSlogLogger adapts the standard library's log/slog:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	store := settings.New(dev, buf, settings.WithLogger(settings.NewSlogLogger(logger)))
//
// # Error Handling
//
// The engine mirrors the on-chip register model, where operations cannot
// fail in a reportable way: Load returns a single integrity bool and Save
// returns nothing. A save interrupted by power loss leaves a block that
// fails the next Load, which is the recovery signal. Busy waits spin
// without a timeout.
//
// # Concurrency
//
// A Store owns its region and buffer exclusively. Load and Save are
// synchronous and not safe for concurrent use.
package settings
