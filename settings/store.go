package settings

import (
	"fmt"
	"time"

	"github.com/ch32-tools/settingsstore/flash"
)

// Store persists one fixed-size settings block in the last pages of program
// flash. The block buffer is borrowed from the caller and never reallocated;
// the flash region backing it is computed once at construction.
//
// Store is not safe for concurrent use. One Store owns one region.
type Store struct {
	bus    flash.Bus
	ctrl   *flash.Controller
	buf    []byte
	layout flash.Layout
	region flash.Region
	useCRC bool
	config Config
}

// New creates a Store over bus for the caller-owned buffer buf.
// The settings region is sized for len(buf), rounded up to whole pages,
// and placed at the end of flash per the configured layout.
//
// The checksum trailer is forced off when the buffer is too short to hold
// it, regardless of the Checksum option.
//
// Example:
//
//	dev := flashsim.New()
//	buf := make([]byte, 32)
//	store := settings.New(dev, buf,
//	    settings.WithLogger(settings.NewSlogLogger(slog.Default())),
//	)
func New(bus flash.Bus, buf []byte, opts ...Option) *Store {
	if bus == nil {
		panic("bus cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	useCRC := cfg.Checksum
	if len(buf) < ChecksumSize {
		useCRC = false
	}

	return &Store{
		bus:    bus,
		ctrl:   flash.NewController(bus, cfg.Layout),
		buf:    buf,
		layout: cfg.Layout,
		region: cfg.Layout.Region(len(buf)),
		useCRC: useCRC,
		config: cfg,
	}
}

// Region returns the flash region backing this store.
func (s *Store) Region() flash.Region {
	return s.region
}

// ChecksumEnabled reports whether the CRC-16 trailer is maintained for
// this block.
func (s *Store) ChecksumEnabled() bool {
	return s.useCRC
}

// Load copies the block from flash into the buffer and verifies its
// integrity. The buffer always receives the flash contents, even when
// verification fails; blank flash reads as 0xFF bytes.
//
// With the checksum enabled, Load returns true iff the CRC-16 of the
// payload matches the stored trailer. With it disabled, Load always
// returns true.
func (s *Store) Load() bool {
	for i := range s.buf {
		s.buf[i] = s.bus.ReadFlash(s.region.Base + uint32(i))
	}

	if !s.useCRC {
		s.logDebug("settings loaded", "bytes", len(s.buf), "checksum", "disabled")
		return true
	}

	stored := uint16(s.buf[len(s.buf)-2]) | uint16(s.buf[len(s.buf)-1])<<8
	computed := CalculateCRC16(s.buf[:len(s.buf)-ChecksumSize])

	if stored != computed {
		s.logError("settings checksum mismatch",
			"stored", fmt.Sprintf("0x%04X", stored),
			"computed", fmt.Sprintf("0x%04X", computed),
		)
		return false
	}

	s.logDebug("settings loaded", "bytes", len(s.buf), "checksum", fmt.Sprintf("0x%04X", stored))
	return true
}

// Save writes the block to flash:
//  1. Compare the buffer against flash and return if nothing changed
//     (skipped with WithForceWrite)
//  2. Refresh the CRC-16 trailer in the buffer
//  3. Unlock the controller, erase every region page
//  4. Fast-program every region page, then lock the controller again
//
// The write is not atomic: power loss between erase and the final program
// leaves a block that fails the next Load. The trailer bytes in the buffer
// are only updated when a write actually happens.
func (s *Store) Save() {
	start := time.Now()
	pages := s.layout.Pages(s.region)

	if !s.config.ForceWrite {
		s.reportProgress(Progress{Phase: PhaseCompare, TotalPages: pages})
		if !s.changed() {
			s.reportProgress(Progress{Phase: PhaseSkipped, TotalPages: pages, Elapsed: time.Since(start)})
			s.logDebug("settings unchanged, write skipped")
			return
		}
	}

	if s.useCRC {
		crc := CalculateCRC16(s.buf[:len(s.buf)-ChecksumSize])
		s.buf[len(s.buf)-2] = byte(crc)
		s.buf[len(s.buf)-1] = byte(crc >> 8)
	}

	s.ctrl.Unlock()

	for p := 0; p < pages; p++ {
		s.ctrl.ErasePage(s.pageAddr(p))
		s.reportProgress(Progress{Phase: PhaseErase, Page: p + 1, TotalPages: pages, Elapsed: time.Since(start)})
	}

	for p := 0; p < pages; p++ {
		s.ctrl.ProgramPage(s.pageAddr(p), s.pageData(p))
		s.reportProgress(Progress{Phase: PhaseProgram, Page: p + 1, TotalPages: pages, Elapsed: time.Since(start)})
	}

	s.ctrl.Lock()

	s.reportProgress(Progress{Phase: PhaseComplete, Page: pages, TotalPages: pages, Elapsed: time.Since(start)})
	s.logInfo("settings saved",
		"pages", pages,
		"bytes", len(s.buf),
		"base", fmt.Sprintf("0x%08X", s.region.Base),
		"elapsed", time.Since(start).String(),
	)
}

// changed compares the buffer against flash, stopping at the first
// difference. The trailer is excluded while the checksum is enabled: it is
// derived from the payload, so an unchanged payload implies an unchanged
// trailer from the last completed save.
func (s *Store) changed() bool {
	n := len(s.buf)
	if s.useCRC {
		n -= ChecksumSize
	}
	for i := 0; i < n; i++ {
		if s.buf[i] != s.bus.ReadFlash(s.region.Base+uint32(i)) {
			return true
		}
	}
	return false
}

// pageAddr returns the base address of the region's page (0-based).
func (s *Store) pageAddr(page int) uint32 {
	return s.region.Base + uint32(page)*s.layout.PageSize
}

// pageData returns the buffer slice covering the region's page. The final
// page may be shorter than the page size; ProgramPage pads it with 0xFF.
func (s *Store) pageData(page int) []byte {
	start := page * int(s.layout.PageSize)
	if start >= len(s.buf) {
		return nil
	}
	end := start + int(s.layout.PageSize)
	if end > len(s.buf) {
		end = len(s.buf)
	}
	return s.buf[start:end]
}

// reportProgress calls the progress callback if configured.
func (s *Store) reportProgress(progress Progress) {
	if s.config.ProgressCallback != nil {
		s.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (s *Store) logDebug(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (s *Store) logInfo(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (s *Store) logError(msg string, keysAndValues ...interface{}) {
	if s.config.Logger != nil {
		s.config.Logger.Error(msg, keysAndValues...)
	}
}
