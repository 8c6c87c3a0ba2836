package settings

import "time"

// Save phases reported through ProgressCallback.
const (
	// PhaseCompare means the block is being compared against flash
	PhaseCompare = "comparing"

	// PhaseSkipped means the block matched flash and no write was needed
	PhaseSkipped = "skipped"

	// PhaseErase means region pages are being erased
	PhaseErase = "erasing"

	// PhaseProgram means region pages are being programmed
	PhaseProgram = "programming"

	// PhaseComplete means the save finished and the controller is locked again
	PhaseComplete = "complete"
)

// Progress contains information about a save in flight.
// Passed to ProgressCallback as the operation advances.
type Progress struct {
	// Phase is the current save phase (see the Phase constants)
	Phase string

	// Page is the page just processed within the current phase (1-based)
	Page int

	// TotalPages is the number of pages in the region
	TotalPages int

	// Elapsed is the time since the save started
	Elapsed time.Duration
}

// ProgressCallback is called during Save to report progress.
// Implementations should return quickly; the save blocks while they run.
//
// Example:
//
//	store := settings.New(dev, buf,
//	    settings.WithProgressCallback(func(p settings.Progress) {
//	        fmt.Printf("[%s] page %d/%d\n", p.Phase, p.Page, p.TotalPages)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the store.
// This allows integration with any logging framework; NewSlogLogger adapts
// the standard library's log/slog.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	store := settings.New(dev, buf, settings.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
