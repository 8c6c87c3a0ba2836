package settings

import "github.com/ch32-tools/settingsstore/flash"

// Config holds the store configuration.
type Config struct {
	// Checksum maintains a CRC-16 trailer in the last two bytes of the block.
	// Forced off for blocks shorter than the trailer.
	Checksum bool

	// ForceWrite makes Save skip change detection and always write
	ForceWrite bool

	// Layout is the flash geometry the settings region is computed from
	Layout flash.Layout

	// ProgressCallback is called during saves to report progress (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Checksum: true,
		Layout:   flash.DefaultLayout(),
	}
}

// Option is a functional option for configuring the Store.
type Option func(*Config)

// WithChecksum enables or disables the CRC-16 trailer.
// Default is true.
//
// Example:
//
//	store := settings.New(dev, buf, settings.WithChecksum(false))
func WithChecksum(enabled bool) Option {
	return func(c *Config) {
		c.Checksum = enabled
	}
}

// WithForceWrite makes every Save erase and program the region even when
// the block already matches flash. Default is false.
//
// Example:
//
//	store := settings.New(dev, buf, settings.WithForceWrite(true))
func WithForceWrite(force bool) Option {
	return func(c *Config) {
		c.ForceWrite = force
	}
}

// WithLayout sets the flash geometry the settings region is computed from.
// Default is flash.DefaultLayout (64-byte pages ending at 0x08004000).
//
// Example:
//
//	store := settings.New(dev, buf,
//	    settings.WithLayout(flash.Layout{PageSize: 256, EndAddr: 0x08010000}),
//	)
func WithLayout(layout flash.Layout) Option {
	return func(c *Config) {
		c.Layout = layout
	}
}

// WithProgressCallback sets a callback function to track save progress.
//
// Example:
//
//	store := settings.New(dev, buf,
//	    settings.WithProgressCallback(func(p settings.Progress) {
//	        fmt.Printf("[%s] page %d/%d\n", p.Phase, p.Page, p.TotalPages)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for store operations.
//
// Example:
//
//	store := settings.New(dev, buf, settings.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
