package flashsim

import "github.com/ch32-tools/settingsstore/flash"

// DefaultBusyPolls is the number of status reads BSY stays set for after
// each simulated operation.
const DefaultBusyPolls = 2

// Config holds the simulated device configuration.
type Config struct {
	// Base is the first address of the flash array
	Base uint32

	// Size is the array size in bytes; ignored when Memory is provided
	Size int

	// PageSize is the erase/program page size in bytes.
	// Must be a power of two.
	PageSize uint32

	// BusyPolls is how many STATR reads report BSY after each operation
	BusyPolls int

	// Memory optionally provides the backing array. The slice is aliased,
	// not copied, so external writes and device operations see each other.
	Memory []byte
}

// DefaultConfig returns the default configuration: a blank 16KB array at
// 0x08000000 with 64-byte pages.
func DefaultConfig() Config {
	return Config{
		Base:      flash.DefaultFlashBase,
		Size:      flash.DefaultFlashSize,
		PageSize:  flash.DefaultPageSize,
		BusyPolls: DefaultBusyPolls,
	}
}

// Option is a functional option for configuring the Device.
type Option func(*Config)

// WithBase sets the first address of the flash array.
//
// Example:
//
//	dev := flashsim.New(flashsim.WithBase(0x08000000))
func WithBase(base uint32) Option {
	return func(c *Config) {
		c.Base = base
	}
}

// WithSize sets the array size in bytes. Ignored when WithMemory is used.
//
// Example:
//
//	dev := flashsim.New(flashsim.WithSize(32 * 1024))
func WithSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.Size = size
		}
	}
}

// WithPageSize sets the erase/program page size.
//
// Example:
//
//	dev := flashsim.New(flashsim.WithPageSize(256))
func WithPageSize(size uint32) Option {
	return func(c *Config) {
		if size > 0 {
			c.PageSize = size
		}
	}
}

// WithBusyPolls sets how many status reads report BSY after each operation.
// Zero makes every operation complete before the first poll.
//
// Example:
//
//	dev := flashsim.New(flashsim.WithBusyPolls(5))
func WithBusyPolls(polls int) Option {
	return func(c *Config) {
		if polls >= 0 {
			c.BusyPolls = polls
		}
	}
}

// WithMemory provides the backing array for the device. The slice is
// aliased rather than copied and is not reinitialized, so existing
// contents are preserved.
//
// Example:
//
//	mem := make([]byte, 16*1024)
//	dev := flashsim.New(flashsim.WithMemory(mem))
func WithMemory(mem []byte) Option {
	return func(c *Config) {
		c.Memory = mem
	}
}
