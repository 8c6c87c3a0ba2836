// Package imagefile stores simulated flash arrays in regular files. An
// opened image is memory-mapped and wrapped in a flashsim.Device whose
// backing array is the mapping, so controller operations land directly in
// the file's pages.
package imagefile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ch32-tools/settingsstore/flashsim"
)

// SizeError reports an image size that cannot back a flash array.
type SizeError struct {
	Path     string
	Size     int64
	PageSize uint32
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("image %s: size %d is not a positive multiple of the %d-byte page size",
		e.Path, e.Size, e.PageSize)
}

// BoundsError reports an address range that falls outside the image.
type BoundsError struct {
	Addr   uint32
	Length int
	Size   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("range [0x%08X, 0x%08X) outside image of %d bytes",
		e.Addr, uint64(e.Addr)+uint64(e.Length), e.Size)
}

// File is an open flash image. It owns the mapping and the wrapping device;
// both stay valid until Close.
type File struct {
	path   string
	f      *os.File
	data   []byte
	dev    *flashsim.Device
	sync   func() error
	unmap  func() error
	closed bool
}

// Create writes a new all-0xFF image of the given size. The file must not
// already exist. Geometry options validate the size the same way Open does.
func Create(path string, size int, opts ...flashsim.Option) error {
	cfg := flashsim.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if size <= 0 || size%int(cfg.PageSize) != 0 {
		return &SizeError{Path: path, Size: int64(size), PageSize: cfg.PageSize}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(bytes.Repeat([]byte{0xFF}, size)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Open maps the image read-write and wraps it in a simulated device.
// Geometry options (flashsim.WithBase, flashsim.WithPageSize, ...) configure
// the device; a caller-provided flashsim.WithMemory is overridden by the
// mapping. The image size must be a positive multiple of the page size.
func Open(path string, opts ...flashsim.Option) (*File, error) {
	cfg := flashsim.DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := info.Size()
	if size <= 0 || size%int64(cfg.PageSize) != 0 || size > int64(^uint(0)>>1) {
		f.Close()
		return nil, &SizeError{Path: path, Size: size, PageSize: cfg.PageSize}
	}

	data, syncFn, unmapFn, err := openMapped(f, int(size))
	if err != nil {
		f.Close()
		return nil, err
	}

	dev := flashsim.New(append(append([]flashsim.Option{}, opts...), flashsim.WithMemory(data))...)

	return &File{
		path:  path,
		f:     f,
		data:  data,
		dev:   dev,
		sync:  syncFn,
		unmap: unmapFn,
	}, nil
}

// Path returns the image path.
func (f *File) Path() string {
	return f.path
}

// Size returns the image size in bytes.
func (f *File) Size() int {
	return len(f.data)
}

// Device returns the simulated device backed by this image.
func (f *File) Device() *flashsim.Device {
	return f.dev
}

// Bytes returns the raw mapping. The slice is aliased, not copied, and is
// invalid after Close.
func (f *File) Bytes() []byte {
	return f.data
}

// Slice returns the image window covering [addr, addr+length) in device
// address space. The slice is aliased, not copied.
func (f *File) Slice(addr uint32, length int) ([]byte, error) {
	base := f.dev.Base()
	if length < 0 || addr < base || int64(addr)-int64(base)+int64(length) > int64(len(f.data)) {
		return nil, &BoundsError{Addr: addr, Length: length, Size: len(f.data)}
	}
	off := int(addr - base)
	return f.data[off : off+length], nil
}

// Sync flushes the mapping to disk.
func (f *File) Sync() error {
	if f.closed {
		return os.ErrClosed
	}
	return f.sync()
}

// Close flushes the mapping, releases it, and closes the file.
// Closing an already closed File is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	syncErr := f.sync()
	unmapErr := f.unmap()
	closeErr := f.f.Close()

	if syncErr != nil {
		return syncErr
	}
	if unmapErr != nil {
		return unmapErr
	}
	return closeErr
}
