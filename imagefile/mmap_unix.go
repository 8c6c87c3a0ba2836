//go:build unix

package imagefile

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

// openMapped maps size bytes of f read-write and shared, so device writes
// land in the file's page cache. sync flushes the mapping; unmap releases it.
func openMapped(f *os.File, size int) (data []byte, sync func() error, unmap func() error, err error) {
	data, err = unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, nil, err
	}
	sync = func() error {
		return unix.Msync(data, unix.MS_SYNC)
	}
	unmap = func() error {
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, sync, unmap, nil
}
