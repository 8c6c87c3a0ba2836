//go:build !unix

package imagefile

import (
	"io"
	"os"
)

// openMapped reads the file into memory when mmap is not available.
// sync writes the buffer back to the file.
func openMapped(f *os.File, size int) (data []byte, sync func() error, unmap func() error, err error) {
	data = make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, nil, nil, err
	}
	sync = func() error {
		if _, err := f.WriteAt(data, 0); err != nil {
			return err
		}
		return f.Sync()
	}
	unmap = func() error { return nil }
	return data, sync, unmap, nil
}
