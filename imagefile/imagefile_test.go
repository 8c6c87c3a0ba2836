package imagefile

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ch32-tools/settingsstore/flash"
	"github.com/ch32-tools/settingsstore/flashsim"
	"github.com/ch32-tools/settingsstore/settings"
)

func TestCreateAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")

	require.NoError(t, Create(path, 16*1024))

	file, err := Open(path)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, 16*1024, file.Size())
	assert.Equal(t, path, file.Path())
	assert.EqualValues(t, 0xFF, file.Device().ReadFlash(flash.DefaultFlashBase))
	assert.EqualValues(t, 0xFF, file.Device().ReadFlash(flash.DefaultEndAddr-1))
}

func TestCreateExistingFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")

	require.NoError(t, Create(path, 16*1024))
	assert.ErrorIs(t, Create(path, 16*1024), fs.ErrExist)
}

func TestCreateSizeValidation(t *testing.T) {
	tests := []struct {
		name string
		size int
		opts []flashsim.Option
	}{
		{
			name: "zero size",
			size: 0,
		},
		{
			name: "negative size",
			size: -64,
		},
		{
			name: "not a page multiple",
			size: 100,
		},
		{
			name: "not a multiple of a custom page size",
			size: 8*1024 + 64,
			opts: []flashsim.Option{flashsim.WithPageSize(256)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "flash.img")

			err := Create(path, tt.size, tt.opts...)
			var sizeErr *SizeError
			require.ErrorAs(t, err, &sizeErr)
			assert.Equal(t, int64(tt.size), sizeErr.Size)

			_, statErr := os.Stat(path)
			assert.ErrorIs(t, statErr, fs.ErrNotExist, "no file should be left behind")
		})
	}
}

func TestOpenSizeValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")
	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o644))

	_, err := Open(path)
	var sizeErr *SizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, int64(100), sizeErr.Size)
	assert.EqualValues(t, flash.DefaultPageSize, sizeErr.PageSize)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.img"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")
	require.NoError(t, Create(path, 16*1024))

	buf := make([]byte, 70)
	for i := range buf {
		buf[i] = byte(0x20 + i)
	}

	file, err := Open(path)
	require.NoError(t, err)
	store := settings.New(file.Device(), buf)
	store.Save()
	region := store.Region()
	require.NoError(t, file.Close())

	// The saved block must be visible in the raw file at the region's
	// offset from the flash base.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf[0], raw[region.Base-flash.DefaultFlashBase])

	// Reopening models a power cycle: a fresh device over the same image.
	file, err = Open(path)
	require.NoError(t, err)
	defer file.Close()

	reloaded := make([]byte, 70)
	require.True(t, settings.New(file.Device(), reloaded).Load())
	assert.Equal(t, buf, reloaded)
}

func TestSlice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")
	require.NoError(t, Create(path, 16*1024))

	file, err := Open(path)
	require.NoError(t, err)
	defer file.Close()

	window, err := file.Slice(flash.DefaultFlashBase+64, 64)
	require.NoError(t, err)
	require.Len(t, window, 64)

	// The window aliases the mapping, so the device sees writes through it.
	window[0] = 0x42
	assert.EqualValues(t, 0x42, file.Device().ReadFlash(flash.DefaultFlashBase+64))

	tests := []struct {
		name   string
		addr   uint32
		length int
	}{
		{
			name:   "below base",
			addr:   flash.DefaultFlashBase - 4,
			length: 8,
		},
		{
			name:   "past the end",
			addr:   flash.DefaultEndAddr - 4,
			length: 8,
		},
		{
			name:   "negative length",
			addr:   flash.DefaultFlashBase,
			length: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.Slice(tt.addr, tt.length)
			var boundsErr *BoundsError
			assert.ErrorAs(t, err, &boundsErr)
		})
	}
}

func TestCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")
	require.NoError(t, Create(path, 16*1024))

	file, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, file.Close())
	assert.NoError(t, file.Close())
	assert.ErrorIs(t, file.Sync(), os.ErrClosed)
}

func TestCustomGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flash.img")
	opts := []flashsim.Option{flashsim.WithPageSize(256), flashsim.WithBase(0x08000000)}

	require.NoError(t, Create(path, 8*1024, opts...))

	file, err := Open(path, opts...)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, 8*1024, file.Size())
	assert.Equal(t, 8*1024, file.Device().Size())

	layout := flash.Layout{PageSize: 256, EndAddr: 0x08002000}
	buf := make([]byte, 40)
	for i := range buf {
		buf[i] = byte(i)
	}
	settings.New(file.Device(), buf, settings.WithLayout(layout)).Save()

	reloaded := make([]byte, 40)
	assert.True(t, settings.New(file.Device(), reloaded, settings.WithLayout(layout)).Load())
	assert.Equal(t, buf, reloaded)
}
