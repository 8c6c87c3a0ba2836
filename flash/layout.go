package flash

// Layout describes the flash geometry a settings region is carved out of.
type Layout struct {
	// PageSize is the erase/program page size in bytes.
	// Must be a power of two.
	PageSize uint32

	// EndAddr is the first address past the end of program flash.
	// Settings regions are placed directly below it.
	EndAddr uint32
}

// DefaultLayout returns the geometry of the reference part:
// 64-byte pages with flash ending at 0x08004000.
func DefaultLayout() Layout {
	return Layout{
		PageSize: DefaultPageSize,
		EndAddr:  DefaultEndAddr,
	}
}

// Region is a page-aligned address range in program flash.
type Region struct {
	// Base is the first address of the region.
	Base uint32

	// Size is the region length in bytes, always a multiple of the page size.
	Size uint32
}

// End returns the first address past the region.
func (r Region) End() uint32 {
	return r.Base + r.Size
}

// AlignUp rounds v up to the next multiple of align.
// align must be a power of two; this is not validated.
func AlignUp(v, align uint32) uint32 {
	return (v + align - 1) &^ (align - 1)
}

// Region computes the page-aligned region holding a settings block of the
// given length. The region occupies the last pages of flash, ending exactly
// at EndAddr.
//
// A zero length yields an empty region at EndAddr.
func (l Layout) Region(length int) Region {
	size := AlignUp(uint32(length), l.PageSize)
	return Region{
		Base: l.EndAddr - size,
		Size: size,
	}
}

// Pages returns the number of pages the region spans under this layout.
func (l Layout) Pages(r Region) int {
	return int(r.Size / l.PageSize)
}
