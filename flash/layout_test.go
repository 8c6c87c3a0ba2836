package flash

import "testing"

func TestAlignUp(t *testing.T) {
	tests := []struct {
		name  string
		v     uint32
		align uint32
		want  uint32
	}{
		{name: "zero stays zero", v: 0, align: 64, want: 0},
		{name: "one rounds to page", v: 1, align: 64, want: 64},
		{name: "exact multiple unchanged", v: 64, align: 64, want: 64},
		{name: "just over one page", v: 65, align: 64, want: 128},
		{name: "partial second page", v: 70, align: 64, want: 128},
		{name: "word alignment", v: 5, align: 4, want: 8},
		{name: "large alignment", v: 100, align: 256, want: 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlignUp(tt.v, tt.align); got != tt.want {
				t.Errorf("AlignUp(%d, %d) = %d, want %d", tt.v, tt.align, got, tt.want)
			}
		})
	}
}

func TestLayoutRegion(t *testing.T) {
	tests := []struct {
		name     string
		layout   Layout
		length   int
		wantBase uint32
		wantSize uint32
	}{
		{
			name:     "partial second page",
			layout:   DefaultLayout(),
			length:   70,
			wantBase: 0x08003F80,
			wantSize: 128,
		},
		{
			name:     "exactly one page",
			layout:   DefaultLayout(),
			length:   64,
			wantBase: 0x08003FC0,
			wantSize: 64,
		},
		{
			name:     "single byte",
			layout:   DefaultLayout(),
			length:   1,
			wantBase: 0x08003FC0,
			wantSize: 64,
		},
		{
			name:     "zero length is empty region at end",
			layout:   DefaultLayout(),
			length:   0,
			wantBase: 0x08004000,
			wantSize: 0,
		},
		{
			name:     "two full pages",
			layout:   DefaultLayout(),
			length:   128,
			wantBase: 0x08003F80,
			wantSize: 128,
		},
		{
			name:     "custom page size",
			layout:   Layout{PageSize: 256, EndAddr: 0x08010000},
			length:   300,
			wantBase: 0x0800FE00,
			wantSize: 512,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.layout.Region(tt.length)
			if r.Base != tt.wantBase {
				t.Errorf("Base = 0x%08X, want 0x%08X", r.Base, tt.wantBase)
			}
			if r.Size != tt.wantSize {
				t.Errorf("Size = %d, want %d", r.Size, tt.wantSize)
			}
			if r.End() != tt.layout.EndAddr {
				t.Errorf("End() = 0x%08X, want 0x%08X", r.End(), tt.layout.EndAddr)
			}
		})
	}
}

func TestLayoutPages(t *testing.T) {
	layout := DefaultLayout()

	tests := []struct {
		name   string
		length int
		want   int
	}{
		{name: "zero length", length: 0, want: 0},
		{name: "one byte", length: 1, want: 1},
		{name: "one page", length: 64, want: 1},
		{name: "two pages", length: 70, want: 2},
		{name: "three pages", length: 130, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := layout.Region(tt.length)
			if got := layout.Pages(r); got != tt.want {
				t.Errorf("Pages = %d, want %d", got, tt.want)
			}
		})
	}
}
