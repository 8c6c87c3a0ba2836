package settings

import "testing"

func TestCalculateCRC16(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint16
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0xFFFF, // initial value, no bytes processed
		},
		{
			name:     "single byte zero",
			data:     []byte{0x00},
			expected: 0xE1F0,
		},
		{
			name:     "single letter",
			data:     []byte("A"),
			expected: 0xB915,
		},
		{
			name:     "check string",
			data:     []byte("123456789"),
			expected: 0x29B1, // CRC-16/CCITT-FALSE check value
		},
		{
			name:     "single erased byte",
			data:     []byte{0xFF},
			expected: 0xFF00,
		},
		{
			name:     "erased trailer pair",
			data:     []byte{0xFF, 0xFF},
			expected: 0x0000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateCRC16(tt.data)
			if result != tt.expected {
				t.Errorf("CalculateCRC16() = 0x%04X, want 0x%04X", result, tt.expected)
			}
		})
	}
}

func TestCalculateCRC16Deterministic(t *testing.T) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	first := CalculateCRC16(data)
	second := CalculateCRC16(data)
	if first != second {
		t.Errorf("expected identical results, got 0x%04X and 0x%04X", first, second)
	}

	data[128] ^= 0x01
	if CalculateCRC16(data) == first {
		t.Error("expected a single bit flip to change the checksum")
	}
}

func BenchmarkCalculateCRC16(b *testing.B) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CalculateCRC16(data)
	}
}
