package power

import "testing"

func TestParsePowerShortPackets(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0x20},
		{0x20, 0x00},
		{0x20, 0x00, 0x2C},
	}
	for _, buf := range cases {
		if got := ParsePower(buf); got != 0 {
			t.Errorf("ParsePower(%v) = %d, want 0", buf, got)
		}
	}
}

func TestParsePower(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want int
	}{
		{"zero power", []byte{0x00, 0x00, 0x00, 0x00}, 0},
		{"300 watts", []byte{0x00, 0x00, 0x2C, 0x01}, 300},
		{"one watt", []byte{0x20, 0x00, 0x01, 0x00}, 1},
		{"max int16", []byte{0x00, 0x00, 0xFF, 0x7F}, 32767},
		{"negative drift", []byte{0x00, 0x00, 0xFF, 0xFF}, -1},
		{"min int16", []byte{0x00, 0x00, 0x00, 0x80}, -32768},
		{"trailing fields ignored", []byte{0x34, 0x12, 0x2C, 0x01, 0xAA, 0xBB, 0xCC}, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePower(tt.buf); got != tt.want {
				t.Errorf("ParsePower(%v) = %d, want %d", tt.buf, got, tt.want)
			}
		})
	}
}
