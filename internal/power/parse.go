// Package power parses Cycling Power Measurement notifications and maps
// instantaneous watts to a normalized trigger ratio.
package power

import "encoding/binary"

// minPacketLen is the shortest CPM packet that carries an instantaneous
// power field: 2 flag bytes followed by a signed 16-bit power value.
const minPacketLen = 4

// ParsePower extracts instantaneous power in watts from a raw Cycling Power
// Measurement packet. The value is a signed little-endian 16-bit integer at
// bytes [2,4). Packets shorter than 4 bytes are treated as idle frames and
// yield 0, never an error.
func ParsePower(buf []byte) int {
	if len(buf) < minPacketLen {
		return 0
	}
	return int(int16(binary.LittleEndian.Uint16(buf[2:4])))
}
