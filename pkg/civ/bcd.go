package civ

// CI-V numeric payloads are packed BCD. Frequencies travel as five
// bytes, least significant digit pair first; level values travel as two
// bytes holding three digits, most significant first.

// EncodeFreq packs a frequency in Hz into 5-byte little-endian BCD.
// Frequencies beyond 10 digits are truncated on the wire, same as the
// radio does.
func EncodeFreq(hz int64) []byte {
	b := make([]byte, 5)
	for i := range b {
		lo := byte(hz % 10)
		hz /= 10
		hi := byte(hz % 10)
		hz /= 10
		b[i] = hi<<4 | lo
	}
	return b
}

// DecodeFreq unpacks 5-byte little-endian BCD frequency data.
func DecodeFreq(b []byte) (int64, error) {
	if len(b) < 5 {
		return 0, ErrShortResponse
	}
	var hz int64
	for i := 4; i >= 0; i-- {
		hz = hz*10 + int64(b[i]>>4)
		hz = hz*10 + int64(b[i]&0x0F)
	}
	return hz, nil
}

// EncodeLevel packs a raw level value (0..255) into 2-byte BCD,
// most significant digit first: 255 -> 0x02 0x55.
func EncodeLevel(v int) []byte {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return []byte{
		byte(v / 100),
		byte((v/10%10)<<4 | v%10),
	}
}

// DecodeLevel unpacks a 2-byte BCD level value.
func DecodeLevel(b []byte) (int, error) {
	if len(b) < 2 {
		return 0, ErrShortResponse
	}
	return int(b[0]&0x0F)*100 + int(b[1]>>4)*10 + int(b[1]&0x0F), nil
}
