package display

// convert565To666 re-quantizes RGB565 pixels to the ILI9488 18-bit wire
// format: one byte per channel, six significant bits left-aligned. The
// 5-bit channels widen by bit replication, so the panel value is the
// closest 6-bit match to the source channel. Two pixels per iteration,
// single-pixel tail for odd counts. Returns the number of bytes
// written; dst needs len(src)*3.
func convert565To666(dst []byte, src []uint16) int {
	n := len(src) &^ 1
	d := 0
	for i := 0; i < n; i += 2 {
		a := src[i]
		b := src[i+1]

		ra := byte(a >> 11)
		ga := byte(a>>5) & 0x3F
		ba := byte(a) & 0x1F
		rb := byte(b >> 11)
		gb := byte(b>>5) & 0x3F
		bb := byte(b) & 0x1F

		dst[d+0] = (ra<<1 | ra>>4) << 2
		dst[d+1] = ga << 2
		dst[d+2] = (ba<<1 | ba>>4) << 2
		dst[d+3] = (rb<<1 | rb>>4) << 2
		dst[d+4] = gb << 2
		dst[d+5] = (bb<<1 | bb>>4) << 2
		d += 6
	}
	if n < len(src) {
		a := src[n]
		ra := byte(a >> 11)
		ga := byte(a>>5) & 0x3F
		ba := byte(a) & 0x1F
		dst[d+0] = (ra<<1 | ra>>4) << 2
		dst[d+1] = ga << 2
		dst[d+2] = (ba<<1 | ba>>4) << 2
		d += 3
	}
	return d
}

// convert565BE swaps RGB565 pixels to the big-endian byte order the
// ST7789 expects. Two pixels per iteration with a single-pixel tail.
// Returns the number of bytes written; dst needs len(src)*2.
func convert565BE(dst []byte, src []uint16) int {
	n := len(src) &^ 1
	d := 0
	for i := 0; i < n; i += 2 {
		a := src[i]
		b := src[i+1]
		dst[d+0] = byte(a >> 8)
		dst[d+1] = byte(a)
		dst[d+2] = byte(b >> 8)
		dst[d+3] = byte(b)
		d += 4
	}
	if n < len(src) {
		a := src[n]
		dst[d+0] = byte(a >> 8)
		dst[d+1] = byte(a)
		d += 2
	}
	return d
}
