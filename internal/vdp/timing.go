package vdp

// These configurations reproduce the hardware v-counter skip tables
// exactly as documented in spec.md §6 (and matching the reference
// Snepulator implementation's Mode4_* tables) - implementers must not
// approximate these.

var Mode4NTSC192 = VConfig{
	LinesActive: 192,
	LinesTotal:  262,
	VCounterMap: []VRange{{0x00, 0xDA}, {0xD5, 0xFF}},
}

var Mode4NTSC224 = VConfig{
	LinesActive: 224,
	LinesTotal:  262,
	VCounterMap: []VRange{{0x00, 0xEA}, {0xE5, 0xFF}},
}

var Mode4NTSC240 = VConfig{
	LinesActive: 240,
	LinesTotal:  262,
	VCounterMap: []VRange{{0x00, 0xFF}, {0x00, 0x06}},
}

var Mode4PAL192 = VConfig{
	LinesActive: 192,
	LinesTotal:  313,
	VCounterMap: []VRange{{0x00, 0xF2}, {0xBA, 0xFF}},
}

var Mode4PAL224 = VConfig{
	LinesActive: 224,
	LinesTotal:  313,
	VCounterMap: []VRange{{0x00, 0xFF}, {0x00, 0x02}, {0xCA, 0xFF}},
}

var Mode4PAL240 = VConfig{
	LinesActive: 240,
	LinesTotal:  313,
	VCounterMap: []VRange{{0x00, 0xFF}, {0x00, 0x0A}, {0xD2, 0xFF}},
}

// Legacy TMS9918 modes (0/2) run at 192 active lines with no skip
// table: the v-counter directly reflects the raw line modulo 256.
var TMSNTSC = VConfig{LinesActive: 192, LinesTotal: 262}
var TMSPAL = VConfig{LinesActive: 192, LinesTotal: 313}

// vCounterFor walks the skip table (≤3 contiguous ranges) mapping the
// raw line number onto the 8-bit v-counter, per spec.md §4.2 step 4.
func vCounterFor(rawLine int, cfg VConfig) uint8 {
	if len(cfg.VCounterMap) == 0 {
		return uint8(rawLine)
	}
	remaining := rawLine
	for _, r := range cfg.VCounterMap {
		span := int(r.Last) - int(r.First) + 1
		if span <= 0 {
			span += 256
		}
		if remaining < span {
			return uint8(int(r.First) + remaining)
		}
		remaining -= span
	}
	// Past the end of the mapped ranges: hold the last value (should
	// not happen for a well-formed table covering LinesTotal lines).
	last := cfg.VCounterMap[len(cfg.VCounterMap)-1]
	return last.Last
}
