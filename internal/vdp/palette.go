package vdp

// cramToRGB converts one CRAM byte (2 bits each of B/G/R, spec.md §4.2
// "CRAM -> RGB") into an 8-bit-per-channel colour via the documented
// linear mapping 0->0, 1->85, 2->170, 3->255.
func cramToRGB(c uint8) (r, g, b uint8) {
	levels := [4]uint8{0, 85, 170, 255}
	r = levels[c&0x03]
	g = levels[(c>>2)&0x03]
	b = levels[(c>>4)&0x03]
	return
}

// legacyPalette is the fixed 16-entry TMS9918A/SMS-legacy RGB palette,
// index 0 always transparent/background (spec.md §4.2 Mode 0/2 rules).
var legacyPalette = [16][3]uint8{
	{0, 0, 0},       // 0 transparent
	{0, 0, 0},       // 1 black
	{33, 200, 66},   // 2 medium green
	{94, 220, 120},  // 3 light green
	{84, 85, 237},   // 4 dark blue
	{125, 118, 252}, // 5 light blue
	{212, 82, 77},   // 6 dark red
	{66, 235, 245},  // 7 cyan
	{252, 85, 84},   // 8 medium red
	{255, 121, 120}, // 9 light red
	{212, 193, 84},  // 10 dark yellow
	{230, 206, 128}, // 11 light yellow
	{33, 176, 59},   // 12 dark green
	{201, 91, 186},  // 13 magenta
	{204, 204, 204}, // 14 gray
	{255, 255, 255}, // 15 white
}

func (v *VDP) putPixel(line int, x int, r, g, b uint8) {
	if x < 0 || x >= FrameWidth {
		return
	}
	idx := (line*FrameWidth + x) * 3
	buf := *v.back
	buf[idx] = r
	buf[idx+1] = g
	buf[idx+2] = b
}
