package vdp

// renderLegacyLine renders one line of TMS9918A graphics Mode 0 or
// Mode 2, per spec.md §4.2.
func (v *VDP) renderLegacyLine(line int) {
	nameTableBase := uint16(v.Regs[2]&0x0F) << 10
	row := line / 8
	fineY := line % 8

	bgColor := v.Regs[7] & 0x0F

	for col := 0; col < 32; col++ {
		tileIndex := v.VRAM[(nameTableBase+uint16(row*32+col))&0x3FFF]

		var patternByte, colorByte uint8
		if v.mode == ModeTMS2 {
			third := row / 8 // 0, 1 or 2 (top/middle/bottom third)
			patternTableBase := uint16(v.Regs[4]&0x04) << 11
			colorTableBase := uint16(v.Regs[3]) << 6

			patternAddr := patternTableBase + uint16(third)*0x800 + uint16(tileIndex)*8 + uint16(fineY)
			colorAddr := colorTableBase + uint16(third)*0x800 + uint16(tileIndex)*8 + uint16(fineY)
			patternByte = v.VRAM[patternAddr&0x3FFF]
			colorByte = v.VRAM[colorAddr&0x3FFF]
		} else {
			patternTableBase := uint16(v.Regs[4]&0x07) << 11
			colorTableBase := uint16(v.Regs[3]) << 6
			group := tileIndex / 8

			patternByte = v.VRAM[(patternTableBase+uint16(tileIndex)*8+uint16(fineY))&0x3FFF]
			colorByte = v.VRAM[(colorTableBase+uint16(group))&0x3FFF]
		}

		fg := colorByte >> 4
		bg := colorByte & 0x0F

		for bitX := 0; bitX < 8; bitX++ {
			x := col*8 + bitX
			set := patternByte&(0x80>>bitX) != 0
			colorIndex := bg
			if set {
				colorIndex = fg
			}
			if colorIndex == 0 {
				colorIndex = bgColor
			}
			r, g, b := legacyRGB(colorIndex)
			v.putPixel(line, x, r, g, b)
		}
	}

	v.renderLegacySprites(line)
}

func legacyRGB(idx uint8) (uint8, uint8, uint8) {
	c := legacyPalette[idx&0x0F]
	return c[0], c[1], c[2]
}

// renderLegacySprites scans the 32-entry sprite attribute table,
// collecting up to four sprites covering the current line and drawing
// them in reverse order so the earliest sprite wins, per spec.md §4.2.
func (v *VDP) renderLegacySprites(line int) {
	satBase := uint16(v.Regs[5]&0x7F) << 7
	patternBase := uint16(v.Regs[6]&0x07) << 11
	large := v.Regs[1]&R1SpriteSize != 0
	mag := v.Regs[1]&R1SpriteMag != 0

	size := 8
	if large {
		size = 16
	}
	drawSize := size
	if mag {
		drawSize *= 2
	}

	type sprite struct {
		y, x    int
		pattern uint8
		color   uint8
	}
	var inRange []sprite
	for i := 0; i < 32; i++ {
		y := int(v.VRAM[(satBase+uint16(i)*4)&0x3FFF])
		if y == 0xD0 {
			break
		}
		if y >= 0xE0 {
			y -= 256
		}
		y++
		if line < y || line >= y+drawSize {
			continue
		}
		if len(inRange) == 4 {
			v.status |= StatusOverflow
			break
		}
		x := int(v.VRAM[(satBase+uint16(i)*4+1)&0x3FFF])
		pattern := v.VRAM[(satBase+uint16(i)*4+2)&0x3FFF]
		colorByte := v.VRAM[(satBase+uint16(i)*4+3)&0x3FFF]
		if colorByte&0x80 != 0 { // early clock
			x -= 32
		}
		inRange = append(inRange, sprite{y: y, x: x, pattern: pattern, color: colorByte & 0x0F})
	}

	for i := len(inRange) - 1; i >= 0; i-- {
		s := inRange[i]
		spriteLine := line - s.y
		if mag {
			spriteLine /= 2
		}
		patternIndex := uint16(s.pattern)
		if large {
			patternIndex &^= 0x03
		}
		rowOffset := spriteLine
		byteIndex := uint16(0)
		if large && rowOffset >= 8 {
			byteIndex = 16
			rowOffset -= 8
		}
		addr := patternBase + patternIndex*8 + byteIndex + uint16(rowOffset)
		patternByte := v.VRAM[addr&0x3FFF]

		for px := 0; px < drawSize; px++ {
			bit := px
			if mag {
				bit /= 2
			}
			if bit >= 8 {
				continue
			}
			if patternByte&(0x80>>uint(bit)) == 0 {
				continue
			}
			x := s.x + px
			if x < 0 || x >= 256 || s.color == 0 {
				continue
			}
			r, g, b := legacyRGB(s.color)
			v.putPixel(line, x, r, g, b)
		}
	}
}
