package vdp

// renderMode4Line renders one line of the SMS Mode 4 background and
// sprite layers, per spec.md §4.2.
func (v *VDP) renderMode4Line(line int) {
	rows := 28
	if v.config.LinesActive != 192 {
		rows = 32
	}

	priority := make([]bool, 256) // true where the background pixel wins over sprites
	opaque := make([]bool, 256)   // true where the background pixel is non-zero colour
	v.renderMode4Background(line, rows, priority, opaque)
	v.renderMode4Sprites(line, priority)

	if v.Regs[0]&R0MaskColumn0 != 0 {
		// R7's backdrop index selects from the sprite half of CRAM
		// (16-31), same as the border colour sprites draw with.
		r, g, b := cramToRGB(v.CRAM[16+(v.Regs[7]&0x0F)])
		for x := 0; x < 8; x++ {
			v.putPixel(line, x, r, g, b)
		}
	}
}

func (v *VDP) renderMode4Background(line, rows int, priority, opaque []bool) {
	nameTableBase := uint16(v.Regs[2]&0x0E) << 10

	scrollX := v.Regs[8]
	scrollY := v.Regs[9]
	lockRows := v.Regs[0]&R0LockRowScroll != 0 && line < 16
	lockCols := v.Regs[0]&R0LockColScroll != 0

	numRowsPixels := rows * 8
	effectiveY := (line + int(scrollY)) % numRowsPixels

	for x := 0; x < 256; x++ {
		col := x / 8
		fineX := x % 8
		sx := x
		if !(lockRows && line < 16) {
			shifted := (x + (256 - int(scrollX))) % 256
			sx = shifted
			col = sx / 8
			fineX = sx % 8
		}

		rowForColumn := effectiveY
		if lockCols && col >= 24 {
			rowForColumn = line % numRowsPixels
		}
		tileRow := rowForColumn / 8
		fineY := rowForColumn % 8

		addr := nameTableBase + uint16((tileRow*32+col)*2)
		lo := v.VRAM[addr&0x3FFF]
		hi := v.VRAM[(addr+1)&0x3FFF]
		word := uint16(hi)<<8 | uint16(lo)

		patternIndex := word & 0x1FF
		hFlip := word&(1<<9) != 0
		vFlip := word&(1<<10) != 0
		paletteSelect := uint8(0)
		if word&(1<<11) != 0 {
			paletteSelect = 16
		}
		highPriority := word&(1<<12) != 0

		py := fineY
		if vFlip {
			py = 7 - fineY
		}
		px := fineX
		if hFlip {
			px = 7 - fineX
		}

		patternBase := uint32(patternIndex) * 32
		rowBase := patternBase + uint32(py)*4
		b0 := v.VRAM[rowBase&0x3FFF]
		b1 := v.VRAM[(rowBase+1)&0x3FFF]
		b2 := v.VRAM[(rowBase+2)&0x3FFF]
		b3 := v.VRAM[(rowBase+3)&0x3FFF]

		shift := 7 - px
		colorIndex := uint8(0)
		if b0&(1<<shift) != 0 {
			colorIndex |= 1
		}
		if b1&(1<<shift) != 0 {
			colorIndex |= 2
		}
		if b2&(1<<shift) != 0 {
			colorIndex |= 4
		}
		if b3&(1<<shift) != 0 {
			colorIndex |= 8
		}

		opaque[x] = colorIndex != 0
		priority[x] = highPriority && opaque[x]

		r, g, b := cramToRGB(v.CRAM[paletteSelect+colorIndex])
		v.putPixel(line, x, r, g, b)
	}
}

// mode4Sprite is one decoded entry from the sprite attribute table.
type mode4Sprite struct {
	y, x    int
	pattern uint16
}

func (v *VDP) renderMode4Sprites(line int, priority []bool) {
	satBase := uint16(v.Regs[5]&0x7E) << 7
	patternBase := uint16(v.Regs[6]&0x04) << 11
	tall := v.Regs[1]&R1SpriteSize != 0

	var inRange []mode4Sprite
	for i := 0; i < 64; i++ {
		y := int(v.VRAM[(satBase+uint16(i))&0x3FFF])
		if y == 0xD0 {
			break
		}
		if y >= 0xE0 {
			y -= 256
		}
		y++ // sprite Y in the table is one less than the displayed row
		height := 8
		if tall {
			height = 16
		}
		if line < y || line >= y+height {
			continue
		}
		if len(inRange) == 8 {
			v.status |= StatusOverflow
			break
		}
		x := int(v.VRAM[(satBase+128+uint16(i)*2)&0x3FFF])
		pattern := uint16(v.VRAM[(satBase+128+uint16(i)*2+1)&0x3FFF])
		if v.Regs[0]&0x08 != 0 { // early clock: shift sprites 8px left
			x -= 8
		}
		if tall {
			pattern &^= 1
		}
		inRange = append(inRange, mode4Sprite{y: y, x: x, pattern: pattern})
	}

	hit := make([]bool, 256)
	// Earlier sprites in the table win; render in reverse so an
	// earlier sprite's pixels are drawn last and take priority.
	for i := len(inRange) - 1; i >= 0; i-- {
		s := inRange[i]
		spriteLine := line - s.y
		patternIndex := s.pattern
		if spriteLine >= 8 {
			patternIndex++
			spriteLine -= 8
		}
		rowBase := patternBase + patternIndex*32 + uint16(spriteLine)*4
		b0 := v.VRAM[rowBase&0x3FFF]
		b1 := v.VRAM[(rowBase+1)&0x3FFF]
		b2 := v.VRAM[(rowBase+2)&0x3FFF]
		b3 := v.VRAM[(rowBase+3)&0x3FFF]

		for px := 0; px < 8; px++ {
			x := s.x + px
			if x < 0 || x >= 256 {
				continue
			}
			shift := 7 - px
			colorIndex := uint8(0)
			if b0&(1<<shift) != 0 {
				colorIndex |= 1
			}
			if b1&(1<<shift) != 0 {
				colorIndex |= 2
			}
			if b2&(1<<shift) != 0 {
				colorIndex |= 4
			}
			if b3&(1<<shift) != 0 {
				colorIndex |= 8
			}
			if colorIndex == 0 {
				continue
			}
			if hit[x] {
				v.status |= StatusCollision
			}
			hit[x] = true

			if priority[x] {
				continue // background's own priority bit wins
			}
			r, g, b := cramToRGB(v.CRAM[16+colorIndex])
			v.putPixel(line, x, r, g, b)
		}
	}
}
