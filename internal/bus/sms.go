package bus

import "github.com/sg8bit/core/internal/gamepad"

// SMS memory map (spec.md §4.4): same three-slot cartridge skeleton
// as SG-1000 but with an optional BIOS overlay and 8 KiB work RAM.
// Register writes still fall through to RAM even when a mapper
// register address overlaps the RAM window (grounded on sms.c's "no
// early breaks" comment).
func (b *Bus) smsReadMemory(addr uint16) uint8 {
	if addr <= 0xBFFF {
		if len(b.BIOS) > 0 && b.memoryControl&memCtrlBIOSDisable == 0 {
			return b.BIOS[int(addr)&(len(b.BIOS)-1)]
		}
		if b.Mapper != nil && b.Mapper.SRAMEnable && addr >= 0x8000 {
			return b.Mapper.SRAM[(addr-0x8000)%uint16(len(b.Mapper.SRAM))]
		}
		if b.Mapper != nil && b.memoryControl&memCtrlCartDisable == 0 {
			return b.Mapper.Read(addr)
		}
		return 0xFF
	}
	return b.RAM[addr&0x1FFF]
}

func (b *Bus) smsWriteMemory(addr uint16, value uint8) {
	if b.Mapper != nil {
		b.Mapper.Write(addr, value)
	}
	if addr >= 0xC000 {
		b.RAM[addr&0x1FFF] = value
	}
}

// SMS I/O map: 0x00-0x3F memory/IO control registers, 0x40-0x7F PSG
// write / V-counter read, 0x80-0xBF VDP, 0xC0-0xFF controller ports.
func (b *Bus) smsReadIO(port uint8) uint8 {
	if b.memoryControl&memCtrlIODisable != 0 && port >= 0xC0 {
		return 0xFF
	}
	switch {
	case port <= 0x3F:
		return 0xFF
	case port <= 0x7F:
		if port&0x01 == 0 {
			return b.VDP.VCounter()
		}
		return 0xFF // H-counter unimplemented (spec.md §4.4)
	case port <= 0xBF:
		if port&0x01 == 0 {
			return b.VDP.DataRead()
		}
		return b.VDP.StatusRead()
	default:
		if port&0x01 == 0 {
			return b.smsPortA()
		}
		return b.smsPortB()
	}
}

func (b *Bus) smsWriteIO(port uint8, value uint8) {
	switch {
	case port <= 0x3F:
		if port&0x01 == 0 {
			b.memoryControl = value
		} else {
			b.ioControl = value
		}
	case port <= 0x7F:
		b.PSG.Write(value)
	case port <= 0xBF:
		if port&0x01 == 0 {
			b.VDP.DataWrite(value)
		} else {
			b.VDP.ControlWrite(value)
		}
	}

	if port == 0xFD && b.memoryControl&memCtrlIODisable != 0 && b.DebugConsole != nil {
		b.DebugConsole(value)
	}
}

func (b *Bus) smsPortA() uint8 {
	if b.Gamepad.Pad1IsPaddle {
		return b.smsPaddlePortA()
	}

	v := uint8(0xFF)
	if b.Gamepad.Pad1.Held(gamepad.ButtonUp) {
		v &^= 1 << 0
	}
	if b.Gamepad.Pad1.Held(gamepad.ButtonDown) {
		v &^= 1 << 1
	}
	if b.Gamepad.Pad1.Held(gamepad.ButtonLeft) {
		v &^= 1 << 2
	}
	if b.Gamepad.Pad1.Held(gamepad.ButtonRight) {
		v &^= 1 << 3
	}
	if b.Gamepad.Pad1.Held(gamepad.ButtonButton1) {
		v &^= 1 << 4
	}
	if b.Gamepad.Pad1.Held(gamepad.ButtonButton2) {
		v &^= 1 << 5
	}
	if b.Gamepad.Pad2.Held(gamepad.ButtonUp) {
		v &^= 1 << 6
	}
	if b.Gamepad.Pad2.Held(gamepad.ButtonDown) {
		v &^= 1 << 7
	}
	return v
}

func (b *Bus) smsPortB() uint8 {
	v := uint8(0xFF)
	if b.Gamepad.Pad2.Held(gamepad.ButtonLeft) {
		v &^= 1 << 0
	}
	if b.Gamepad.Pad2.Held(gamepad.ButtonRight) {
		v &^= 1 << 1
	}
	if b.Gamepad.Pad2.Held(gamepad.ButtonButton1) {
		v &^= 1 << 2
	}
	if b.Gamepad.Pad2.Held(gamepad.ButtonButton2) {
		v &^= 1 << 3
	}
	// bit 4: reset button, not modelled (always released)

	if b.Region == RegionExport {
		if b.ioControl&ioCtrlTHADirection == 0 {
			if b.ioControl&ioCtrlTHALevel == 0 {
				v &^= 1 << 6
			}
			if b.Gamepad.Pad1IsPaddle {
				b.exportPaddle = true
			}
		}
		if b.ioControl&ioCtrlTHBDirection == 0 && b.ioControl&ioCtrlTHBLevel == 0 {
			v &^= 1 << 7
		}
	}
	return v
}

// smsPaddlePortA reads the SMS paddle peripheral on port A: a 4-bit
// position nibble selected by an internal (Japan) or TH-driven
// (export) clock phase, plus the paddle's fire button on bit 4
// (active-low) and the clock phase on bit 5 (grounded on sms.c's
// paddle branch).
func (b *Bus) smsPaddlePortA() uint8 {
	var phase uint8
	if b.exportPaddle {
		if b.ioControl&ioCtrlTHADirection == 0 && b.ioControl&ioCtrlTHALevel != 0 {
			phase = 1
		}
	} else {
		phase = b.Gamepad.TickPaddleClock() & 0x01
	}

	fireHeld := b.Gamepad.Pad1.Held(gamepad.ButtonButton1) || b.Gamepad.Pad1.Held(gamepad.ButtonButton2)

	var v uint8
	if phase == 0 {
		v = b.Gamepad.Paddle & 0x0F
		if !fireHeld {
			v |= 1 << 4
		}
	} else {
		v = b.Gamepad.Paddle >> 4
		if !fireHeld {
			v |= 1 << 4
		}
		v |= 1 << 5
	}
	return v
}
