package bus

import "github.com/sg8bit/core/internal/gamepad"

// ColecoVision memory map (spec.md §4.4): 0x0000-0x1FFF BIOS,
// 0x6000-0x7FFF 1 KiB RAM mirrored, 0x8000-0xFFFF cartridge.
func (b *Bus) colecoReadMemory(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		if len(b.BIOS) > 0 {
			return b.BIOS[int(addr)&(len(b.BIOS)-1)]
		}
		return 0xFF
	case addr >= 0x6000 && addr <= 0x7FFF:
		return b.RAM[addr&0x03FF]
	case addr >= 0x8000:
		if b.Mapper != nil {
			return b.Mapper.Read(addr - 0x8000)
		}
		return 0xFF
	}
	return 0xFF
}

func (b *Bus) colecoWriteMemory(addr uint16, value uint8) {
	if addr >= 0x6000 && addr <= 0x7FFF {
		b.RAM[addr&0x03FF] = value
	}
}

// ColecoVision I/O map: 0xA0-0xBF VDP, 0xE0-0xFF PSG write / shared
// controller read, with the controller's decoding mode flipped by
// writes to 0x80-0x9F (keypad) and 0xC0-0xDF (joystick).
func (b *Bus) colecoReadIO(port uint8) uint8 {
	switch {
	case port >= 0xA0 && port <= 0xBF:
		if port&0x01 == 0 {
			return b.VDP.DataRead()
		}
		return b.VDP.StatusRead()
	case port >= 0xE0:
		if port&0x02 == 0 {
			return b.colecoPort1()
		}
		return 0xFF // player 2 controller read not implemented
	}
	return 0xFF
}

func (b *Bus) colecoWriteIO(port uint8, value uint8) {
	switch {
	case port >= 0x80 && port <= 0x9F:
		b.colecoMode = colecoModeKeypad
	case port >= 0xA0 && port <= 0xBF:
		if port&0x01 == 0 {
			b.VDP.DataWrite(value)
		} else {
			b.VDP.ControlWrite(value)
		}
	case port >= 0xC0 && port <= 0xDF:
		b.colecoMode = colecoModeJoystick
	case port >= 0xE0:
		b.PSG.Write(value)
	}
}

func (b *Bus) colecoPort1() uint8 {
	if b.colecoMode == colecoModeJoystick {
		v := uint8(0xFF)
		if b.Gamepad.Pad1.Held(gamepad.ButtonUp) {
			v &^= 1 << 0
		}
		if b.Gamepad.Pad1.Held(gamepad.ButtonRight) {
			v &^= 1 << 1
		}
		if b.Gamepad.Pad1.Held(gamepad.ButtonDown) {
			v &^= 1 << 2
		}
		if b.Gamepad.Pad1.Held(gamepad.ButtonLeft) {
			v &^= 1 << 3
		}
		if b.Gamepad.Pad1.Held(gamepad.ButtonButton1) {
			v &^= 1 << 6
		}
		return v
	}

	key := gamepad.ColecoKeypadNibble(b.Gamepad.ColecoKeypad1)
	v := key | 1<<4 | 1<<5
	if !b.Gamepad.Pad1.Held(gamepad.ButtonButton2) {
		v |= 1 << 6
	}
	return v
}
