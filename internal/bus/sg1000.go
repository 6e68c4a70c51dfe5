package bus

import "github.com/sg8bit/core/internal/gamepad"

// SG-1000 memory map (spec.md §4.4): 0x0000-0xBFFF cartridge via the
// 3-slot mapper with slot 0's first 1 KiB fixed, 0xC000-0xFFFF 1 KiB
// work RAM mirrored across the window.

func (b *Bus) sg1000ReadMemory(addr uint16) uint8 {
	if addr <= 0xBFFF {
		if b.Mapper != nil {
			return b.Mapper.Read(addr)
		}
		return 0xFF
	}
	return b.RAM[addr&0x03FF]
}

func (b *Bus) sg1000WriteMemory(addr uint16, value uint8) {
	if addr >= 0xC000 {
		b.RAM[addr&0x03FF] = value
	}
	if b.Mapper != nil {
		b.Mapper.Write(addr, value)
	}
}

// SG-1000 I/O map: 0x40-0x7F PSG writes, 0x80-0xBF VDP data/control,
// 0xC0-0xFF two-gamepad digital read.
func (b *Bus) sg1000ReadIO(port uint8) uint8 {
	switch {
	case port >= 0x80 && port <= 0xBF:
		if port&0x01 == 0 {
			return b.VDP.DataRead()
		}
		return b.VDP.StatusRead()
	case port >= 0xC0:
		if port&0x01 == 0 {
			return sg1000PortA(b.Gamepad)
		}
		return sg1000PortB(b.Gamepad)
	}
	return 0xFF
}

func (b *Bus) sg1000WriteIO(port uint8, value uint8) {
	switch {
	case port >= 0x40 && port <= 0x7F:
		b.PSG.Write(value)
	case port >= 0x80 && port <= 0xBF:
		if port&0x01 == 0 {
			b.VDP.DataWrite(value)
		} else {
			b.VDP.ControlWrite(value)
		}
	}
}

// sg1000PortA packs P1's full digital state plus P2's up/down, each
// bit active-low (spec.md §4.4, grounded on sg-1000.c io_read).
func sg1000PortA(gp *gamepad.Snapshot) uint8 {
	v := uint8(0xFF)
	if gp.Pad1.Held(gamepad.ButtonUp) {
		v &^= 1 << 0
	}
	if gp.Pad1.Held(gamepad.ButtonDown) {
		v &^= 1 << 1
	}
	if gp.Pad1.Held(gamepad.ButtonLeft) {
		v &^= 1 << 2
	}
	if gp.Pad1.Held(gamepad.ButtonRight) {
		v &^= 1 << 3
	}
	if gp.Pad1.Held(gamepad.ButtonButton1) {
		v &^= 1 << 4
	}
	if gp.Pad1.Held(gamepad.ButtonButton2) {
		v &^= 1 << 5
	}
	if gp.Pad2.Held(gamepad.ButtonUp) {
		v &^= 1 << 6
	}
	if gp.Pad2.Held(gamepad.ButtonDown) {
		v &^= 1 << 7
	}
	return v
}

// sg1000PortB packs P2's left/right/buttons; bit 4 is a fixed high
// "no expansion" bit.
func sg1000PortB(gp *gamepad.Snapshot) uint8 {
	v := uint8(0xFF)
	if gp.Pad2.Held(gamepad.ButtonLeft) {
		v &^= 1 << 0
	}
	if gp.Pad2.Held(gamepad.ButtonRight) {
		v &^= 1 << 1
	}
	if gp.Pad2.Held(gamepad.ButtonButton1) {
		v &^= 1 << 2
	}
	if gp.Pad2.Held(gamepad.ButtonButton2) {
		v &^= 1 << 3
	}
	return v
}
