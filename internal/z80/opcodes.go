package z80

// execX0 handles the x=0 opcode block: misc/flags, 16-bit load/inc/dec,
// 8-bit inc/dec/load-immediate, and the relative jumps.
func (c *CPU) execX0(opcode, y, z, p, q uint8, ctx *execCtx) int {
	switch z {
	case 0:
		switch {
		case y == 0:
			return 4 // NOP
		case y == 1:
			c.ExchangeAF()
			return 4
		case y == 2: // DJNZ d
			c.B--
			d := int8(c.readByte())
			if c.B != 0 {
				c.PC = uint16(int32(c.PC) + int32(d))
				return 13
			}
			return 8
		case y == 3: // JR d
			d := int8(c.readByte())
			c.PC = uint16(int32(c.PC) + int32(d))
			return 12
		default: // JR cc,d
			d := int8(c.readByte())
			if c.condition(y - 4) {
				c.PC = uint16(int32(c.PC) + int32(d))
				return 12
			}
			return 7
		}
	case 1:
		if q == 0 {
			c.setRP(p, c.fetch16(), ctx)
			return 10
		}
		c.setIdxHL(ctx, c.add16(c.idxHL(ctx), c.getRP(p, ctx)))
		return 11
	case 2:
		return c.execIndirectLoad(p, q, ctx)
	case 3:
		if q == 0 {
			c.setRP(p, c.getRP(p, ctx)+1, ctx)
		} else {
			c.setRP(p, c.getRP(p, ctx)-1, ctx)
		}
		return 6
	case 4:
		v := c.getReg8(y, ctx)
		c.setReg8(y, c.inc8(v), ctx)
		if y == 6 {
			return 11
		}
		return 4
	case 5:
		v := c.getReg8(y, ctx)
		c.setReg8(y, c.dec8(v), ctx)
		if y == 6 {
			return 11
		}
		return 4
	case 6:
		n := c.readByte()
		c.setReg8(y, n, ctx)
		if y == 6 {
			return 10
		}
		return 7
	default: // z == 7
		switch y {
		case 0:
			c.rlca()
		case 1:
			c.rrca()
		case 2:
			c.rla()
		case 3:
			c.rra()
		case 4:
			c.daa()
		case 5:
			c.cpl()
		case 6:
			c.scf()
		case 7:
			c.ccf()
		}
		return 4
	}
}

func (c *CPU) execIndirectLoad(p, q uint8, ctx *execCtx) int {
	if q == 0 {
		switch p {
		case 0:
			c.bus.WriteMemory(c.BC(), c.A)
			c.wz = (c.BC() + 1) & 0xFF
			c.wz |= uint16(c.A) << 8
			return 7
		case 1:
			c.bus.WriteMemory(c.DE(), c.A)
			c.wz = (c.DE() + 1) & 0xFF
			c.wz |= uint16(c.A) << 8
			return 7
		case 2:
			addr := c.fetch16()
			c.writeMem16(addr, c.idxHL(ctx))
			return 16
		default:
			addr := c.fetch16()
			c.bus.WriteMemory(addr, c.A)
			c.wz = (addr + 1) & 0xFF
			c.wz |= uint16(c.A) << 8
			return 13
		}
	}
	switch p {
	case 0:
		c.A = c.bus.ReadMemory(c.BC())
		c.wz = c.BC() + 1
		return 7
	case 1:
		c.A = c.bus.ReadMemory(c.DE())
		c.wz = c.DE() + 1
		return 7
	case 2:
		addr := c.fetch16()
		c.setIdxHL(ctx, c.readMem16(addr))
		c.wz = addr + 1
		return 16
	default:
		addr := c.fetch16()
		c.A = c.bus.ReadMemory(addr)
		c.wz = addr + 1
		return 13
	}
}

func (c *CPU) readMem16(addr uint16) uint16 {
	lo := c.bus.ReadMemory(addr)
	hi := c.bus.ReadMemory(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) writeMem16(addr uint16, v uint16) {
	c.bus.WriteMemory(addr, uint8(v))
	c.bus.WriteMemory(addr+1, uint8(v>>8))
}

// execX1 handles LD r,r' and HALT (the single exception at y=6,z=6).
func (c *CPU) execX1(y, z uint8, ctx *execCtx) int {
	if y == 6 && z == 6 {
		c.Halted = true
		return 4
	}
	v := c.getReg8(z, ctx)
	c.setReg8(y, v, ctx)
	if y == 6 || z == 6 {
		return 7
	}
	return 4
}

// execALU handles ALU[y] A, r[z].
func (c *CPU) execALU(y, z uint8, ctx *execCtx) int {
	v := c.getReg8(z, ctx)
	c.applyALU(y, v)
	if z == 6 {
		return 7
	}
	return 4
}

// execX3 handles the remaining miscellany: RET/JP/CALL, PUSH/POP, I/O,
// EX, DI/EI, RST and ALU[y] A,n.
func (c *CPU) execX3(opcode, y, z, p, q uint8, ctx *execCtx) int {
	switch z {
	case 0:
		if c.condition(y) {
			c.PC = c.pop16()
			return 11
		}
		return 5
	case 1:
		if q == 0 {
			c.setRP2(p, c.pop16(), ctx)
			return 10
		}
		switch p {
		case 0:
			c.PC = c.pop16()
			return 10
		case 1:
			c.Exx()
			return 4
		case 2:
			c.PC = c.idxHL(ctx)
			return 4
		default:
			c.SP = c.idxHL(ctx)
			return 6
		}
	case 2:
		addr := c.fetch16()
		if c.condition(y) {
			c.PC = addr
		}
		return 10
	case 3:
		switch y {
		case 0:
			c.PC = c.fetch16()
			return 10
		case 2:
			n := c.readByte()
			c.bus.WriteIO(n, c.A)
			c.wz = (uint16(c.A)<<8 | uint16(n+1)) & 0xFF | uint16(c.A)<<8
			return 11
		case 3:
			n := c.readByte()
			c.A = c.bus.ReadIO(n)
			return 11
		case 4:
			top := c.readMem16(c.SP)
			c.writeMem16(c.SP, c.idxHL(ctx))
			c.setIdxHL(ctx, top)
			c.wz = top
			return 19
		case 5:
			hl := c.idxHL(ctx)
			de := c.DE()
			c.setIdxHL(ctx, de)
			c.SetDE(hl)
			return 4
		case 6:
			c.IFF1, c.IFF2 = false, false
			return 4
		default: // 7: EI
			c.enableInterruptsDeferred()
			return 4
		}
	case 4:
		addr := c.fetch16()
		if c.condition(y) {
			c.push16(c.PC)
			c.PC = addr
			return 17
		}
		return 10
	case 5:
		if q == 0 {
			c.push16(c.getRP2(p, ctx))
			return 11
		}
		addr := c.fetch16()
		c.push16(c.PC)
		c.PC = addr
		return 17
	case 6:
		n := c.readByte()
		c.applyALU(y, n)
		return 7
	default: // RST
		c.push16(c.PC)
		c.PC = uint16(y) * 8
		return 11
	}
}
