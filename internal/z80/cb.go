package z80

// execCB handles the standalone CB-prefixed space: rotates/shifts,
// BIT, RES and SET over the eight r[z] operands.
func (c *CPU) execCB(opcode uint8) int {
	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7
	ctx := &execCtx{mode: indexNone}

	v := c.getReg8(z, ctx)
	switch x {
	case 0:
		c.setReg8(z, c.applyRot(y, v), ctx)
	case 1:
		c.bit(y, v, z == 6)
		if z == 6 {
			return 12
		}
		return 8
	case 2:
		c.setReg8(z, resetBit(v, y), ctx)
	default:
		c.setReg8(z, setBit(v, y), ctx)
	}
	if z == 6 {
		return 15
	}
	return 8
}

// execIndexedCB handles DDCB d op / FDCB d op. The displacement is
// fixed for the whole instruction; the result is always written back
// to the (IX+d)/(IY+d) memory cell, and for z != 6 it is additionally
// copied into the named register (an undocumented but well-known
// side-effect of the indexed-bit-ops encoding).
func (c *CPU) execIndexedCB(d int8, opcode uint8, ctx *execCtx) int {
	ctx.disp = d
	ctx.dispValid = true
	addr := c.idxAddr(ctx)
	v := c.bus.ReadMemory(addr)

	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7

	if x == 1 {
		c.bit(y, v, true)
		return 20
	}

	var res uint8
	switch x {
	case 0:
		res = c.applyRot(y, v)
	case 2:
		res = resetBit(v, y)
	default:
		res = setBit(v, y)
	}
	c.bus.WriteMemory(addr, res)
	if z != 6 {
		c.setReg8(z, res, &execCtx{mode: indexNone})
	}
	return 23
}
