package z80

// indexMode selects which 16-bit index register (if any) stands in
// for HL while decoding the current instruction, per spec.md §4.1's
// DD/FD prefix requirement. A displacement byte is fetched lazily the
// first time an indexed (HL) reference is actually needed.
type indexMode uint8

const (
	indexNone indexMode = iota
	indexIX
	indexIY
)

// execCtx threads the active prefix state through one instruction's
// execution without needing package-level mutable state.
type execCtx struct {
	mode indexMode
	// dispValid/disp cache the single displacement byte an indexed
	// instruction may fetch; Z80 only ever reads one per instruction.
	dispValid bool
	disp      int8
}

func (c *CPU) execute(opcode uint8) int {
	ctx := &execCtx{mode: indexNone}
	return c.dispatch(opcode, ctx)
}

// dispatch decomposes the opcode into the classic x/y/z/p/q fields and
// routes to the right handler, recursing for the DD/FD/CB/ED prefixes.
func (c *CPU) dispatch(opcode uint8, ctx *execCtx) int {
	if opcode == 0xCB {
		if ctx.mode != indexNone {
			d := int8(c.readByte())
			op := c.readByte()
			return c.execIndexedCB(d, op, ctx)
		}
		return c.execCB(c.fetch())
	}
	if opcode == 0xED {
		return c.execED(c.fetch())
	}
	if opcode == 0xDD {
		return 4 + c.dispatch(c.fetch(), &execCtx{mode: indexIX})
	}
	if opcode == 0xFD {
		return 4 + c.dispatch(c.fetch(), &execCtx{mode: indexIY})
	}

	x := opcode >> 6
	y := (opcode >> 3) & 7
	z := opcode & 7
	p := y >> 1
	q := y & 1

	switch x {
	case 0:
		return c.execX0(opcode, y, z, p, q, ctx)
	case 1:
		return c.execX1(y, z, ctx)
	case 2:
		return c.execALU(y, z, ctx)
	default: // x == 3
		return c.execX3(opcode, y, z, p, q, ctx)
	}
}

// --- register/pair access, indexed-aware -----------------------------

// idxHL returns the 16-bit value of the active HL/IX/IY register. The
// displacement for an indexed memory access is fetched by idxAddr.
func (c *CPU) idxHL(ctx *execCtx) uint16 {
	switch ctx.mode {
	case indexIX:
		return c.IX
	case indexIY:
		return c.IY
	default:
		return c.HL()
	}
}

func (c *CPU) setIdxHL(ctx *execCtx, v uint16) {
	switch ctx.mode {
	case indexIX:
		c.IX = v
	case indexIY:
		c.IY = v
	default:
		c.SetHL(v)
	}
}

func (c *CPU) idxAddr(ctx *execCtx) uint16 {
	if !ctx.dispValid {
		ctx.disp = int8(c.readByte())
		ctx.dispValid = true
	}
	return uint16(int32(c.idxHL(ctx)) + int32(ctx.disp))
}

// getReg8 reads register slot z (0..7: B,C,D,E,H,L,(HL),A), honouring
// the active index prefix for slots 4/5/6 (H/L/(HL) -> IXH/IXL/(IX+d)
// or IYH/IYL/(IY+d)).
func (c *CPU) getReg8(z uint8, ctx *execCtx) uint8 {
	switch z {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		if ctx.mode == indexNone {
			return c.H
		}
		return uint8(c.idxHL(ctx) >> 8)
	case 5:
		if ctx.mode == indexNone {
			return c.L
		}
		return uint8(c.idxHL(ctx))
	case 6:
		if ctx.mode == indexNone {
			return c.bus.ReadMemory(c.HL())
		}
		return c.bus.ReadMemory(c.idxAddr(ctx))
	default: // 7
		return c.A
	}
}

func (c *CPU) setReg8(z uint8, v uint8, ctx *execCtx) {
	switch z {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		if ctx.mode == indexNone {
			c.H = v
		} else {
			c.setIdxHL(ctx, uint16(v)<<8|(c.idxHL(ctx)&0xFF))
		}
	case 5:
		if ctx.mode == indexNone {
			c.L = v
		} else {
			c.setIdxHL(ctx, (c.idxHL(ctx)&0xFF00)|uint16(v))
		}
	case 6:
		if ctx.mode == indexNone {
			c.bus.WriteMemory(c.HL(), v)
		} else {
			c.bus.WriteMemory(c.idxAddr(ctx), v)
		}
	default: // 7
		c.A = v
	}
}

func (c *CPU) getRP(p uint8, ctx *execCtx) uint16 {
	switch p {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.idxHL(ctx)
	default:
		return c.SP
	}
}

func (c *CPU) setRP(p uint8, v uint16, ctx *execCtx) {
	switch p {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.setIdxHL(ctx, v)
	default:
		c.SP = v
	}
}

func (c *CPU) getRP2(p uint8, ctx *execCtx) uint16 {
	if p == 3 {
		return c.AF()
	}
	return c.getRP(p, ctx)
}

func (c *CPU) setRP2(p uint8, v uint16, ctx *execCtx) {
	if p == 3 {
		c.SetAF(v)
		return
	}
	c.setRP(p, v, ctx)
}

func (c *CPU) condition(y uint8) bool {
	switch y {
	case 0:
		return !c.flag(FlagZ)
	case 1:
		return c.flag(FlagZ)
	case 2:
		return !c.flag(FlagC)
	case 3:
		return c.flag(FlagC)
	case 4:
		return !c.flag(FlagPV)
	case 5:
		return c.flag(FlagPV)
	case 6:
		return !c.flag(FlagS)
	default:
		return c.flag(FlagS)
	}
}

func (c *CPU) applyALU(op uint8, v uint8) {
	switch op {
	case 0:
		c.A = c.add8(c.A, v, false)
	case 1:
		c.A = c.add8(c.A, v, c.flag(FlagC))
	case 2:
		c.A = c.sub8(c.A, v, false)
	case 3:
		c.A = c.sub8(c.A, v, c.flag(FlagC))
	case 4:
		c.A = c.and8(c.A, v)
	case 5:
		c.A = c.xor8(c.A, v)
	case 6:
		c.A = c.or8(c.A, v)
	default:
		c.cp8(c.A, v)
	}
}

func (c *CPU) applyRot(op uint8, v uint8) uint8 {
	switch op {
	case 0:
		return c.rlc(v)
	case 1:
		return c.rrc(v)
	case 2:
		return c.rl(v)
	case 3:
		return c.rr(v)
	case 4:
		return c.sla(v)
	case 5:
		return c.sra(v)
	case 6:
		return c.sll(v)
	default:
		return c.srl(v)
	}
}
