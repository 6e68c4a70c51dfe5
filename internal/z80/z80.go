package z80

import "fmt"

// Bus is the capability interface the CPU uses to reach memory and I/O.
// Spec.md §9 calls the source's function-pointer plumbing "already the
// right abstraction"; this interface is that abstraction made explicit.
// Machine-specific address decoding lives entirely behind it.
type Bus interface {
	ReadMemory(addr uint16) uint8
	WriteMemory(addr uint16, v uint8)
	ReadIO(port uint8) uint8
	WriteIO(port uint8, v uint8)
}

// InterruptLines is polled by the CPU between instructions.
type InterruptLines interface {
	INT() bool
	NMI() bool
	// INTData supplies the device byte placed on the bus during an
	// IM 0 / IM 2 interrupt acknowledge cycle.
	INTData() uint8
	// ClearNMI acknowledges that the CPU has taken the pending NMI,
	// since NMI is edge/level depending on machine wiring and it is
	// the machine's job to decide when to drop the line.
	ClearNMI()
}

// OpcodeError is raised (as a panic) when the CPU decodes a byte with
// no defined meaning in any of the documented prefix spaces. Real
// hardware has no defined behaviour here; spec.md §7 treats this as a
// fatal internal error rather than a recoverable game-state problem.
type OpcodeError struct {
	Prefix string
	Opcode uint8
	PC     uint16
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("z80: undefined opcode %s%02X at PC=%04X", e.Prefix, e.Opcode, e.PC)
}

// CPU is a single Z80 core. It holds no knowledge of any particular
// console's memory map; all bus traffic goes through Bus.
type CPU struct {
	Registers

	Halted bool

	bus Bus
	irq InterruptLines

	// pendingEI suppresses interrupt acceptance for one instruction
	// after EI, per the real chip's behaviour: EI does not accept an
	// interrupt on the instruction immediately following it.
	pendingEI bool

	// cycles is the running T-state budget; RunCycles accumulates
	// overshoot so successive calls stay accurate on average.
	cycles int

	// wz is the internal MEMPTR/WZ register. It has no architectural
	// visibility except through the undocumented flag behaviour of a
	// handful of instructions (notably BIT n,(HL)).
	wz uint16

	// lastBlockOp/lastDecrement remember which ED block instruction is
	// running so the Rxx repeat forms can re-invoke the right step.
	lastBlockOp   blockOp
	lastDecrement bool
}

// NewCPU constructs a CPU wired to the given bus and interrupt lines.
func NewCPU(bus Bus, irq InterruptLines) *CPU {
	c := &CPU{bus: bus, irq: irq}
	c.Reset()
	return c
}

// Reset restores power-on register values.
func (c *CPU) Reset() {
	c.Registers = Registers{SP: 0xFFFF, F: 0xFF}
	c.Halted = false
	c.pendingEI = false
	c.cycles = 0
	c.wz = 0
}

// RunCycles advances the CPU by at least n T-states, executing whole
// instructions only, and carries any overshoot into the next call's
// budget so that long-run average timing stays accurate.
func (c *CPU) RunCycles(n int) {
	c.cycles += n
	for c.cycles > 0 {
		taken := c.step()
		c.cycles -= taken
	}
}

// step executes exactly one instruction (or one HALT-stall "instruction"),
// handling interrupt acceptance beforehand, and returns its T-state cost.
func (c *CPU) step() int {
	if !c.pendingEI {
		if taken, handled := c.serviceInterrupts(); handled {
			return taken
		}
	}
	c.pendingEI = false

	if c.Halted {
		c.incR()
		return 4
	}

	opcode := c.fetch()
	return c.execute(opcode)
}

// serviceInterrupts samples NMI then INT, in that priority order, and
// returns the T-states spent if one was accepted.
func (c *CPU) serviceInterrupts() (int, bool) {
	if c.irq.NMI() {
		c.irq.ClearNMI()
		c.Halted = false
		c.IFF2 = c.IFF1
		c.IFF1 = false
		c.incR()
		c.push16(c.PC)
		c.PC = 0x0066
		return 11, true
	}
	if c.IFF1 && c.irq.INT() {
		c.Halted = false
		c.IFF1, c.IFF2 = false, false
		c.incR()
		switch c.IM {
		case 0:
			// Treat the bus byte as an instruction; this project only
			// supports RST 38h here, per spec.md §4.1.
			c.push16(c.PC)
			c.PC = 0x0038
			return 13, true
		case 1:
			c.push16(c.PC)
			c.PC = 0x0038
			return 13, true
		default: // IM 2
			vector := uint16(c.I)<<8 | uint16(c.irq.INTData())
			c.push16(c.PC)
			c.PC = uint16(c.bus.ReadMemory(vector)) | uint16(c.bus.ReadMemory(vector+1))<<8
			return 19, true
		}
	}
	return 0, false
}

func (c *CPU) fetch() uint8 {
	c.incR()
	b := c.bus.ReadMemory(c.PC)
	c.PC++
	return b
}

func (c *CPU) fetch16() uint16 {
	lo := c.readByte()
	hi := c.readByte()
	return uint16(hi)<<8 | uint16(lo)
}

// readByte reads the next immediate byte without touching R (only
// opcode fetches, i.e. M1 cycles, increment R).
func (c *CPU) readByte() uint8 {
	b := c.bus.ReadMemory(c.PC)
	c.PC++
	return b
}

func (c *CPU) push16(v uint16) {
	c.SP--
	c.bus.WriteMemory(c.SP, uint8(v>>8))
	c.SP--
	c.bus.WriteMemory(c.SP, uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.bus.ReadMemory(c.SP)
	c.SP++
	hi := c.bus.ReadMemory(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// enableInterruptsDeferred sets IFF1/IFF2 at once and marks that no
// interrupt may be accepted until the next instruction has executed
// (the EI-shadow rule).
func (c *CPU) enableInterruptsDeferred() {
	c.IFF1, c.IFF2 = true, true
	c.pendingEI = true
}
