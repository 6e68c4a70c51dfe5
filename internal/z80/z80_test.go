package z80

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// memBus is a flat 64KiB RAM/IO harness for isolated CPU tests.
type memBus struct {
	mem [65536]uint8
	io  [256]uint8
}

func (m *memBus) ReadMemory(a uint16) uint8   { return m.mem[a] }
func (m *memBus) WriteMemory(a uint16, v uint8) { m.mem[a] = v }
func (m *memBus) ReadIO(p uint8) uint8         { return m.io[p] }
func (m *memBus) WriteIO(p uint8, v uint8)     { m.io[p] = v }

type noIRQ struct{}

func (noIRQ) INT() bool       { return false }
func (noIRQ) NMI() bool       { return false }
func (noIRQ) INTData() uint8  { return 0xFF }
func (noIRQ) ClearNMI()       {}

func newTestCPU(program ...uint8) (*CPU, *memBus) {
	bus := &memBus{}
	copy(bus.mem[:], program)
	cpu := NewCPU(bus, noIRQ{})
	return cpu, bus
}

// Scenario #5 from spec.md §8: A=0x15, B=0x27, ADD A,B.
func TestAddAB(t *testing.T) {
	cpu, _ := newTestCPU(0x80) // ADD A,B
	cpu.A = 0x15
	cpu.B = 0x27
	cpu.RunCycles(4)

	require.Equal(t, uint8(0x3C), cpu.A)
	require.False(t, cpu.flag(FlagS))
	require.False(t, cpu.flag(FlagZ))
	require.False(t, cpu.flag(FlagH))
	require.False(t, cpu.flag(FlagPV))
	require.False(t, cpu.flag(FlagN))
	require.False(t, cpu.flag(FlagC))
}

func TestExAFIdempotent(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.A, cpu.F = 0x12, 0x34
	cpu.A_, cpu.F_ = 0x56, 0x78

	cpu.ExchangeAF()
	cpu.ExchangeAF()

	require.Equal(t, uint8(0x12), cpu.A)
	require.Equal(t, uint8(0x34), cpu.F)
}

func TestExxIdempotent(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.SetBC(0x1122)
	cpu.SetDE(0x3344)
	cpu.SetHL(0x5566)

	cpu.Exx()
	cpu.Exx()

	require.Equal(t, uint16(0x1122), cpu.BC())
	require.Equal(t, uint16(0x3344), cpu.DE())
	require.Equal(t, uint16(0x5566), cpu.HL())
}

func TestDAAAfterBCDAdd(t *testing.T) {
	cpu, _ := newTestCPU(0x80, 0x27) // ADD A,B ; DAA
	cpu.A = 0x15                     // BCD 15
	cpu.B = 0x27                     // BCD 27
	cpu.RunCycles(4)
	cpu.RunCycles(4)

	require.Equal(t, uint8(0x42), cpu.A) // 15 + 27 = 42 in BCD
	require.False(t, cpu.flag(FlagC))
}

func TestEINotAcceptedOnFollowingInstruction(t *testing.T) {
	bus := &memBus{}
	bus.mem[0] = 0xFB // EI
	bus.mem[1] = 0x00 // NOP
	bus.mem[2] = 0x00 // NOP
	cpu := NewCPU(bus, alwaysINT{})
	cpu.IM = 1

	cpu.RunCycles(4) // EI
	require.True(t, cpu.IFF1)
	pcAfterEI := cpu.PC
	require.Equal(t, uint16(1), pcAfterEI)

	cpu.RunCycles(4) // NOP immediately after EI: interrupt must not fire
	require.Equal(t, uint16(2), cpu.PC)

	cpu.RunCycles(13) // next NOP's boundary: interrupt now eligible
	require.Equal(t, uint16(0x0038), cpu.PC)
}

type alwaysINT struct{}

func (alwaysINT) INT() bool      { return true }
func (alwaysINT) NMI() bool      { return false }
func (alwaysINT) INTData() uint8 { return 0xFF }
func (alwaysINT) ClearNMI()      {}

func TestIndexedBitOp(t *testing.T) {
	// DD CB 02 46  -> BIT 0,(IX+2)
	cpu, bus := newTestCPU(0xDD, 0xCB, 0x02, 0x46)
	cpu.IX = 0x1000
	bus.mem[0x1002] = 0x01

	cpu.RunCycles(24)

	require.False(t, cpu.flag(FlagZ))
	require.Equal(t, uint16(4), cpu.PC)
}

func TestUnknownOpcodePanics(t *testing.T) {
	// 0xED 0xFF has no documented meaning.
	cpu, _ := newTestCPU(0xED, 0xFF)
	require.Panics(t, func() {
		cpu.RunCycles(4)
	})
}
