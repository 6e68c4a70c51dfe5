package machine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sg8bit/core/internal/gamepad"
	"github.com/sg8bit/core/internal/vdp"
)

func blankROM(size int) []byte {
	return make([]byte, size)
}

func TestNewRejectsEmptyROM(t *testing.T) {
	_, err := New(Config{Kind: KindSG1000, ROM: nil}, nil)
	require.Error(t, err)
}

func TestNewResetsCPU(t *testing.T) {
	m, err := New(Config{Kind: KindSG1000, ROM: blankROM(32 * 1024)}, nil)
	require.NoError(t, err)
	require.Equal(t, uint16(0xFFFF), m.CPU.SP)
}

func TestRunAdvancesScanlines(t *testing.T) {
	m, err := New(Config{Kind: KindSMS, ROM: blankROM(32 * 1024)}, nil)
	require.NoError(t, err)

	m.Run(1000) // 1 second of wall clock
	require.Greater(t, m.VDP.VCounter(), uint8(0))
}

// runToFrameInterrupt drives only the VDP (never the CPU, which would
// itself poll and consume NMI() as a side effect of stepping) until
// its frame-interrupt status bit latches.
func runToFrameInterrupt(m *Machine) {
	m.VDP.Regs[1] |= vdp.R1FrameIntEnable
	for i := 0; i < 300; i++ {
		m.VDP.RunOneScanline()
	}
}

func TestColecoVisionNMIFromVDPFrameInterrupt(t *testing.T) {
	m, err := New(Config{Kind: KindColecoVision, ROM: blankROM(32 * 1024)}, nil)
	require.NoError(t, err)

	require.False(t, m.NMI())
	runToFrameInterrupt(m)
	require.True(t, m.VDP.Interrupt(), "VDP frame interrupt should have latched by now")
	// The edge must only fire once: the VDP status bit stays set until
	// the handler reads it, so repeated sampling without an
	// intervening status read must not re-trigger NMI.
	require.True(t, m.NMI())
	require.False(t, m.NMI())
	require.False(t, m.NMI())

	// Once the handler clears the VDP's latched status, a later frame
	// interrupt must produce a fresh edge.
	m.VDP.StatusRead()
	require.False(t, m.NMI())
	runToFrameInterrupt(m)
	require.True(t, m.NMI())
}

// TestColecoVisionNMIDoesNotLivelockCPU guards against the CPU
// re-entering the NMI vector on every instruction of the handler
// while the VDP's frame-interrupt status bit stays latched (it only
// clears on an explicit status-port read, which the handler performs
// after SP and PC have already moved away from reset state).
func TestColecoVisionNMIDoesNotLivelockCPU(t *testing.T) {
	// BIOS filled with NOPs (0x00) so the main loop and the NMI vector
	// both read harmless instructions; only the NMI re-acceptance
	// logic under test can make SP free-run.
	m, err := New(Config{Kind: KindColecoVision, ROM: blankROM(32 * 1024), BIOS: blankROM(0x2000)}, nil)
	require.NoError(t, err)

	runToFrameInterrupt(m)
	require.True(t, m.VDP.Interrupt())

	// A single step takes the NMI vector once (push PC, SP -= 2). A
	// livelocked CPU would instead re-push PC=0x0066 on every step
	// while the level stays asserted, decrementing SP without bound.
	startSP := m.CPU.SP
	m.CPU.RunCycles(228)
	afterFirstScanline := m.CPU.SP
	require.Equal(t, startSP-2, afterFirstScanline)

	m.CPU.RunCycles(228)
	require.Equal(t, afterFirstScanline, m.CPU.SP)
}

func TestSG1000StartButtonEdgeTriggersNMIOnce(t *testing.T) {
	m, err := New(Config{Kind: KindSG1000, ROM: blankROM(32 * 1024)}, nil)
	require.NoError(t, err)

	m.Gamepad.Pad1.Press(gamepad.ButtonStart)
	require.True(t, m.NMI())
	require.False(t, m.NMI()) // edge already consumed
}

func TestAbortStopsRunLoop(t *testing.T) {
	m, err := New(Config{Kind: KindSG1000, ROM: blankROM(32 * 1024)}, nil)
	require.NoError(t, err)

	m.Abort()
	before := m.VDP.VCounter()
	m.Run(1000)
	require.Equal(t, before, m.VDP.VCounter())
}
