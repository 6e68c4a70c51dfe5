package bus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sg8bit/core/internal/gamepad"
	"github.com/sg8bit/core/internal/mapper"
	"github.com/sg8bit/core/internal/psg"
	"github.com/sg8bit/core/internal/vdp"
	"github.com/sg8bit/core/pkg/log"
)

func newTestBus(system System) *Bus {
	rom := make([]byte, 32*1024)
	m := mapper.New(mapper.VariantNone, rom, len(rom)-1)
	v := vdp.New(vdp.ModeSMS4, vdp.Mode4NTSC192)
	p := psg.New()
	gp := &gamepad.Snapshot{}
	return New(system, m, v, p, gp, log.Null())
}

// Scenario #6 from spec.md §8: write any value to I/O port 0x80, then
// read I/O port 0xE0 with keyboard key '1' held.
func TestColecoVisionKeypadScenario(t *testing.T) {
	b := newTestBus(SystemColecoVision)
	b.WriteIO(0x80, 0x00) // switch to keypad mode
	b.Gamepad.ColecoKeypad1 = 1

	result := b.ReadIO(0xE0)
	require.Equal(t, uint8(0x0D), result&0x0F)
	require.NotEqual(t, uint8(0), result&(1<<4))
	require.NotEqual(t, uint8(0), result&(1<<5))
}

func TestColecoVisionJoystickModeDefault(t *testing.T) {
	b := newTestBus(SystemColecoVision)
	b.Gamepad.Pad1.Press(gamepad.ButtonUp)

	result := b.ReadIO(0xE0)
	require.Equal(t, uint8(0), result&(1<<0))
}

func TestSG1000RAMMirrored(t *testing.T) {
	b := newTestBus(SystemSG1000)
	b.WriteMemory(0xC000, 0x42)
	require.Equal(t, uint8(0x42), b.ReadMemory(0xC400))
}

func TestSMSMemoryControlDisablesIO(t *testing.T) {
	b := newTestBus(SystemSMS)
	b.WriteIO(0x3E, memCtrlIODisable)
	require.Equal(t, uint8(0xFF), b.ReadIO(0xDC))
}

func TestSMSDebugConsoleEmitsByte(t *testing.T) {
	b := newTestBus(SystemSMS)
	var got byte
	b.DebugConsole = func(c byte) { got = c }

	b.WriteIO(0x3E, memCtrlIODisable)
	b.WriteIO(0xFD, 'A')

	require.Equal(t, byte('A'), got)
}

func TestSG1000GamepadButtonActiveLow(t *testing.T) {
	b := newTestBus(SystemSG1000)
	b.Gamepad.Pad1.Press(gamepad.ButtonButton1)

	result := b.ReadIO(0xC0)
	require.Equal(t, uint8(0), result&(1<<4))
}
