package vdp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestControlPortLatchSequence(t *testing.T) {
	v := New(ModeSMS4, Mode4NTSC192)

	v.ControlWrite(0x00)
	v.ControlWrite(0x80) // code 10 -> register write, R0
	v.ControlWrite(0x01)
	v.ControlWrite(0x81) // code 10 -> register write, R1
	v.RunOneScanline()   // propagate the SMS register buffer

	require.Equal(t, uint8(0x00), v.Regs[0])
	require.Equal(t, uint8(0x01), v.Regs[1])
}

func TestRegisterIndexAboveTenIgnored(t *testing.T) {
	v := New(ModeSMS4, Mode4NTSC192)
	before := v.Regs

	v.ControlWrite(0x42)
	v.ControlWrite(0x8B) // code 10, reg index 0x0B (11) - out of range
	v.RunOneScanline()

	require.Equal(t, before, v.Regs)
}

func TestAddressLatchWraps(t *testing.T) {
	v := New(ModeSMS4, Mode4NTSC192)
	v.ControlWrite(0xFF)
	v.ControlWrite(0x7F) // top bits 01 (VRAM write), addr = 0x3FFF
	v.DataWrite(0xAA)

	require.Equal(t, uint8(0xAA), v.VRAM[0x3FFF])
	// address should now have wrapped to 0x0000
	v.DataWrite(0xBB)
	require.Equal(t, uint8(0xBB), v.VRAM[0x0000])
}

func TestStatusReadClearsAtomically(t *testing.T) {
	v := New(ModeSMS4, Mode4NTSC192)
	v.status = StatusINT | StatusOverflow | StatusCollision
	v.lineIntPending = true

	first := v.StatusRead()
	second := v.StatusRead()

	require.Equal(t, StatusINT|StatusOverflow|StatusCollision, first)
	require.Equal(t, uint8(0), second)
	require.False(t, v.lineIntPending)
}

func TestVCounterNTSC192Transition(t *testing.T) {
	require.Equal(t, uint8(0xDA), vCounterFor(0xDA, Mode4NTSC192))
	require.Equal(t, uint8(0xD5), vCounterFor(0xDB, Mode4NTSC192))
}

func TestSwapFrameOnLastActiveLine(t *testing.T) {
	v := New(ModeSMS4, Mode4NTSC192)
	for i := 0; i < Mode4NTSC192.LinesActive; i++ {
		require.False(t, v.FrameReady())
		v.RunOneScanline()
	}
	require.True(t, v.FrameReady())
}
