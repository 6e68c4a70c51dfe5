package psg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario #2 from spec.md §8: write bytes {0x9F, 0x8E, 0x00, 0x90}.
func TestLatchAssemblesToneAndVolume(t *testing.T) {
	p := New()

	p.Write(0x9F) // latch vol_0, data = 0xF (silent)
	p.Write(0x8E) // latch tone_0, low data = 0xE
	p.Write(0x00) // high data for tone_0 -> 0 (6 data bits)
	p.Write(0x90) // latch vol_0, data = 0x0 (loudest)

	require.Equal(t, uint16(0x00E), p.Tone0())
	require.Equal(t, uint8(0x00), p.Vol0())
}

func TestToneZeroForcesConstantOutput(t *testing.T) {
	p := New()
	p.Write(0x80) // latch tone_0 low = 0
	p.Write(0x00) // tone_0 high = 0 -> tone register is 0

	p.runCyclesLocked(16 * 100)

	require.Equal(t, int8(1), p.output0)
}

func TestNoiseWriteResetsLFSR(t *testing.T) {
	p := New()
	p.lfsr = 0xBEEF

	p.Write(0xE4) // latch noise register, data 0x4 (white noise, /16)

	require.Equal(t, uint16(0x0001), p.lfsr)
}

func TestLFSRWhiteNoiseTapPolynomial(t *testing.T) {
	p := New()
	p.lfsr = 0x0001
	p.noise = 0x04 // white noise

	// Walk the canonical Sega-variant LFSR (tap bits 0 and 3) by hand
	// for a handful of shifts and confirm tick() agrees.
	expect := uint16(0x0001)
	for i := 0; i < 20; i++ {
		newBit := (expect & 1) ^ ((expect >> 3) & 1)
		expect = (expect >> 1) | (newBit << 15)
	}

	p.tone2 = 4
	// Force enough noise-channel rising edges (output3 flips -1->1 on
	// every other underflow) to perform 20 LFSR shifts.
	shifts := 0
	for shifts < 20 {
		before := p.output3
		p.tick()
		if before == -1 && p.output3 == 1 {
			shifts++
		}
	}

	require.Equal(t, expect, p.lfsr)
}

func TestRingIndicesMonotonic(t *testing.T) {
	p := New()
	p.runCyclesLocked(16 * 1000)
	require.Equal(t, uint64(1000), p.writeIndex)
}
