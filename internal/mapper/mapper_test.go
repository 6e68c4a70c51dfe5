package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func romWithBanks(n int) []byte {
	rom := make([]byte, n*0x4000)
	for bank := 0; bank < n; bank++ {
		for i := 0; i < 0x4000; i++ {
			rom[bank*0x4000+i] = byte(bank)
		}
	}
	return rom
}

func TestSegaBankZeroFixedInFirstKiB(t *testing.T) {
	rom := romWithBanks(4)
	m := New(VariantSega, rom, len(rom)-1)
	m.Slot[0] = 2 // page bank 2 into slot 0

	require.Equal(t, uint8(0), m.Read(0x0000)) // still bank 0, not 2
	require.Equal(t, uint8(2), m.Read(0x0400)) // rest of slot 0 is bank 2
}

func TestSegaSlotRegistersPageBanks(t *testing.T) {
	rom := romWithBanks(8)
	m := New(VariantSega, rom, len(rom)-1)

	m.Write(0xFFFE, 5) // slot 1 -> bank 5
	require.Equal(t, uint8(5), m.Read(0x4000))

	m.Write(0xFFFF, 7) // slot 2 -> bank 7
	require.Equal(t, uint8(7), m.Read(0x8000))
}

func TestSegaSRAMOverlay(t *testing.T) {
	rom := romWithBanks(2)
	m := New(VariantSega, rom, len(rom)-1)

	m.Write(0xFFFC, 0x08) // enable cartridge RAM
	m.SRAM[0] = 0x42

	require.True(t, m.SRAMEnable)
	require.Equal(t, uint8(0x42), m.Read(0x8000))
}

func TestCodemastersPagesOnAnyWrite(t *testing.T) {
	rom := romWithBanks(4)
	m := New(VariantCodemasters, rom, len(rom)-1)

	m.Write(0x8000, 3)
	require.Equal(t, uint8(3), m.Read(0x8000))
}

func TestKoreanPagesSlot2Only(t *testing.T) {
	rom := romWithBanks(4)
	m := New(VariantKorean, rom, len(rom)-1)

	m.Write(0xA000, 2)
	require.Equal(t, uint8(2), m.Read(0x8000))
}

func TestDetectFromRegisterAddress(t *testing.T) {
	require.Equal(t, VariantSega, Detect(0xFFFE, 0))
	require.Equal(t, VariantCodemasters, Detect(0x8000, 0))
	require.Equal(t, VariantKorean, Detect(0xA000, 0))
}

func TestDetectFallsBackOnROMSize(t *testing.T) {
	require.Equal(t, VariantSega, Detect(0x1234, 64*1024))
	require.Equal(t, VariantNone, Detect(0x1234, 16*1024))
}

// TestAutoDetectWriteUsesActualROMSize exercises Write()'s auto-detect
// path end to end: a write to an address none of the three mappers'
// register ranges recognize must still upgrade a large ROM to the
// Sega scheme, which only happens if Write threads the real ROM
// length into Detect instead of a hardcoded 0.
func TestAutoDetectWriteUsesActualROMSize(t *testing.T) {
	rom := romWithBanks(4) // 64 KiB, over the 48 KiB fallback threshold
	m := New(VariantNone, rom, len(rom)-1)
	m.AutoDetect = true

	m.Write(0x1234, 0) // not a recognized register address for any variant
	require.Equal(t, VariantSega, m.Variant)
}
