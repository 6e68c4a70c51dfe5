package romutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripHeaderSkipsRemainder(t *testing.T) {
	raw := make([]byte, 1024+512)
	for i := range raw {
		raw[i] = byte(i)
	}
	stripped := StripHeader(raw)
	require.Len(t, stripped, 1024)
	require.Equal(t, byte(0x00), stripped[0]^raw[512])
}

func TestStripHeaderNoOpWhenAligned(t *testing.T) {
	raw := make([]byte, 2048)
	require.Equal(t, len(raw), len(StripHeader(raw)))
}

func TestPadToPowerOfTwo(t *testing.T) {
	rom := make([]byte, 24*1024)
	padded, mask := PadToPowerOfTwo(rom)
	require.Len(t, padded, 32*1024)
	require.Equal(t, 32*1024-1, mask)
}

func TestHashIsDeterministicAndFixedLength(t *testing.T) {
	rom := []byte("identical-rom-bytes")
	h1 := Hash(rom)
	h2 := Hash(rom)
	require.Equal(t, h1, h2)
	require.Len(t, h1, 12)
}

func TestHashDiffersForDifferentROMs(t *testing.T) {
	require.NotEqual(t, Hash([]byte("a")), Hash([]byte("b")))
}

func TestSRAMFileNameSuffix(t *testing.T) {
	name := SRAMFileName([]byte("rom"))
	require.Contains(t, name, ".sram")
}
