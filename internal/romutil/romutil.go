// Package romutil implements the ROM/BIOS file conventions of
// spec.md §6: header-skip detection, power-of-two padding and the
// content hash used to name SRAM save files.
package romutil

import (
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// StripHeader returns the ROM payload, skipping a leading header if
// present. A raw cartridge dump whose size modulo 1024 is non-zero
// carries a (size mod 1024)-byte header that must be skipped.
func StripHeader(raw []byte) []byte {
	if rem := len(raw) % 1024; rem != 0 {
		return raw[rem:]
	}
	return raw
}

// PadToPowerOfTwo returns rom unchanged if its length is already a
// power of two, or a copy zero-padded up to the next power of two
// otherwise. The returned mask is length-1 of the padded buffer, used
// by mappers to wrap out-of-range reads.
func PadToPowerOfTwo(rom []byte) (padded []byte, mask int) {
	size := 1
	for size < len(rom) {
		size <<= 1
	}
	if size == len(rom) {
		return rom, size - 1
	}
	out := make([]byte, size)
	copy(out, rom)
	return out, size - 1
}

// Hash renders the 64-bit xxHash of the ROM's content as the lowercase
// hex "12-byte" name spec.md §6 requires for SRAM filenames (the
// source's content hash is truncated to the first 12 hex digits,
// i.e. 48 bits, which is what actually appears in the `.sram` name).
func Hash(rom []byte) string {
	sum := xxhash.Sum64(rom)
	full := hex.EncodeToString([]byte{
		byte(sum >> 56), byte(sum >> 48), byte(sum >> 40), byte(sum >> 32),
		byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum),
	})
	return full[:12]
}

// SRAMFileName returns the `.sram` file name for the given ROM bytes.
func SRAMFileName(rom []byte) string {
	return fmt.Sprintf("%s.sram", Hash(rom))
}
