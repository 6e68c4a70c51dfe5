// Package gamepad holds the passive input snapshot Bus reads during
// I/O port decoding (spec.md §4.6). The host writes into it on its own
// thread; the emulation thread only reads.
package gamepad

// Button is a bitmask identifier for one pad's digital inputs,
// mirroring the teacher's bitmask-button convention.
type Button uint16

const (
	ButtonUp Button = 1 << iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonButton1
	ButtonButton2
	ButtonStart
)

// Pad is one controller's digital state, a plain bitmask register
// image; a set bit means pressed.
type Pad struct {
	Buttons Button
}

// Press sets b in the pad's button mask.
func (p *Pad) Press(b Button) { p.Buttons |= b }

// Release clears b from the pad's button mask.
func (p *Pad) Release(b Button) { p.Buttons &^= b }

// Held reports whether b is currently pressed.
func (p *Pad) Held(b Button) bool { return p.Buttons&b != 0 }

// Snapshot is the two-controller register image the Bus samples
// during I/O reads. It also carries the SMS paddle's rotating
// clock-phase state and each controller's held ColecoVision keypad key.
type Snapshot struct {
	Pad1 Pad
	Pad2 Pad

	// Pad1IsPaddle selects the SMS paddle peripheral in place of a
	// standard digital pad 1 (spec.md §4.6).
	Pad1IsPaddle bool

	// Paddle holds the SMS paddle position (0-255), written by the
	// host. paddleClock is the paddle's clock output; it advances by one
	// step on each TickPaddleClock call (spec.md §4.6).
	Paddle      uint8
	paddleClock uint8

	// ColecoKeypad holds the most recently pressed key (0-9, '*'=10,
	// '#'=11) for each controller's keypad overlay, 0xFF = none.
	ColecoKeypad1 uint8
	ColecoKeypad2 uint8
}

// TickPaddleClock advances the free-running paddle clock by one step
// and returns the resulting 2-bit clock phase, used by Bus to build
// the SMS paddle read nibble.
func (s *Snapshot) TickPaddleClock() uint8 {
	s.paddleClock++
	return s.paddleClock & 0x03
}

// colecoKeypadMatrix maps a held keypad digit to the 4-bit nibble the
// ColecoVision BIOS expects on I/O port 0xE0/0xFF reads in keypad mode
// (spec.md §9 Open Question: only the documented digit/star/pound
// matrix is implemented, not the source's undocumented SHIFT-chord
// extension for player 2's extra buttons).
var colecoKeypadMatrix = map[uint8]uint8{
	0: 0x0A, 1: 0x0D, 2: 0x07, 3: 0x0C, 4: 0x02,
	5: 0x03, 6: 0x0E, 7: 0x05, 8: 0x01, 9: 0x0B,
	10: 0x09, // '*'
	11: 0x06, // '#'
}

// ColecoKeypadNibble returns the 4-bit keypad matrix value for the
// given controller's currently held key, or 0x0F (no key) if none.
func ColecoKeypadNibble(key uint8) uint8 {
	if v, ok := colecoKeypadMatrix[key]; ok {
		return v
	}
	return 0x0F
}
