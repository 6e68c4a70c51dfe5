// Package vdp implements the TMS9918A-family video display processor,
// including the SMS Mode-4 extension, per spec.md §4.2.
package vdp

const (
	VRAMSize = 16 * 1024
	CRAMSize = 32

	FrameWidth  = 272
	FrameHeight = 240
)

// Mode selects the active display mode.
type Mode uint8

const (
	ModeTMS0 Mode = iota // legacy graphics mode 0
	ModeTMS2             // legacy graphics mode 2
	ModeSMS4             // SMS Mode 4
)

// Control register bit masks (R0/R1), named after spec.md §3/§4.2.
const (
	R0LineIntEnable  = 1 << 4
	R0MaskColumn0    = 1 << 5
	R0LockRowScroll  = 1 << 6
	R0LockColScroll  = 1 << 7
	R1SpriteMag      = 1 << 0
	R1SpriteSize     = 1 << 1
	R1FrameIntEnable = 1 << 5
	R1DisplayEnable  = 1 << 6

	StatusINT       = 1 << 7
	StatusOverflow  = 1 << 6
	StatusCollision = 1 << 5
)

// latchState is the explicit two-state control-port machine required
// by spec.md §9: a sticky latch must never be modelled as a single
// boolean reset by "any other operation".
type latchState uint8

const (
	awaitingFirst latchState = iota
	awaitingSecond
)

// VConfig describes one supported display timing: total scanlines,
// active line count, and the v-counter skip table (spec.md §6).
type VConfig struct {
	LinesActive int
	LinesTotal  int
	VCounterMap []VRange
}

// VRange is one contiguous [First,Last] raw-line range mapped to
// consecutive v-counter values.
type VRange struct{ First, Last uint8 }

// VDP is a single TMS9918A/SMS-Mode-4 chip instance.
type VDP struct {
	Regs      [11]uint8
	regBuffer [11]uint8 // mid-line-deferred register writes, spec.md §9

	VRAM [VRAMSize]uint8
	CRAM [CRAMSize]uint8

	latch      latchState
	addr       uint16
	code       uint8
	readBuffer uint8

	status              uint8
	lineIntCounter      uint8
	lineIntPending      bool
	rawLine             int
	vCounter            uint8
	spriteCollisionSeen bool

	mode   Mode
	config VConfig

	frameA, frameB []uint8 // RGB24 front/back buffers
	front          *[]uint8
	back           *[]uint8
	frameReady     bool
}

// New constructs a VDP in its power-on state for the given mode and
// timing configuration.
func New(mode Mode, config VConfig) *VDP {
	v := &VDP{}
	v.mode = mode
	v.config = config
	v.frameA = make([]uint8, FrameWidth*FrameHeight*3)
	v.frameB = make([]uint8, FrameWidth*FrameHeight*3)
	v.front = &v.frameA
	v.back = &v.frameB
	v.Reset()
	return v
}

// Reset restores documented power-on values: everything zero except
// the explicitly enumerated non-zero defaults (spec.md §9).
func (v *VDP) Reset() {
	v.Regs = [11]uint8{}
	v.regBuffer = [11]uint8{}
	v.VRAM = [VRAMSize]uint8{}
	v.CRAM = [CRAMSize]uint8{}
	v.latch = awaitingFirst
	v.addr = 0
	v.code = 0
	v.readBuffer = 0
	v.status = 0
	v.lineIntCounter = 0
	v.lineIntPending = false
	v.rawLine = 0
	v.vCounter = 0
	v.frameReady = false
}

// SetMode reconfigures the active display mode/timing (used by
// machines that support multiple resolutions, e.g. SMS at 192/224/240
// active lines).
func (v *VDP) SetMode(mode Mode, config VConfig) {
	v.mode = mode
	v.config = config
	v.rawLine = 0
}

// ControlWrite implements the two-write control-port protocol of
// spec.md §4.2. Any control-port write that lands on the second byte
// also clears the latch explicitly (the "any other operation" resets
// documented in §9 are enumerated, not inferred).
func (v *VDP) ControlWrite(value uint8) {
	if v.latch == awaitingFirst {
		v.addr = (v.addr & 0x3F00) | uint16(value)
		v.latch = awaitingSecond
		return
	}

	v.latch = awaitingFirst
	v.addr = (v.addr & 0x00FF) | (uint16(value&0x3F) << 8)
	v.code = (value >> 6) & 0x03

	switch v.code {
	case 0: // VRAM read: prefetch into the read buffer, then advance
		v.readBuffer = v.VRAM[v.addr]
		v.addr = (v.addr + 1) & 0x3FFF
	case 1: // VRAM write: nothing happens until the data port is used
	case 2: // register write
		reg := value & 0x0F
		if reg <= 10 {
			if v.mode == ModeSMS4 {
				// Buffered, not immediate: spec.md §9 requires two
				// parallel banks with explicit end-of-line
				// propagation, since SMS games rely on the one-line
				// delay for split-screen scroll effects.
				v.regBuffer[reg] = uint8(v.addr & 0xFF)
			} else {
				v.Regs[reg] = uint8(v.addr & 0xFF)
			}
		}
	case 3: // CRAM write (SMS only): nothing happens until data write
	}
}

// DataWrite implements data-port writes, routed by the latched code.
func (v *VDP) DataWrite(value uint8) {
	v.latch = awaitingFirst
	switch v.code {
	case 0, 1, 2:
		v.VRAM[v.addr] = value
	case 3:
		if v.mode == ModeSMS4 {
			v.CRAM[v.addr&0x1F] = value
		}
	}
	v.addr = (v.addr + 1) & 0x3FFF
}

// DataRead implements data-port reads: returns the prefetched buffer,
// then prefetches the next byte and advances the address.
func (v *VDP) DataRead() uint8 {
	v.latch = awaitingFirst
	data := v.readBuffer
	v.readBuffer = v.VRAM[v.addr]
	v.addr = (v.addr + 1) & 0x3FFF
	return data
}

// StatusRead returns the status byte and atomically clears INT,
// overflow, collision and the sticky line-interrupt-pending flag.
func (v *VDP) StatusRead() uint8 {
	v.latch = awaitingFirst
	status := v.status
	v.status = 0
	v.lineIntPending = false
	return status
}

// VCounter returns the current 8-bit v-counter value.
func (v *VDP) VCounter() uint8 { return v.vCounter }

// Interrupt reports whether the VDP's interrupt line is asserted.
func (v *VDP) Interrupt() bool {
	frameInt := v.Regs[1]&R1FrameIntEnable != 0 && v.status&StatusINT != 0
	lineInt := v.Regs[0]&R0LineIntEnable != 0 && v.lineIntPending
	return frameInt || lineInt
}

// WriteRegister writes directly to register index n (0-10), used by
// machines that expose a register-write path outside the control
// port (none currently do, kept for symmetry/testing).
func (v *VDP) WriteRegister(n, value uint8) {
	if n <= 10 {
		v.Regs[n] = value
	}
}

// Frame returns the most recently completed frame as tightly packed
// RGB24 rows of FrameWidth x FrameHeight.
func (v *VDP) Frame() []uint8 { return *v.front }

// FrameReady reports (and clears) whether a new frame has completed
// since the last call.
func (v *VDP) FrameReady() bool {
	r := v.frameReady
	v.frameReady = false
	return r
}
