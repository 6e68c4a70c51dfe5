// Package bus implements the per-system address and I/O port decoding
// described for SG-1000, SMS and ColecoVision, routing CPU accesses to
// cartridge/mapper, work RAM, BIOS, the VDP and the PSG.
package bus

import (
	"github.com/sg8bit/core/internal/gamepad"
	"github.com/sg8bit/core/internal/mapper"
	"github.com/sg8bit/core/internal/psg"
	"github.com/sg8bit/core/internal/vdp"
	"github.com/sg8bit/core/pkg/log"
)

// System selects which machine's address/IO decoding a Bus applies.
type System uint8

const (
	SystemSG1000 System = iota
	SystemSMS
	SystemColecoVision
)

// Memory-control register bits (SMS only).
const (
	memCtrlIODisable   = 1 << 2
	memCtrlBIOSDisable = 1 << 3
	memCtrlCartDisable = 1 << 6
)

// I/O-control register bits (SMS only): direction (0=output,1=input)
// and level for the TR/TH pins of both controller ports.
const (
	ioCtrlTRADirection = 1 << 0
	ioCtrlTHADirection = 1 << 1
	ioCtrlTRBDirection = 1 << 2
	ioCtrlTHBDirection = 1 << 3
	ioCtrlTRALevel     = 1 << 4
	ioCtrlTHALevel     = 1 << 5
	ioCtrlTRBLevel     = 1 << 6
	ioCtrlTHBLevel     = 1 << 7
)

// colecoInputMode tracks which I/O decoding the ColecoVision's shared
// controller ports are currently in.
type colecoInputMode uint8

const (
	colecoModeJoystick colecoInputMode = iota
	colecoModeKeypad
)

// Bus is the shared address/IO decoder for all three machines. Only
// the fields relevant to System are consulted; unused fields sit idle
// rather than being split into three structs, mirroring how the
// source keeps one translation unit per machine with a handful of
// machine-specific statics.
type Bus struct {
	System System
	Log    log.Logger

	BIOS   []byte
	Mapper *mapper.Mapper
	RAM    []byte

	VDP *vdp.VDP
	PSG *psg.PSG

	Gamepad *gamepad.Snapshot

	// Region distinguishes SMS console revisions for TH-pin loopback
	// behaviour; meaningless outside SMS.
	Region Region

	// SMS-only console registers.
	memoryControl uint8
	ioControl     uint8
	exportPaddle  bool

	// ColecoVision-only input mode latch.
	colecoMode colecoInputMode

	// SDSC debug console output sink (stdout normally, swappable for
	// tests).
	DebugConsole func(b byte)
}

// Region distinguishes SMS console revisions for TH-pin loopback
// behaviour (spec.md §4.4).
type Region uint8

const (
	RegionExport Region = iota
	RegionJapan
)

// New constructs a Bus for the given system with freshly zeroed work
// RAM sized per spec.md §4.4 (1 KiB for SG-1000/ColecoVision, 8 KiB
// for SMS).
func New(system System, m *mapper.Mapper, v *vdp.VDP, p *psg.PSG, gp *gamepad.Snapshot, logger log.Logger) *Bus {
	ramSize := 1024
	if system == SystemSMS {
		ramSize = 8 * 1024
	}
	return &Bus{
		System:       system,
		Log:          logger,
		Mapper:       m,
		RAM:          make([]byte, ramSize),
		VDP:          v,
		PSG:          p,
		Gamepad:      gp,
		DebugConsole: defaultDebugConsole,
	}
}

// ReadMemory satisfies z80.Bus.
func (b *Bus) ReadMemory(addr uint16) uint8 {
	switch b.System {
	case SystemSG1000:
		return b.sg1000ReadMemory(addr)
	case SystemSMS:
		return b.smsReadMemory(addr)
	default:
		return b.colecoReadMemory(addr)
	}
}

// WriteMemory satisfies z80.Bus.
func (b *Bus) WriteMemory(addr uint16, value uint8) {
	switch b.System {
	case SystemSG1000:
		b.sg1000WriteMemory(addr, value)
	case SystemSMS:
		b.smsWriteMemory(addr, value)
	default:
		b.colecoWriteMemory(addr, value)
	}
}

// ReadIO satisfies z80.Bus.
func (b *Bus) ReadIO(port uint8) uint8 {
	switch b.System {
	case SystemSG1000:
		return b.sg1000ReadIO(port)
	case SystemSMS:
		return b.smsReadIO(port)
	default:
		return b.colecoReadIO(port)
	}
}

// WriteIO satisfies z80.Bus.
func (b *Bus) WriteIO(port uint8, value uint8) {
	switch b.System {
	case SystemSG1000:
		b.sg1000WriteIO(port, value)
	case SystemSMS:
		b.smsWriteIO(port, value)
	default:
		b.colecoWriteIO(port, value)
	}
}

func defaultDebugConsole(b byte) {
	// Deliberately no-op by default; cmd/sg8bit's main wires this to
	// stdout before starting the run-loop (sms.c's SDSC console writes
	// straight to stdout too).
}
