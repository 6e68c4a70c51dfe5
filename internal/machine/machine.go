// Package machine wires a Z80 CPU, a VDP, a PSG, a Bus and a gamepad
// snapshot into one of the three supported consoles and drives the
// scanline run-loop described in spec.md §4.5.
package machine

import (
	"github.com/pkg/errors"

	"github.com/sg8bit/core/internal/bus"
	"github.com/sg8bit/core/internal/gamepad"
	"github.com/sg8bit/core/internal/mapper"
	"github.com/sg8bit/core/internal/psg"
	"github.com/sg8bit/core/internal/romutil"
	"github.com/sg8bit/core/internal/vdp"
	"github.com/sg8bit/core/internal/z80"
	"github.com/sg8bit/core/pkg/log"
)

// VideoSystem selects the console's field rate / timing table.
type VideoSystem uint8

const (
	VideoNTSC VideoSystem = iota
	VideoPAL
)

// clock rates in Hz, grounded on sms.h (shared across the Z80-based
// Sega/Coleco consoles in original_source/).
const (
	clockRateNTSC = 3579545
	clockRatePAL  = 3546895

	cyclesPerLine = 228
	lineDivisor   = cyclesPerLine * 1000 // millicycles per line
)

// Kind names which console a Machine emulates.
type Kind uint8

const (
	KindSG1000 Kind = iota
	KindSMS
	KindColecoVision
)

// Machine is the aggregate root: it owns every component and exposes
// the run-loop, sync and interrupt-line contract spec.md §4.5
// describes.
type Machine struct {
	Kind   Kind
	System VideoSystem

	CPU     *z80.CPU
	VDP     *vdp.VDP
	PSG     *psg.PSG
	Bus     *bus.Bus
	Gamepad *gamepad.Snapshot
	Mapper  *mapper.Mapper

	Log log.Logger

	rom      []byte
	sramPath string
	sramSave func(path string, data []byte) error

	millicycles uint64

	running bool

	nmiEdgeHigh bool // previous level of the NMI source (Start button, or the VDP interrupt on ColecoVision) for edge detection

	outputCounter uint64
}

// Config supplies the inputs needed to bring a Machine up: ROM and
// optional BIOS bytes plus where to persist cartridge SRAM.
type Config struct {
	Kind     Kind
	System   VideoSystem
	ROM      []byte
	BIOS     []byte
	Region   bus.Region
	SRAMSave func(path string, data []byte) error
}

// New constructs and resets a Machine. Returns an error (spec.md §7's
// "configuration error" category) if the ROM cannot be read.
func New(cfg Config, logger log.Logger) (*Machine, error) {
	if len(cfg.ROM) == 0 {
		return nil, errors.New("machine: empty ROM image")
	}
	if logger == nil {
		logger = log.Null()
	}

	rom := romutil.StripHeader(cfg.ROM)
	padded, mask := romutil.PadToPowerOfTwo(rom)

	m := mapper.New(mapper.VariantNone, padded, mask)
	switch cfg.Kind {
	case KindSG1000:
		// SG-1000 cartridges are always the Sega 3-slot scheme
		// (spec.md §4.4), never auto-detected.
		m.Variant = mapper.VariantSega
	case KindSMS:
		m.AutoDetect = true
	}

	var system bus.System
	switch cfg.Kind {
	case KindSG1000:
		system = bus.SystemSG1000
	case KindSMS:
		system = bus.SystemSMS
	default:
		system = bus.SystemColecoVision
	}

	var vconfig vdp.VConfig
	var mode vdp.Mode
	switch cfg.Kind {
	case KindSMS:
		mode = vdp.ModeSMS4
		vconfig = vdpConfigFor(cfg.System, 192)
	default:
		mode = vdp.ModeTMS0
		vconfig = vdp.TMSNTSC
		if cfg.System == VideoPAL {
			vconfig = vdp.TMSPAL
		}
	}

	v := vdp.New(mode, vconfig)
	p := psg.New()
	gp := &gamepad.Snapshot{}

	b := bus.New(system, m, v, p, gp, logger)
	b.BIOS = cfg.BIOS
	b.Region = cfg.Region

	mac := &Machine{
		Kind:     cfg.Kind,
		System:   cfg.System,
		VDP:      v,
		PSG:      p,
		Bus:      b,
		Gamepad:  gp,
		Mapper:   m,
		Log:      logger,
		rom:      padded,
		sramPath: romutil.SRAMFileName(padded),
		sramSave: cfg.SRAMSave,
	}
	mac.CPU = z80.NewCPU(b, mac)
	mac.CPU.Reset()
	mac.running = true
	return mac, nil
}

func vdpConfigFor(system VideoSystem, lines int) vdp.VConfig {
	switch {
	case system == VideoPAL && lines == 192:
		return vdp.Mode4PAL192
	case system == VideoPAL && lines == 224:
		return vdp.Mode4PAL224
	case system == VideoPAL && lines == 240:
		return vdp.Mode4PAL240
	case lines == 224:
		return vdp.Mode4NTSC224
	case lines == 240:
		return vdp.Mode4NTSC240
	default:
		return vdp.Mode4NTSC192
	}
}

// ClockRate returns the console's nominal Z80 clock in Hz.
func (m *Machine) ClockRate() uint64 {
	if m.System == VideoPAL {
		return clockRatePAL
	}
	return clockRateNTSC
}

// Run advances the machine by ms milliseconds of wall-clock time,
// discretised into whole scanlines (spec.md §4.5). An undefined Z80
// opcode stops the machine: the error is logged and Running reports
// false from then on.
func (m *Machine) Run(ms uint64) {
	if !m.running {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			opErr, ok := r.(*z80.OpcodeError)
			if !ok {
				panic(r)
			}
			m.Log.Errorf("halting: %s", opErr)
			m.running = false
		}
	}()
	m.millicycles += ms * m.ClockRate()
	lines := m.millicycles / lineDivisor
	m.millicycles -= lines * lineDivisor

	for i := uint64(0); i < lines; i++ {
		m.CPU.RunCycles(cyclesPerLine)
		m.PSG.RunCycles(cyclesPerLine)
		m.VDP.RunOneScanline()
	}
}

// Sync flushes cartridge SRAM to durable storage if a save handler is
// configured and the cartridge has enabled its SRAM (spec.md §4.5, §5).
func (m *Machine) Sync() error {
	if m.sramSave == nil || !m.Mapper.SRAMEnable {
		return nil
	}
	if err := m.sramSave(m.sramPath, m.Mapper.SRAM); err != nil {
		return errors.Wrap(err, "machine: sync SRAM")
	}
	return nil
}

// AudioCallback fills stream with resampled PSG output at outputRate.
func (m *Machine) AudioCallback(stream []int16, outputRate uint64) {
	if !m.running {
		for i := range stream {
			stream[i] = 0
		}
		return
	}
	m.PSG.GetSamples(stream, outputRate, m.ClockRate(), &m.outputCounter)
}

// Abort stops the run-loop from accepting further Run calls until the
// Machine is recreated.
func (m *Machine) Abort() { m.running = false }

// Running reports whether the machine will still process Run calls.
func (m *Machine) Running() bool { return m.running }
