package machine

import "github.com/sg8bit/core/internal/gamepad"

// This file implements z80.InterruptLines for Machine, wiring each
// console's INT/NMI sources per spec.md §6's interrupt table.

// INT reports the maskable interrupt line sampled by the CPU between
// instructions.
func (m *Machine) INT() bool {
	switch m.Kind {
	case KindSG1000, KindSMS:
		return m.VDP.Interrupt()
	default:
		return false // ColecoVision: maskable INT unused
	}
}

// NMI reports the non-maskable interrupt line.
func (m *Machine) NMI() bool {
	switch m.Kind {
	case KindColecoVision:
		return m.colecoVDPEdge()
	default:
		return m.startButtonEdge()
	}
}

// colecoVDPEdge latches the ColecoVision's VDP-frame-interrupt-to-NMI
// wiring on the rising edge only. The VDP status bit that drives
// Interrupt() stays set until the handler reads the status port, and
// that read can only happen once the handler's instructions actually
// execute; without an edge latch here the CPU would re-sample NMI()
// as asserted before every single instruction of the handler and
// never reach that read at all.
func (m *Machine) colecoVDPEdge() bool {
	level := m.VDP.Interrupt()
	fire := level && !m.nmiEdgeHigh
	m.nmiEdgeHigh = level
	return fire
}

// startButtonEdge implements the SG-1000/SMS "Start raises NMI" wiring.
// Both are modelled as edge-triggered here: the CPU only sees NMI on
// the transition from released to held, matching sg-1000.c's explicit
// edge-detector (the SMS pause button is wired the same way on real
// hardware despite spec.md calling it "level").
func (m *Machine) startButtonEdge() bool {
	held := m.Gamepad.Pad1.Held(gamepad.ButtonStart)
	fire := held && !m.nmiEdgeHigh
	m.nmiEdgeHigh = held
	return fire
}

// INTData supplies the interrupt-acknowledge data bus byte. None of
// the three consoles have a device driving this in IM 0/IM 2 mode, so
// the floating bus value 0xFF is returned, matching an unconnected
// data bus during INTACK.
func (m *Machine) INTData() uint8 { return 0xFF }

// ClearNMI acknowledges NMI. The edge detector in startButtonEdge
// already consumes the single-shot transition, and the ColecoVision's
// NMI source clears itself when the VDP status port is read, so there
// is nothing further to do here.
func (m *Machine) ClearNMI() {}
