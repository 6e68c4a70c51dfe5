package vdp

// RunOneScanline advances the VDP by exactly one scanline, per the
// seven-step algorithm of spec.md §4.2. It is the unit of advancement
// driven by the machine's run-loop once per CPU scanline budget.
func (v *VDP) RunOneScanline() {
	if v.rawLine < v.config.LinesActive {
		v.renderLine(v.rawLine)
	}
	if v.rawLine == v.config.LinesActive-1 {
		v.swapFrames()
	}

	v.rawLine = (v.rawLine + 1) % v.config.LinesTotal
	v.vCounter = vCounterFor(v.rawLine, v.config)

	// SMS Mode 4 defers register writes made mid-line: propagate the
	// buffered bank into the live register file at end-of-line, not
	// the instant the control port write happens (spec.md §9).
	v.propagateRegisterBuffer()

	if v.rawLine == v.config.LinesActive+1 {
		v.status |= StatusINT
	}

	if v.rawLine <= v.config.LinesActive {
		if v.lineIntCounter == 0 {
			v.lineIntCounter = v.Regs[10]
			v.lineIntPending = true
		} else {
			v.lineIntCounter--
		}
	} else {
		v.lineIntCounter = v.Regs[10]
	}
}

func (v *VDP) swapFrames() {
	v.front, v.back = v.back, v.front
	v.frameReady = true
}

// propagateRegisterBuffer copies any buffered register write into the
// live register bank. Only SMS Mode 4 buffers writes, so legacy modes
// return without copying and keep the registers ControlWrite set.
func (v *VDP) propagateRegisterBuffer() {
	if v.mode != ModeSMS4 {
		return
	}
	copy(v.Regs[:], v.regBuffer[:])
}

// BufferedRegisterWrite is used by machines that model SMS mid-line
// register writes landing in the buffer rather than the live bank.
// In Mode 4, ControlWrite already writes into this buffer; this method
// writes into it directly, and the next RunOneScanline call propagates
// it (legacy modes never propagate the buffer).
func (v *VDP) BufferedRegisterWrite(n, value uint8) {
	if n <= 10 {
		v.regBuffer[n] = value
	}
}

func (v *VDP) renderLine(line int) {
	switch v.mode {
	case ModeSMS4:
		v.renderMode4Line(line)
	default:
		v.renderLegacyLine(line)
	}
}
