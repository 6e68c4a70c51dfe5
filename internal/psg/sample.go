package psg

// RunCycles advances the PSG by the given number of CPU clock cycles,
// emitting one sample every 16 cycles (spec.md §4.3 "Sample
// generation"). Safe for concurrent use by the emulation thread and
// the audio-callback thread (spec.md §5).
func (p *PSG) RunCycles(cycles uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.runCyclesLocked(cycles)
}

func (p *PSG) runCyclesLocked(cycles uint64) {
	total := cycles + uint64(p.excess)
	n := total >> 4
	p.excess = uint32(total - (n << 4))

	// Keep the ring from growing unbounded if nothing is draining it:
	// cap how far writeIndex may run ahead of readIndex.
	inFlight := p.writeIndex - p.readIndex
	if inFlight+n > RingSize {
		if n > RingSize-inFlight {
			n = RingSize - inFlight
		}
	}

	for i := uint64(0); i < n; i++ {
		p.tick()
	}

	p.utilisation *= 0.9995
	p.utilisation += 0.0005 * float64(p.writeIndex-p.readIndex) / float64(RingSize)
}

// tick emits exactly one PSG-rate sample.
func (p *PSG) tick() {
	if p.counter0 > 0 {
		p.counter0--
	}
	if p.counter1 > 0 {
		p.counter1--
	}
	if p.counter2 > 0 {
		p.counter2--
	}
	if p.counter3 > 0 {
		p.counter3--
	}

	if p.counter0 == 0 {
		p.counter0 = p.tone0
		p.output0 *= -1
	}
	if p.counter1 == 0 {
		p.counter1 = p.tone1
		p.output1 *= -1
	}
	if p.counter2 == 0 {
		p.counter2 = p.tone2
		p.output2 *= -1
	}

	// A tone value of 0 forces a constant +1 output (spec.md §4.3 rule 2).
	if p.tone0 == 0 {
		p.output0 = 1
	}
	if p.tone1 == 0 {
		p.output1 = 1
	}
	if p.tone2 == 0 {
		p.output2 = 1
	}

	if p.counter3 == 0 {
		switch p.noise & 0x03 {
		case 0x00:
			p.counter3 = 0x10
		case 0x01:
			p.counter3 = 0x20
		case 0x02:
			p.counter3 = 0x40
		default:
			p.counter3 = p.tone2
		}
		p.output3 *= -1

		if p.output3 == 1 {
			p.outputLFSR = int8(p.lfsr & 1)
			var newBit uint16
			if p.noise&0x04 != 0 {
				// White noise: tap bits 0 and 3.
				newBit = (p.lfsr & 1) ^ ((p.lfsr >> 3) & 1)
			} else {
				// Periodic noise: tap bit 0 only.
				newBit = p.lfsr & 1
			}
			p.lfsr = (p.lfsr >> 1) | (newBit << 15)
		}
	}

	sample := int32(p.output0)*int32(15-p.vol0)*BaseVolume +
		int32(p.output1)*int32(15-p.vol1)*BaseVolume +
		int32(p.output2)*int32(15-p.vol2)*BaseVolume +
		int32(p.outputLFSR)*int32(15-p.vol3)*BaseVolume

	p.ring[p.writeIndex%RingSize] = int16(sample)
	p.writeIndex++
}

// GetSamples fills stream with count samples resampled from the PSG
// rate (cpuClock/16) to outputRate, lazily topping up the ring when
// the consumer has outrun production (spec.md §4.3 "Resampling to
// host rate" / §7 "Audio ring exhaustion").
func (p *PSG) GetSamples(stream []int16, outputRate uint64, cpuClock uint64, outputCounter *uint64) {
	psgRate := cpuClock >> 4
	for i := range stream {
		p.mu.Lock()
		readIdx := (*outputCounter * psgRate) / outputRate
		for readIdx >= p.writeIndex {
			p.runCyclesLocked(16) // generate samples until readIdx is written
		}
		stream[i] = p.ring[readIdx%RingSize]
		p.readIndex = readIdx
		p.mu.Unlock()
		*outputCounter++
	}
}

// Utilisation reports the rolling average ring occupancy, exposed for
// diagnostics/tests.
func (p *PSG) Utilisation() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.utilisation
}
