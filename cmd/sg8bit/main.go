// Command sg8bit is the minimal CLI entry point spec.md §6 describes:
// load a BIOS and a ROM and drive the machine's run-loop headlessly.
// Display and audio output are host-layer concerns left to embedders
// of the core packages.
package main

import (
	"os"
	"time"

	"github.com/sg8bit/core/internal/bus"
	"github.com/sg8bit/core/internal/config"
	"github.com/sg8bit/core/internal/machine"
	"github.com/sg8bit/core/pkg/log"
)

func main() {
	logger := log.New("sg8bit")

	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		logger.Errorf("parsing flags: %s", err)
		os.Exit(1)
	}

	if cfg.ROMPath == "" {
		logger.Errorf("no ROM specified, pass -r <rom>")
		os.Exit(1)
	}

	rom, err := os.ReadFile(cfg.ROMPath)
	if err != nil {
		logger.Errorf("reading ROM %s: %s", cfg.ROMPath, err)
		os.Exit(1)
	}

	var bios []byte
	if cfg.BIOSPath != "" {
		bios, err = os.ReadFile(cfg.BIOSPath)
		if err != nil {
			logger.Errorf("reading BIOS %s: %s", cfg.BIOSPath, err)
			os.Exit(1)
		}
	}

	kind := machine.KindSMS
	switch cfg.System {
	case "sg1000":
		kind = machine.KindSG1000
	case "colecovision":
		kind = machine.KindColecoVision
	}

	region := bus.RegionExport
	if cfg.Region == "japan" {
		region = bus.RegionJapan
	}

	system := machine.VideoNTSC
	if cfg.PAL {
		system = machine.VideoPAL
	}

	m, err := machine.New(machine.Config{
		Kind:     kind,
		System:   system,
		ROM:      rom,
		BIOS:     bios,
		Region:   region,
		SRAMSave: saveSRAM,
	}, logger)
	if err != nil {
		logger.Errorf("initialising machine: %s", err)
		os.Exit(1)
	}

	m.Bus.DebugConsole = func(c byte) {
		os.Stdout.Write([]byte{c})
	}

	logger.Infof("running at %d Hz", m.ClockRate())

	const frameMillis = 1000 / 60
	ticker := time.NewTicker(frameMillis * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		if !m.Running() {
			break
		}
		m.Run(frameMillis)
	}

	if err := m.Sync(); err != nil {
		logger.Errorf("syncing SRAM: %s", err)
	}
}

func saveSRAM(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
