// Package config parses the minimal CLI surface spec.md §6 calls for:
// a BIOS path and a ROM path, plus the system, region and PAL/NTSC
// selection. Everything else (display, audio device
// selection, key bindings) belongs to the out-of-scope host layer.
package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the resolved set of flag/environment values
// for one run of the core.
type Config struct {
	BIOSPath string
	ROMPath  string
	System   string // "sg1000", "sms" or "colecovision"
	Region   string // "export" or "japan"
	PAL      bool
}

// Parse reads CLI flags (falling back to environment variables
// prefixed SG8BIT_ via viper) into a Config. No config file is read.
func Parse(args []string) (Config, error) {
	fs := pflag.NewFlagSet("sg8bit", pflag.ContinueOnError)
	fs.StringP("bios", "b", "", "path to a BIOS image")
	fs.StringP("rom", "r", "", "path to a cartridge ROM image")
	fs.String("system", "sms", "system to emulate: sg1000, sms or colecovision")
	fs.String("region", "export", "console region: export or japan")
	fs.Bool("pal", false, "use PAL timing instead of NTSC")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("sg8bit")
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}

	return Config{
		BIOSPath: v.GetString("bios"),
		ROMPath:  v.GetString("rom"),
		System:   v.GetString("system"),
		Region:   v.GetString("region"),
		PAL:      v.GetBool("pal"),
	}, nil
}
