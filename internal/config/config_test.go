package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseShortFlags(t *testing.T) {
	cfg, err := Parse([]string{"-b", "bios.sms", "-r", "game.sms"})
	require.NoError(t, err)
	require.Equal(t, "bios.sms", cfg.BIOSPath)
	require.Equal(t, "game.sms", cfg.ROMPath)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, "sms", cfg.System)
	require.Equal(t, "export", cfg.Region)
	require.False(t, cfg.PAL)
}

func TestParsePALFlag(t *testing.T) {
	cfg, err := Parse([]string{"--pal", "--system", "colecovision"})
	require.NoError(t, err)
	require.True(t, cfg.PAL)
	require.Equal(t, "colecovision", cfg.System)
}
