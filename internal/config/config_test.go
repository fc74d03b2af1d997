package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holtburger.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
server = "play.example.net"
port = 9000
account = "player1"
password = "hunter2"
character = "Aluien"
timeout = 45
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "play.example.net", cfg.Server)
	require.Equal(t, uint16(9000), cfg.Port)
	require.Equal(t, 45, cfg.TimeoutSeconds)
}

func TestLoadRejectsCaptureAndReplayTogether(t *testing.T) {
	path := writeConfig(t, `
server = "play.example.net"
account = "player1"
password = "hunter2"
capture = "out.cap"
replay = "in.cap"
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadDefaultsTimeout(t *testing.T) {
	path := writeConfig(t, `
server = "play.example.net"
account = "player1"
password = "hunter2"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 30, cfg.TimeoutSeconds)
}
