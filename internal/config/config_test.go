package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "wlan0", cfg.Interface)
	assert.Equal(t, "/var/run/wpa_supplicant", cfg.CtrlDir)
	assert.Equal(t, 10240, cfg.Reply.BufBytes)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "interface: wlp3s0\n" +
		"ctrl_dir: /run/wpa_supplicant\n" +
		"reply:\n" +
		"  buf_bytes: 4096\n" +
		"  timeout_ms: 2000\n" +
		"history:\n" +
		"  enabled: true\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "wlp3s0", cfg.Interface)
	assert.Equal(t, "/run/wpa_supplicant/wlp3s0", cfg.CtrlPath())
	assert.Equal(t, 4096, cfg.Reply.BufBytes)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout())
	assert.True(t, cfg.History.Enabled)
}

func TestLoadSparseFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interface: wlan1\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "wlan1", cfg.Interface)
	assert.Equal(t, 10240, cfg.Reply.BufBytes)
	assert.Equal(t, 10000, cfg.Reply.TimeoutMs)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interface: [\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WPACTL_INTERFACE", "wlx0")
	t.Setenv("WPACTL_CTRL_DIR", "/tmp/ctrl")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ctrl/wlx0", cfg.CtrlPath())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.Interface = "wlan9"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "wlan9", loaded.Interface)
}
