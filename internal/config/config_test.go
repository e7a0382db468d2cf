package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PROCTOP_PROC_DIR", "PROCTOP_OS_RELEASE", "PROCTOP_PASSWD", "PROCTOP_LOG_LEVEL",
		"PROCTOP_LOG_FILE", "PROCTOP_LISTEN_ADDR", "PROCTOP_REFRESH_INTERVAL", "PROCTOP_MAX_PROCESSES",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proctop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/proc", cfg.ProcDir)
	assert.Equal(t, "/etc/os-release", cfg.OSRelease)
	assert.Equal(t, "/etc/passwd", cfg.Passwd)
	assert.Equal(t, time.Second, cfg.RefreshInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":9100", cfg.ListenAddr)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
proc_dir: /host/proc
refresh_interval: 2s
max_processes: 50
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/host/proc", cfg.ProcDir)
	assert.Equal(t, 2*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 50, cfg.MaxProcesses)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/etc/passwd", cfg.Passwd, "unset keys keep defaults")

	t.Setenv("PROCTOP_PROC_DIR", "/env/proc")
	t.Setenv("PROCTOP_REFRESH_INTERVAL", "500ms")
	t.Setenv("PROCTOP_MAX_PROCESSES", "5")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/env/proc", cfg.ProcDir)
	assert.Equal(t, 500*time.Millisecond, cfg.RefreshInterval)
	assert.Equal(t, 5, cfg.MaxProcesses)

	paths := cfg.Paths()
	assert.Equal(t, "/env/proc", paths.ProcDir)
	assert.Equal(t, "/etc/os-release", paths.OSRelease)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, err = Load(writeConfig(t, "proc_dir: [unterminated"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeConfig(t, "refresh_interval: -1s"))
	assert.ErrorContains(t, err, "refresh_interval")

	_, err = Load(writeConfig(t, "max_processes: -2"))
	assert.ErrorContains(t, err, "max_processes")

	t.Setenv("PROCTOP_REFRESH_INTERVAL", "soon")
	_, err = Load("")
	assert.ErrorContains(t, err, "PROCTOP_REFRESH_INTERVAL")
}
