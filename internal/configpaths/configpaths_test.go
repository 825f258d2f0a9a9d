package configpaths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigCandidatePaths(t *testing.T) {
	tests := []struct {
		name     string
		userCfg  string
		wantJSON []string
		wantYAML []string
		wantTOML []string
	}{
		{name: "json", userCfg: "/tmp/c.json", wantJSON: []string{"/tmp/c.json"}},
		{name: "yaml", userCfg: "/tmp/c.yaml", wantYAML: []string{"/tmp/c.yaml"}},
		{name: "yml", userCfg: "/tmp/c.YML", wantYAML: []string{"/tmp/c.YML"}},
		{name: "toml", userCfg: "/tmp/c.toml", wantTOML: []string{"/tmp/c.toml"}},
		{name: "unknown extension", userCfg: "/tmp/c.conf", wantJSON: []string{"/tmp/c.conf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j, y, tm := ConfigCandidatePaths(tt.userCfg)
			assert.Equal(t, tt.wantJSON, j)
			assert.Equal(t, tt.wantYAML, y)
			assert.Equal(t, tt.wantTOML, tm)
		})
	}
}

func TestConfigCandidatePathsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	j, y, tm := ConfigCandidatePaths("")
	assert.Equal(t, "input-emulator.json", j[0])
	assert.Equal(t, []string{"input-emulator.yaml", "input-emulator.yml"}, y[:2])
	assert.Equal(t, "input-emulator.toml", tm[0])
	assert.Len(t, j, 2)
}

func TestRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	assert.Equal(t, "/run/user/1000/input-emulator", RuntimeDir())
	assert.Equal(t, filepath.Join("/run/user/1000/input-emulator", "server.lock"), LockPath())

	t.Setenv("XDG_RUNTIME_DIR", "")
	assert.Contains(t, RuntimeDir(), "input-emulator-")
}
