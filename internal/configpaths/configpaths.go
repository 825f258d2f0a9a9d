// Package configpaths resolves where input-emulator reads configuration and
// keeps runtime state.
package configpaths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const appName = "input-emulator"

// DefaultConfigDir returns the per-user configuration directory. Root uses
// /etc/input-emulator.
func DefaultConfigDir() (string, error) {
	if os.Geteuid() == 0 {
		return filepath.Join(string(os.PathSeparator), "etc", appName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ConfigCandidatePaths returns the config files to try per format. When
// userCfg is set it is the only candidate, filed under the format its
// extension names (JSON when unknown).
func ConfigCandidatePaths(userCfg string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userCfg != "" {
		switch strings.ToLower(filepath.Ext(userCfg)) {
		case ".yaml", ".yml":
			return nil, []string{userCfg}, nil
		case ".toml":
			return nil, nil, []string{userCfg}
		default:
			return []string{userCfg}, nil, nil
		}
	}

	dirs := []string{"."}
	if dir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	for _, d := range dirs {
		base := filepath.Join(d, "config")
		if d == "." {
			base = appName
		}
		jsonPaths = append(jsonPaths, base+".json")
		yamlPaths = append(yamlPaths, base+".yaml", base+".yml")
		tomlPaths = append(tomlPaths, base+".toml")
	}
	return jsonPaths, yamlPaths, tomlPaths
}

// RuntimeDir returns the directory for runtime files such as the launch
// lock. It prefers $XDG_RUNTIME_DIR.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d", appName, os.Geteuid()))
}

// LockPath is the file used to serialize server launches.
func LockPath() string {
	return filepath.Join(RuntimeDir(), "server.lock")
}
