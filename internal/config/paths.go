package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetConfigDir returns the directory holding settings.json.
func GetConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(appData, "btext")
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "btext")
	case "linux":
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, _ := os.UserHomeDir()
			configHome = filepath.Join(home, ".config")
		}
		return filepath.Join(configHome, "btext")
	default:
		configDir, _ := os.UserConfigDir()
		return filepath.Join(configDir, "btext")
	}
}

// GetDataDir returns the directory for persistent state: the non-compliant
// peer ledger and any metadata scratch cache.
// [TODO]: respect XDG_DATA_HOME on linux instead of nesting under config.
func GetDataDir() string {
	return filepath.Join(GetConfigDir(), "data")
}

// GetLogsDir returns the logs directory under the config directory. The
// logging package does not use it: with LoggingSettings.LogPath left empty
// it writes to stderr.
func GetLogsDir() string {
	return filepath.Join(GetConfigDir(), "logs")
}

// EnsureDirs creates every directory this package hands out.
func EnsureDirs() error {
	dirs := []string{GetConfigDir(), GetDataDir(), GetLogsDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
