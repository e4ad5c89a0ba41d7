package appdirs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const AppName = "powermenu"

const ConfigFileName = "powermenu.toml"

// ConfigDir is the directory holding powermenu.toml. POWERMENU_CONFIG_DIR wins
// over the platform default.
func ConfigDir() string {
	if dir := os.Getenv("POWERMENU_CONFIG_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

func ConfigFilePath(dir string) string {
	if dir == "" {
		dir = ConfigDir()
	}
	return filepath.Join(dir, ConfigFileName)
}

func EnsureConfigDir(dir string) (string, error) {
	if dir == "" {
		dir = ConfigDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("could not create config dir: %w", err)
	}
	if err := os.Chmod(dir, 0o700); err != nil {
		return "", fmt.Errorf("could not secure config dir permissions: %w", err)
	}
	return dir, nil
}
