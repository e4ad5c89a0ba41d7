package appdirs

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/adrg/xdg"
)

func TestConfigDirFollowsXDGConfigHome(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only drives the config dir on linux")
	}
	base := t.TempDir()
	t.Setenv("POWERMENU_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", base)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	if got := ConfigDir(); got != filepath.Join(base, AppName) {
		t.Fatalf("unexpected config dir: %q", got)
	}
}

func TestConfigDirEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POWERMENU_CONFIG_DIR", dir)

	if got := ConfigDir(); got != dir {
		t.Fatalf("expected override %q, got %q", dir, got)
	}
	if got := ConfigFilePath(""); got != filepath.Join(dir, "powermenu.toml") {
		t.Fatalf("unexpected config file path: %q", got)
	}
}

func TestEnsureConfigDirUsesPrivatePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not portable on windows")
	}

	dir := filepath.Join(t.TempDir(), AppName)
	got, err := EnsureConfigDir(dir)
	if err != nil {
		t.Fatalf("EnsureConfigDir failed: %v", err)
	}

	info, err := os.Stat(got)
	if err != nil {
		t.Fatalf("stat config dir failed: %v", err)
	}
	if perms := info.Mode().Perm(); perms&0o077 != 0 {
		t.Fatalf("expected private config dir permissions, got %o", perms)
	}
}
