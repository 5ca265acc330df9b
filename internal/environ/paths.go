package environ

import (
	"fmt"
	"path"

	"github.com/drpriver/drsh/internal/ec"
	"github.com/drpriver/drsh/internal/platform"
)

// ConfigPath resolves the per-OS config file location:
//
//	APPLE:   $HOME/Library/Application Support/drsh/drsh_config.drsh
//	WINDOWS: %LOCALAPPDATA%\drsh\drsh_config.drsh
//	other:   ${XDG_CONFIG_HOME:-$HOME/.config}/drsh/drsh_config.drsh
func (e *Environment) ConfigPath() (string, error) {
	base, err := e.appBaseDir("XDG_CONFIG_HOME", "/.config")
	if err != nil {
		return "", err
	}
	return path.Join(base, "drsh", "drsh_config.drsh"), nil
}

// HistoryPath resolves the per-OS history file location, identical in
// structure to ConfigPath but rooted at the state/data directory
// instead of the config directory, and overridden outright by
// DRSH_HISTORY when that variable is already set.
func (e *Environment) HistoryPath() (string, error) {
	if h := e.GetString("DRSH_HISTORY"); h != nil {
		return h.Text, nil
	}
	base, err := e.appBaseDir("XDG_STATE_HOME", "")
	if err != nil {
		return "", err
	}
	if base == "" {
		base, err = e.appBaseDir("XDG_DATA_HOME", "/.local/state")
		if err != nil {
			return "", err
		}
	}
	p := path.Join(base, "drsh", "drsh_history.txt")
	e.SetString("DRSH_HISTORY", p)
	return p, nil
}

// appBaseDir implements the shared APPLE/WINDOWS/XDG branch used by
// both ConfigPath and the state half of HistoryPath. xdgVar is the
// environment variable consulted on the "other" family (e.g.
// XDG_CONFIG_HOME or XDG_STATE_HOME); xdgFallbackSuffix is appended to
// HOME when xdgVar is unset. An empty xdgFallbackSuffix with xdgVar
// also unset signals "no default for this variable", used by
// HistoryPath to detect that it should try XDG_DATA_HOME next before
// falling back to HOME.
func (e *Environment) appBaseDir(xdgVar, xdgFallbackSuffix string) (string, error) {
	switch e.Flavor {
	case platform.Apple:
		if e.home == nil || e.home.Len() == 0 {
			return "", fmt.Errorf("resolve app dir: %w", ec.NotFound)
		}
		return e.home.Text + "/Library/Application Support", nil
	case platform.Windows:
		local := e.GetString("LOCALAPPDATA")
		if local == nil || local.Len() == 0 {
			return "", fmt.Errorf("resolve app dir: %w", ec.NotFound)
		}
		return local.Text, nil
	default:
		if v := e.GetString(xdgVar); v != nil && v.Len() > 0 {
			return v.Text, nil
		}
		if xdgFallbackSuffix == "" {
			return "", nil
		}
		if e.home == nil || e.home.Len() == 0 {
			return "", fmt.Errorf("resolve app dir: %w", ec.NotFound)
		}
		return e.home.Text + xdgFallbackSuffix, nil
	}
}

// ResolveShellPath sets the SHELL environment variable to the
// absolute path of the running executable, matching
// drsh_env_set_shell_path.
func (e *Environment) ResolveShellPath(exePath string) {
	e.SetString("SHELL", exePath)
}
