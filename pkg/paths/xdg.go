// Package paths provides XDG-compliant path resolution for llmcompare.
//
// Resolution order:
// 1. LLMCOMPARE_HOME (portable root) → $LLMCOMPARE_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/llmcompare
// 3. Platform defaults → ~/.config/llmcompare, ~/.local/state/llmcompare
package paths

import (
	"os"
	"path/filepath"
)

const appDirName = "llmcompare"

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if home := os.Getenv("LLMCOMPARE_HOME"); home != "" {
		return filepath.Join(home, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getStateHome returns the base state home directory.
func getStateHome() string {
	if home := os.Getenv("LLMCOMPARE_HOME"); home != "" {
		return filepath.Join(home, "state")
	}
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".local", "state")
	}
	return ""
}

// ConfigDir returns the llmcompare configuration directory.
// Used for the global config file and per-module style sheets.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	if os.Getenv("LLMCOMPARE_HOME") != "" {
		return base
	}
	return filepath.Join(base, appDirName)
}

// StateDir returns the llmcompare state directory.
// Used for logs.
func StateDir() string {
	base := getStateHome()
	if base == "" {
		return ""
	}
	if os.Getenv("LLMCOMPARE_HOME") != "" {
		return base
	}
	return filepath.Join(base, appDirName)
}

// LogDir returns the directory for default log files.
func LogDir() string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "logs")
}

// StylesDir returns the directory holding per-module style sheets.
func StylesDir() string {
	cfg := ConfigDir()
	if cfg == "" {
		return ""
	}
	return filepath.Join(cfg, "styles")
}
