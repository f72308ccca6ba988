package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFallbackDir holds system-wide sheets installed alongside the tool.
// It is consulted after the user directory and can be overridden in the
// config file.
const DefaultFallbackDir = "/usr/local/share/cheat"

// Config holds the settings for one invocation.
type Config struct {
	Editor      string   `toml:"editor"`
	Colors      bool     `toml:"colors"`
	CheatPath   []string `toml:"cheatpath"`
	UserDir     string   `toml:"user_dir"`
	FallbackDir string   `toml:"fallback_dir"`
}

// Load reads configuration from the environment first and fills anything
// still unset from ~/.config/cheat/config.toml. Environment values always
// win over file values.
func Load() (*Config, error) {
	cfg := &Config{
		Editor:  os.Getenv("EDITOR"),
		UserDir: os.Getenv("DEFAULT_CHEAT_DIR"),
	}
	if path := os.Getenv("CHEATPATH"); path != "" {
		cfg.CheatPath = filepath.SplitList(path)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "cheat", "config.toml")
	if _, err := os.Stat(configPath); err == nil {
		var file Config
		if _, err := toml.DecodeFile(configPath, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if cfg.Editor == "" {
			cfg.Editor = expandEnv(file.Editor)
		}
		if len(cfg.CheatPath) == 0 {
			for _, dir := range file.CheatPath {
				cfg.CheatPath = append(cfg.CheatPath, expandEnv(dir))
			}
		}
		if cfg.UserDir == "" {
			cfg.UserDir = expandEnv(file.UserDir)
		}
		cfg.FallbackDir = expandEnv(file.FallbackDir)
		cfg.Colors = file.Colors
	}

	// CHEATCOLORS can only switch highlighting on; absence leaves the
	// config file value in place.
	if os.Getenv("CHEATCOLORS") != "" {
		cfg.Colors = true
	}
	if runtime.GOOS == "windows" {
		cfg.Colors = false
	}

	if cfg.UserDir == "" {
		cfg.UserDir = filepath.Join(home, ".cheat")
	}
	if cfg.FallbackDir == "" {
		cfg.FallbackDir = DefaultFallbackDir
	}

	return cfg, nil
}

func expandEnv(s string) string {
	if s == "" {
		return s
	}
	if strings.Contains(s, "$HOME") {
		home, _ := os.UserHomeDir()
		s = strings.ReplaceAll(s, "$HOME", home)
	}
	return os.ExpandEnv(s)
}
