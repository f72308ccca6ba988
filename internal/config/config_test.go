package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"EDITOR", "CHEATPATH", "DEFAULT_CHEAT_DIR", "CHEATCOLORS"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EDITOR", "nvim -f")
	t.Setenv("DEFAULT_CHEAT_DIR", "/tmp/mycheats")
	t.Setenv("CHEATPATH", strings.Join([]string{"/tmp/a", "/tmp/b"}, string(os.PathListSeparator)))
	t.Setenv("CHEATCOLORS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Editor != "nvim -f" {
		t.Errorf("Editor = %q, want %q", cfg.Editor, "nvim -f")
	}
	if cfg.UserDir != "/tmp/mycheats" {
		t.Errorf("UserDir = %q, want /tmp/mycheats", cfg.UserDir)
	}
	if len(cfg.CheatPath) != 2 || cfg.CheatPath[0] != "/tmp/a" || cfg.CheatPath[1] != "/tmp/b" {
		t.Errorf("CheatPath = %v, want [/tmp/a /tmp/b]", cfg.CheatPath)
	}
	if !cfg.Colors {
		t.Error("Colors = false, want true")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if want := filepath.Join(home, ".cheat"); cfg.UserDir != want {
		t.Errorf("UserDir = %q, want %q", cfg.UserDir, want)
	}
	if cfg.FallbackDir != DefaultFallbackDir {
		t.Errorf("FallbackDir = %q, want %q", cfg.FallbackDir, DefaultFallbackDir)
	}
	if cfg.Colors {
		t.Error("Colors = true, want false")
	}
}

func TestLoadFromConfigFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "cheat")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `editor = "emacs -nw"
colors = true
cheatpath = ["$HOME/work/cheats"]
user_dir = "$HOME/sheets"
`
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Editor != "emacs -nw" {
		t.Errorf("Editor = %q, want %q", cfg.Editor, "emacs -nw")
	}
	if !cfg.Colors {
		t.Error("Colors = false, want true")
	}
	if want := filepath.Join(home, "work", "cheats"); len(cfg.CheatPath) != 1 || cfg.CheatPath[0] != want {
		t.Errorf("CheatPath = %v, want [%s]", cfg.CheatPath, want)
	}
	if want := filepath.Join(home, "sheets"); cfg.UserDir != want {
		t.Errorf("UserDir = %q, want %q", cfg.UserDir, want)
	}
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("EDITOR", "vi")

	configDir := filepath.Join(home, ".config", "cheat")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`editor = "emacs"`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Editor != "vi" {
		t.Errorf("Editor = %q, want %q", cfg.Editor, "vi")
	}
}

func TestLoadRejectsBadConfigFile(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "cheat")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("editor = ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded on malformed config, want error")
	}
}
