package sheets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cheat/internal/config"

	"github.com/charmbracelet/log"
)

// ErrNoDirectories is returned when the resolved search path contains no
// usable cheat directory at all.
var ErrNoDirectories = errors.New("no cheat directories found: set CHEATPATH or create ~/.cheat")

// NotFoundError reports a sheet name with no file on the search path.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No cheatsheet found for %s.", e.Name)
}

// Sheet is one entry of the index.
type Sheet struct {
	Name string
	Dir  string
}

// Path returns the location of the sheet file.
func (s Sheet) Path() string {
	return filepath.Join(s.Dir, s.Name)
}

// Index maps sheet names to the directory that owns them. It is a
// point-in-time snapshot: edits made after construction are only visible
// to a fresh index.
type Index struct {
	dirs   []string          // search path, highest priority first
	sheets map[string]string // sheet name -> owning directory
	cfg    *config.Config
}

// NewIndex resolves the search path and scans every directory on it once.
// Directories are folded lowest priority first with overwrite, so a name
// present in several directories resolves to the highest-priority one.
func NewIndex(cfg *config.Config) (*Index, error) {
	dirs := resolveSearchPath(cfg)
	if len(dirs) == 0 {
		return nil, ErrNoDirectories
	}

	sheets := make(map[string]string)
	for i := len(dirs) - 1; i >= 0; i-- {
		entries, err := os.ReadDir(dirs[i])
		if err != nil {
			log.Warn("skipping unreadable cheat directory", "dir", dirs[i], "err", err)
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__") {
				continue
			}
			sheets[name] = dirs[i]
		}
	}

	return &Index{dirs: dirs, sheets: sheets, cfg: cfg}, nil
}

// resolveSearchPath assembles the cheat directories in priority order:
// CHEATPATH entries as listed, then the user directory, then the fallback
// directory. Entries that are not existing directories are dropped.
func resolveSearchPath(cfg *config.Config) []string {
	var dirs []string
	for _, dir := range cfg.CheatPath {
		if isDir(dir) {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range []string{cfg.UserDir, cfg.FallbackDir} {
		if dir != "" && isDir(dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Lookup returns the directory owning the named sheet.
func (idx *Index) Lookup(name string) (string, bool) {
	dir, ok := idx.sheets[name]
	return dir, ok
}

// Sheets returns every indexed sheet sorted by name.
func (idx *Index) Sheets() []Sheet {
	sheets := make([]Sheet, 0, len(idx.sheets))
	for name, dir := range idx.sheets {
		sheets = append(sheets, Sheet{Name: name, Dir: dir})
	}
	sort.Slice(sheets, func(i, j int) bool {
		return sheets[i].Name < sheets[j].Name
	})
	return sheets
}

// List formats all sheets one per line, sorted by name, with the owning
// directory in brackets after a common column width.
func (idx *Index) List() string {
	sheets := idx.Sheets()

	width := 0
	for _, s := range sheets {
		if len(s.Name) > width {
			width = len(s.Name)
		}
	}
	width += 3

	var b strings.Builder
	for _, s := range sheets {
		fmt.Fprintf(&b, "%-*s[%s]\n", width, s.Name, s.Dir)
	}
	return b.String()
}

// Directories returns the search path in priority order.
func (idx *Index) Directories() []string {
	return idx.dirs
}
