package sheets

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"cheat/internal/git"

	"github.com/charmbracelet/log"
)

// ErrEditorNotConfigured is returned when an edit is requested but no
// editor command is available.
var ErrEditorNotConfigured = errors.New("no editor configured: set the EDITOR environment variable")

// EditorLaunchError reports an editor binary that could not be started.
type EditorLaunchError struct {
	Command string
	Err     error
}

func (e *EditorLaunchError) Error() string {
	return fmt.Sprintf("failed to launch editor %q: %v", e.Command, e.Err)
}

func (e *EditorLaunchError) Unwrap() error {
	return e.Err
}

// Edit opens the named sheet in the configured editor, blocking until the
// editor exits. A sheet that is not in the index yet is created in the user
// cheat directory, or in the fallback directory when the user directory
// cannot be created. The index is not refreshed afterwards.
func (idx *Index) Edit(name string) error {
	if strings.TrimSpace(idx.cfg.Editor) == "" {
		return ErrEditorNotConfigured
	}

	var path, message string
	if dir, ok := idx.Lookup(name); ok {
		path = filepath.Join(dir, name)
		message = "Update " + name
	} else {
		dir, err := idx.creationDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, name)
		message = "Add " + name
	}

	if err := launchEditor(idx.cfg.Editor, path); err != nil {
		return err
	}

	// Sheets kept under version control are committed after every edit.
	// Anything going wrong here must not fail the edit itself.
	if err := git.CommitSheet(path, message); err != nil {
		log.Warn("could not commit sheet", "sheet", name, "err", err)
	}
	return nil
}

// creationDir picks the directory a new sheet is written to, preferring
// the user directory and falling back only when it cannot be created.
func (idx *Index) creationDir() (string, error) {
	if err := os.MkdirAll(idx.cfg.UserDir, 0755); err == nil {
		return idx.cfg.UserDir, nil
	}
	if idx.cfg.FallbackDir != "" {
		return idx.cfg.FallbackDir, nil
	}
	return "", fmt.Errorf("could not create cheat directory %s", idx.cfg.UserDir)
}

// EditorCommand splits the editor value into a command line and appends
// the sheet path as its final argument.
func EditorCommand(editor, path string) (*exec.Cmd, error) {
	if strings.HasPrefix(editor, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			editor = filepath.Join(home, editor[2:])
		}
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return nil, ErrEditorNotConfigured
	}
	args := append(parts[1:], path)
	return exec.Command(parts[0], args...), nil
}

func launchEditor(editor, path string) error {
	cmd, err := EditorCommand(editor, path)
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return &EditorLaunchError{Command: cmd.Path, Err: err}
	}
	// The editor's exit status carries no meaning for us.
	if err := cmd.Wait(); err != nil {
		log.Debug("editor exited with error", "editor", cmd.Path, "err", err)
	}
	return nil
}
