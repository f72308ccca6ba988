package main

import (
	"os"
	"time"

	"cheat/internal/config"
	"cheat/internal/render"
	"cheat/internal/sheets"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

type sheetItem struct {
	sheet sheets.Sheet
}

func (i sheetItem) Title() string       { return i.sheet.Name }
func (i sheetItem) Description() string { return i.sheet.Dir }
func (i sheetItem) FilterValue() string { return i.sheet.Name }

type model struct {
	list     list.Model
	cfg      *config.Config
	idx      *sheets.Index
	watcher  *fsnotify.Watcher
	quitting bool
	viewName string // sheet to print after the program exits
}

type (
	fileChangedMsg    struct{}
	editorFinishedMsg struct{ err error }
)

func (m model) Init() tea.Cmd {
	return waitForFileChange(m.watcher)
}

func waitForFileChange(watcher *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		if watcher == nil {
			return nil
		}
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					time.Sleep(100 * time.Millisecond)
					return fileChangedMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Warn("watcher error", "err", err)
			}
		}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if i, ok := m.list.SelectedItem().(sheetItem); ok {
				return m, editSheetCmd(m.cfg.Editor, i.sheet.Path())
			}
		case "v":
			if i, ok := m.list.SelectedItem().(sheetItem); ok {
				m.viewName = i.sheet.Name
				m.quitting = true
				return m, tea.Quit
			}
		}
	case editorFinishedMsg:
		if msg.err != nil {
			log.Warn("editor error", "err", msg.err)
		}
		m.reload()
		return m, nil
	case fileChangedMsg:
		m.reload()
		return m, waitForFileChange(m.watcher)
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// reload rescans the search path and swaps in the fresh index.
func (m *model) reload() {
	idx, err := sheets.NewIndex(m.cfg)
	if err != nil {
		log.Warn("could not rescan cheat directories", "err", err)
		return
	}
	m.idx = idx
	m.list.SetItems(sheetItems(idx))
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

func editSheetCmd(editor, path string) tea.Cmd {
	cmd, err := sheets.EditorCommand(editor, path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func sheetItems(idx *sheets.Index) []list.Item {
	all := idx.Sheets()
	items := make([]list.Item, len(all))
	for i, s := range all {
		items[i] = sheetItem{sheet: s}
	}
	return items
}

func browse(idx *sheets.Index, cfg *config.Config) error {
	watcher, err := setupWatcher(idx.Directories())
	if err != nil {
		log.Warn("directory watching disabled", "err", err)
		watcher = nil
	}
	if watcher != nil {
		defer watcher.Close()
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(sheetItems(idx), delegate, 0, 0)
	l.Title = "Cheatsheets"
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("5")).
		Padding(0, 1)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
			key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
		}
	}

	p := tea.NewProgram(model{list: l, cfg: cfg, idx: idx, watcher: watcher}, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	// A "v" selection is printed after the alternate screen is torn down
	// so the sheet stays in the scrollback.
	if m, ok := final.(model); ok && m.viewName != "" {
		dir, found := m.idx.Lookup(m.viewName)
		if !found {
			return &sheets.NotFoundError{Name: m.viewName}
		}
		return render.Display(os.Stdout, render.New(cfg.Colors), dir, m.viewName)
	}
	return nil
}

func setupWatcher(dirs []string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			log.Warn("could not watch cheat directory", "dir", dir, "err", err)
		}
	}
	return watcher, nil
}
