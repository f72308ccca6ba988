package render

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
)

// Renderer writes a sheet to the terminal.
type Renderer interface {
	Render(w io.Writer, name string, content []byte) error
}

// New selects the renderer for this invocation. Colorization is a display
// enhancement: when it is off, or when highlighting fails, the sheet is
// printed verbatim.
func New(colorize bool) Renderer {
	if colorize {
		return colorRenderer{}
	}
	return plainRenderer{}
}

// Display reads the named sheet from dir and renders it to w.
func Display(w io.Writer, r Renderer, dir, name string) error {
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	return r.Render(w, name, content)
}

type plainRenderer struct{}

func (plainRenderer) Render(w io.Writer, name string, content []byte) error {
	_, err := w.Write(content)
	return err
}

type colorRenderer struct{}

// Render highlights into a buffer first so a failing highlighter never
// produces partial output: any error degrades to the verbatim sheet.
func (colorRenderer) Render(w io.Writer, name string, content []byte) error {
	var buf bytes.Buffer
	if err := highlight(&buf, name, content); err != nil {
		_, werr := w.Write(content)
		return werr
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func highlight(buf *bytes.Buffer, name string, content []byte) error {
	switch filepath.Ext(name) {
	case ".md", ".markdown":
		return renderMarkdown(buf, content)
	}

	lexer := lexers.Match(name)
	if filepath.Ext(name) == "" {
		// Extensionless sheets are overwhelmingly shell snippets.
		lexer = lexers.Get("bash")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, string(content))
	if err != nil {
		return err
	}
	return formatter.Format(buf, style, iterator)
}

func renderMarkdown(buf *bytes.Buffer, content []byte) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(string(content))
	if err != nil {
		return err
	}
	buf.WriteString(out)
	return nil
}
