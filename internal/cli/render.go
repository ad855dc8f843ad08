package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Renderer turns a raw reply into printable text.
type Renderer interface {
	Render(text string) (string, error)
}

// PlainRenderer prints replies verbatim.
type PlainRenderer struct{}

func (PlainRenderer) Render(text string) (string, error) {
	return text, nil
}

// MarkdownRenderer formats replies as terminal markdown.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer wraps at width columns; width <= 0 uses 80.
func NewMarkdownRenderer(width int) (*MarkdownRenderer, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &MarkdownRenderer{renderer: r}, nil
}

func (m *MarkdownRenderer) Render(text string) (string, error) {
	out, err := m.renderer.Render(text)
	if err != nil {
		return "", err
	}
	// glamour pads with blank lines; the prefix sits on the first line
	return strings.Trim(out, "\n"), nil
}

// SelectRenderer returns markdown output only when asked for and f is a
// terminal. Anything else gets PlainRenderer so piped output stays parseable.
func SelectRenderer(markdown bool, f *os.File) Renderer {
	if !markdown || f == nil || !term.IsTerminal(int(f.Fd())) {
		return PlainRenderer{}
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		width = 80
	}
	r, err := NewMarkdownRenderer(width - 4)
	if err != nil {
		return PlainRenderer{}
	}
	return r
}
