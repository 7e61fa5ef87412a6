// Package highlight colors single lines of source code for terminal output.
package highlight

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// Highlighter produces foreground-only ANSI highlighting. Lexer lookups are
// cached per file name. It is safe for concurrent use.
type Highlighter struct {
	style     *chroma.Style
	formatter chroma.Formatter

	mu     sync.Mutex
	lexers map[string]chroma.Lexer
}

// New creates a Highlighter with the named chroma style. Unknown names fall
// back to chroma's default style.
func New(styleName string) *Highlighter {
	base := styles.Get(styleName)
	if base == nil {
		base = styles.Fallback
	}

	// Backgrounds belong to the row, not the token.
	style, err := base.Builder().Transform(func(entry chroma.StyleEntry) chroma.StyleEntry {
		entry.Background = 0
		return entry
	}).Build()
	if err != nil {
		style = base
	}

	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	return &Highlighter{
		style:     style,
		formatter: formatter,
		lexers:    make(map[string]chroma.Lexer),
	}
}

func (h *Highlighter) lexerFor(path string) chroma.Lexer {
	name := filepath.Base(path)

	h.mu.Lock()
	defer h.mu.Unlock()

	if l, ok := h.lexers[name]; ok {
		return l
	}

	l := lexers.Match(name)
	if l != nil {
		l = chroma.Coalesce(l)
	}
	h.lexers[name] = l
	return l
}

// Line highlights one line of text using the lexer matched from path. Text is
// returned unchanged when no lexer matches or tokenizing fails.
func (h *Highlighter) Line(text, path string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	lexer := h.lexerFor(path)
	if lexer == nil {
		return text
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return text
	}

	return strings.ReplaceAll(buf.String(), "\n", "")
}
