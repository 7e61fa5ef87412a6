package diff

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestTruncateVisible(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{name: "plain fits", in: "hello", width: 10, want: "hello"},
		{name: "plain cut", in: "hello", width: 3, want: "hel"},
		{name: "zero width", in: "hello", width: 0, want: ""},
		{name: "negative width", in: "hello", width: -4, want: ""},
		{name: "multibyte", in: "héllo", width: 2, want: "hé"},
		{name: "wide runes", in: "日本語", width: 3, want: "日"},
		{name: "styled fits", in: "\x1b[31mhi\x1b[0m", width: 5, want: "\x1b[31mhi\x1b[0m"},
		{name: "styled cut closes", in: "\x1b[31mhello\x1b[0m", width: 3, want: "\x1b[31mhel\x1b[0m"},
		{name: "closed before cut", in: "\x1b[31mab\x1b[0mcdef", width: 3, want: "\x1b[31mab\x1b[0mc"},
		{name: "osc link", in: "\x1b]8;;http://x\x07link\x1b]8;;\x07", width: 2, want: "\x1b]8;;http://x\x07li"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateVisible(tt.in, tt.width)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, ansi.StringWidth(got), max(tt.width, 0))
		})
	}
}

func TestTruncateVisible_KeepsEscapesBeforeCut(t *testing.T) {
	s := "\x1b[38;2;1;2;3mab\x1b[0m\x1b]0;title\x07cd"
	got := truncateVisible(s, 3)
	assert.Equal(t, "abc", ansi.Strip(got))
	assert.Equal(t, "\x1b[38;2;1;2;3mab\x1b[0m\x1b]0;title\x07c", got)
}

func TestWithBackground(t *testing.T) {
	const bg = "\x1b[48;5;1m"

	t.Run("before final reset", func(t *testing.T) {
		got := withBackground("\x1b[31mab\x1b[0m", bg)
		assert.Equal(t, bg+"\x1b[31mab"+bgReset+"\x1b[0m", got)
	})

	t.Run("reasserted after inner reset", func(t *testing.T) {
		got := withBackground("\x1b[31ma\x1b[0mb", bg)
		assert.Equal(t, bg+"\x1b[31ma\x1b[0m"+bg+"b"+bgReset, got)
	})

	t.Run("plain text", func(t *testing.T) {
		assert.Equal(t, bg+"abc"+bgReset, withBackground("abc", bg))
	})
}
