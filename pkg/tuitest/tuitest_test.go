package tuitest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPress_RoundTripsString(t *testing.T) {
	tokens := []string{"j", "G", "?", "enter", "esc", "tab", "shift+tab", "up", "down", "ctrl+d", "ctrl+c", "pgdown"}
	for _, tok := range tokens {
		assert.Equal(t, tok, KeyPress(tok).String(), tok)
	}
}

func TestKeyPresses(t *testing.T) {
	keys := KeyPresses("g", "enter")
	if assert.Len(t, keys, 2) {
		assert.Equal(t, "g", keys[0].String())
		assert.Equal(t, "enter", keys[1].String())
	}
}

func TestStripANSI(t *testing.T) {
	in := "\x1b[1mbold\x1b[0m   \nline  \n\n"
	assert.Equal(t, "bold\nline", StripANSI(in))
}

func TestWindowSize(t *testing.T) {
	msg := WindowSize(80, 24)
	assert.Equal(t, 80, msg.Width)
	assert.Equal(t, 24, msg.Height)
}
