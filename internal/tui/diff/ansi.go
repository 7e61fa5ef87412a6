package diff

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	sgrReset = "\x1b[0m"
	bgReset  = "\x1b[49m"
)

func isSGR(seq string) bool {
	return strings.HasPrefix(seq, "\x1b[") && strings.HasSuffix(seq, "m")
}

func isFullReset(seq string) bool {
	return seq == "\x1b[0m" || seq == "\x1b[m"
}

// truncateVisible keeps at most width visible cells of s. Escape sequences
// never count toward the width and are copied verbatim up to the cut. When
// the text is cut while a style is still open, a reset is appended.
func truncateVisible(s string, width int) string {
	width = max(width, 0)

	var sb strings.Builder
	sb.Grow(len(s))

	var state byte = ansi.NormalState
	used := 0
	open := false
	cut := false

	for len(s) > 0 {
		seq, w, n, next := ansi.DecodeSequence(s, state, nil)
		state = next

		if w == 0 {
			if isSGR(seq) {
				open = !isFullReset(seq)
			}
			sb.WriteString(seq)
			s = s[n:]
			continue
		}

		if used+w > width {
			cut = true
			break
		}

		sb.WriteString(seq)
		used += w
		s = s[n:]
	}

	if cut && open {
		sb.WriteString(sgrReset)
	}
	return sb.String()
}

// withBackground paints the whole row with bg. The background is opened at
// the start and closed right before the row's final reset; resets inside the
// row re-open it so styled segments keep the background.
func withBackground(s, bg string) string {
	body, tail := s, ""
	for _, r := range []string{"\x1b[0m", "\x1b[m"} {
		if strings.HasSuffix(s, r) {
			body, tail = s[:len(s)-len(r)], r
			break
		}
	}

	body = strings.ReplaceAll(body, "\x1b[0m", "\x1b[0m"+bg)
	body = strings.ReplaceAll(body, "\x1b[m", "\x1b[m"+bg)

	return bg + body + bgReset + tail
}
