// Package jsoncolor pretty-prints JSON with theme colors for terminal output.
package jsoncolor

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/colonyops/diffpane/internal/tui/host"
)

// Colorize indents data and colors each token by role. Invalid JSON is
// returned unchanged. A nil theme only indents.
func Colorize(data []byte, theme host.Theme) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}

	raw := buf.String()
	paint := func(role host.Role, s string) string {
		if theme == nil {
			return s
		}
		return theme.Fg(role, s)
	}

	var out strings.Builder
	for i := 0; i < len(raw); {
		ch := raw[i]
		switch {
		case ch == '"':
			end := stringEnd(raw, i)
			str := raw[i : end+1]

			role := host.RoleAdded
			if rest := strings.TrimLeft(raw[end+1:], " \t"); strings.HasPrefix(rest, ":") {
				role = host.RoleTitle
			}
			out.WriteString(paint(role, str))
			i = end + 1

		case ch == ':' || ch == ',':
			out.WriteString(paint(host.RoleMuted, string(ch)))
			i++

		case ch == '-' || (ch >= '0' && ch <= '9'):
			end := i + 1
			for end < len(raw) && strings.IndexByte("0123456789.eE+-", raw[end]) >= 0 {
				end++
			}
			out.WriteString(paint(host.RoleWarning, raw[i:end]))
			i = end

		case strings.HasPrefix(raw[i:], "true"):
			out.WriteString(paint(host.RoleAccent, "true"))
			i += 4

		case strings.HasPrefix(raw[i:], "false"):
			out.WriteString(paint(host.RoleAccent, "false"))
			i += 5

		case strings.HasPrefix(raw[i:], "null"):
			out.WriteString(paint(host.RoleRemoved, "null"))
			i += 4

		case strings.IndexByte("{}[]", ch) >= 0:
			out.WriteString(paint(host.RoleBorder, string(ch)))
			i++

		default:
			out.WriteByte(ch)
			i++
		}
	}

	return out.String()
}

// stringEnd returns the index of the quote closing the string at pos.
func stringEnd(s string, pos int) int {
	for i := pos + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(s) - 1
}
