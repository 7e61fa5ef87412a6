package host

import (
	"fmt"
	"slices"

	"charm.land/bubbles/v2/key"
)

// KeyID identifies a semantic key. Raw tokens are whatever the host produces
// for a key press (Bubble Tea's KeyPressMsg.String()).
type KeyID string

// Semantic keys.
const (
	KeyEscape   KeyID = "escape"
	KeyUp       KeyID = "up"
	KeyDown     KeyID = "down"
	KeyEnter    KeyID = "enter"
	KeyTab      KeyID = "tab"
	KeyShiftTab KeyID = "shift_tab"
	KeyPageUp   KeyID = "page_up"
	KeyPageDown KeyID = "page_down"
	KeyTop      KeyID = "top"
	KeyBottom   KeyID = "bottom"
	KeyVisual   KeyID = "visual"
	KeyYank     KeyID = "yank"
	KeyDismiss  KeyID = "dismiss"
	KeyPicker   KeyID = "picker"
	KeyRefresh  KeyID = "refresh"
	KeyQuit     KeyID = "quit"
	KeyHelp     KeyID = "help"
)

// KeyMatcher reports whether a raw input token matches a semantic key.
type KeyMatcher interface {
	Matches(token string, id KeyID) bool
}

type keyDef struct {
	keys []string
	help string
}

var defaultKeys = map[KeyID]keyDef{
	KeyEscape:   {keys: []string{"esc"}, help: "back"},
	KeyUp:       {keys: []string{"up", "k"}, help: "up"},
	KeyDown:     {keys: []string{"down", "j"}, help: "down"},
	KeyEnter:    {keys: []string{"enter"}, help: "open"},
	KeyTab:      {keys: []string{"tab", "n"}, help: "next file"},
	KeyShiftTab: {keys: []string{"shift+tab", "N"}, help: "prev file"},
	KeyPageUp:   {keys: []string{"ctrl+u", "pgup"}, help: "half page up"},
	KeyPageDown: {keys: []string{"ctrl+d", "pgdown"}, help: "half page down"},
	KeyTop:      {keys: []string{"g", "home"}, help: "top"},
	KeyBottom:   {keys: []string{"G", "shift+g", "end"}, help: "bottom"},
	KeyVisual:   {keys: []string{"v", "V"}, help: "select"},
	KeyYank:     {keys: []string{"y"}, help: "yank"},
	KeyDismiss:  {keys: []string{"d"}, help: "dismiss"},
	KeyPicker:   {keys: []string{"ctrl+p", "p"}, help: "files"},
	KeyRefresh:  {keys: []string{"r"}, help: "refresh"},
	KeyQuit:     {keys: []string{"q", "ctrl+c"}, help: "quit"},
	KeyHelp:     {keys: []string{"?"}, help: "help"},
}

// KeyIDs returns all known semantic keys, sorted.
func KeyIDs() []KeyID {
	ids := make([]KeyID, 0, len(defaultKeys))
	for id := range defaultKeys {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IsKeyID reports whether name is a known semantic key.
func IsKeyID(name string) bool {
	_, ok := defaultKeys[KeyID(name)]
	return ok
}

// KeyMap is the KeyMatcher backed by bubbles key bindings.
type KeyMap struct {
	bindings map[KeyID]key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() *KeyMap {
	km, _ := NewKeyMap(nil)
	return km
}

// NewKeyMap builds the key map, replacing the default keys of any semantic
// key present in overrides.
func NewKeyMap(overrides map[string][]string) (*KeyMap, error) {
	km := &KeyMap{bindings: make(map[KeyID]key.Binding, len(defaultKeys))}

	for id, def := range defaultKeys {
		keys := def.keys
		if o, ok := overrides[string(id)]; ok {
			if len(o) == 0 {
				return nil, fmt.Errorf("key %q: no keys bound", id)
			}
			keys = o
		}
		km.bindings[id] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], def.help),
		)
	}

	for name := range overrides {
		if !IsKeyID(name) {
			return nil, fmt.Errorf("unknown key %q", name)
		}
	}

	return km, nil
}

type keyToken string

func (t keyToken) String() string { return string(t) }

// Matches implements KeyMatcher.
func (km *KeyMap) Matches(token string, id KeyID) bool {
	b, ok := km.bindings[id]
	if !ok {
		return false
	}
	return key.Matches(keyToken(token), b)
}

// Binding returns the binding for id.
func (km *KeyMap) Binding(id KeyID) key.Binding {
	return km.bindings[id]
}

// Bindings returns the bindings for ids, in order.
func (km *KeyMap) Bindings(ids ...KeyID) []key.Binding {
	out := make([]key.Binding, 0, len(ids))
	for _, id := range ids {
		if b, ok := km.bindings[id]; ok {
			out = append(out, b)
		}
	}
	return out
}
