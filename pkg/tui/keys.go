/* pkg/tui/keys.go */

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists every binding the screen reacts to.
type KeyMap struct {
	NextField key.Binding
	List      key.Binding
	Get       key.Binding
	Add       key.Binding
	Update    key.Binding
	Delete    key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch field")),
		List:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "fetch all users")),
		Get:       key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "fetch user by ID")),
		Add:       key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "add user")),
		Update:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "update user")),
		Delete:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete user")),
		Confirm:   key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "confirm delete")),
		Cancel:    key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
		Back:      key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "back to form")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func helpLine(bindings ...key.Binding) []string {
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, h.Key+" "+h.Desc)
	}
	return out
}
