package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyHandler struct {
	id      uint64
	binding key.Binding
	fn      func() tea.Msg
}

// KeyDispatcher routes key presses to callbacks registered by whichever
// view currently owns them. When several handlers match, the most recently
// bound one fires.
type KeyDispatcher struct {
	nextID   uint64
	handlers []keyHandler
}

// NewKeyDispatcher creates an empty dispatcher
func NewKeyDispatcher() *KeyDispatcher {
	return &KeyDispatcher{}
}

// Bind registers fn for binding and returns the function that removes it.
// Calling the returned function more than once is harmless.
func (d *KeyDispatcher) Bind(binding key.Binding, fn func() tea.Msg) (unbind func()) {
	d.nextID++
	id := d.nextID
	d.handlers = append(d.handlers, keyHandler{id: id, binding: binding, fn: fn})

	return func() {
		for i, h := range d.handlers {
			if h.id == id {
				d.handlers = append(d.handlers[:i], d.handlers[i+1:]...)
				return
			}
		}
	}
}

// Dispatch calls the handler matching msg, if any, and returns its message
func (d *KeyDispatcher) Dispatch(msg tea.KeyMsg) (tea.Msg, bool) {
	for i := len(d.handlers) - 1; i >= 0; i-- {
		h := d.handlers[i]
		if key.Matches(msg, h.binding) {
			return h.fn(), true
		}
	}
	return nil, false
}

// Len returns the number of registered handlers
func (d *KeyDispatcher) Len() int { return len(d.handlers) }
