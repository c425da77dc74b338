package ui

import (
	"issuegrip/internal/domain"
)

// focusShortcut is the key that moves focus into the search input from
// anywhere outside it
const focusShortcut = "/"

// mount acquires the model's bus subscriptions. Calling it twice is a no-op.
func (m *Model) mount() {
	if m.mounted {
		return
	}
	m.mounted = true
	m.unsubscribes = append(m.unsubscribes,
		m.bus.Subscribe(domain.EventKeyPressed, m.onKeyPressed),
	)
}

// unmount releases every subscription acquired by mount
func (m *Model) unmount() {
	for _, unsubscribe := range m.unsubscribes {
		unsubscribe()
	}
	m.unsubscribes = nil
	m.mounted = false
}

// onKeyPressed runs synchronously inside Update, so it only records the
// request; handleKey turns it into a focus change
func (m *Model) onKeyPressed(e domain.DomainEvent) {
	ev, ok := e.(domain.KeyPressedEvent)
	if !ok {
		return
	}
	if ev.Key == focusShortcut && !ev.InputFocused {
		m.focusRequested = true
	}
}
