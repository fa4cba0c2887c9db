package manager

import (
	"github.com/anisan-cli/vidman/player"
)

// startInteractionPoll checks at a fixed interval whether focus landed on a tracked player.
// Focus changes inside embedded frames do not bubble as clicks, so they are caught by polling.
func (m *Manager) startInteractionPoll() {
	m.pollStop = make(chan struct{})
	m.pollDone = make(chan struct{})

	go func() {
		defer close(m.pollDone)

		for {
			select {
			case <-m.pollStop:
				return
			case <-m.clock.After(m.pollInterval):
				m.post(m.pollInteraction)
			}
		}
	}()
}

// pollInteraction dispatches a user tap on every tracked element that is focused or whose child is.
func (m *Manager) pollInteraction() {
	if len(m.entries) == 0 {
		return
	}

	active := m.document.ActiveElement()
	if active == nil {
		return
	}

	for _, e := range m.entries {
		if e.element == active || e.element == active.Parent() {
			e.element.Dispatch(player.EventUserTap, nil)
		}
	}
}
