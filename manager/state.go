package manager

import "github.com/anisan-cli/vidman/player"

// EntryState is a read-only snapshot of one tracked player.
type EntryState struct {
	ID             int
	Player         player.Player
	HasAutoplay    bool
	Loaded         bool
	Visible        bool
	UserInteracted bool
	// Overlays is true while the equalizer icon and click shim replace the native controls.
	Overlays bool
}

// Entries returns snapshots of every tracked player in registration order.
func (m *Manager) Entries() []EntryState {
	states := make([]EntryState, len(m.entries))
	for i, e := range m.entries {
		states[i] = e.State()
	}
	return states
}
