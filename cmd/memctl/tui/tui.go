// Package tui is the interactive terminal front end for the allocator
// simulation. It renders the address space as a proportional bar plus a
// block table and drives the four allocator operations from keystrokes.
// All state lives in the embedded arena; quitting discards it.
package tui

import tea "github.com/charmbracelet/bubbletea"

// Run starts the interactive simulator. A non-positive total opens the
// init prompt first.
func Run(total int) error {
	p := tea.NewProgram(NewModel(total), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
