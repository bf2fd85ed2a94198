package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/memkit/memkit/mem/alloc"
)

// InputMode says what the text prompt, when visible, is asking for.
type InputMode int

const (
	NormalMode InputMode = iota
	InitMode               // prompting for a total size
	AllocMode              // prompting for an allocation size
	FreeMode               // prompting for a block id
)

// Model is the interactive simulator: one arena, a sticky placement
// strategy, and a single-line prompt that changes meaning with the mode.
type Model struct {
	arena *alloc.Arena
	strat alloc.Strategy
	keys  KeyMap
	input textinput.Model

	mode     InputMode
	width    int
	height   int
	status   string
	lastErr  error
	showHelp bool
}

// NewModel creates the TUI model. A non-positive total starts the model at
// the init prompt instead of a ready arena.
func NewModel(total int) Model {
	ti := textinput.New()
	ti.CharLimit = 12
	ti.Width = 20

	m := Model{
		strat: alloc.BestFit,
		keys:  DefaultKeyMap(),
		input: ti,
	}
	if total > 0 {
		a, err := alloc.New(total)
		if err == nil {
			m.arena = a
			m.status = fmt.Sprintf("initialized %d units", total)
			return m
		}
	}
	m.enterPrompt(InitMode)
	return m
}

func (m Model) Init() tea.Cmd {
	if m.mode != NormalMode {
		return textinput.Blink
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.mode != NormalMode {
			return m.updatePrompt(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Strategy):
		m.strat = nextStrategy(m.strat)
		m.status = fmt.Sprintf("strategy: %s-fit", m.strat)
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.enterPrompt(InitMode)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Allocate):
		if m.arena == nil {
			return m, nil
		}
		m.enterPrompt(AllocMode)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Free):
		if m.arena == nil {
			return m, nil
		}
		m.enterPrompt(FreeMode)
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		// Nothing to fall back to before the first init.
		if m.mode == InitMode && m.arena == nil {
			return m, tea.Quit
		}
		m.leavePrompt()
		m.status = "cancelled"
		return m, nil

	case tea.KeyEnter:
		return m.commitPrompt()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commitPrompt parses the entered number and applies the pending operation.
// Errors land in lastErr and keep the prompt open for another try.
func (m Model) commitPrompt() (tea.Model, tea.Cmd) {
	n, err := strconv.Atoi(m.input.Value())
	if err != nil {
		m.lastErr = fmt.Errorf("not a number: %q", m.input.Value())
		m.input.Reset()
		return m, nil
	}

	switch m.mode {
	case InitMode:
		a, err := alloc.New(n)
		if err != nil {
			m.lastErr = err
			m.input.Reset()
			return m, nil
		}
		m.arena = a
		m.status = fmt.Sprintf("initialized %d units", n)

	case AllocMode:
		id, err := m.arena.Alloc(n, m.strat)
		if err != nil {
			m.lastErr = err
			m.input.Reset()
			return m, nil
		}
		m.status = fmt.Sprintf("allocated %d units in block %d (%s-fit)", n, id, m.strat)

	case FreeMode:
		if err := m.arena.Free(n); err != nil {
			m.lastErr = err
			m.input.Reset()
			return m, nil
		}
		m.status = fmt.Sprintf("freed block %d", n)
	}

	m.leavePrompt()
	return m, nil
}

func (m *Model) enterPrompt(mode InputMode) {
	m.mode = mode
	m.lastErr = nil
	m.input.Reset()
	m.input.Placeholder = promptPlaceholder(mode)
	m.input.Focus()
}

func (m *Model) leavePrompt() {
	m.mode = NormalMode
	m.lastErr = nil
	m.input.Blur()
	m.input.Reset()
}

func promptPlaceholder(mode InputMode) string {
	switch mode {
	case InitMode:
		return "total size"
	case AllocMode:
		return "size to allocate"
	case FreeMode:
		return "block id to free"
	default:
		return ""
	}
}

func nextStrategy(s alloc.Strategy) alloc.Strategy {
	switch s {
	case alloc.FirstFit:
		return alloc.BestFit
	case alloc.BestFit:
		return alloc.WorstFit
	default:
		return alloc.FirstFit
	}
}
