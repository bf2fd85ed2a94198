package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var sections []string

	title := "memctl"
	if m.arena != nil {
		title = fmt.Sprintf("memctl — %d units, %s-fit", m.arena.Total(), m.strat)
	}
	sections = append(sections, titleStyle.Render(title))

	if m.arena != nil {
		sections = append(sections, m.viewBar(), m.viewTable(), m.viewMetrics())
	}

	if m.mode != NormalMode {
		sections = append(sections, promptStyle.Render(
			promptPlaceholder(m.mode)+"\n"+m.input.View()))
	}

	switch {
	case m.lastErr != nil:
		sections = append(sections, errorStyle.Render("error: "+m.lastErr.Error()))
	case m.status != "":
		sections = append(sections, statusStyle.Render(m.status))
	}

	if m.showHelp {
		sections = append(sections, m.viewHelp())
	} else {
		sections = append(sections, helpStyle.Render("  ? help • q quit"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

// viewBar renders the address space as one proportional bar, free blocks
// green and allocated blocks red, each segment at least one cell wide.
func (m Model) viewBar() string {
	snap := m.arena.Snapshot()
	barWidth := m.width - 4
	if barWidth < 20 {
		barWidth = 60
	}

	var bar strings.Builder
	for _, b := range snap.Blocks {
		w := b.Size * barWidth / snap.TotalSize
		if w < 1 {
			w = 1
		}
		label := fmt.Sprintf("%d", b.ID)
		if len(label) > w {
			label = ""
		}
		seg := label + strings.Repeat(" ", w-len(label))
		if b.Free {
			bar.WriteString(freeBarStyle.Render(seg))
		} else {
			bar.WriteString(allocBarStyle.Render(seg))
		}
	}
	return "  " + bar.String()
}

func (m Model) viewTable() string {
	snap := m.arena.Snapshot()
	rows := make([]string, 0, len(snap.Blocks)+1)
	rows = append(rows, "  id     status     size       address")
	for _, b := range snap.Blocks {
		status, style := "allocated", allocRowStyle
		if b.Free {
			status, style = "free", freeRowStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("  %-6d %-10s %-10d %d -> %d",
			b.ID, status, b.Size, b.Start, b.End()-1)))
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewMetrics() string {
	free := m.arena.FreeBytes()
	return statusStyle.Render(fmt.Sprintf(
		"allocated %d • free %d • fragmentation %d",
		m.arena.Total()-free, free, m.arena.Fragmentation()))
}

func (m Model) viewHelp() string {
	lines := []string{
		"  a  allocate a block (current strategy)",
		"  f  free a block by id",
		"  s  cycle strategy (first → best → worst)",
		"  n  start over with a new arena",
		"  ?  toggle this help",
		"  q  quit",
	}
	return helpStyle.Render(strings.Join(lines, "\n"))
}
