package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chronoshift/internal/config"
)

// control is one row of the controls legend.
type control struct {
	action string
	keys   string
}

var stageControls = []control{
	{"MOVE", "A / D"},
	{"JUMP", "W / SPACE"},
	{"TELEPORT", "SHIFT + DIR"},
	{"RESTART", "R"},
}

// renderStage renders the hand-off screen for a selected level.
func renderStage(p *Painter, level config.LevelConfig, width, height int) string {
	accent := lipgloss.Color(level.Color)
	muted := lipgloss.Color("#6b6380")

	var b strings.Builder
	b.WriteString(p.renderer.NewStyle().Foreground(muted).Render("TIMELINE LOCKED"))
	b.WriteString("\n")
	b.WriteString(p.renderer.NewStyle().Bold(true).Foreground(accent).Render(level.Name))
	b.WriteString("\n")
	b.WriteString(p.renderer.NewStyle().Foreground(muted).Italic(true).Render(level.Subtitle))
	b.WriteString("\n\n")

	actionStyle := p.renderer.NewStyle().Foreground(lipgloss.Color("#e6e1f0")).Width(10)
	keyStyle := p.renderer.NewStyle().Foreground(accent).Bold(true)
	for _, c := range stageControls {
		b.WriteString(actionStyle.Render(c.action))
		b.WriteString(keyStyle.Render(c.keys))
		b.WriteString("\n")
	}

	card := p.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 3)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card.Render(strings.TrimRight(b.String(), "\n")))
}
