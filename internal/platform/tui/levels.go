package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chronoshift/internal/config"
)

const (
	levelsHeader = "SELECT TIMELINE"
	cardWidth    = 36
)

// levelsView is the level select screen: a table of levels and a card for
// the highlighted one.
type levelsView struct {
	config config.LevelsConfig
	levels []config.LevelConfig
	table  table.Model
	width  int
	height int
}

func newLevelsView(levels config.LevelsConfig, width, height int) levelsView {
	v := levelsView{
		config: levels,
		levels: levels.Levels,
		width:  width,
		height: height,
	}
	v.table = v.createTable()
	return v
}

// createTable creates the level table with appropriate columns.
func (v *levelsView) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Level", Width: 16},
		{Title: "Difficulty", Width: 10},
	}

	rows := make([]table.Row, len(v.levels))
	for i, l := range v.levels {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			l.Name,
			difficultyDots(l.Difficulty),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(len(rows)+1, 2)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#e6e1f0")).
		Background(lipgloss.Color("#3b1a5c")).
		Bold(true)
	t.SetStyles(s)

	return t
}

func (v *levelsView) resize(width, height int) {
	v.width = width
	v.height = height
}

// focus moves the cursor to the level with id; unknown ids are ignored.
func (v *levelsView) focus(id string) {
	if i := v.config.Index(id); i >= 0 {
		v.table.SetCursor(i)
	}
}

// move shifts the cursor by delta rows, clamped to the table.
func (v *levelsView) move(delta int) {
	if delta < 0 {
		v.table.MoveUp(-delta)
	} else {
		v.table.MoveDown(delta)
	}
}

// selected returns the highlighted level.
func (v levelsView) selected() (config.LevelConfig, bool) {
	i := v.table.Cursor()
	if i < 0 || i >= len(v.levels) {
		return config.LevelConfig{}, false
	}
	return v.levels[i], true
}

func (v levelsView) view(p *Painter) string {
	var b strings.Builder

	titleStyle := p.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#b44cff"))
	b.WriteString(titleStyle.Render(levelsHeader))
	b.WriteString("\n\n")

	tableStyle := p.renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	board := tableStyle.Render(v.table.View())

	if level, ok := v.selected(); ok {
		board = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", levelCard(p, level))
	}
	b.WriteString(board)

	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, b.String())
}

// levelCard renders the detail card of a level in its accent color.
func levelCard(p *Painter, l config.LevelConfig) string {
	accent := lipgloss.Color(l.Color)

	name := p.renderer.NewStyle().Bold(true).Foreground(accent).Render(l.Name)
	sub := p.renderer.NewStyle().Foreground(lipgloss.Color("#6b6380")).Italic(true).Render(l.Subtitle)
	diff := p.renderer.NewStyle().Foreground(accent).Render(
		fmt.Sprintf("%s  %s", difficultyDots(l.Difficulty), l.Difficulty.Label()),
	)

	card := p.renderer.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(accent).
		Width(cardWidth).
		Padding(1, 2)

	return card.Render(strings.Join([]string{name, sub, "", diff}, "\n"))
}

// difficultyDots renders the difficulty rank as filled and empty dots.
func difficultyDots(d config.Difficulty) string {
	const total = 3
	rank := min(d.Rank(), total)
	return strings.Repeat("●", rank) + strings.Repeat("○", total-rank)
}
