package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chronoshift/internal/core"
)

// colorPair is the style key of a run of cells.
type colorPair struct {
	fg, bg core.Color
}

// Painter converts Screen buffers to styled strings. Styles are cached per
// color pair since particle colors repeat across frames.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[colorPair]lipgloss.Style
}

// NewPainter creates a painter for r. SSH sessions pass their own renderer
// so color detection follows the remote terminal.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{
		renderer: r,
		styles:   make(map[colorPair]lipgloss.Style),
	}
}

// Style returns a cached style with the given colors.
func (p *Painter) Style(fg, bg core.Color) lipgloss.Style {
	key := colorPair{fg, bg}
	if st, ok := p.styles[key]; ok {
		return st
	}

	st := p.renderer.NewStyle()
	if !fg.IsDefault() {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if !bg.IsDefault() {
		st = st.Background(lipgloss.Color(bg))
	}
	p.styles[key] = st
	return st
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			pair := colorPair{cell.FG, cell.BG}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.FG, cell.BG}) != pair {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(p.Style(pair.fg, pair.bg).Render(run.String()))
		}
	}
	return sb.String()
}
