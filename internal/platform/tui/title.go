package tui

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/chronoshift/internal/config"
	"github.com/vovakirdan/chronoshift/internal/core"
	"github.com/vovakirdan/chronoshift/internal/disintegrate"
)

// Title screen texts.
const (
	titleSubtitle = "TEMPORAL PLATFORMER"
	titleChrono   = "CHRONO"
	titleShift    = "SHIFT"
	titleTagline  = "Outrun your past. Escape your shadow."
	titleButton   = "> START <"
	titleHint     = "PRESS START TO INITIALIZE TEMPORAL MATRIX"
)

// Title layout constants, in cells.
const (
	buttonW   = 21
	buttonH   = 3
	minTitleW = buttonW + 4
	minTitleH = 12

	gridCols  = 6 // Background grid spacing
	gridRows  = 3
	hintBlink = 30 // Frames per hint blink phase
	glowBoost = 0.3
	fadeRamp  = 30 // Frames until the fade overlay reaches full strength
)

// titleLayout positions the title screen elements on a w x h screen.
type titleLayout struct {
	subtitleY int
	titleY    int
	taglineY  int
	hintY     int

	buttonX, buttonY int
	ok               bool // False when the screen is too small for the button
}

func layoutTitle(w, h int) titleLayout {
	if w < minTitleW || h < minTitleH {
		return titleLayout{}
	}
	cy := h/2 - 1
	return titleLayout{
		subtitleY: cy - 5,
		titleY:    cy - 3,
		taglineY:  cy - 1,
		buttonX:   (w - buttonW) / 2,
		buttonY:   cy + 1,
		hintY:     min(cy+buttonH+2, h-1),
		ok:        true,
	}
}

// measureButton reports the start button and the screen in effect units.
// Each cell spans d.CellWidth x d.CellHeight units.
func measureButton(w, h int, d config.DisplayConfig) (control, container core.Rect, ok bool) {
	l := layoutTitle(w, h)
	if !l.ok {
		return core.Rect{}, core.Rect{}, false
	}
	container = core.NewRect(0, 0, float64(w), float64(h)).Scale(d.CellWidth, d.CellHeight)
	control = core.NewRect(float64(l.buttonX), float64(l.buttonY), buttonW, buttonH).Scale(d.CellWidth, d.CellHeight)
	return control, container, true
}

// titleTheme holds the resolved colors of the title screen.
type titleTheme struct {
	backdrop colorful.Color
	bg       core.Color
	scanline core.Color
	grid     core.Color
	fill     core.Color
	border   core.Color
}

func newTitleTheme(p disintegrate.Palette) titleTheme {
	black := colorful.Color{}
	back := p.Backdrop.Color
	return titleTheme{
		backdrop: back,
		bg:       core.Color(back.Hex()),
		scanline: core.Color(back.BlendRgb(black, 0.4).Hex()),
		grid:     core.Color(back.BlendRgb(p.Border.Color, 0.18).Hex()),
		fill:     core.Color(p.Fill.Over(back, 1).Hex()),
		border:   core.Color(p.Border.Color.Hex()),
	}
}

// titleFrame is what one frame of the title screen shows.
type titleFrame struct {
	active    bool // A run is in flight: button and texts are hidden
	frame     int
	fade      float64 // Overlay strength, 0 when not fading
	scanlines bool
	particles []disintegrate.Particle
}

// drawTitle renders the title screen into scr.
func drawTitle(scr *core.Screen, th titleTheme, palette disintegrate.Palette, d config.DisplayConfig, f titleFrame) {
	scr.Fill(core.Cell{Rune: ' ', BG: th.bg})
	drawBackdrop(scr, th, f.scanlines)

	l := layoutTitle(scr.Width(), scr.Height())
	if l.ok && !f.active {
		drawTitleTexts(scr, l, f.frame)
		drawButton(scr, th, l)
	}

	plotParticles(scr, f.particles, palette, th.backdrop, d)

	if f.fade > 0 {
		darken(scr, f.fade)
	}
}

func drawBackdrop(scr *core.Screen, th titleTheme, scanlines bool) {
	for y := range scr.Height() {
		if scanlines && y%2 == 1 {
			scr.DrawRect(0, y, scr.Width(), 1, core.Cell{Rune: ' ', BG: th.scanline})
		}
		if y%gridRows != 0 {
			continue
		}
		for x := 0; x < scr.Width(); x += gridCols {
			c := scr.GetCell(x, y)
			c.Rune = '·'
			c.FG = th.grid
			scr.SetCell(x, y, c)
		}
	}
}

func drawTitleTexts(scr *core.Screen, l titleLayout, frame int) {
	scr.DrawTextCentered(l.subtitleY, titleSubtitle, core.ColorMuted)

	// CHRONO SHIFT in two colors
	full := titleChrono + " " + titleShift
	x := (scr.Width() - len(full)) / 2
	scr.DrawText(x, l.titleY, titleChrono, core.ColorNeonPurple)
	scr.DrawText(x+len(titleChrono)+1, l.titleY, titleShift, core.ColorNeonGreen)

	scr.DrawTextCentered(l.taglineY, titleTagline, core.ColorForeground)

	if (frame/hintBlink)%2 == 0 {
		scr.DrawTextCentered(l.hintY, titleHint, core.ColorNeonBlue)
	}
}

func drawButton(scr *core.Screen, th titleTheme, l titleLayout) {
	scr.DrawRect(l.buttonX, l.buttonY, buttonW, buttonH, core.Cell{Rune: ' ', BG: th.fill})
	scr.DrawBox(l.buttonX, l.buttonY, buttonW, buttonH, th.border)
	scr.DrawText(l.buttonX+(buttonW-len(titleButton))/2, l.buttonY+1, titleButton, th.border)
}

// dot is the strongest particle landing in half a cell.
type dot struct {
	color   colorful.Color
	opacity float64
	set     bool
}

// plotParticles draws particles as half blocks: every cell holds an upper
// and a lower dot, so a cell row covers two rows of the particle grid.
func plotParticles(scr *core.Screen, particles []disintegrate.Particle, palette disintegrate.Palette, backdrop colorful.Color, d config.DisplayConfig) {
	w, h := scr.Width(), scr.Height()
	if len(particles) == 0 || w == 0 || h == 0 {
		return
	}

	white := colorful.Color{R: 1, G: 1, B: 1}
	bounds := core.NewRect(0, 0, float64(w), float64(h)).Scale(d.CellWidth, d.CellHeight)
	dots := make([][2]dot, w*h)
	for _, p := range particles {
		if !bounds.Contains(p.X, p.Y) {
			continue
		}
		col := min(int(p.X/d.CellWidth), w-1)
		row := min(int(p.Y/d.CellHeight), h-1)
		half := 0
		if p.Y-float64(row)*d.CellHeight >= d.CellHeight/2 {
			half = 1
		}

		slot := &dots[row*w+col][half]
		if slot.set && slot.opacity >= p.Opacity {
			continue
		}
		c := p.Color.Over(backdrop, p.Opacity)
		if g := p.Glow(); g > 0 {
			c = c.BlendRgb(white, g*glowBoost).Clamped()
		}
		*slot = dot{color: c, opacity: p.Opacity, set: true}
	}

	for row := range h {
		for col := range w {
			top, bottom := dots[row*w+col][0], dots[row*w+col][1]
			cell := scr.GetCell(col, row)
			switch {
			case top.set && bottom.set:
				cell.Rune = '▀'
				cell.FG = core.Color(top.color.Hex())
				cell.BG = core.Color(bottom.color.Hex())
			case top.set:
				cell.Rune = '▀'
				cell.FG = core.Color(top.color.Hex())
			case bottom.set:
				cell.Rune = '▄'
				cell.FG = core.Color(bottom.color.Hex())
			default:
				continue
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// darken blends every cell toward black by amount.
func darken(scr *core.Screen, amount float64) {
	black := colorful.Color{}
	cache := make(map[core.Color]core.Color)
	shade := func(c core.Color) core.Color {
		if c.IsDefault() {
			return c
		}
		if out, ok := cache[c]; ok {
			return out
		}
		parsed, err := colorful.Hex(string(c))
		if err != nil {
			return c
		}
		out := core.Color(parsed.BlendRgb(black, amount).Hex())
		cache[c] = out
		return out
	}

	scr.Tint(func(_, _ int, c core.Cell) core.Cell {
		c.FG = shade(c.FG)
		c.BG = shade(c.BG)
		return c
	})
}

// fadeAmount returns the overlay strength after frames of fading.
func fadeAmount(frames int, overlay float64) float64 {
	if frames <= 0 {
		return 0
	}
	return overlay * core.ClampF(float64(frames)/fadeRamp, 0, 1)
}
