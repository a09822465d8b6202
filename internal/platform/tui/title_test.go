package tui

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/chronoshift/internal/config"
	"github.com/vovakirdan/chronoshift/internal/core"
	"github.com/vovakirdan/chronoshift/internal/disintegrate"
)

func TestMeasureButton(t *testing.T) {
	d := config.DefaultTransitionConfig().Display

	control, container, ok := measureButton(80, 23, d)
	if !ok {
		t.Fatal("measureButton(80, 23) should fit the button")
	}
	if container != core.NewRect(0, 0, 400, 230) {
		t.Errorf("container = %+v, expected 400x230 units", container)
	}
	if control.W != buttonW*5 || control.H != buttonH*10 {
		t.Errorf("control size = %vx%v, expected %vx%v", control.W, control.H, buttonW*5, buttonH*10)
	}

	l := layoutTitle(80, 23)
	if control.X != float64(l.buttonX)*5 || control.Y != float64(l.buttonY)*10 {
		t.Errorf("control origin = (%v, %v), expected the button cell scaled", control.X, control.Y)
	}

	for _, size := range [][2]int{{minTitleW - 1, 30}, {80, minTitleH - 1}, {0, 0}} {
		if _, _, ok := measureButton(size[0], size[1], d); ok {
			t.Errorf("measureButton(%d, %d) should not fit", size[0], size[1])
		}
	}
}

func TestLayoutTitleFitsScreen(t *testing.T) {
	for _, size := range [][2]int{{minTitleW, minTitleH}, {80, 23}, {200, 60}} {
		l := layoutTitle(size[0], size[1])
		if !l.ok {
			t.Fatalf("layoutTitle(%d, %d) not ok", size[0], size[1])
		}
		if l.subtitleY < 0 || l.hintY >= size[1] || l.buttonY+buttonH > size[1] {
			t.Errorf("layoutTitle(%d, %d) = %+v, elements off screen", size[0], size[1], l)
		}
		if l.buttonX < 0 || l.buttonX+buttonW > size[0] {
			t.Errorf("layoutTitle(%d, %d) button x = %d, off screen", size[0], size[1], l.buttonX)
		}
	}
}

func TestPlotParticles(t *testing.T) {
	palette, err := disintegrate.NewPalette(config.DefaultTransitionConfig().Palette)
	if err != nil {
		t.Fatalf("NewPalette() failed: %v", err)
	}
	d := config.DefaultTransitionConfig().Display
	scr := core.NewScreen(10, 5)

	particles := []disintegrate.Particle{
		{X: 12, Y: 3, Color: palette.Border, Opacity: 1},   // cell (2,0), top half
		{X: 12, Y: 7, Color: palette.Filler, Opacity: 0.4}, // cell (2,0), bottom half
		{X: 27, Y: 16, Color: palette.Border, Opacity: 1},  // cell (5,1), bottom half
		{X: -3, Y: 4, Color: palette.Border, Opacity: 1},   // off screen
		{X: 60, Y: 4, Color: palette.Border, Opacity: 1},   // off screen
	}
	plotParticles(scr, particles, palette, palette.Backdrop.Color, d)

	if got := scr.Get(2, 0); got != '▀' {
		t.Errorf("cell (2,0) = %q, expected upper half block", got)
	}
	if scr.GetCell(2, 0).BG.IsDefault() {
		t.Error("cell (2,0) should carry the lower particle in its background")
	}
	if got := scr.Get(5, 1); got != '▄' {
		t.Errorf("cell (5,1) = %q, expected lower half block", got)
	}

	drawn := 0
	for y := range 5 {
		for x := range 10 {
			if scr.Get(x, y) != ' ' {
				drawn++
			}
		}
	}
	if drawn != 2 {
		t.Errorf("%d cells drawn, expected 2", drawn)
	}
}

func TestPlotParticlesStrongestWins(t *testing.T) {
	palette, _ := disintegrate.NewPalette(config.DefaultTransitionConfig().Palette)
	d := config.DefaultTransitionConfig().Display
	scr := core.NewScreen(4, 2)

	plotParticles(scr, []disintegrate.Particle{
		{X: 1, Y: 1, Color: palette.Filler, Opacity: 0.3},
		{X: 2, Y: 2, Color: palette.Border, Opacity: 0.45},
	}, palette, palette.Backdrop.Color, d)

	want := core.Color(palette.Border.Over(palette.Backdrop.Color, 0.45).Hex())
	if got := scr.GetCell(0, 0).FG; got != want {
		t.Errorf("cell color = %s, expected the more opaque particle %s", got, want)
	}
}

func TestDarken(t *testing.T) {
	scr := core.NewScreen(2, 1)
	scr.SetCell(0, 0, core.Cell{Rune: 'x', FG: "#ffffff", BG: "#ffffff"})

	darken(scr, 0.5)

	c := scr.GetCell(0, 0)
	got, err := colorful.Hex(string(c.FG))
	if err != nil {
		t.Fatalf("darkened color %q is not hex: %v", c.FG, err)
	}
	if math.Abs(got.R-0.5) > 0.01 {
		t.Errorf("darkened red = %v, expected about 0.5", got.R)
	}
	if !scr.GetCell(1, 0).FG.IsDefault() {
		t.Error("default colors should stay default")
	}
}

func TestFadeAmount(t *testing.T) {
	tests := []struct {
		frames   int
		expected float64
	}{
		{0, 0},
		{fadeRamp / 2, 0.3},
		{fadeRamp, 0.6},
		{fadeRamp * 3, 0.6},
	}
	for _, tc := range tests {
		if got := fadeAmount(tc.frames, 0.6); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("fadeAmount(%d) = %v, expected %v", tc.frames, got, tc.expected)
		}
	}
}
