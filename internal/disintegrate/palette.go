package disintegrate

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/chronoshift/internal/config"
)

// Swatch is an opaque color plus the alpha it is painted with.
type Swatch struct {
	Color colorful.Color
	Alpha float64
}

// Hex returns the swatch color as "#rrggbb", ignoring alpha.
func (s Swatch) Hex() string {
	return s.Color.Hex()
}

// Over returns the color seen when the swatch is painted over bg at the
// given opacity (multiplied by the swatch's own alpha).
func (s Swatch) Over(bg colorful.Color, opacity float64) colorful.Color {
	a := s.Alpha * opacity
	if a <= 0 {
		return bg
	}
	if a >= 1 {
		return s.Color
	}
	return bg.BlendRgb(s.Color, a).Clamped()
}

// Palette holds the colors a control is rasterized with.
type Palette struct {
	Border   Swatch // Edge cells and label ink
	Filler   Swatch // Gaps between label strokes
	Fill     Swatch // Control background
	Backdrop Swatch // Screen behind the control
}

// NewPalette parses the hex colors of a palette config.
func NewPalette(cfg config.PaletteConfig) (Palette, error) {
	var p Palette
	var err error

	if p.Border, err = parseSwatch("border", cfg.Border, 1); err != nil {
		return Palette{}, err
	}
	if p.Filler, err = parseSwatch("filler", cfg.Filler, 1); err != nil {
		return Palette{}, err
	}
	if p.Fill, err = parseSwatch("fill", cfg.Fill, cfg.FillAlpha); err != nil {
		return Palette{}, err
	}
	if p.Backdrop, err = parseSwatch("backdrop", cfg.Backdrop, 1); err != nil {
		return Palette{}, err
	}
	return p, nil
}

func parseSwatch(name, hex string, alpha float64) (Swatch, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Swatch{}, fmt.Errorf("disintegrate: palette %s color %q: %w", name, hex, err)
	}
	return Swatch{Color: c, Alpha: alpha}, nil
}
