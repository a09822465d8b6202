// Package config provides YAML-based configuration loading for the
// disintegration transition and the level-select screen.
package config

import (
	"errors"
	"fmt"
	"math"
)

// TransitionConfig contains all configuration for the button disintegration effect.
type TransitionConfig struct {
	Raster   RasterConfig   `yaml:"raster"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Palette  PaletteConfig  `yaml:"palette"`
	Display  DisplayConfig  `yaml:"display"`
}

// RasterConfig defines how a control is broken into particles.
type RasterConfig struct {
	Pitch       float64     `yaml:"pitch"`        // Grid spacing between particle centers
	SpeedMin    float64     `yaml:"speed_min"`    // Lower bound of the radial launch speed
	SpeedMax    float64     `yaml:"speed_max"`    // Upper bound of the radial launch speed
	EdgeBoost   float64     `yaml:"edge_boost"`   // Speed multiplier for border cells
	Jitter      float64     `yaml:"jitter"`       // Span of the horizontal random jitter
	UpwardKick  float64     `yaml:"upward_kick"`  // Maximum extra upward velocity
	FrictionMin float64     `yaml:"friction_min"` // Lower bound of per-particle friction
	FrictionMax float64     `yaml:"friction_max"` // Upper bound of per-particle friction
	Label       LabelRegion `yaml:"label"`
}

// LabelRegion is the text area of a control as fractions of its size.
type LabelRegion struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

// PhysicsConfig defines per-tick particle physics.
type PhysicsConfig struct {
	Gravity             float64 `yaml:"gravity"`              // Added to vy every tick
	Decay               float64 `yaml:"decay"`                // Opacity lost every tick
	VisibilityThreshold float64 `yaml:"visibility_threshold"` // At or below this a particle is dead
	SettleThreshold     float64 `yaml:"settle_threshold"`     // Mean |vx|+|vy| that starts the fade
}

// ScheduleConfig defines frame scheduling of a run.
type ScheduleConfig struct {
	LeadFrames int `yaml:"lead_frames"` // Idle frames before the first physics tick
}

// PaletteConfig defines the control's colors as hex strings.
type PaletteConfig struct {
	Border    string  `yaml:"border"`     // Outline and label ink
	Filler    string  `yaml:"filler"`     // Dark gaps between label strokes
	Fill      string  `yaml:"fill"`       // Control background
	FillAlpha float64 `yaml:"fill_alpha"` // Translucency of the background
	Backdrop  string  `yaml:"backdrop"`   // Screen background particles blend into
}

// DisplayConfig defines how effect units map onto terminal cells.
type DisplayConfig struct {
	CellWidth   float64 `yaml:"cell_width"`   // Units per terminal column
	CellHeight  float64 `yaml:"cell_height"`  // Units per terminal row
	FadeOverlay float64 `yaml:"fade_overlay"` // Darkening applied while fading (0..1)
	Scanlines   bool    `yaml:"scanlines"`    // Dim every other row
}

// Validate checks that the configuration can drive a run.
func (c TransitionConfig) Validate() error {
	var errs []error
	r := c.Raster
	p := c.Physics
	d := c.Display
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"raster.pitch", r.Pitch},
		{"raster.speed_min", r.SpeedMin},
		{"raster.speed_max", r.SpeedMax},
		{"raster.edge_boost", r.EdgeBoost},
		{"raster.jitter", r.Jitter},
		{"raster.upward_kick", r.UpwardKick},
		{"raster.friction_min", r.FrictionMin},
		{"raster.friction_max", r.FrictionMax},
		{"raster.label.left", r.Label.Left},
		{"raster.label.right", r.Label.Right},
		{"raster.label.top", r.Label.Top},
		{"raster.label.bottom", r.Label.Bottom},
		{"physics.gravity", p.Gravity},
		{"physics.decay", p.Decay},
		{"physics.visibility_threshold", p.VisibilityThreshold},
		{"physics.settle_threshold", p.SettleThreshold},
		{"palette.fill_alpha", c.Palette.FillAlpha},
		{"display.cell_width", d.CellWidth},
		{"display.cell_height", d.CellHeight},
		{"display.fade_overlay", d.FadeOverlay},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite, got %v", f.name, f.value))
		}
	}

	// Particles are pitch-1 units wide
	if !(r.Pitch > 1) {
		errs = append(errs, fmt.Errorf("raster.pitch must be greater than 1, got %v", r.Pitch))
	}
	if r.SpeedMin < 0 || r.SpeedMax < r.SpeedMin {
		errs = append(errs, fmt.Errorf("raster speed range [%v, %v] is invalid", r.SpeedMin, r.SpeedMax))
	}
	if r.EdgeBoost <= 0 {
		errs = append(errs, fmt.Errorf("raster.edge_boost must be positive, got %v", r.EdgeBoost))
	}
	if r.FrictionMin <= 0 || r.FrictionMax >= 1 || r.FrictionMax < r.FrictionMin {
		errs = append(errs, fmt.Errorf("raster friction band [%v, %v] must lie inside (0, 1)", r.FrictionMin, r.FrictionMax))
	}
	if l := r.Label; l.Left < 0 || l.Right > 1 || l.Left > l.Right || l.Top < 0 || l.Bottom > 1 || l.Top > l.Bottom {
		errs = append(errs, fmt.Errorf("raster.label region %+v must be ordered fractions in [0, 1]", l))
	}

	if p.Decay <= 0 {
		errs = append(errs, fmt.Errorf("physics.decay must be positive, got %v", p.Decay))
	}
	if p.VisibilityThreshold < 0 || p.VisibilityThreshold >= 1 {
		errs = append(errs, fmt.Errorf("physics.visibility_threshold must be in [0, 1), got %v", p.VisibilityThreshold))
	}
	if p.SettleThreshold < 0 {
		errs = append(errs, fmt.Errorf("physics.settle_threshold must not be negative, got %v", p.SettleThreshold))
	}

	if c.Schedule.LeadFrames < 0 {
		errs = append(errs, fmt.Errorf("schedule.lead_frames must not be negative, got %d", c.Schedule.LeadFrames))
	}
	if c.Palette.FillAlpha < 0 || c.Palette.FillAlpha > 1 {
		errs = append(errs, fmt.Errorf("palette.fill_alpha must be in [0, 1], got %v", c.Palette.FillAlpha))
	}

	if d.CellWidth <= 0 || d.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("display cell size %vx%v must be positive", d.CellWidth, d.CellHeight))
	}
	if d.FadeOverlay < 0 || d.FadeOverlay > 1 {
		errs = append(errs, fmt.Errorf("display.fade_overlay must be in [0, 1], got %v", d.FadeOverlay))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid transition config: %w", errors.Join(errs...))
	}
	return nil
}

// LevelsConfig lists the levels offered on the level-select screen.
type LevelsConfig struct {
	Levels []LevelConfig `yaml:"levels"`
}

// LevelConfig describes one level card.
type LevelConfig struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	Subtitle   string     `yaml:"subtitle"`
	Difficulty Difficulty `yaml:"difficulty"`
	Color      string     `yaml:"color"` // Accent color as hex
}

// Validate checks the level list.
func (c LevelsConfig) Validate() error {
	if len(c.Levels) == 0 {
		return errors.New("config: no levels defined")
	}
	seen := make(map[string]bool, len(c.Levels))
	for i, l := range c.Levels {
		if l.ID == "" {
			return fmt.Errorf("config: level %d has no id", i+1)
		}
		if seen[l.ID] {
			return fmt.Errorf("config: duplicate level id %q", l.ID)
		}
		seen[l.ID] = true
		if !l.Difficulty.Valid() {
			return fmt.Errorf("config: level %q has unknown difficulty %q", l.ID, l.Difficulty)
		}
	}
	return nil
}

// Index returns the position of the level with the given id, or -1.
func (c LevelsConfig) Index(id string) int {
	for i, l := range c.Levels {
		if l.ID == id {
			return i
		}
	}
	return -1
}
