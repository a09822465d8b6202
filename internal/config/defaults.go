package config

import (
	_ "embed"
)

//go:embed defaults/transition.yaml
var defaultTransitionYAML []byte

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// DefaultTransitionConfig returns the default transition configuration.
func DefaultTransitionConfig() TransitionConfig {
	return TransitionConfig{
		Raster: RasterConfig{
			Pitch:       5,
			SpeedMin:    1.5,
			SpeedMax:    5.0,
			EdgeBoost:   1.5,
			Jitter:      2.0,
			UpwardKick:  1.5,
			FrictionMin: 0.96,
			FrictionMax: 0.98,
			Label: LabelRegion{
				Left:   0.15,
				Right:  0.85,
				Top:    0.2,
				Bottom: 0.8,
			},
		},
		Physics: PhysicsConfig{
			Gravity:             0.04,
			Decay:               0.006, // ~160 ticks to fade out
			VisibilityThreshold: 0.05,
			SettleThreshold:     0.3,
		},
		Schedule: ScheduleConfig{
			LeadFrames: 1,
		},
		Palette: PaletteConfig{
			Border:    "#b44cff",
			Filler:    "#2a1540",
			Fill:      "#280f3c",
			FillAlpha: 0.9,
			Backdrop:  "#08060e",
		},
		Display: DisplayConfig{
			CellWidth:   5,
			CellHeight:  10, // terminal cells are about twice as tall as wide
			FadeOverlay: 0.6,
			Scanlines:   true,
		},
	}
}

// DefaultLevelsConfig returns the built-in level list.
func DefaultLevelsConfig() LevelsConfig {
	return LevelsConfig{
		Levels: []LevelConfig{
			{ID: "first-shift", Name: "FIRST SHIFT", Subtitle: "Learn to outrun yourself", Difficulty: DifficultyEasy, Color: "#39ff88"},
			{ID: "echo-vault", Name: "ECHO VAULT", Subtitle: "Your shadow knows the way", Difficulty: DifficultyMedium, Color: "#38bdf8"},
			{ID: "paradox-spire", Name: "PARADOX SPIRE", Subtitle: "Every step is already taken", Difficulty: DifficultyHard, Color: "#b44cff"},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a config file name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "transition":
		return defaultTransitionYAML
	case "levels":
		return defaultLevelsYAML
	default:
		return nil
	}
}
