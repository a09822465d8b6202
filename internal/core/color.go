package core

// Color is a foreground or background color for a screen cell, written as a
// "#rrggbb" hex string. The empty string leaves the terminal default in place.
type Color string

// ColorDefault keeps the terminal's own color.
const ColorDefault Color = ""

// Palette shared by the screens.
const (
	ColorNeonPurple Color = "#b44cff"
	ColorNeonGreen  Color = "#39ff88"
	ColorNeonBlue   Color = "#38bdf8"
	ColorBackdrop   Color = "#08060e"
	ColorMuted      Color = "#6b6380"
	ColorForeground Color = "#e6e1f0"
)

// IsDefault reports whether c leaves the terminal color untouched.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}
