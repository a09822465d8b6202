package core

// Action represents a semantic front-end action, abstracted from physical key presses.
// This allows screens to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, K, Up arrow - move selection up
	ActionDown           // S, J, Down arrow - move selection down
	ActionLeft           // A, H, Left arrow - move selection left
	ActionRight          // D, L, Right arrow - move selection right
	ActionConfirm        // Enter, Space - press the focused control
	ActionBack           // B, Escape - go back one screen
	ActionHelp           // ? - toggle the full help view
	ActionQuit           // Q, Ctrl+C - exit the front end
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
