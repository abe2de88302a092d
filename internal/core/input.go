package core

// Action represents a semantic preview action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionPause             // Space, P - pause/resume frame production
	ActionStep              // N - advance one frame while paused
	ActionRestart           // R - rerun setup and start over
	ActionFaster            // + - raise the frame rate
	ActionSlower            // - - lower the frame rate
	ActionScreenshot        // S - save the current frame
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // Escape - go back to menu
	ActionQuit              // Q, Ctrl+C - exit preview
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionRestart:
		return "Restart"
	case ActionFaster:
		return "Faster"
	case ActionSlower:
		return "Slower"
	case ActionScreenshot:
		return "Screenshot"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two frames.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
