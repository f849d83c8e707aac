package core

// Action represents a semantic game action, abstracted from physical
// key presses. The platform maps keys to actions; the session never
// sees raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter/Space - start level, advance after level clear
	ActionBack           // Esc - return to the menu
	ActionRestart        // R key - retry the current level
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause simulation
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// PointerPhase classifies a pointer event within a drag gesture.
type PointerPhase int

const (
	PointerDown PointerPhase = iota // Button pressed
	PointerMove                     // Dragged while pressed
	PointerUp                       // Button released
)

// PointerEvent is a single pointer sample in world coordinates. The
// platform is responsible for converting device/cell coordinates into
// world coordinates before constructing the event.
type PointerEvent struct {
	Phase PointerPhase
	Pos   Vec2
}

// InputFrame represents the input collected during one simulation tick:
// any triggered actions plus the ordered pointer events of the frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer holds this frame's pointer events in arrival order.
	Pointer []PointerEvent
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

// AddPointer appends a pointer event to this frame.
func (f *InputFrame) AddPointer(phase PointerPhase, pos Vec2) {
	f.Pointer = append(f.Pointer, PointerEvent{Phase: phase, Pos: pos})
}

// Clear resets all actions and pointer events for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = append(clone.Pointer, f.Pointer...)
	return clone
}
