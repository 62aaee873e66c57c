package input

// Direction is the held state of the four directional keys.
type Direction struct {
	Up, Down, Left, Right bool
}

// Any reports whether at least one direction is held.
func (d Direction) Any() bool {
	return d.Up || d.Down || d.Left || d.Right
}

// Action is a discrete, edge-triggered input event.
type Action int

const (
	ActionFireStart   Action = iota // Fire key went down
	ActionFireStop                  // Fire key went up
	ActionConfirm                   // Start / retry
	ActionPauseToggle               // Pause or resume
	ActionMenu                      // Return to the menu
	ActionQuit                      // Leave the program
)

// String returns the action name used in logs and on the wire.
func (a Action) String() string {
	switch a {
	case ActionFireStart:
		return "fire-start"
	case ActionFireStop:
		return "fire-stop"
	case ActionConfirm:
		return "confirm"
	case ActionPauseToggle:
		return "pause-toggle"
	case ActionMenu:
		return "menu"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Frame is what the simulation consumes each frame: held directions plus
// the actions that fired since the previous frame.
type Frame struct {
	Direction Direction
	Actions   []Action
}

// Tracker derives edge-triggered actions from successive level states.
// The zero value is ready to use.
type Tracker struct {
	fire   bool
	enter  bool
	escape bool
	menu   bool
	quit   bool
}

// Track converts a terminal Input snapshot into a Frame.
func (t *Tracker) Track(in Input) Frame {
	f := Frame{Direction: in.Direction()}

	if in.Space != t.fire {
		if in.Space {
			f.Actions = append(f.Actions, ActionFireStart)
		} else {
			f.Actions = append(f.Actions, ActionFireStop)
		}
		t.fire = in.Space
	}
	if rising(&t.enter, in.Enter) {
		f.Actions = append(f.Actions, ActionConfirm)
	}
	if rising(&t.escape, in.Escape) {
		f.Actions = append(f.Actions, ActionPauseToggle)
	}
	if rising(&t.menu, in.Menu) {
		f.Actions = append(f.Actions, ActionMenu)
	}
	if rising(&t.quit, in.Quit) {
		f.Actions = append(f.Actions, ActionQuit)
	}
	return f
}

// Reset forgets previously held keys.
func (t *Tracker) Reset() {
	*t = Tracker{}
}

func rising(prev *bool, now bool) bool {
	fired := now && !*prev
	*prev = now
	return fired
}

// Keys is a level-triggered key map for devices that report releases
// (e.g. a browser), keyed by DOM KeyboardEvent.code values.
type Keys struct {
	held map[string]bool
}

// NewKeys returns an empty key map.
func NewKeys() *Keys {
	return &Keys{held: make(map[string]bool)}
}

// Apply records a key transition and returns the action it triggers, if any.
func (k *Keys) Apply(code string, down bool) (Action, bool) {
	was := k.held[code]
	k.held[code] = down
	if was == down {
		return 0, false
	}

	switch code {
	case "Space":
		if down {
			return ActionFireStart, true
		}
		return ActionFireStop, true
	case "Enter":
		if down {
			return ActionConfirm, true
		}
	case "Escape":
		if down {
			return ActionPauseToggle, true
		}
	case "KeyM":
		if down {
			return ActionMenu, true
		}
	}
	return 0, false
}

// Direction reports the held arrow / WASD keys.
func (k *Keys) Direction() Direction {
	return Direction{
		Up:    k.held["ArrowUp"] || k.held["KeyW"],
		Down:  k.held["ArrowDown"] || k.held["KeyS"],
		Left:  k.held["ArrowLeft"] || k.held["KeyA"],
		Right: k.held["ArrowRight"] || k.held["KeyD"],
	}
}

// Release clears all held keys, e.g. when the browser tab loses focus.
func (k *Keys) Release() []Action {
	var actions []Action
	if k.held["Space"] {
		actions = append(actions, ActionFireStop)
	}
	clear(k.held)
	return actions
}
