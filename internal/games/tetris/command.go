package tetris

// Command is a player input understood by the session.
type Command int

const (
	RotateLeft Command = iota
	RotateRight
	MoveLeft
	MoveRight
	SoftDrop
	HardDrop
	Hold
	TogglePause
)

var commandNames = map[Command]string{
	RotateLeft:  "rotate_left",
	RotateRight: "rotate_right",
	MoveLeft:    "move_left",
	MoveRight:   "move_right",
	SoftDrop:    "soft_drop",
	HardDrop:    "hard_drop",
	Hold:        "hold",
	TogglePause: "toggle_pause",
}

// Commands returns every command in declaration order.
func Commands() []Command {
	return []Command{RotateLeft, RotateRight, MoveLeft, MoveRight, SoftDrop, HardDrop, Hold, TogglePause}
}

// String returns the snake_case name used in configuration files.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand resolves a snake_case command name.
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

// EventKind tags the messages consumed by the event loop.
type EventKind int

const (
	EventCommand   EventKind = iota // Player input
	EventGravity                    // Gravity timer fired
	EventLock                       // Lock delay expired
	EventFocusLost                  // Terminal lost focus
	EventRestart                    // Start a fresh game
)

func (k EventKind) String() string {
	switch k {
	case EventCommand:
		return "command"
	case EventGravity:
		return "gravity"
	case EventLock:
		return "lock"
	case EventFocusLost:
		return "focus_lost"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is one message for the session. Command is only meaningful for
// EventCommand.
type Event struct {
	Kind    EventKind
	Command Command

	gen uint64 // timer generation that produced the event
}

// CommandEvent wraps c in an Event.
func CommandEvent(c Command) Event {
	return Event{Kind: EventCommand, Command: c}
}
