package game

// Command is a discrete request handled by the game loop.
type Command uint8

const (
	CommandNone Command = iota
	CommandLeft
	CommandRight
	CommandRotate
	CommandSoftDrop
	CommandHardDrop
	// CommandTick is gravity; it is produced by the loop's ticker, not by
	// players.
	CommandTick
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandLeft:
		return "left"
	case CommandRight:
		return "right"
	case CommandRotate:
		return "rotate"
	case CommandSoftDrop:
		return "soft-drop"
	case CommandHardDrop:
		return "hard-drop"
	case CommandTick:
		return "tick"
	default:
		return "unknown"
	}
}

// Player reports whether c is one of the five player commands.
func (c Command) Player() bool {
	return c >= CommandLeft && c <= CommandHardDrop
}

// Outcome describes what a command did to the state.
type Outcome struct {
	Moved    bool
	Locked   bool
	Rows     int
	SpedUp   bool
	GameOver bool
	// Steps is the number of gravity steps a hard drop took, lock included.
	Steps int
}

func (o *Outcome) merge(other Outcome) {
	o.Moved = o.Moved || other.Moved
	o.Locked = o.Locked || other.Locked
	o.Rows += other.Rows
	o.SpedUp = o.SpedUp || other.SpedUp
	o.GameOver = o.GameOver || other.GameOver
}
