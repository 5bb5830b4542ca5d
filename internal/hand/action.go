package hand

import (
	"fmt"
	"strings"
)

// Action is a player decision applied to a single hand
type Action int

const (
	Hit Action = iota
	Stand
	DoubleDown
	Split
	Surrender
)

// Actions lists every action in a stable order
var Actions = [...]Action{Hit, Stand, DoubleDown, Split, Surrender}

func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case DoubleDown:
		return "double"
	case Split:
		return "split"
	case Surrender:
		return "surrender"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParseAction parses an action name as printed by String
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit", "h":
		return Hit, nil
	case "stand", "s":
		return Stand, nil
	case "double", "d", "double-down":
		return DoubleDown, nil
	case "split", "p":
		return Split, nil
	case "surrender", "r":
		return Surrender, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}
