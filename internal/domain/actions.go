package domain

import "strings"

// ActionType is the internal numeric identifier of a command kind.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionAttack
	ActionWait
	ActionPickup
	ActionDrop
	ActionInteract
)

// JSON -> domain mapping.
var actionStringToCmd = map[string]ActionType{
	"INIT":     ActionInit,
	"MOVE":     ActionMove,
	"ATTACK":   ActionAttack,
	"WAIT":     ActionWait,
	"PICKUP":   ActionPickup,
	"DROP":     ActionDrop,
	"INTERACT": ActionInteract,
}

// Domain -> string mapping, for logs and the replay record's kind tag.
var actionCmdToString = map[ActionType]string{
	ActionInit:     "INIT",
	ActionMove:     "MOVE",
	ActionAttack:   "ATTACK",
	ActionWait:     "WAIT",
	ActionPickup:   "PICKUP",
	ActionDrop:     "DROP",
	ActionInteract: "INTERACT",
}

// ParseAction converts a wire string into an ActionType.
// Case-insensitive for robustness.
func ParseAction(s string) ActionType {
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String implements fmt.Stringer.
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
