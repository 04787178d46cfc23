package domain

import "encoding/json"

// InternalCommand is the engine-side form of a client command.
// Uses ActionType instead of a string tag.
type InternalCommand struct {
	Action  ActionType
	Token   string          // ID of the acting entity
	Payload json.RawMessage // raw data, parsed by the handler
}
