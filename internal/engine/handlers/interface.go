package handlers

import (
	"encoding/json"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/pkg/rng"
)

// EntityFinder resolves an entity by ID. The session implements this.
type EntityFinder interface {
	GetEntity(id string) *domain.Entity
}

// Context carries the world state a handler may read and mutate. Handlers
// receive references so their mutations land in the live simulation, and
// they draw ALL randomness from Rng so a replay can pin it.
type Context struct {
	Finder   EntityFinder
	World    *domain.GameWorld
	Entities []*domain.Entity
	Actor    *domain.Entity
	Rng      rng.Source

	// Spawn and Despawn let handlers add or remove level entities
	// without reaching into the session's bookkeeping.
	Spawn   func(e *domain.Entity)
	Despawn func(id string)
}

// Result is what a handler hands back instead of writing logs or touching
// the session directly.
type Result struct {
	Msg     string          // log text
	MsgType string          // log channel (INFO, COMBAT, ERROR)
	Event   json.RawMessage // raw event for the engine to process (level transitions etc.)
}

// HandlerFunc is the contract for any command (MOVE, ATTACK, ...).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// CheckFunc validates a raw payload without executing anything. The
// engine runs it before a command is recorded, so a malformed payload is
// rejected with no record appended.
type CheckFunc func(payload json.RawMessage) error

// Command pairs the executable handler with its payload precheck.
type Command struct {
	Handle HandlerFunc
	Check  CheckFunc
}

// EmptyResult is a successful result with nothing to report.
func EmptyResult() Result {
	return Result{}
}
