package actions

import (
	"github.com/dirkkok101/roguelike-sub009/internal/engine/handlers"
)

// HandleInit is the system command that attaches a client to its entity.
// It mutates nothing and consumes no energy, so it is never recorded in
// the replay log.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "You descend into the dungeon.",
		MsgType: "INFO",
	}, nil
}
