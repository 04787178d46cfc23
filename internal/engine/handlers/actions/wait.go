package actions

import (
	"github.com/dirkkok101/roguelike-sub009/internal/engine/handlers"
)

// HandleWait burns the turn doing nothing.
func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.EmptyResult(), nil
}
