package engine

import (
	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/internal/engine/handlers"
	"github.com/dirkkok101/roguelike-sub009/internal/engine/handlers/actions"
)

// buildRegistry wires every command kind to its handler. The registry is
// closed: a kind missing here is an UnknownCommandKind error at dispatch
// time, for live commands and replayed records alike.
func buildRegistry() map[domain.ActionType]handlers.Command {
	return map[domain.ActionType]handlers.Command{
		domain.ActionInit:     handlers.WithEmptyPayload(actions.HandleInit),
		domain.ActionMove:     handlers.WithPayload(actions.HandleMove),
		domain.ActionAttack:   handlers.WithPayload(actions.HandleAttack),
		domain.ActionWait:     handlers.WithEmptyPayload(actions.HandleWait),
		domain.ActionPickup:   handlers.WithPayload(actions.HandlePickup),
		domain.ActionDrop:     handlers.WithPayload(actions.HandleDrop),
		domain.ActionInteract: handlers.WithPayload(actions.HandleInteract),
	}
}
