package actions

import (
	"fmt"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/internal/engine/handlers"
	"github.com/dirkkok101/roguelike-sub009/pkg/api"
)

// HandleDrop places an inventory item back on the floor at the actor's
// feet as a fresh item entity.
func HandleDrop(ctx handlers.Context, p api.ItemPayload) (handlers.Result, error) {
	inv := ctx.Actor.Inventory
	if inv == nil {
		return handlers.Result{Msg: "You have nothing to drop.", MsgType: "ERROR"}, nil
	}

	idx := -1
	for i := range inv.Items {
		if inv.Items[i].ID == p.ItemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return handlers.Result{Msg: "You are not carrying that.", MsgType: "ERROR"}, nil
	}

	item := inv.Items[idx]
	inv.Items = append(inv.Items[:idx], inv.Items[idx+1:]...)

	dropped := &domain.Entity{
		ID:     "floor_" + item.ID,
		Type:   domain.EntityTypeItem,
		Name:   item.Name,
		Level:  ctx.Actor.Level,
		Pos:    ctx.Actor.Pos,
		Render: &domain.RenderComponent{Symbol: item.Symbol, Color: item.Color},
		Item:   &item,
	}
	ctx.Spawn(dropped)

	return handlers.Result{
		Msg:     fmt.Sprintf("%s drops %s.", ctx.Actor.Name, item.Name),
		MsgType: "INFO",
	}, nil
}
