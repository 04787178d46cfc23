package actions

import (
	"fmt"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/internal/engine/handlers"
	"github.com/dirkkok101/roguelike-sub009/pkg/api"
)

// HandlePickup moves a floor item into the actor's inventory. Gold goes
// straight to the purse and takes no slot.
func HandlePickup(ctx handlers.Context, p api.PickupPayload) (handlers.Result, error) {
	if ctx.Actor.Inventory == nil {
		return handlers.Result{Msg: "You cannot carry anything.", MsgType: "ERROR"}, nil
	}

	var found *domain.Entity
	for _, e := range ctx.World.GetEntitiesAt(ctx.Actor.Pos.X, ctx.Actor.Pos.Y) {
		if e.Type != domain.EntityTypeItem || e.Item == nil {
			continue
		}
		if p.ItemID == "" || e.Item.ID == p.ItemID {
			found = e
			break
		}
	}
	if found == nil {
		return handlers.Result{Msg: "There is nothing here to pick up.", MsgType: "ERROR"}, nil
	}

	item := *found.Item

	if item.Category == domain.ItemCategoryGold {
		if ctx.Actor.Stats != nil {
			ctx.Actor.Stats.Gold += item.Value
		}
		ctx.Despawn(found.ID)
		return handlers.Result{
			Msg:     fmt.Sprintf("%s picks up %d gold.", ctx.Actor.Name, item.Value),
			MsgType: "INFO",
		}, nil
	}

	inv := ctx.Actor.Inventory
	if len(inv.Items) >= inv.MaxSlots {
		return handlers.Result{Msg: "Your pack is full.", MsgType: "ERROR"}, nil
	}

	inv.Items = append(inv.Items, item)
	ctx.Despawn(found.ID)

	return handlers.Result{
		Msg:     fmt.Sprintf("%s picks up %s.", ctx.Actor.Name, item.Name),
		MsgType: "INFO",
	}, nil
}
