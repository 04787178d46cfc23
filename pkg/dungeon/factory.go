package dungeon

import (
	"fmt"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/pkg/rng"
)

// CreatePlayer builds the controlled entity with its starting gear.
func CreatePlayer(id, name string, pos domain.Position) *domain.Entity {
	return &domain.Entity{
		ID:    id,
		Type:  domain.EntityTypePlayer,
		Name:  name,
		Level: 1,
		Pos:   pos,

		Render: &domain.RenderComponent{Symbol: "@", Color: "#22D3EE"},
		Stats:  &domain.StatsComponent{HP: 50, MaxHP: 50, Strength: 10, Gold: 0},
		Energy: &domain.EnergyComponent{Speed: domain.BaseSpeed},
		Inventory: &domain.InventoryComponent{
			MaxSlots: 10,
			Items: []domain.Item{
				{
					ID: "rusty_sword", Name: "Rusty sword", Symbol: "/", Color: "#9CA3AF",
					Category: domain.ItemCategoryWeapon, DamageDice: "1d6", Value: 5,
				},
			},
		},
	}
}

// spawnEnemy rolls one enemy for a room. Deeper levels breed orcs.
func spawnEnemy(level, room, x, y int, src rng.Source) domain.Entity {
	isOrc := level > 3 || src.Chance(0.3)

	hp := 8 + level*2
	enemy := domain.Entity{
		ID:    fmt.Sprintf("enemy_%d_%d", level, room),
		Type:  domain.EntityTypeEnemy,
		Level: level,
		Pos:   domain.Position{X: x, Y: y},
		Stats: &domain.StatsComponent{
			HP: hp, MaxHP: hp,
			Strength: 3 + level/2,
		},
		Energy: &domain.EnergyComponent{Speed: domain.BaseSpeed, IsHostile: true},
	}

	if isOrc {
		enemy.Name = "Orc"
		enemy.Render = &domain.RenderComponent{Symbol: "O", Color: "#DC2626"}
		enemy.Stats.HP *= 2
		enemy.Stats.MaxHP *= 2
		enemy.Stats.Strength += 2
		// Orcs hit hard but lumber: two ticks per action.
		enemy.Energy.Speed = domain.BaseSpeed / 2
	} else {
		enemy.Name = "Goblin"
		enemy.Render = &domain.RenderComponent{Symbol: "g", Color: "#22C55E"}
	}
	return enemy
}

// spawnLoot rolls one floor item for a room.
func spawnLoot(level, room, x, y int, src rng.Source) domain.Entity {
	id := fmt.Sprintf("loot_%d_%d", level, room)

	var item domain.Item
	switch {
	case src.Chance(0.4):
		item = domain.Item{
			ID: id, Name: "Gold pile", Symbol: "$", Color: "#FACC15",
			Category: domain.ItemCategoryGold, Value: src.NextInt(5, 20+level*5),
		}
	case src.Chance(0.5):
		item = domain.Item{
			ID: id, Name: "Health potion", Symbol: "!", Color: "#F87171",
			Category: domain.ItemCategoryPotion, Heal: 10, Value: 15,
		}
	default:
		item = domain.Item{
			ID: id, Name: "Iron sword", Symbol: "/", Color: "#D1D5DB",
			Category: domain.ItemCategoryWeapon, DamageDice: "2d4", Value: 30,
		}
	}

	return domain.Entity{
		ID:     "floor_" + id,
		Type:   domain.EntityTypeItem,
		Name:   item.Name,
		Level:  level,
		Pos:    domain.Position{X: x, Y: y},
		Render: &domain.RenderComponent{Symbol: item.Symbol, Color: item.Color},
		Item:   &item,
	}
}
