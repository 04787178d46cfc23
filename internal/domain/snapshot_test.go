package domain

import "testing"

func makeSnapshot() *Snapshot {
	return &Snapshot{
		Seed:  "test-seed",
		Turn:  3,
		Depth: 1,
		Player: Entity{
			ID: "hero_1", Type: EntityTypePlayer, Name: "Hero", Level: 1,
			Pos:    Position{X: 5, Y: 5},
			Stats:  &StatsComponent{HP: 50, MaxHP: 50, Strength: 10},
			Energy: &EnergyComponent{Speed: BaseSpeed},
			Inventory: &InventoryComponent{
				MaxSlots: 10,
				Items:    []Item{{ID: "potion_1", Name: "Potion", Category: ItemCategoryPotion, Heal: 10}},
			},
		},
		Levels: map[int]LevelSnapshot{
			1: {
				Level: 1, Width: 2, Height: 2,
				Tiles: [][]Tile{
					{{X: 0, Y: 0}, {X: 1, Y: 0, IsWall: true}},
					{{X: 0, Y: 1}, {X: 1, Y: 1}},
				},
				Entities: []Entity{
					{
						ID: "goblin_1", Type: EntityTypeEnemy, Name: "Goblin", Level: 1,
						Pos:    Position{X: 0, Y: 1},
						Stats:  &StatsComponent{HP: 10, MaxHP: 10, Strength: 3},
						Energy: &EnergyComponent{Speed: BaseSpeed, IsHostile: true},
					},
				},
			},
		},
	}
}

func TestSnapshot_CloneIsDeep(t *testing.T) {
	orig := makeSnapshot()
	cp := orig.Clone()

	// Mutate every mutable layer of the copy.
	cp.Player.Stats.HP = 1
	cp.Player.Inventory.Items[0].Heal = 999
	lvl := cp.Levels[1]
	lvl.Tiles[0][0].IsWall = true
	lvl.Entities[0].Stats.HP = 0
	lvl.Entities[0].Stats.IsDead = true

	if orig.Player.Stats.HP != 50 {
		t.Error("clone shares player stats with original")
	}
	if orig.Player.Inventory.Items[0].Heal != 10 {
		t.Error("clone shares inventory items with original")
	}
	if orig.Levels[1].Tiles[0][0].IsWall {
		t.Error("clone shares tiles with original")
	}
	if orig.Levels[1].Entities[0].Stats.IsDead {
		t.Error("clone shares level entities with original")
	}
}

func TestSnapshot_CloneTwiceIndependent(t *testing.T) {
	orig := makeSnapshot()
	a := orig.Clone()
	b := orig.Clone()

	a.Player.Pos.X = 100
	a.Levels[1].Entities[0].Pos.Y = 100

	if b.Player.Pos.X != 5 {
		t.Error("two clones share player state")
	}
	if b.Levels[1].Entities[0].Pos.Y != 1 {
		t.Error("two clones share entity state")
	}
}

func TestEntity_CloneNil(t *testing.T) {
	var e *Entity
	if e.Clone() != nil {
		t.Error("cloning nil entity should yield nil")
	}
}
