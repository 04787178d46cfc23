package replay

import (
	"fmt"
	"sort"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
)

// DesyncError is one field-level divergence between a reconstructed
// state and the expected state.
type DesyncError struct {
	Turn      int    `json:"turn"`
	FieldPath string `json:"fieldPath"`
	Expected  string `json:"expected"`
	Actual    string `json:"actual"`
}

// DesyncReport is the validator's output. A mismatch is data, not an
// error: it means game logic drifted from what the log was recorded
// against, and every divergence is listed for inspection.
type DesyncReport struct {
	Valid      bool          `json:"valid"`
	Mismatches []DesyncError `json:"mismatches"`
}

// Validate compares a reconstructed state against an independently
// captured expected state, field by field, in a fixed order: player
// vitals, player position, player inventory, per-level entity rosters
// (sorted by entity ID), then global counters. Every inequality becomes
// one DesyncError.
func Validate(reconstructed, expected *domain.Snapshot) *DesyncReport {
	v := &validator{turn: expected.Turn}

	v.compareEntity("player", &reconstructed.Player, &expected.Player)

	levelIDs := unionLevelIDs(reconstructed, expected)
	for _, id := range levelIDs {
		rl, rok := reconstructed.Levels[id]
		el, eok := expected.Levels[id]
		path := fmt.Sprintf("levels[%d]", id)
		if rok != eok {
			v.add(path, presence(eok), presence(rok))
			continue
		}
		v.compareLevel(path, rl, el)
	}

	v.check("turn", reconstructed.Turn, expected.Turn)
	v.check("depth", reconstructed.Depth, expected.Depth)
	v.check("seed", reconstructed.Seed, expected.Seed)

	return &DesyncReport{
		Valid:      len(v.mismatches) == 0,
		Mismatches: v.mismatches,
	}
}

type validator struct {
	turn       int
	mismatches []DesyncError
}

func (v *validator) add(path string, expected, actual string) {
	v.mismatches = append(v.mismatches, DesyncError{
		Turn:      v.turn,
		FieldPath: path,
		Expected:  expected,
		Actual:    actual,
	})
}

func (v *validator) check(path string, actual, expected interface{}) {
	a := fmt.Sprintf("%v", actual)
	e := fmt.Sprintf("%v", expected)
	if a != e {
		v.add(path, e, a)
	}
}

func (v *validator) compareEntity(path string, actual, expected *domain.Entity) {
	v.check(path+".id", actual.ID, expected.ID)
	v.check(path+".type", actual.Type, expected.Type)
	v.check(path+".level", actual.Level, expected.Level)

	// Vitals first, then position: the two fields that drift soonest
	// when combat or movement logic changes.
	v.compareStats(path+".stats", actual.Stats, expected.Stats)
	v.check(path+".pos.x", actual.Pos.X, expected.Pos.X)
	v.check(path+".pos.y", actual.Pos.Y, expected.Pos.Y)

	v.compareEnergy(path+".energy", actual.Energy, expected.Energy)
	v.compareInventory(path+".inventory", actual.Inventory, expected.Inventory)
}

func (v *validator) compareStats(path string, actual, expected *domain.StatsComponent) {
	if (actual == nil) != (expected == nil) {
		v.add(path, presence(expected != nil), presence(actual != nil))
		return
	}
	if actual == nil {
		return
	}
	v.check(path+".hp", actual.HP, expected.HP)
	v.check(path+".maxHp", actual.MaxHP, expected.MaxHP)
	v.check(path+".strength", actual.Strength, expected.Strength)
	v.check(path+".gold", actual.Gold, expected.Gold)
	v.check(path+".isDead", actual.IsDead, expected.IsDead)
}

func (v *validator) compareEnergy(path string, actual, expected *domain.EnergyComponent) {
	if (actual == nil) != (expected == nil) {
		v.add(path, presence(expected != nil), presence(actual != nil))
		return
	}
	if actual == nil {
		return
	}
	v.check(path+".energy", actual.Energy, expected.Energy)
	v.check(path+".speed", actual.Speed, expected.Speed)
}

func (v *validator) compareInventory(path string, actual, expected *domain.InventoryComponent) {
	if (actual == nil) != (expected == nil) {
		v.add(path, presence(expected != nil), presence(actual != nil))
		return
	}
	if actual == nil {
		return
	}
	v.check(path+".maxSlots", actual.MaxSlots, expected.MaxSlots)
	if len(actual.Items) != len(expected.Items) {
		v.check(path+".items.count", len(actual.Items), len(expected.Items))
		return
	}
	for i := range expected.Items {
		ip := fmt.Sprintf("%s.items[%d]", path, i)
		v.check(ip+".id", actual.Items[i].ID, expected.Items[i].ID)
		v.check(ip+".name", actual.Items[i].Name, expected.Items[i].Name)
		v.check(ip+".category", actual.Items[i].Category, expected.Items[i].Category)
	}
}

func (v *validator) compareLevel(path string, actual, expected domain.LevelSnapshot) {
	v.check(path+".width", actual.Width, expected.Width)
	v.check(path+".height", actual.Height, expected.Height)

	actualByID := entitiesByID(actual.Entities)
	expectedByID := entitiesByID(expected.Entities)

	ids := make([]string, 0, len(expectedByID))
	for id := range expectedByID {
		ids = append(ids, id)
	}
	for id := range actualByID {
		if _, ok := expectedByID[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	for _, id := range ids {
		ep := fmt.Sprintf("%s.entities[%s]", path, id)
		ae, aok := actualByID[id]
		ee, eok := expectedByID[id]
		if aok != eok {
			v.add(ep, presence(eok), presence(aok))
			continue
		}
		v.compareEntity(ep, ae, ee)
	}
}

func entitiesByID(entities []domain.Entity) map[string]*domain.Entity {
	out := make(map[string]*domain.Entity, len(entities))
	for i := range entities {
		out[entities[i].ID] = &entities[i]
	}
	return out
}

func presence(ok bool) string {
	if ok {
		return "present"
	}
	return "absent"
}

func unionLevelIDs(a, b *domain.Snapshot) []int {
	seen := make(map[int]bool)
	for id := range a.Levels {
		seen[id] = true
	}
	for id := range b.Levels {
		seen[id] = true
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
