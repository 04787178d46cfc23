package systems

import (
	"strings"
	"testing"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/pkg/rng"
)

func fighter(id string, hp, strength int) *domain.Entity {
	return &domain.Entity{
		ID: id, Name: id, Type: domain.EntityTypeEnemy,
		Stats: &domain.StatsComponent{HP: hp, MaxHP: hp, Strength: strength},
	}
}

func TestApplyAttack_WeaponDice(t *testing.T) {
	attacker := fighter("hero", 20, 10)
	attacker.Inventory = &domain.InventoryComponent{
		MaxSlots: 10,
		Items: []domain.Item{
			{ID: "sword_1", Name: "Sword", Category: domain.ItemCategoryWeapon, DamageDice: "1d6"},
		},
	}
	target := fighter("orc", 10, 5)

	// One die, scripted to roll a 4.
	msg, died := ApplyAttack(attacker, target, rng.NewScripted(4))
	if died {
		t.Fatal("4 damage against 10 HP reported a kill")
	}
	if target.Stats.HP != 6 {
		t.Errorf("target HP = %d, want 6", target.Stats.HP)
	}
	if !strings.Contains(msg, "for 4") {
		t.Errorf("message %q does not carry the damage value", msg)
	}
}

func TestApplyAttack_UnarmedUsesStrength(t *testing.T) {
	attacker := fighter("brawler", 20, 9) // unarmed cap strength/3 = 3
	target := fighter("rat", 10, 2)

	ApplyAttack(attacker, target, rng.NewScripted(7)) // clamps to 3
	if target.Stats.HP != 7 {
		t.Errorf("target HP = %d, want 7 (damage clamped to strength/3)", target.Stats.HP)
	}
}

func TestApplyAttack_KillingBlow(t *testing.T) {
	attacker := fighter("hero", 20, 10)
	target := fighter("goblin", 3, 4)

	msg, died := ApplyAttack(attacker, target, rng.NewScripted(3))
	if !died {
		t.Fatal("lethal damage not reported as a kill")
	}
	if !target.Stats.IsDead {
		t.Error("target not flagged dead")
	}
	if target.Stats.HP != 0 {
		t.Errorf("HP = %d, want 0 floor", target.Stats.HP)
	}
	if !strings.Contains(msg, "kills") {
		t.Errorf("kill message = %q", msg)
	}
}

func TestApplyAttack_CorpseIsNoOp(t *testing.T) {
	attacker := fighter("hero", 20, 10)
	target := fighter("goblin", 5, 4)
	target.Stats.IsDead = true
	target.Stats.HP = 0

	// No scripted values: a corpse swing must not draw randomness.
	_, died := ApplyAttack(attacker, target, rng.NewScripted())
	if died {
		t.Error("corpse died twice")
	}
	if target.Stats.HP != 0 {
		t.Error("corpse took damage")
	}
}

func TestApplyAttack_NoStatsTarget(t *testing.T) {
	attacker := fighter("hero", 20, 10)
	target := &domain.Entity{ID: "scenery", Name: "scenery"}

	_, died := ApplyAttack(attacker, target, rng.NewScripted())
	if died {
		t.Error("statless target reported dead")
	}
}

func TestApplyAttack_MalformedDiceFallsBackToUnarmed(t *testing.T) {
	attacker := fighter("hero", 20, 12)
	attacker.Inventory = &domain.InventoryComponent{
		MaxSlots: 10,
		Items: []domain.Item{
			{ID: "cursed", Name: "Cursed Blade", Category: domain.ItemCategoryWeapon, DamageDice: "banana"},
		},
	}
	target := fighter("orc", 10, 5)

	ApplyAttack(attacker, target, rng.NewScripted(2))
	if target.Stats.HP != 8 {
		t.Errorf("target HP = %d, want 8 from the unarmed fallback", target.Stats.HP)
	}
}
