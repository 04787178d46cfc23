package systems

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/pkg/logger"
	"github.com/dirkkok101/roguelike-sub009/pkg/rng"
)

// ApplyAttack resolves one melee swing. All randomness comes from src,
// which the replay layer pins before the enclosing command executes.
func ApplyAttack(attacker, target *domain.Entity, src rng.Source) (string, bool) {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"attacker_id": attacker.ID,
		"target_id":   target.ID,
	})

	if target.Stats == nil {
		combatLogger.Warn("Attack failed: target has no StatsComponent")
		return fmt.Sprintf("%s attacks %s, to no effect.", attacker.Name, target.Name), false
	}
	if target.Stats.IsDead {
		return fmt.Sprintf("%s kicks the corpse of %s.", attacker.Name, target.Name), false
	}

	damage := rollDamage(attacker, src)
	died := target.Stats.TakeDamage(damage)

	combatLogger.WithFields(logrus.Fields{
		"damage":    damage,
		"target_hp": target.Stats.HP,
	}).Debug("Attack resolved")

	if died {
		return fmt.Sprintf("%s hits %s for %d and kills it!", attacker.Name, target.Name, damage), true
	}
	return fmt.Sprintf("%s hits %s for %d.", attacker.Name, target.Name, damage), false
}

// rollDamage draws the damage value: weapon dice when a weapon is
// carried, otherwise an unarmed 1..max(strength/3, 1) swing.
func rollDamage(attacker *domain.Entity, src rng.Source) int {
	if w := equippedWeapon(attacker); w != nil && w.DamageDice != "" {
		dmg, err := src.Roll(w.DamageDice)
		if err == nil {
			return dmg
		}
		// A bad dice string on a spawned item is a content bug, not a
		// combat condition. Log it and fall through to unarmed.
		logger.Log.WithFields(logrus.Fields{
			"item_id": w.ID,
			"dice":    w.DamageDice,
		}).Error("Malformed damage dice on weapon, using unarmed damage")
	}

	maxDmg := 1
	if attacker.Stats != nil && attacker.Stats.Strength/3 > 1 {
		maxDmg = attacker.Stats.Strength / 3
	}
	return src.NextInt(1, maxDmg)
}

// equippedWeapon returns the first weapon in the attacker's inventory.
// There is no explicit equip slot: carrying a weapon means wielding it.
func equippedWeapon(attacker *domain.Entity) *domain.Item {
	if attacker.Inventory == nil {
		return nil
	}
	for i := range attacker.Inventory.Items {
		if attacker.Inventory.Items[i].Category == domain.ItemCategoryWeapon {
			return &attacker.Inventory.Items[i]
		}
	}
	return nil
}
