package domain

// Entity types.
const (
	EntityTypePlayer = "PLAYER"
	EntityTypeNPC    = "NPC"
	EntityTypeEnemy  = "ENEMY"
	EntityTypeItem   = "ITEM"
	EntityTypeExit   = "EXIT"
	EntityTypePortal = "PORTAL"
)

// Energy scheduling.
const (
	// ActionThreshold is the energy an actor must accumulate before it
	// may act; one action always costs exactly this much.
	ActionThreshold = 100

	// BaseSpeed is the per-tick energy gain of a standard actor.
	BaseSpeed = 100
)

// Perception.
const (
	AggroRadius = 10
)

// Item categories.
const (
	ItemCategoryWeapon = "weapon"
	ItemCategoryArmor  = "armor"
	ItemCategoryPotion = "potion"
	ItemCategoryGold   = "gold"
	ItemCategoryMisc   = "misc"
)

// Session outcomes, persisted in the replay summary.
const (
	OutcomeOngoing = "ongoing"
	OutcomeWon     = "won"
	OutcomeLost    = "lost"
)

// Actor roles, as stored on each command record.
const (
	RoleControlled = "controlled"
	RoleAutonomous = "autonomous"
)
