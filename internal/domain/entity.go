package domain

// --- COMPONENTS ---

// RenderComponent - client-side visualisation.
type RenderComponent struct {
	Symbol string `json:"symbol"` // display glyph (g for goblin, $ for gold)
	Color  string `json:"color"`
}

// StatsComponent - vitals and resources.
type StatsComponent struct {
	HP       int  `json:"hp"`
	MaxHP    int  `json:"maxHp"`
	Strength int  `json:"strength"`
	Gold     int  `json:"gold"`
	IsDead   bool `json:"isDead"`
}

// EnergyComponent - turn scheduling state.
// The player has one too; it is what puts an entity in the turn order.
type EnergyComponent struct {
	Energy    int  `json:"energy"`
	Speed     int  `json:"speed"` // energy gained per scheduler tick
	IsHostile bool `json:"isHostile"`
}

// Item - one inventory or floor item.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Color    string `json:"color"`
	Category string `json:"category"`
	// DamageDice is rolled on attack when the item is a weapon ("1d6").
	DamageDice string `json:"damageDice,omitempty"`
	Heal       int    `json:"heal,omitempty"`
	Value      int    `json:"value,omitempty"`
}

// InventoryComponent - carried items.
type InventoryComponent struct {
	Items    []Item `json:"items"`
	MaxSlots int    `json:"maxSlots"`
}

// TriggerComponent - what happens on INTERACT with this entity.
// Holds a raw event object, e.g.
// {"event":"LEVEL_TRANSITION","targetLevel":2}.
type TriggerComponent struct {
	OnInteract []byte `json:"onInteract,omitempty"`
}

// --- ENTITY ---

type Entity struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`

	// ControllerID is the session/user controlling this entity.
	// Empty means AI-controlled.
	ControllerID string `json:"controllerId,omitempty"`

	Level int      `json:"level"`
	Pos   Position `json:"pos"`

	// Components. nil means the capability is absent.
	Render    *RenderComponent    `json:"render,omitempty"`
	Stats     *StatsComponent     `json:"stats,omitempty"`
	Energy    *EnergyComponent    `json:"energy,omitempty"`
	Inventory *InventoryComponent `json:"inventory,omitempty"`
	Trigger   *TriggerComponent   `json:"trigger,omitempty"`

	// Item is set on floor-item entities: the thing picked up when the
	// entity is consumed.
	Item *Item `json:"item,omitempty"`
}

// IsAlive reports whether the entity has living stats.
func (e *Entity) IsAlive() bool {
	return e.Stats != nil && !e.Stats.IsDead
}

// Clone returns a deep, alias-free copy of the entity.
// Snapshots depend on this: a cloned entity must never share mutable
// substructure with the original.
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	out := *e

	if e.Render != nil {
		r := *e.Render
		out.Render = &r
	}
	if e.Stats != nil {
		s := *e.Stats
		out.Stats = &s
	}
	if e.Energy != nil {
		en := *e.Energy
		out.Energy = &en
	}
	if e.Inventory != nil {
		inv := InventoryComponent{
			MaxSlots: e.Inventory.MaxSlots,
			Items:    make([]Item, len(e.Inventory.Items)),
		}
		copy(inv.Items, e.Inventory.Items)
		out.Inventory = &inv
	}
	if e.Trigger != nil {
		tr := TriggerComponent{}
		if e.Trigger.OnInteract != nil {
			tr.OnInteract = make([]byte, len(e.Trigger.OnInteract))
			copy(tr.OnInteract, e.Trigger.OnInteract)
		}
		out.Trigger = &tr
	}
	if e.Item != nil {
		it := *e.Item
		out.Item = &it
	}
	return &out
}
