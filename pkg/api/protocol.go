package api

import (
	"encoding/json"
)

// --- SERVER -> CLIENT ---

// ServerResponse is the root object the server sends to a client: a full
// snapshot of the world as that client is allowed to see it. Sent every
// time the client's entity gets its turn.
type ServerResponse struct {
	// Type is the message type, currently always "UPDATE".
	Type string `json:"type"`

	// Turn is the global turn counter.
	Turn int `json:"turn"`

	// Depth is the dungeon level the client's entity is on.
	Depth int `json:"depth"`

	// ActiveEntityID is whose turn it is. When it equals MyEntityID the
	// client may accept input.
	ActiveEntityID string `json:"activeEntityId,omitempty"`

	// MyEntityID is the entity this client controls.
	MyEntityID string `json:"myEntityId,omitempty"`

	Grid     *GridMeta    `json:"grid,omitempty"`
	Map      []TileView   `json:"map,omitempty"`
	Entities []EntityView `json:"entities,omitempty"`

	// Logs are the messages generated since the previous turn.
	Logs []LogEntry `json:"logs,omitempty"`

	// Outcome is "ongoing", "won" or "lost".
	Outcome string `json:"outcome,omitempty"`
}

// GridMeta carries the overall map dimensions so the client can size its
// render grid.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView is the DTO for one map tile.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	Symbol string `json:"symbol"`
	Color  string `json:"color"`
	IsWall bool   `json:"isWall"`
}

// EntityView is the DTO for a game entity.
type EntityView struct {
	ID   string `json:"id"`
	Type string `json:"type"` // PLAYER, ENEMY, NPC, ITEM, EXIT
	Name string `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
	} `json:"render"`

	// Stats may be omitted when the client is not allowed to see them.
	Stats *StatsView `json:"stats,omitempty"`

	Inventory *InventoryView `json:"inventory,omitempty"`
}

// StatsView is the DTO for entity vitals.
type StatsView struct {
	HP       int  `json:"hp"`
	MaxHP    int  `json:"maxHp"`
	Gold     int  `json:"gold,omitempty"`
	Strength int  `json:"strength,omitempty"`
	IsDead   bool `json:"isDead"`
}

// LogEntry is one game log (chat) message.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// ItemView is the DTO for an item.
type ItemView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Color    string `json:"color"`
	Category string `json:"category"`
	Heal     int    `json:"heal,omitempty"`
	Value    int    `json:"value,omitempty"`
}

// InventoryView is the DTO for a carried inventory.
type InventoryView struct {
	Items    []ItemView `json:"items"`
	MaxSlots int        `json:"maxSlots"`
}

// ReplayListEntry is one row in the saved-replay listing.
type ReplayListEntry struct {
	SessionID   string `json:"sessionId"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
	RecordCount int    `json:"recordCount"`
	DepthAtEnd  int    `json:"depthAtEnd"`
	Outcome     string `json:"outcome"`
}

// DesyncView is one validator mismatch as exposed over the debug API.
type DesyncView struct {
	Turn      int    `json:"turn"`
	FieldPath string `json:"fieldPath"`
	Expected  string `json:"expected"`
	Actual    string `json:"actual"`
}

// VerifyResponse is the result of replaying a stored session and
// comparing it against its recorded end state.
type VerifyResponse struct {
	SessionID  string       `json:"sessionId"`
	Valid      bool         `json:"valid"`
	Records    int          `json:"records"`
	Mismatches []DesyncView `json:"mismatches"`
}

// --- CLIENT -> SERVER ---

// ClientCommand is the root object for every client-to-server message.
type ClientCommand struct {
	// Token identifies the session on the handshake message. Empty
	// starts a new game; a known token reconnects or resumes it.
	Token string `json:"token,omitempty"`

	// Action names the operation (MOVE, ATTACK, WAIT, ...).
	Action string `json:"action"`

	// Payload is action-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload is used for direction-based actions (MOVE).
type DirectionPayload struct {
	Dx int `json:"dx"` // -1, 0, 1
	Dy int `json:"dy"` // -1, 0, 1
}

// EntityPayload is used for actions targeting another entity (ATTACK,
// INTERACT).
type EntityPayload struct {
	TargetID string `json:"targetId"`
}

// ItemPayload is used for item actions that require a target (DROP).
type ItemPayload struct {
	ItemID string `json:"itemId"`
}

// PickupPayload is used for PICKUP. ItemID is optional: when empty the
// actor grabs whatever lies at its feet.
type PickupPayload struct {
	ItemID string `json:"itemId,omitempty"`
}
