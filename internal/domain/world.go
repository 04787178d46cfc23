package domain

import "errors"

// Tile is one map cell.
type Tile struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	IsWall bool   `json:"isWall"`
	Env    string `json:"env,omitempty"`
}

// GameWorld is one dungeon level: the tile map plus fast entity lookup
// structures. The registry and spatial hash are rebuilt on load, they
// are indexes, not state.
type GameWorld struct {
	Level  int      `json:"level"`
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Map    [][]Tile `json:"map"`

	SpatialHash    map[int][]*Entity `json:"-"`
	EntityRegistry map[string]*Entity `json:"-"`
}

// NewGameWorld creates an empty level with initialised indexes.
func NewGameWorld(level, width, height int, tiles [][]Tile) *GameWorld {
	return &GameWorld{
		Level:          level,
		Width:          width,
		Height:         height,
		Map:            tiles,
		SpatialHash:    make(map[int][]*Entity),
		EntityRegistry: make(map[string]*Entity),
	}
}

func (w *GameWorld) GetIndex(x, y int) int {
	return y*w.Width + x
}

// InBounds reports whether (x, y) is on the map.
func (w *GameWorld) InBounds(x, y int) bool {
	return x >= 0 && x < w.Width && y >= 0 && y < w.Height
}

// GetEntitiesAt returns the entities standing in a specific cell.
func (w *GameWorld) GetEntitiesAt(x, y int) []*Entity {
	if !w.InBounds(x, y) {
		return nil
	}
	return w.SpatialHash[w.GetIndex(x, y)]
}

// GetEntity looks up an entity by ID.
func (w *GameWorld) GetEntity(id string) *Entity {
	if w.EntityRegistry == nil {
		return nil
	}
	return w.EntityRegistry[id]
}

// RegisterEntity adds an entity to the ID registry.
func (w *GameWorld) RegisterEntity(e *Entity) {
	if w.EntityRegistry == nil {
		w.EntityRegistry = make(map[string]*Entity)
	}
	w.EntityRegistry[e.ID] = e
}

// UnregisterEntity removes an entity from the ID registry.
func (w *GameWorld) UnregisterEntity(id string) {
	if w.EntityRegistry != nil {
		delete(w.EntityRegistry, id)
	}
}

// AddEntity adds an entity to the spatial index.
func (w *GameWorld) AddEntity(e *Entity) {
	if w.SpatialHash == nil {
		w.SpatialHash = make(map[int][]*Entity)
	}
	idx := w.GetIndex(e.Pos.X, e.Pos.Y)
	w.SpatialHash[idx] = append(w.SpatialHash[idx], e)
}

// RemoveEntity removes an entity from the spatial index (death, teleport).
func (w *GameWorld) RemoveEntity(e *Entity) {
	idx := w.GetIndex(e.Pos.X, e.Pos.Y)
	entities := w.SpatialHash[idx]

	for i, other := range entities {
		if other.ID == e.ID {
			// Swap with last, order inside a cell does not matter.
			lastIdx := len(entities) - 1
			entities[i] = entities[lastIdx]
			w.SpatialHash[idx] = entities[:lastIdx]
			return
		}
	}
}

// UpdateEntityPos moves an entity in the spatial index.
func (w *GameWorld) UpdateEntityPos(e *Entity, newX, newY int) error {
	if !w.InBounds(newX, newY) {
		return errors.New("out of bounds")
	}

	w.RemoveEntity(e)
	e.Pos.X = newX
	e.Pos.Y = newY
	w.AddEntity(e)
	return nil
}

// CloneTiles returns a deep copy of the tile map.
func (w *GameWorld) CloneTiles() [][]Tile {
	tiles := make([][]Tile, len(w.Map))
	for y := range w.Map {
		row := make([]Tile, len(w.Map[y]))
		copy(row, w.Map[y])
		tiles[y] = row
	}
	return tiles
}
