package domain

// LevelSnapshot is the frozen state of one dungeon level.
// Entities are stored by value, in scheduler insertion order — replays
// rebuild the turn order from this ordering, so it must be preserved.
type LevelSnapshot struct {
	Level    int      `json:"level"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Tiles    [][]Tile `json:"tiles"`
	Entities []Entity `json:"entities"`
}

// Snapshot is a deep, alias-free capture of the full simulation state at
// one instant. Taken at session start and at load boundaries. A snapshot
// never shares mutable substructure with the live simulation or with
// another snapshot.
type Snapshot struct {
	Seed string `json:"seed"`

	// RngState is the generator state at capture time. Empty means
	// "derive from Seed" (a fresh turn-0 session).
	RngState string `json:"rngState,omitempty"`

	Turn  int `json:"turn"`
	Depth int `json:"depth"`

	Player Entity                `json:"player"`
	Levels map[int]LevelSnapshot `json:"levels"`

	// PassPending holds the IDs of autonomous actors still owed a turn
	// in the current pass. Empty at turn boundaries; a snapshot taken
	// mid-pass (replay checkpoints) needs it to resume correctly.
	PassPending []string `json:"passPending,omitempty"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := Snapshot{
		Seed:     s.Seed,
		RngState: s.RngState,
		Turn:     s.Turn,
		Depth:    s.Depth,
		Player:   *s.Player.Clone(),
		Levels:   make(map[int]LevelSnapshot, len(s.Levels)),
	}
	for id, lvl := range s.Levels {
		out.Levels[id] = lvl.Clone()
	}
	if s.PassPending != nil {
		out.PassPending = make([]string, len(s.PassPending))
		copy(out.PassPending, s.PassPending)
	}
	return &out
}

// Clone returns a deep copy of the level snapshot.
func (l LevelSnapshot) Clone() LevelSnapshot {
	out := LevelSnapshot{
		Level:    l.Level,
		Width:    l.Width,
		Height:   l.Height,
		Tiles:    make([][]Tile, len(l.Tiles)),
		Entities: make([]Entity, len(l.Entities)),
	}
	for y := range l.Tiles {
		row := make([]Tile, len(l.Tiles[y]))
		copy(row, l.Tiles[y])
		out.Tiles[y] = row
	}
	for i := range l.Entities {
		out.Entities[i] = *l.Entities[i].Clone()
	}
	return out
}
