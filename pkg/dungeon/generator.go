// Package dungeon generates playable levels. Generation is fully
// deterministic: every random choice comes from the caller-supplied
// source, so the same seed always produces the same level. That is what
// lets a replay rebuild visited levels instead of persisting their maps.
package dungeon

import (
	"fmt"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/pkg/rng"
)

// Generation constants.
const (
	MapWidth  = 40
	MapHeight = 25
	MaxRooms  = 8
	MinSize   = 4
	MaxSize   = 10
)

// Rect is a room candidate.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Generate builds one level: carved rooms joined by corridors, a down
// staircase in the last room, and enemies and loot scattered through the
// middle rooms. The returned start position is the center of the first
// room.
func Generate(level int, src rng.Source) (*domain.GameWorld, []domain.Entity, domain.Position) {
	gameMap := make([][]domain.Tile, MapHeight)
	for y := 0; y < MapHeight; y++ {
		row := make([]domain.Tile, MapWidth)
		for x := 0; x < MapWidth; x++ {
			row[x] = domain.Tile{X: x, Y: y, IsWall: true, Env: "stone"}
		}
		gameMap[y] = row
	}

	var rooms []Rect
	var entities []domain.Entity

	for i := 0; i < MaxRooms; i++ {
		w := src.NextInt(MinSize, MaxSize)
		h := src.NextInt(MinSize, MaxSize)
		x := src.NextInt(1, MapWidth-w-2)
		y := src.NextInt(1, MapHeight-h-2)

		newRoom := Rect{X: x, Y: y, W: w, H: h}
		failed := false
		for _, other := range rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		createRoom(gameMap, newRoom)

		if len(rooms) > 0 {
			prevX, prevY := rooms[len(rooms)-1].Center()
			currX, currY := newRoom.Center()

			if src.Chance(0.5) {
				createHCorridor(gameMap, prevX, currX, prevY)
				createVCorridor(gameMap, prevY, currY, currX)
			} else {
				createVCorridor(gameMap, prevY, currY, prevX)
				createHCorridor(gameMap, prevX, currX, currY)
			}
		}
		rooms = append(rooms, newRoom)
	}

	startPos := domain.Position{X: 1, Y: 1}
	if len(rooms) > 0 {
		cx, cy := rooms[0].Center()
		startPos = domain.Position{X: cx, Y: cy}
		gameMap[cy][cx].IsWall = false
	}

	// Enemies and loot in every room except the first.
	for i := 1; i < len(rooms); i++ {
		cx, cy := rooms[i].Center()

		if src.Chance(0.7) {
			entities = append(entities, spawnEnemy(level, i, cx, cy, src))
		}
		if src.Chance(0.4) {
			entities = append(entities, spawnLoot(level, i, cx+1, cy, src))
		}
	}

	// Down staircase in the last room.
	if len(rooms) > 0 {
		lx, ly := rooms[len(rooms)-1].Center()
		entities = append(entities, domain.Entity{
			ID:     fmt.Sprintf("exit_down_%d", level),
			Type:   domain.EntityTypeExit,
			Name:   "Staircase down",
			Level:  level,
			Pos:    domain.Position{X: lx, Y: ly},
			Render: &domain.RenderComponent{Symbol: ">", Color: "#FFFFFF"},
			Trigger: &domain.TriggerComponent{
				OnInteract: []byte(fmt.Sprintf(`{"event":"LEVEL_TRANSITION","targetLevel":%d}`, level+1)),
			},
		})
	}

	world := domain.NewGameWorld(level, MapWidth, MapHeight, gameMap)
	return world, entities, startPos
}

func createRoom(gameMap [][]domain.Tile, room Rect) {
	for y := room.Y + 1; y < room.Y+room.H; y++ {
		for x := room.X + 1; x < room.X+room.W; x++ {
			gameMap[y][x].IsWall = false
			gameMap[y][x].Env = "floor"
		}
	}
}

func createHCorridor(gameMap [][]domain.Tile, x1, x2, y int) {
	start, end := x1, x2
	if start > end {
		start, end = end, start
	}
	for x := start; x <= end; x++ {
		gameMap[y][x].IsWall = false
		gameMap[y][x].Env = "floor"
	}
}

func createVCorridor(gameMap [][]domain.Tile, y1, y2, x int) {
	start, end := y1, y2
	if start > end {
		start, end = end, start
	}
	for y := start; y <= end; y++ {
		gameMap[y][x].IsWall = false
		gameMap[y][x].Env = "floor"
	}
}
