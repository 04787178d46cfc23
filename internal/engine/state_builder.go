package engine

import (
	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/pkg/api"
)

// BuildState assembles the client view of the current level: the whole
// map, every entity on it, and any fresh log lines.
func (s *Session) BuildState(logs []api.LogEntry) *api.ServerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	lvl := s.levels[s.depth]
	resp := &api.ServerResponse{
		Type:           "UPDATE",
		Turn:           s.turn,
		Depth:          s.depth,
		ActiveEntityID: s.player.ID,
		MyEntityID:     s.player.ID,
		Grid:           &api.GridMeta{Width: lvl.world.Width, Height: lvl.world.Height},
		Logs:           logs,
		Outcome:        s.outcome,
	}

	for y := range lvl.world.Map {
		for x := range lvl.world.Map[y] {
			t := lvl.world.Map[y][x]
			tv := api.TileView{X: x, Y: y, IsWall: t.IsWall}
			if t.IsWall {
				tv.Symbol = "#"
				tv.Color = "#6B7280"
			} else {
				tv.Symbol = "."
				tv.Color = "#374151"
			}
			resp.Map = append(resp.Map, tv)
		}
	}

	for _, e := range lvl.entities {
		resp.Entities = append(resp.Entities, buildEntityView(e, false))
	}
	resp.Entities = append(resp.Entities, buildEntityView(s.player, true))

	return resp
}

// buildEntityView converts one entity. Full detail (inventory, exact
// stats) is only exposed for the client's own entity.
func buildEntityView(e *domain.Entity, own bool) api.EntityView {
	view := api.EntityView{
		ID:   e.ID,
		Type: e.Type,
		Name: e.Name,
	}
	view.Pos.X = e.Pos.X
	view.Pos.Y = e.Pos.Y

	if e.Render != nil {
		view.Render.Symbol = e.Render.Symbol
		view.Render.Color = e.Render.Color
	}

	if e.Stats != nil {
		sv := &api.StatsView{
			HP:     e.Stats.HP,
			MaxHP:  e.Stats.MaxHP,
			IsDead: e.Stats.IsDead,
		}
		if own {
			sv.Gold = e.Stats.Gold
			sv.Strength = e.Stats.Strength
		}
		view.Stats = sv
	}

	if own && e.Inventory != nil {
		inv := &api.InventoryView{MaxSlots: e.Inventory.MaxSlots, Items: []api.ItemView{}}
		for _, it := range e.Inventory.Items {
			inv.Items = append(inv.Items, api.ItemView{
				ID:       it.ID,
				Name:     it.Name,
				Symbol:   it.Symbol,
				Color:    it.Color,
				Category: it.Category,
				Heal:     it.Heal,
				Value:    it.Value,
			})
		}
		view.Inventory = inv
	}
	return view
}
