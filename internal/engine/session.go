package engine

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dirkkok101/roguelike-sub009/internal/domain"
	"github.com/dirkkok101/roguelike-sub009/internal/engine/handlers"
	"github.com/dirkkok101/roguelike-sub009/internal/replay"
	"github.com/dirkkok101/roguelike-sub009/internal/systems"
	"github.com/dirkkok101/roguelike-sub009/pkg/api"
	"github.com/dirkkok101/roguelike-sub009/pkg/dungeon"
	"github.com/dirkkok101/roguelike-sub009/pkg/logger"
	"github.com/dirkkok101/roguelike-sub009/pkg/rng"
	"github.com/dirkkok101/roguelike-sub009/pkg/utils"
)

// levelState is one loaded dungeon level: its map, its entities in
// insertion order, and its turn scheduler. The insertion order is part
// of the simulation state; snapshots preserve it so a replay rebuilds
// the same turn order.
type levelState struct {
	world    *domain.GameWorld
	entities []*domain.Entity // excludes the player
	sched    *Scheduler
	start    domain.Position
}

// Session is one running game: the live simulation plus the recorder
// that logs every action for replay. All mutation is funnelled through
// HandleCommand, which records before it dispatches; there is no way to
// execute an action without logging it.
type Session struct {
	mu sync.Mutex

	ID   string
	Seed string

	rng      rng.Source
	turn     int
	depth    int
	winDepth int
	outcome  string

	player *domain.Entity
	levels map[int]*levelState

	recorder *replay.Recorder
	registry map[domain.ActionType]handlers.Command

	// passPending is the autonomous actors still owed a turn in the
	// current pass. The global turn counter advances when it drains.
	passPending []*domain.Entity

	logs []api.LogEntry
}

// NewSession starts a fresh game from a seed string.
func NewSession(sessionID, seed string, winDepth int) *Session {
	s := &Session{
		ID:       sessionID,
		Seed:     seed,
		rng:      rng.NewLCG(seed),
		depth:    1,
		winDepth: winDepth,
		outcome:  domain.OutcomeOngoing,
		levels:   make(map[int]*levelState),
		recorder: replay.NewRecorder(),
		registry: buildRegistry(),
	}

	lvl := s.generateLevel(1)
	s.levels[1] = lvl

	s.player = dungeon.CreatePlayer("hero_1", "Hero", lvl.start)
	lvl.world.RegisterEntity(s.player)
	lvl.world.AddEntity(s.player)
	lvl.sched.Add(s.player)

	s.recorder.StartSession(s.buildSnapshot(), sessionID)

	logger.Log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"seed":       seed,
	}).Info("Session started")
	return s
}

// HydrateSession rebuilds a live session from a snapshot (a save's end
// state, or a reconstruction result). The recorder starts empty; callers
// resuming a saved game restore its log separately.
func HydrateSession(sessionID string, snap *domain.Snapshot, winDepth int) (*Session, error) {
	if snap == nil {
		return nil, fmt.Errorf("hydrate: nil snapshot")
	}

	s := &Session{
		ID:       sessionID,
		Seed:     snap.Seed,
		rng:      rng.NewLCG(snap.Seed),
		turn:     snap.Turn,
		depth:    snap.Depth,
		winDepth: winDepth,
		outcome:  domain.OutcomeOngoing,
		levels:   make(map[int]*levelState),
		recorder: replay.NewRecorder(),
		registry: buildRegistry(),
	}
	if snap.RngState != "" {
		if err := s.rng.RestoreState(snap.RngState); err != nil {
			return nil, fmt.Errorf("hydrate: %w", err)
		}
	}

	for id, ls := range snap.Levels {
		lvl := &levelState{
			world: domain.NewGameWorld(ls.Level, ls.Width, ls.Height, ls.Clone().Tiles),
			sched: NewScheduler(),
			start: firstFloorTile(ls),
		}
		for i := range ls.Entities {
			e := ls.Entities[i].Clone()
			lvl.entities = append(lvl.entities, e)
			lvl.world.RegisterEntity(e)
			lvl.world.AddEntity(e)
			lvl.sched.Add(e)
		}
		s.levels[id] = lvl
	}

	cur, ok := s.levels[snap.Depth]
	if !ok {
		return nil, fmt.Errorf("hydrate: snapshot depth %d has no level", snap.Depth)
	}
	s.player = snap.Player.Clone()
	cur.world.RegisterEntity(s.player)
	cur.world.AddEntity(s.player)
	cur.sched.Add(s.player)

	// A mid-pass snapshot (replay checkpoint) carries the actors still
	// owed a turn.
	for _, id := range snap.PassPending {
		if e := cur.world.GetEntity(id); e != nil {
			s.passPending = append(s.passPending, e)
		}
	}

	if s.depth >= s.winDepth {
		s.outcome = domain.OutcomeWon
	} else if !s.player.IsAlive() {
		s.outcome = domain.OutcomeLost
	}
	return s, nil
}

// generateLevel derives the level's private seed from the session seed
// so every visit to level N reproduces the same map.
func (s *Session) generateLevel(level int) *levelState {
	src := rng.NewLCG(fmt.Sprintf("%s:level:%d", s.Seed, level))
	world, generated, start := dungeon.Generate(level, src)

	lvl := &levelState{world: world, sched: NewScheduler(), start: start}
	for i := range generated {
		e := generated[i].Clone()
		lvl.entities = append(lvl.entities, e)
		world.RegisterEntity(e)
		world.AddEntity(e)
		lvl.sched.Add(e)
	}
	return lvl
}

// GetEntity implements handlers.EntityFinder over the current level.
func (s *Session) GetEntity(id string) *domain.Entity {
	if s.player != nil && s.player.ID == id {
		return s.player
	}
	return s.levels[s.depth].world.GetEntity(id)
}

// Turn returns the global turn counter.
func (s *Session) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// Depth returns the current dungeon level.
func (s *Session) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depth
}

// Outcome returns "ongoing", "won" or "lost".
func (s *Session) Outcome() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Recorder exposes the session's command log owner.
func (s *Session) Recorder() *replay.Recorder {
	return s.recorder
}

// Snapshot captures the live state as a deep copy.
func (s *Session) Snapshot() *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildSnapshot()
}

// HandleCommand is the single entry point for a controlled action. It
// validates the payload, records the command with the pre-action RNG
// state, executes it, then lets every ready autonomous actor take its
// recorded turn. Returns the log lines the command produced.
func (s *Session) HandleCommand(cmd domain.InternalCommand) ([]api.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logMark := len(s.logs)

	if cmd.Action == domain.ActionInit {
		// System command: no record, no energy cost.
		res, err := s.dispatch(cmd.Action, cmd.Payload, s.player)
		if err != nil {
			return nil, err
		}
		s.absorb(res)
		return s.logsSince(logMark), nil
	}

	if s.outcome != domain.OutcomeOngoing {
		return nil, fmt.Errorf("session is over (%s)", s.outcome)
	}

	def, ok := s.registry[cmd.Action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", replay.ErrUnknownCommandKind, cmd.Action.String())
	}
	// A malformed payload fails here, before anything is recorded.
	if err := def.Check(cmd.Payload); err != nil {
		return nil, err
	}

	if err := s.recordAndApply(s.player, domain.RoleControlled, cmd.Action, cmd.Payload); err != nil {
		return nil, err
	}

	// One pass of autonomous turns, each decided, recorded and applied
	// individually. Decisions draw from the RNG before their record is
	// captured, so a replay never re-runs them.
	for len(s.passPending) > 0 {
		npc := s.passPending[0]
		action, target, dx, dy := systems.ComputeAction(npc, s.player, s.levels[s.depth].world, s.rng)
		payload := encodeAIPayload(action, target, dx, dy)

		if err := s.recordAndApply(npc, domain.RoleAutonomous, action, payload); err != nil {
			return nil, err
		}
	}

	return s.logsSince(logMark), nil
}

// recordAndApply is the record-before-execute gate. It captures the RNG
// state, appends the record, then applies the step. Nothing else in the
// engine may call applyControlledStep or applyAutonomousStep directly on
// behalf of a live actor.
func (s *Session) recordAndApply(actor *domain.Entity, role string, action domain.ActionType, payload json.RawMessage) error {
	rec := replay.CommandRecord{
		Turn:           s.turn,
		Timestamp:      time.Now().UnixMilli(),
		Kind:           action.String(),
		Actor:          replay.ActorRef{Role: role, ID: actor.ID},
		Payload:        payload,
		RngStateBefore: s.rng.ExportState(),
	}
	s.recorder.Record(rec)

	if role == domain.RoleControlled {
		return s.applyControlledStep(action, payload)
	}
	return s.applyAutonomousStep(actor.ID, action, payload)
}

// applyControlledStep runs one controlled action: tick everyone until
// the player is ready, execute, pay the energy cost, and if the player
// is now exhausted, line up the autonomous pass. The replay path drives
// this same function from records.
func (s *Session) applyControlledStep(action domain.ActionType, payload json.RawMessage) error {
	lvl := s.levels[s.depth]
	lvl.sched.TickUntilReady(s.player)

	res, err := s.dispatch(action, payload, s.player)
	if err != nil {
		return err
	}
	s.absorb(res)
	s.player.Energy.Spend()
	s.updateOutcome()

	if s.outcome != domain.OutcomeOngoing {
		s.turn++
		return nil
	}
	if !s.player.Energy.CanAct() {
		s.passPending = s.levels[s.depth].sched.ReadyAutonomous(s.player.ID)
		if len(s.passPending) == 0 {
			s.turn++
		}
	}
	return nil
}

// applyAutonomousStep runs one autonomous action from the pending pass.
// The turn counter advances when the pass drains.
func (s *Session) applyAutonomousStep(actorID string, action domain.ActionType, payload json.RawMessage) error {
	if len(s.passPending) == 0 {
		return fmt.Errorf("autonomous step for %q with no pass pending", actorID)
	}
	npc := s.passPending[0]
	s.passPending = s.passPending[1:]
	if npc.ID != actorID {
		return fmt.Errorf("autonomous step order mismatch: have %q, record says %q", npc.ID, actorID)
	}

	if npc.IsAlive() {
		res, err := s.dispatch(action, payload, npc)
		if err != nil {
			return err
		}
		s.absorb(res)
		npc.Energy.Spend()
		s.updateOutcome()
	}

	// A finished game cuts the pass short. The remainder was never
	// recorded, so replays cut it short at the same point.
	if s.outcome != domain.OutcomeOngoing {
		s.passPending = nil
	}
	if len(s.passPending) == 0 {
		s.turn++
	}
	return nil
}

// dispatch resolves the action through the handler registry.
func (s *Session) dispatch(action domain.ActionType, payload json.RawMessage, actor *domain.Entity) (handlers.Result, error) {
	def, ok := s.registry[action]
	if !ok {
		return handlers.Result{}, fmt.Errorf("%w: %q", replay.ErrUnknownCommandKind, action.String())
	}

	lvl := s.levels[s.depth]
	ctx := handlers.Context{
		Finder:   s,
		World:    lvl.world,
		Entities: lvl.entities,
		Actor:    actor,
		Rng:      s.rng,
		Spawn:    s.spawnEntity,
		Despawn:  s.despawnEntity,
	}
	return def.Handle(ctx, payload)
}

// absorb folds a handler result into the session: log line plus any
// engine event.
func (s *Session) absorb(res handlers.Result) {
	if res.Msg != "" {
		s.appendLog(res.Msg, res.MsgType)
	}
	if len(res.Event) > 0 {
		s.processEvent(res.Event)
	}
}

func (s *Session) updateOutcome() {
	if s.outcome != domain.OutcomeOngoing {
		return
	}
	if !s.player.IsAlive() {
		s.outcome = domain.OutcomeLost
		s.appendLog("You died.", "INFO")
	}
}

func (s *Session) spawnEntity(e *domain.Entity) {
	lvl := s.levels[s.depth]
	e.Level = s.depth
	lvl.entities = append(lvl.entities, e)
	lvl.world.RegisterEntity(e)
	lvl.world.AddEntity(e)
	lvl.sched.Add(e)
}

func (s *Session) despawnEntity(id string) {
	lvl := s.levels[s.depth]
	e := lvl.world.GetEntity(id)
	if e == nil {
		return
	}
	lvl.world.RemoveEntity(e)
	lvl.world.UnregisterEntity(id)
	lvl.sched.Remove(id)

	// Order-preserving removal: the remaining entity order is replay
	// state.
	kept := lvl.entities[:0]
	for _, other := range lvl.entities {
		if other.ID != id {
			kept = append(kept, other)
		}
	}
	lvl.entities = kept
}

func (s *Session) appendLog(text, msgType string) {
	if msgType == "" {
		msgType = "INFO"
	}
	s.logs = append(s.logs, api.LogEntry{
		ID:        utils.GenerateID(),
		Text:      text,
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *Session) logsSince(mark int) []api.LogEntry {
	out := make([]api.LogEntry, len(s.logs)-mark)
	copy(out, s.logs[mark:])
	return out
}

// buildSnapshot captures the full simulation state. Callers hold the
// lock.
func (s *Session) buildSnapshot() *domain.Snapshot {
	snap := &domain.Snapshot{
		Seed:     s.Seed,
		RngState: s.rng.ExportState(),
		Turn:     s.turn,
		Depth:    s.depth,
		Player:   *s.player.Clone(),
		Levels:   make(map[int]domain.LevelSnapshot, len(s.levels)),
	}
	for id, lvl := range s.levels {
		ls := domain.LevelSnapshot{
			Level:    id,
			Width:    lvl.world.Width,
			Height:   lvl.world.Height,
			Tiles:    lvl.world.CloneTiles(),
			Entities: make([]domain.Entity, 0, len(lvl.entities)),
		}
		for _, e := range lvl.entities {
			ls.Entities = append(ls.Entities, *e.Clone())
		}
		snap.Levels[id] = ls
	}
	for _, e := range s.passPending {
		snap.PassPending = append(snap.PassPending, e.ID)
	}
	return snap
}

// encodeAIPayload marshals an AI decision into the same wire payload a
// client would send, so the dispatch path is identical for both roles.
func encodeAIPayload(action domain.ActionType, target *domain.Entity, dx, dy int) json.RawMessage {
	switch action {
	case domain.ActionMove:
		raw, _ := json.Marshal(api.DirectionPayload{Dx: dx, Dy: dy})
		return raw
	case domain.ActionAttack:
		raw, _ := json.Marshal(api.EntityPayload{TargetID: target.ID})
		return raw
	default:
		return nil
	}
}

// firstFloorTile finds a walkable fallback position in a hydrated level.
func firstFloorTile(ls domain.LevelSnapshot) domain.Position {
	for y := range ls.Tiles {
		for x := range ls.Tiles[y] {
			if !ls.Tiles[y][x].IsWall {
				return domain.Position{X: x, Y: y}
			}
		}
	}
	return domain.Position{X: 1, Y: 1}
}
